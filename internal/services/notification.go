package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/types"
	"gorm.io/gorm"
)

// Broadcast, when set, receives every freshly created notification so
// the websocket layer can push it to the recipient's live stream. Wired
// up by the router at startup.
var Broadcast func(userID uint, notification types.NotificationResponse)

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Create inserts a notification for userID. Callers are other services;
// no API client can create notifications directly.
func (s *NotificationService) Create(userID uint, message string) (types.NotificationResponse, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.NotificationResponse{}, ErrNotFound
		}
		return types.NotificationResponse{}, err
	}

	notification := models.Notification{
		UserID:  userID,
		Message: message,
	}

	if err := s.db.Create(&notification).Error; err != nil {
		return types.NotificationResponse{}, err
	}

	response := notificationResponse(notification)

	if Broadcast != nil {
		Broadcast(userID, response)
	}

	return response, nil
}

// List returns the current user's notifications, newest first. There is
// no cross-user visibility, admins included.
func (s *NotificationService) List(currentUser models.User) ([]types.NotificationResponse, error) {
	return s.list(currentUser, false)
}

func (s *NotificationService) ListUnread(currentUser models.User) ([]types.NotificationResponse, error) {
	return s.list(currentUser, true)
}

func (s *NotificationService) list(currentUser models.User, unreadOnly bool) ([]types.NotificationResponse, error) {
	query := s.db.Where("user_id = ?", currentUser.ID).Order("created_at DESC")
	if unreadOnly {
		query = query.Where("read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Find(&notifications).Error; err != nil {
		return nil, err
	}

	responses := make([]types.NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		responses = append(responses, notificationResponse(notification))
	}

	return responses, nil
}

// MarkRead flips the read flag on one of the current user's
// notifications. An id that matches nothing is a no-op, not an error.
func (s *NotificationService) MarkRead(id uint, currentUser models.User) error {
	return s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, currentUser.ID).
		Update("read", true).Error
}

func (s *NotificationService) MarkAllRead(currentUser models.User) error {
	return s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", currentUser.ID, false).
		Update("read", true).Error
}

func (s *NotificationService) UnreadCount(currentUser models.User) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", currentUser.ID, false).
		Count(&count).Error
	return count, err
}

func (s *NotificationService) NotifyTaskAssignment(assignee models.User, taskTitle, projectName string) {
	message := fmt.Sprintf("You have been assigned to task '%s' in project '%s'", taskTitle, projectName)
	if _, err := s.Create(assignee.ID, message); err != nil {
		logNotifyFailure(assignee.ID, err)
	}
}

func (s *NotificationService) NotifyNewComment(assignee models.User, commenterName, taskTitle string) {
	message := fmt.Sprintf("%s commented on task '%s'", commenterName, taskTitle)
	if _, err := s.Create(assignee.ID, message); err != nil {
		logNotifyFailure(assignee.ID, err)
	}
}

func logNotifyFailure(userID uint, err error) {
	log.Printf("Failed to create notification for user %d: %v", userID, err)
}

func notificationResponse(notification models.Notification) types.NotificationResponse {
	return types.NotificationResponse{
		ID:        notification.ID,
		UserID:    notification.UserID,
		Message:   notification.Message,
		Read:      notification.Read,
		CreatedAt: notification.CreatedAt,
	}
}
