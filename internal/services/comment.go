package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/taskflow-dev/taskflow/internal/access"
	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/types"
	"gorm.io/gorm"
)

type CommentService struct {
	db            *gorm.DB
	notifications *NotificationService
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db, notifications: NewNotificationService(db)}
}

// Create attaches a comment to a task the current user can access. The
// task's assignee gets a notification unless they are the commenter.
func (s *CommentService) Create(taskID uint, text string, currentUser models.User) (types.CommentResponse, error) {
	if err := validateCommentText(text); err != nil {
		return types.CommentResponse{}, err
	}

	task, err := s.loadTask(taskID)
	if err != nil {
		return types.CommentResponse{}, err
	}

	if !access.CanAccessTask(task, task.Project, currentUser) {
		return types.CommentResponse{}, ErrNotFound
	}

	comment := models.Comment{
		TaskID: task.ID,
		UserID: currentUser.ID,
		Text:   text,
	}

	if err := s.db.Create(&comment).Error; err != nil {
		return types.CommentResponse{}, err
	}

	if task.AssignedTo != nil && task.AssignedTo.ID != currentUser.ID {
		s.notifications.NotifyNewComment(*task.AssignedTo, currentUser.Name, task.Title)
	}

	comment.Task = task
	comment.User = currentUser
	return commentResponse(comment), nil
}

func (s *CommentService) ListByTask(taskID uint, currentUser models.User) ([]types.CommentResponse, error) {
	task, err := s.loadTask(taskID)
	if err != nil {
		return nil, err
	}

	if !access.CanAccessTask(task, task.Project, currentUser) {
		return nil, ErrNotFound
	}

	var comments []models.Comment
	if err := s.db.Preload("Task").Preload("User").
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}

	return commentResponses(comments), nil
}

func (s *CommentService) Get(id uint, currentUser models.User) (types.CommentResponse, error) {
	comment, err := s.load(id)
	if err != nil {
		return types.CommentResponse{}, err
	}

	if !access.CanAccessTask(comment.Task, comment.Task.Project, currentUser) {
		return types.CommentResponse{}, ErrNotFound
	}

	return commentResponse(comment), nil
}

// Update is author-only; not even admins may edit someone else's words.
func (s *CommentService) Update(id uint, text string, currentUser models.User) (types.CommentResponse, error) {
	if err := validateCommentText(text); err != nil {
		return types.CommentResponse{}, err
	}

	comment, err := s.load(id)
	if err != nil {
		return types.CommentResponse{}, err
	}

	if !access.CanModifyComment(comment, currentUser) {
		return types.CommentResponse{}, ErrNotFound
	}

	comment.Text = text

	if err := s.db.Save(&comment).Error; err != nil {
		return types.CommentResponse{}, err
	}

	return commentResponse(comment), nil
}

// Delete is allowed to the author and to admins.
func (s *CommentService) Delete(id uint, currentUser models.User) error {
	comment, err := s.load(id)
	if err != nil {
		return err
	}

	if !access.CanDeleteComment(comment, currentUser) {
		return ErrNotFound
	}

	return s.db.Delete(&comment).Error
}

func (s *CommentService) ListByCurrentUser(currentUser models.User) ([]types.CommentResponse, error) {
	var comments []models.Comment
	if err := s.db.Preload("Task").Preload("User").
		Where("user_id = ?", currentUser.ID).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return nil, err
	}

	return commentResponses(comments), nil
}

func validateCommentText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrBlankComment
	}
	// The limit is in characters, not bytes.
	if utf8.RuneCountInString(text) > models.MaxCommentLength {
		return ErrCommentTooLong
	}
	return nil
}

func (s *CommentService) loadTask(taskID uint) (models.Task, error) {
	var task models.Task
	if err := s.db.Preload("Project").Preload("AssignedTo").First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrNotFound
		}
		return models.Task{}, err
	}

	return task, nil
}

func (s *CommentService) load(id uint) (models.Comment, error) {
	var comment models.Comment
	if err := s.db.Preload("Task").Preload("Task.Project").Preload("User").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Comment{}, ErrNotFound
		}
		return models.Comment{}, err
	}

	return comment, nil
}

func commentResponse(comment models.Comment) types.CommentResponse {
	return types.CommentResponse{
		ID:        comment.ID,
		TaskID:    comment.TaskID,
		UserID:    comment.UserID,
		TaskTitle: comment.Task.Title,
		UserName:  comment.User.Name,
		UserEmail: comment.User.Email,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

func commentResponses(comments []models.Comment) []types.CommentResponse {
	responses := make([]types.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, commentResponse(comment))
	}
	return responses
}
