package services

import (
	"errors"

	"github.com/taskflow-dev/taskflow/internal/access"
	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/types"
	"gorm.io/gorm"
)

type TimeEntryService struct {
	db *gorm.DB
}

func NewTimeEntryService(db *gorm.DB) *TimeEntryService {
	return &TimeEntryService{db: db}
}

// Create logs hours against a task. Entries are immutable afterwards;
// there is no update or delete.
func (s *TimeEntryService) Create(taskID uint, hoursSpent float64, currentUser models.User) (types.TimeEntryResponse, error) {
	if hoursSpent <= 0 {
		return types.TimeEntryResponse{}, ErrNonPositiveHours
	}

	task, err := s.accessibleTask(taskID, currentUser)
	if err != nil {
		return types.TimeEntryResponse{}, err
	}

	entry := models.TimeEntry{
		TaskID:     task.ID,
		UserID:     currentUser.ID,
		HoursSpent: hoursSpent,
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return types.TimeEntryResponse{}, err
	}

	entry.Task = task
	entry.User = currentUser
	return timeEntryResponse(entry), nil
}

func (s *TimeEntryService) ListByTask(taskID uint, currentUser models.User) ([]types.TimeEntryResponse, error) {
	if _, err := s.accessibleTask(taskID, currentUser); err != nil {
		return nil, err
	}

	var entries []models.TimeEntry
	if err := s.db.Preload("Task").Preload("User").
		Where("task_id = ?", taskID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}

	return timeEntryResponses(entries), nil
}

// TaskTotal sums a task's logged hours. Zero entries sum to 0.0, never
// an absent value.
func (s *TimeEntryService) TaskTotal(taskID uint, currentUser models.User) (float64, error) {
	if _, err := s.accessibleTask(taskID, currentUser); err != nil {
		return 0, err
	}

	return s.sumHours("task_id = ?", taskID)
}

func (s *TimeEntryService) ListByTaskForCurrentUser(taskID uint, currentUser models.User) ([]types.TimeEntryResponse, error) {
	if _, err := s.accessibleTask(taskID, currentUser); err != nil {
		return nil, err
	}

	var entries []models.TimeEntry
	if err := s.db.Preload("Task").Preload("User").
		Where("task_id = ? AND user_id = ?", taskID, currentUser.ID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}

	return timeEntryResponses(entries), nil
}

func (s *TimeEntryService) TaskTotalForCurrentUser(taskID uint, currentUser models.User) (float64, error) {
	if _, err := s.accessibleTask(taskID, currentUser); err != nil {
		return 0, err
	}

	return s.sumHours("task_id = ? AND user_id = ?", taskID, currentUser.ID)
}

func (s *TimeEntryService) ListByCurrentUser(currentUser models.User) ([]types.TimeEntryResponse, error) {
	var entries []models.TimeEntry
	if err := s.db.Preload("Task").Preload("User").
		Where("user_id = ?", currentUser.ID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}

	return timeEntryResponses(entries), nil
}

func (s *TimeEntryService) TotalForCurrentUser(currentUser models.User) (float64, error) {
	return s.sumHours("user_id = ?", currentUser.ID)
}

func (s *TimeEntryService) sumHours(condition string, args ...interface{}) (float64, error) {
	var total float64
	err := s.db.Model(&models.TimeEntry{}).
		Where(condition, args...).
		Select("COALESCE(SUM(hours_spent), 0)").
		Scan(&total).Error
	return total, err
}

func (s *TimeEntryService) accessibleTask(taskID uint, currentUser models.User) (models.Task, error) {
	var task models.Task
	if err := s.db.Preload("Project").First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrNotFound
		}
		return models.Task{}, err
	}

	if !access.CanAccessTask(task, task.Project, currentUser) {
		return models.Task{}, ErrNotFound
	}

	return task, nil
}

func timeEntryResponse(entry models.TimeEntry) types.TimeEntryResponse {
	return types.TimeEntryResponse{
		ID:         entry.ID,
		TaskID:     entry.TaskID,
		UserID:     entry.UserID,
		TaskTitle:  entry.Task.Title,
		UserName:   entry.User.Name,
		HoursSpent: entry.HoursSpent,
		CreatedAt:  entry.CreatedAt,
	}
}

func timeEntryResponses(entries []models.TimeEntry) []types.TimeEntryResponse {
	responses := make([]types.TimeEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, timeEntryResponse(entry))
	}
	return responses
}
