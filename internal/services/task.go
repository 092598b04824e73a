package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/taskflow-dev/taskflow/internal/access"
	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// priorityRank orders LOW < MEDIUM < HIGH in SQL regardless of the
// strings' alphabetical order.
const priorityRank = "CASE priority WHEN 'HIGH' THEN 3 WHEN 'MEDIUM' THEN 2 ELSE 1 END"

type TaskService struct {
	db            *gorm.DB
	notifications *NotificationService
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db, notifications: NewNotificationService(db)}
}

type TaskInput struct {
	Title        string
	Description  string
	Priority     string
	Status       string
	DueDate      *datatypes.Date
	AssignedToID *uint
}

// ListByProject returns a project's tasks, newest first. Access follows
// the parent project.
func (s *TaskService) ListByProject(projectID uint, currentUser models.User) ([]types.TaskResponse, error) {
	if _, err := s.accessibleProject(projectID, currentUser); err != nil {
		return nil, err
	}

	var tasks []models.Task
	if err := s.db.Preload("AssignedTo").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}

	return taskResponses(tasks), nil
}

func (s *TaskService) Get(id uint, currentUser models.User) (types.TaskResponse, error) {
	task, err := s.load(id)
	if err != nil {
		return types.TaskResponse{}, err
	}

	if !access.CanAccessTask(task, task.Project, currentUser) {
		return types.TaskResponse{}, ErrNotFound
	}

	return taskResponse(task), nil
}

// Create adds a task to the project. The assignee is resolved with a
// silent fallback: an assignee the caller may not assign to, or one
// that does not exist, becomes the caller themselves.
func (s *TaskService) Create(projectID uint, input TaskInput, currentUser models.User) (types.TaskResponse, error) {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.TaskResponse{}, ErrNotFound
		}
		return types.TaskResponse{}, err
	}

	if !access.CanModifyProject(project, currentUser) {
		return types.TaskResponse{}, ErrNotFound
	}

	priority, status, err := normalizeTaskEnums(input.Priority, input.Status)
	if err != nil {
		return types.TaskResponse{}, err
	}

	assignee := s.determineAssignee(input.AssignedToID, currentUser, project)

	task := models.Task{
		ProjectID:    project.ID,
		Title:        input.Title,
		Description:  input.Description,
		Priority:     priority,
		Status:       status,
		DueDate:      input.DueDate,
		AssignedToID: &assignee.ID,
	}

	if err := s.db.Create(&task).Error; err != nil {
		return types.TaskResponse{}, err
	}

	if assignee.ID != currentUser.ID {
		s.notifyAssignment(project, task, assignee)
	}

	task.AssignedTo = &assignee
	return taskResponse(task), nil
}

// Update replaces every task field. Reassignment additionally requires
// assignment rights on the project; without them the assignee is left
// unchanged rather than the whole update being rejected.
func (s *TaskService) Update(id uint, input TaskInput, currentUser models.User) (types.TaskResponse, error) {
	task, err := s.load(id)
	if err != nil {
		return types.TaskResponse{}, err
	}

	if !access.CanModifyTask(task, task.Project, currentUser) {
		return types.TaskResponse{}, ErrNotFound
	}

	priority, status, err := normalizeTaskEnums(input.Priority, input.Status)
	if err != nil {
		return types.TaskResponse{}, err
	}

	task.Title = input.Title
	task.Description = input.Description
	task.Priority = priority
	task.Status = status
	task.DueDate = input.DueDate

	previousAssignee := task.AssignedToID

	if input.AssignedToID != nil && access.CanAssignTask(task.Project, currentUser) {
		var assignee models.User
		// A nonexistent assignee id is silently ignored.
		if err := s.db.First(&assignee, *input.AssignedToID).Error; err == nil {
			task.AssignedToID = &assignee.ID
			task.AssignedTo = &assignee
		}
	}

	if err := s.db.Save(&task).Error; err != nil {
		return types.TaskResponse{}, err
	}

	if task.AssignedToID != nil && *task.AssignedToID != currentUser.ID &&
		(previousAssignee == nil || *previousAssignee != *task.AssignedToID) {
		s.notifyAssignment(task.Project, task, *task.AssignedTo)
	}

	return taskResponse(task), nil
}

// UpdateStatus changes only the status. An unknown status string is an
// explicit rejection, not a silent skip.
func (s *TaskService) UpdateStatus(id uint, status string, currentUser models.User) (types.TaskResponse, error) {
	normalized := strings.ToUpper(strings.TrimSpace(status))
	if !models.ValidStatus(normalized) {
		return types.TaskResponse{}, ErrInvalidStatus
	}

	task, err := s.load(id)
	if err != nil {
		return types.TaskResponse{}, err
	}

	if !access.CanModifyTask(task, task.Project, currentUser) {
		return types.TaskResponse{}, ErrNotFound
	}

	task.Status = normalized

	if err := s.db.Save(&task).Error; err != nil {
		return types.TaskResponse{}, err
	}

	return taskResponse(task), nil
}

// Delete removes the task together with its comments and time entries,
// children first, in one transaction.
func (s *TaskService) Delete(id uint, currentUser models.User) error {
	task, err := s.load(id)
	if err != nil {
		return err
	}

	if !access.CanModifyTask(task, task.Project, currentUser) {
		return ErrNotFound
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", task.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", task.ID).Delete(&models.TimeEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&task).Error
	})
}

func (s *TaskService) ListByStatus(projectID uint, status string, currentUser models.User) ([]types.TaskResponse, error) {
	normalized := strings.ToUpper(strings.TrimSpace(status))
	if !models.ValidStatus(normalized) {
		return nil, ErrInvalidStatus
	}

	if _, err := s.accessibleProject(projectID, currentUser); err != nil {
		return nil, err
	}

	var tasks []models.Task
	if err := s.db.Preload("AssignedTo").
		Where("project_id = ? AND status = ?", projectID, normalized).
		Order(priorityRank + " DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}

	return taskResponses(tasks), nil
}

func (s *TaskService) ListByPriority(projectID uint, priority string, currentUser models.User) ([]types.TaskResponse, error) {
	normalized := strings.ToUpper(strings.TrimSpace(priority))
	if !models.ValidPriority(normalized) {
		return nil, ErrInvalidPriority
	}

	if _, err := s.accessibleProject(projectID, currentUser); err != nil {
		return nil, err
	}

	var tasks []models.Task
	if err := s.db.Preload("AssignedTo").
		Where("project_id = ? AND priority = ?", projectID, normalized).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}

	return taskResponses(tasks), nil
}

func (s *TaskService) ListAssignedToMe(currentUser models.User) ([]types.TaskResponse, error) {
	var tasks []models.Task
	if err := s.db.Preload("AssignedTo").
		Where("assigned_to_id = ?", currentUser.ID).
		Order("due_date ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}

	return taskResponses(tasks), nil
}

// ListOverdue answers two materially different questions depending on
// role: admins get every overdue task in the system, everyone else gets
// only the overdue tasks assigned to them.
func (s *TaskService) ListOverdue(currentUser models.User) ([]types.TaskResponse, error) {
	today := datatypes.Date(time.Now())

	query := s.db.Preload("AssignedTo").
		Where("due_date < ? AND status <> ?", today, models.StatusCompleted).
		Order("due_date ASC")

	if currentUser.Role != models.RoleAdmin {
		query = query.Where("assigned_to_id = ?", currentUser.ID)
	}

	var tasks []models.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}

	return taskResponses(tasks), nil
}

func (s *TaskService) ListDueToday(currentUser models.User) ([]types.TaskResponse, error) {
	today := datatypes.Date(time.Now())

	query := s.db.Preload("AssignedTo").
		Where("due_date = ?", today).
		Order(priorityRank + " DESC")

	if currentUser.Role != models.RoleAdmin {
		query = query.Where("assigned_to_id = ?", currentUser.ID)
	}

	var tasks []models.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}

	return taskResponses(tasks), nil
}

func (s *TaskService) ListHighPriorityIncomplete(currentUser models.User) ([]types.TaskResponse, error) {
	query := s.db.Preload("AssignedTo").
		Where("priority = ? AND status <> ?", models.PriorityHigh, models.StatusCompleted).
		Order("created_at DESC")

	if currentUser.Role != models.RoleAdmin {
		query = query.Where("assigned_to_id = ?", currentUser.ID)
	}

	var tasks []models.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}

	return taskResponses(tasks), nil
}

// determineAssignee applies the self-assignment fallback: the requested
// assignee is used only when they exist and the caller may assign to
// them, otherwise the task lands on the caller.
func (s *TaskService) determineAssignee(requested *uint, currentUser models.User, project models.Project) models.User {
	if requested != nil {
		var assignee models.User
		if err := s.db.First(&assignee, *requested).Error; err == nil {
			if access.CanAssignToUser(project, currentUser, assignee) {
				return assignee
			}
		}
	}

	return currentUser
}

func (s *TaskService) notifyAssignment(project models.Project, task models.Task, assignee models.User) {
	s.notifications.NotifyTaskAssignment(assignee, task.Title, project.Name)

	if err := SendTaskAssignedWebhooks(project, task, assignee); err != nil {
		log.Printf("Failed to deliver assignment webhook for task %d: %v", task.ID, err)
	}
}

func (s *TaskService) load(id uint) (models.Task, error) {
	var task models.Task
	if err := s.db.Preload("Project").Preload("AssignedTo").First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrNotFound
		}
		return models.Task{}, err
	}

	return task, nil
}

func (s *TaskService) accessibleProject(projectID uint, currentUser models.User) (models.Project, error) {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Project{}, ErrNotFound
		}
		return models.Project{}, err
	}

	if !access.CanAccessProject(project, currentUser) {
		return models.Project{}, ErrNotFound
	}

	return project, nil
}

func normalizeTaskEnums(priority, status string) (string, string, error) {
	priority = strings.ToUpper(strings.TrimSpace(priority))
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.ValidPriority(priority) {
		return "", "", ErrInvalidPriority
	}

	status = strings.ToUpper(strings.TrimSpace(status))
	if status == "" {
		status = models.StatusTodo
	}
	if !models.ValidStatus(status) {
		return "", "", ErrInvalidStatus
	}

	return priority, status, nil
}

func taskResponse(task models.Task) types.TaskResponse {
	response := types.TaskResponse{
		ID:           task.ID,
		ProjectID:    task.ProjectID,
		Title:        task.Title,
		Description:  task.Description,
		Priority:     task.Priority,
		Status:       task.Status,
		DueDate:      task.DueDate,
		AssignedToID: task.AssignedToID,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}

	if task.AssignedTo != nil {
		response.AssignedToName = task.AssignedTo.Name
	}

	return response
}

func taskResponses(tasks []models.Task) []types.TaskResponse {
	responses := make([]types.TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, taskResponse(task))
	}
	return responses
}
