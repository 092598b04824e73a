package services

import (
	"errors"
	"strings"

	"github.com/taskflow-dev/taskflow/internal/access"
	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

type ProjectInput struct {
	Name           string
	Description    string
	StartDate      *datatypes.Date
	EndDate        *datatypes.Date
	Visibility     string
	DiscordWebhook string
	SlackWebhook   string
}

// List returns every project the user may see, newest first. Admins see
// all projects; everyone else sees their own plus PUBLIC ones.
func (s *ProjectService) List(currentUser models.User) ([]types.ProjectResponse, error) {
	var projects []models.Project

	query := s.db.Preload("Creator").Order("created_at DESC")

	if currentUser.Role != models.RoleAdmin {
		query = query.Where("creator_id = ? OR visibility = ?", currentUser.ID, models.VisibilityPublic)
	}

	if err := query.Find(&projects).Error; err != nil {
		return nil, err
	}

	responses := make([]types.ProjectResponse, 0, len(projects))
	for _, project := range projects {
		responses = append(responses, projectResponse(project))
	}

	return responses, nil
}

func (s *ProjectService) Get(id uint, currentUser models.User) (types.ProjectResponse, error) {
	project, err := s.loadAccessible(id, currentUser)
	if err != nil {
		return types.ProjectResponse{}, err
	}

	return projectResponse(project), nil
}

// Create persists the project and its creator's OWNER membership in a
// single transaction; one never exists without the other.
func (s *ProjectService) Create(input ProjectInput, currentUser models.User) (types.ProjectResponse, error) {
	visibility := input.Visibility
	if visibility == "" {
		visibility = models.VisibilityPrivate
	}
	if !models.ValidVisibility(visibility) {
		return types.ProjectResponse{}, ErrInvalidVisibility
	}

	project := models.Project{
		Name:           input.Name,
		Description:    input.Description,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		CreatorID:      currentUser.ID,
		Visibility:     visibility,
		DiscordWebhook: input.DiscordWebhook,
		SlackWebhook:   input.SlackWebhook,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}

		member := models.ProjectMember{
			ProjectID: project.ID,
			UserID:    currentUser.ID,
			Role:      models.MemberRoleOwner,
		}

		return tx.Create(&member).Error
	})

	if err != nil {
		return types.ProjectResponse{}, err
	}

	project.Creator = currentUser
	return projectResponse(project), nil
}

// Update replaces name, description, dates and visibility wholesale.
func (s *ProjectService) Update(id uint, input ProjectInput, currentUser models.User) (types.ProjectResponse, error) {
	project, err := s.loadModifiable(id, currentUser)
	if err != nil {
		return types.ProjectResponse{}, err
	}

	if !models.ValidVisibility(input.Visibility) {
		return types.ProjectResponse{}, ErrInvalidVisibility
	}

	project.Name = input.Name
	project.Description = input.Description
	project.StartDate = input.StartDate
	project.EndDate = input.EndDate
	project.Visibility = input.Visibility

	if err := s.db.Save(&project).Error; err != nil {
		return types.ProjectResponse{}, err
	}

	return projectResponse(project), nil
}

// Delete removes the project and everything scoped under it: comments
// and time entries on its tasks, the tasks, milestones and memberships,
// then the project itself. Children go first, all in one transaction.
func (s *ProjectService) Delete(id uint, currentUser models.User) error {
	project, err := s.loadModifiable(id, currentUser)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var taskIDs []uint
		if err := tx.Model(&models.Task{}).Where("project_id = ?", project.ID).Pluck("id", &taskIDs).Error; err != nil {
			return err
		}

		if len(taskIDs) > 0 {
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.TimeEntry{}).Error; err != nil {
				return err
			}
			if err := tx.Where("project_id = ?", project.ID).Delete(&models.Task{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("project_id = ?", project.ID).Delete(&models.Milestone{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}

		return tx.Delete(&project).Error
	})
}

// Progress reports the share of COMPLETED tasks as a percentage. A
// project without tasks has progress 0, not an error.
func (s *ProjectService) Progress(id uint, currentUser models.User) (types.ProjectProgress, error) {
	project, err := s.loadAccessible(id, currentUser)
	if err != nil {
		return types.ProjectProgress{}, err
	}

	var total, completed int64

	if err := s.db.Model(&models.Task{}).Where("project_id = ?", project.ID).Count(&total).Error; err != nil {
		return types.ProjectProgress{}, err
	}

	progress := types.ProjectProgress{ProjectID: project.ID, TotalTasks: total}

	if total == 0 {
		return progress, nil
	}

	if err := s.db.Model(&models.Task{}).
		Where("project_id = ? AND status = ?", project.ID, models.StatusCompleted).
		Count(&completed).Error; err != nil {
		return types.ProjectProgress{}, err
	}

	progress.CompletedTasks = completed
	progress.Progress = float64(completed) / float64(total) * 100

	return progress, nil
}

// Search matches project names case-insensitively, filtered by the same
// visibility rules as List.
func (s *ProjectService) Search(name string, currentUser models.User) ([]types.ProjectResponse, error) {
	pattern := "%" + strings.ToLower(name) + "%"

	query := s.db.Preload("Creator").Order("created_at DESC").Where("LOWER(name) LIKE ?", pattern)

	if currentUser.Role != models.RoleAdmin {
		query = query.Where("creator_id = ? OR visibility = ?", currentUser.ID, models.VisibilityPublic)
	}

	var projects []models.Project
	if err := query.Find(&projects).Error; err != nil {
		return nil, err
	}

	responses := make([]types.ProjectResponse, 0, len(projects))
	for _, project := range projects {
		responses = append(responses, projectResponse(project))
	}

	return responses, nil
}

func (s *ProjectService) ListMembers(projectID uint, currentUser models.User) ([]types.MemberResponse, error) {
	project, err := s.loadAccessible(projectID, currentUser)
	if err != nil {
		return nil, err
	}

	var members []models.ProjectMember
	if err := s.db.Preload("User").Where("project_id = ?", project.ID).Order("created_at ASC").Find(&members).Error; err != nil {
		return nil, err
	}

	responses := make([]types.MemberResponse, 0, len(members))
	for _, member := range members {
		responses = append(responses, types.MemberResponse{
			UserID:     member.UserID,
			Name:       member.User.Name,
			Email:      member.User.Email,
			Role:       member.User.Role,
			MemberRole: member.Role,
		})
	}

	return responses, nil
}

func (s *ProjectService) AddMember(projectID, userID uint, role string, currentUser models.User) error {
	project, err := s.loadManageable(projectID, currentUser)
	if err != nil {
		return err
	}

	memberRole := strings.ToUpper(role)
	if memberRole == "" {
		memberRole = models.MemberRoleMember
	}
	if !models.ValidMemberRole(memberRole) {
		return ErrInvalidRole
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	var count int64
	if err := s.db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", project.ID, userID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateMember
	}

	member := models.ProjectMember{
		ProjectID: project.ID,
		UserID:    userID,
		Role:      memberRole,
	}

	return s.db.Create(&member).Error
}

// RemoveMember refuses to remove the creator unconditionally. The check
// runs before the membership lookup, so not even an admin gets past it.
func (s *ProjectService) RemoveMember(projectID, userID uint, currentUser models.User) error {
	project, err := s.loadManageable(projectID, currentUser)
	if err != nil {
		return err
	}

	if project.CreatorID == userID {
		return ErrRemoveCreator
	}

	var member models.ProjectMember
	if err := s.db.Where("project_id = ? AND user_id = ?", project.ID, userID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.db.Delete(&member).Error
}

func (s *ProjectService) loadAccessible(id uint, currentUser models.User) (models.Project, error) {
	var project models.Project
	if err := s.db.Preload("Creator").First(&project, id).Error; err != nil {
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

func (s *ProjectService) loadModifiable(id uint, currentUser models.User) (models.Project, error) {
	var project models.Project
	if err := s.db.Preload("Creator").First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Project{}, ErrNotFound
		}
		return models.Project{}, err
	}

	if !access.CanModifyProject(project, currentUser) {
		return models.Project{}, ErrNotFound
	}

	return project, nil
}

func (s *ProjectService) loadManageable(id uint, currentUser models.User) (models.Project, error) {
	var project models.Project
	if err := s.db.Preload("Creator").First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Project{}, ErrNotFound
		}
		return models.Project{}, err
	}

	if !access.CanManageProject(project, currentUser) {
		return models.Project{}, ErrNotFound
	}

	return project, nil
}

func projectResponse(project models.Project) types.ProjectResponse {
	return types.ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		StartDate:   project.StartDate,
		EndDate:     project.EndDate,
		CreatorID:   project.CreatorID,
		CreatorName: project.Creator.Name,
		Visibility:  project.Visibility,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}
