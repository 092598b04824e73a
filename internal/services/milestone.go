package services

import (
	"errors"
	"time"

	"github.com/taskflow-dev/taskflow/internal/access"
	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Milestones have no ownership of their own; every permission derives
// from the parent project.
type MilestoneService struct {
	db *gorm.DB
}

func NewMilestoneService(db *gorm.DB) *MilestoneService {
	return &MilestoneService{db: db}
}

type MilestoneInput struct {
	Title       string
	Description string
	TargetDate  *datatypes.Date
	Completed   bool
}

func (s *MilestoneService) ListByProject(projectID uint, currentUser models.User) ([]types.MilestoneResponse, error) {
	if err := s.checkProjectAccess(projectID, currentUser); err != nil {
		return nil, err
	}

	var milestones []models.Milestone
	if err := s.db.Where("project_id = ?", projectID).
		Order("target_date ASC").
		Find(&milestones).Error; err != nil {
		return nil, err
	}

	return milestoneResponses(milestones), nil
}

func (s *MilestoneService) Get(id uint, currentUser models.User) (types.MilestoneResponse, error) {
	milestone, err := s.loadWithAccess(id, currentUser, access.CanAccessProject)
	if err != nil {
		return types.MilestoneResponse{}, err
	}

	return milestoneResponse(milestone), nil
}

func (s *MilestoneService) Create(projectID uint, input MilestoneInput, currentUser models.User) (types.MilestoneResponse, error) {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.MilestoneResponse{}, ErrNotFound
		}
		return types.MilestoneResponse{}, err
	}

	if !access.CanModifyProject(project, currentUser) {
		return types.MilestoneResponse{}, ErrNotFound
	}

	milestone := models.Milestone{
		ProjectID:   project.ID,
		Title:       input.Title,
		Description: input.Description,
		TargetDate:  input.TargetDate,
		Completed:   input.Completed,
	}

	if err := s.db.Create(&milestone).Error; err != nil {
		return types.MilestoneResponse{}, err
	}

	return milestoneResponse(milestone), nil
}

func (s *MilestoneService) Update(id uint, input MilestoneInput, currentUser models.User) (types.MilestoneResponse, error) {
	milestone, err := s.loadWithAccess(id, currentUser, access.CanModifyProject)
	if err != nil {
		return types.MilestoneResponse{}, err
	}

	milestone.Title = input.Title
	milestone.Description = input.Description
	milestone.TargetDate = input.TargetDate
	milestone.Completed = input.Completed

	if err := s.db.Save(&milestone).Error; err != nil {
		return types.MilestoneResponse{}, err
	}

	return milestoneResponse(milestone), nil
}

func (s *MilestoneService) Delete(id uint, currentUser models.User) error {
	milestone, err := s.loadWithAccess(id, currentUser, access.CanModifyProject)
	if err != nil {
		return err
	}

	return s.db.Delete(&milestone).Error
}

// ToggleCompletion flips the completed flag and nothing else. Toggling
// twice restores the original state.
func (s *MilestoneService) ToggleCompletion(id uint, currentUser models.User) (types.MilestoneResponse, error) {
	milestone, err := s.loadWithAccess(id, currentUser, access.CanModifyProject)
	if err != nil {
		return types.MilestoneResponse{}, err
	}

	milestone.Completed = !milestone.Completed

	if err := s.db.Save(&milestone).Error; err != nil {
		return types.MilestoneResponse{}, err
	}

	return milestoneResponse(milestone), nil
}

// ListOverdue: target date before today and not completed.
func (s *MilestoneService) ListOverdue(projectID uint, currentUser models.User) ([]types.MilestoneResponse, error) {
	if err := s.checkProjectAccess(projectID, currentUser); err != nil {
		return nil, err
	}

	today := datatypes.Date(time.Now())

	var milestones []models.Milestone
	if err := s.db.Where("project_id = ? AND target_date < ? AND completed = ?", projectID, today, false).
		Order("target_date ASC").
		Find(&milestones).Error; err != nil {
		return nil, err
	}

	return milestoneResponses(milestones), nil
}

// ListUpcoming: target date within [today, today+30 days], inclusive.
func (s *MilestoneService) ListUpcoming(projectID uint, currentUser models.User) ([]types.MilestoneResponse, error) {
	if err := s.checkProjectAccess(projectID, currentUser); err != nil {
		return nil, err
	}

	today := datatypes.Date(time.Now())
	horizon := datatypes.Date(time.Now().AddDate(0, 0, 30))

	var milestones []models.Milestone
	if err := s.db.Where("project_id = ? AND target_date >= ? AND target_date <= ?", projectID, today, horizon).
		Order("target_date ASC").
		Find(&milestones).Error; err != nil {
		return nil, err
	}

	return milestoneResponses(milestones), nil
}

// Progress reports the completed share as a percentage, 0 when the
// project has no milestones.
func (s *MilestoneService) Progress(projectID uint, currentUser models.User) (types.MilestoneProgress, error) {
	if err := s.checkProjectAccess(projectID, currentUser); err != nil {
		return types.MilestoneProgress{}, err
	}

	var total, completed int64

	if err := s.db.Model(&models.Milestone{}).Where("project_id = ?", projectID).Count(&total).Error; err != nil {
		return types.MilestoneProgress{}, err
	}

	progress := types.MilestoneProgress{ProjectID: projectID, TotalMilestones: total}

	if total == 0 {
		return progress, nil
	}

	if err := s.db.Model(&models.Milestone{}).
		Where("project_id = ? AND completed = ?", projectID, true).
		Count(&completed).Error; err != nil {
		return types.MilestoneProgress{}, err
	}

	progress.CompletedMilestones = completed
	progress.Progress = float64(completed) / float64(total) * 100

	return progress, nil
}

func (s *MilestoneService) checkProjectAccess(projectID uint, currentUser models.User) error {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !access.CanAccessProject(project, currentUser) {
		return ErrNotFound
	}

	return nil
}

func (s *MilestoneService) loadWithAccess(id uint, currentUser models.User, allowed func(models.Project, models.User) bool) (models.Milestone, error) {
	var milestone models.Milestone
	if err := s.db.Preload("Project").First(&milestone, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Milestone{}, ErrNotFound
		}
		return models.Milestone{}, err
	}

	if !allowed(milestone.Project, currentUser) {
		return models.Milestone{}, ErrNotFound
	}

	return milestone, nil
}

func milestoneResponse(milestone models.Milestone) types.MilestoneResponse {
	return types.MilestoneResponse{
		ID:          milestone.ID,
		ProjectID:   milestone.ProjectID,
		Title:       milestone.Title,
		Description: milestone.Description,
		TargetDate:  milestone.TargetDate,
		Completed:   milestone.Completed,
		CreatedAt:   milestone.CreatedAt,
		UpdatedAt:   milestone.UpdatedAt,
	}
}

func milestoneResponses(milestones []models.Milestone) []types.MilestoneResponse {
	responses := make([]types.MilestoneResponse, 0, len(milestones))
	for _, milestone := range milestones {
		responses = append(responses, milestoneResponse(milestone))
	}
	return responses
}
