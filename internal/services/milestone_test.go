package services

import (
	"errors"
	"testing"
	"time"

	"github.com/taskflow-dev/taskflow/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func createMilestone(t *testing.T, database *gorm.DB, project models.Project, title string, target *datatypes.Date, completed bool) models.Milestone {
	t.Helper()

	milestone := models.Milestone{
		ProjectID:  project.ID,
		Title:      title,
		TargetDate: target,
		Completed:  completed,
	}
	if err := database.Create(&milestone).Error; err != nil {
		t.Fatalf("Failed to create milestone %s: %v", title, err)
	}

	return milestone
}

func TestMilestoneAccessFollowsProject(t *testing.T) {
	database := openTestDB(t)

	alice := createUser(t, database, "Alice", "alice@example.com", models.RoleUser)
	bob := createUser(t, database, "Bob", "bob@example.com", models.RoleUser)
	project := createProject(t, database, alice, "Apollo", models.VisibilityPrivate)
	milestone := createMilestone(t, database, project, "Beta", nil, false)

	service := NewMilestoneService(database)

	if _, err := service.Get(milestone.ID, bob); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() by stranger error = %v, want ErrNotFound", err)
	}
	if _, err := service.Get(milestone.ID, alice); err != nil {
		t.Errorf("Get() by creator error = %v, want nil", err)
	}
}

func TestMilestoneToggleCompletion(t *testing.T) {
	database := openTestDB(t)

	alice := createUser(t, database, "Alice", "alice@example.com", models.RoleUser)
	project := createProject(t, database, alice, "Apollo", models.VisibilityPrivate)
	milestone := createMilestone(t, database, project, "Beta", nil, false)

	service := NewMilestoneService(database)

	toggled, err := service.ToggleCompletion(milestone.ID, alice)
	if err != nil {
		t.Fatalf("ToggleCompletion() error: %v", err)
	}
	if !toggled.Completed {
		t.Error("first toggle should mark the milestone completed")
	}

	toggled, err = service.ToggleCompletion(milestone.ID, alice)
	if err != nil {
		t.Fatalf("ToggleCompletion() error: %v", err)
	}
	if toggled.Completed {
		t.Error("second toggle should restore the original state")
	}
}

func TestMilestoneOverdueAndUpcoming(t *testing.T) {
	database := openTestDB(t)

	alice := createUser(t, database, "Alice", "alice@example.com", models.RoleUser)
	project := createProject(t, database, alice, "Apollo", models.VisibilityPrivate)

	yesterday := datatypes.Date(time.Now().AddDate(0, 0, -1))
	nextWeek := datatypes.Date(time.Now().AddDate(0, 0, 7))
	farFuture := datatypes.Date(time.Now().AddDate(0, 0, 45))

	createMilestone(t, database, project, "Missed", &yesterday, false)
	createMilestone(t, database, project, "Missed but done", &yesterday, true)
	createMilestone(t, database, project, "Soon", &nextWeek, false)
	createMilestone(t, database, project, "Far out", &farFuture, false)

	service := NewMilestoneService(database)

	overdue, err := service.ListOverdue(project.ID, alice)
	if err != nil {
		t.Fatalf("ListOverdue() error: %v", err)
	}
	if len(overdue) != 1 || overdue[0].Title != "Missed" {
		t.Errorf("ListOverdue() = %+v, want only the incomplete missed milestone", overdue)
	}

	upcoming, err := service.ListUpcoming(project.ID, alice)
	if err != nil {
		t.Fatalf("ListUpcoming() error: %v", err)
	}
	if len(upcoming) != 1 || upcoming[0].Title != "Soon" {
		t.Errorf("ListUpcoming() = %+v, want only the milestone inside the 30-day window", upcoming)
	}
}

func TestMilestoneProgress(t *testing.T) {
	database := openTestDB(t)

	alice := createUser(t, database, "Alice", "alice@example.com", models.RoleUser)
	project := createProject(t, database, alice, "Apollo", models.VisibilityPrivate)

	service := NewMilestoneService(database)

	progress, err := service.Progress(project.ID, alice)
	if err != nil {
		t.Fatalf("Progress() error: %v", err)
	}
	if progress.Progress != 0 || progress.TotalMilestones != 0 {
		t.Errorf("empty project milestone progress = %+v, want zero values", progress)
	}

	createMilestone(t, database, project, "Alpha", nil, true)
	createMilestone(t, database, project, "Beta", nil, false)
	createMilestone(t, database, project, "GA", nil, false)

	progress, err = service.Progress(project.ID, alice)
	if err != nil {
		t.Fatalf("Progress() error: %v", err)
	}
	want := float64(1) / 3 * 100
	if progress.Progress != want {
		t.Errorf("Progress = %v, want %v", progress.Progress, want)
	}
}
