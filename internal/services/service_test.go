package services

import (
	"testing"

	"github.com/taskflow-dev/taskflow/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	err = database.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Task{},
		&models.Milestone{},
		&models.Comment{},
		&models.TimeEntry{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return database
}

func createUser(t *testing.T, database *gorm.DB, name, email, role string) models.User {
	t.Helper()

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: "hashed",
		Role:         role,
	}
	if err := database.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", email, err)
	}

	return user
}

func createProject(t *testing.T, database *gorm.DB, creator models.User, name, visibility string) models.Project {
	t.Helper()

	project := models.Project{
		Name:       name,
		CreatorID:  creator.ID,
		Visibility: visibility,
	}
	if err := database.Create(&project).Error; err != nil {
		t.Fatalf("Failed to create project %s: %v", name, err)
	}

	return project
}

func createTask(t *testing.T, database *gorm.DB, project models.Project, title string, assignee *models.User) models.Task {
	t.Helper()

	task := models.Task{
		ProjectID: project.ID,
		Title:     title,
		Priority:  models.PriorityMedium,
		Status:    models.StatusTodo,
	}
	if assignee != nil {
		task.AssignedToID = &assignee.ID
	}
	if err := database.Create(&task).Error; err != nil {
		t.Fatalf("Failed to create task %s: %v", title, err)
	}

	return task
}
