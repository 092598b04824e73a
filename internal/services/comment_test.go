package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/taskflow-dev/taskflow/internal/models"
)

func TestCommentCreateValidation(t *testing.T) {
	database := openTestDB(t)

	alice := createUser(t, database, "Alice", "alice@example.com", models.RoleUser)
	project := createProject(t, database, alice, "Apollo", models.VisibilityPrivate)
	task := createTask(t, database, project, "Design", &alice)

	service := NewCommentService(database)

	tests := []struct {
		name string
		text string
		want error
	}{
		{"empty text", "", ErrBlankComment},
		{"whitespace only", "   \t", ErrBlankComment},
		{"over the length limit", strings.Repeat("a", models.MaxCommentLength+1), ErrCommentTooLong},
		{"over the limit in characters", strings.Repeat("ü", models.MaxCommentLength+1), ErrCommentTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := service.Create(task.ID, tt.text, alice); !errors.Is(err, tt.want) {
				t.Errorf("Create() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := service.Create(task.ID, strings.Repeat("a", models.MaxCommentLength), alice); err != nil {
		t.Errorf("Create() at exactly the limit error = %v, want nil", err)
	}

	// The limit counts characters, so a multibyte comment at exactly
	// 1000 characters is accepted even though it exceeds 1000 bytes.
	if _, err := service.Create(task.ID, strings.Repeat("ü", models.MaxCommentLength), alice); err != nil {
		t.Errorf("Create() with %d multibyte characters error = %v, want nil", models.MaxCommentLength, err)
	}
}

func TestCommentNotifiesAssignee(t *testing.T) {
	database := openTestDB(t)

	alice := createUser(t, database, "Alice", "alice@example.com", models.RoleUser)
	bob := createUser(t, database, "Bob", "bob@example.com", models.RoleUser)
	project := createProject(t, database, alice, "Apollo", models.VisibilityPrivate)
	task := createTask(t, database, project, "Design", &bob)

	service := NewCommentService(database)

	if _, err := service.Create(task.ID, "Looks good", alice); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	var notification models.Notification
	if err := database.Where("user_id = ?", bob.ID).First(&notification).Error; err != nil {
		t.Fatalf("Assignee notification missing: %v", err)
	}
	want := "Alice commented on task 'Design'"
	if notification.Message != want {
		t.Errorf("notification message = %q, want %q", notification.Message, want)
	}
}

func TestCommentSelfCommentDoesNotNotify(t *testing.T) {
	database := openTestDB(t)

	alice := createUser(t, database, "Alice", "alice@example.com", models.RoleUser)
	project := createProject(t, database, alice, "Apollo", models.VisibilityPrivate)
	task := createTask(t, database, project, "Design", &alice)

	if _, err := NewCommentService(database).Create(task.ID, "note to self", alice); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	var count int64
	if err := database.Model(&models.Notification{}).Count(&count).Error; err != nil {
		t.Fatalf("Failed to count notifications: %v", err)
	}
	if count != 0 {
		t.Errorf("self-comment created %d notifications, want 0", count)
	}
}

func TestCommentUpdateIsAuthorOnly(t *testing.T) {
	database := openTestDB(t)

	admin := createUser(t, database, "Admin", "admin@example.com", models.RoleAdmin)
	alice := createUser(t, database, "Alice", "alice@example.com", models.RoleUser)
	project := createProject(t, database, alice, "Apollo", models.VisibilityPrivate)
	task := createTask(t, database, project, "Design", &alice)

	service := NewCommentService(database)

	comment, err := service.Create(task.ID, "original", alice)
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if _, err := service.Update(comment.ID, "edited by admin", admin); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() by admin error = %v, want ErrNotFound", err)
	}

	updated, err := service.Update(comment.ID, "edited", alice)
	if err != nil {
		t.Fatalf("Update() by author error: %v", err)
	}
	if updated.Text != "edited" {
		t.Errorf("text = %q, want %q", updated.Text, "edited")
	}
}

func TestCommentDeleteAllowsAdmin(t *testing.T) {
	database := openTestDB(t)

	admin := createUser(t, database, "Admin", "admin@example.com", models.RoleAdmin)
	alice := createUser(t, database, "Alice", "alice@example.com", models.RoleUser)
	bob := createUser(t, database, "Bob", "bob@example.com", models.RoleUser)
	project := createProject(t, database, alice, "Apollo", models.VisibilityPublic)
	task := createTask(t, database, project, "Design", &alice)

	service := NewCommentService(database)

	first, err := service.Create(task.ID, "first", alice)
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	second, err := service.Create(task.ID, "second", alice)
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if err := service.Delete(first.ID, bob); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() by stranger error = %v, want ErrNotFound", err)
	}
	if err := service.Delete(first.ID, admin); err != nil {
		t.Errorf("Delete() by admin error = %v, want nil", err)
	}
	if err := service.Delete(second.ID, alice); err != nil {
		t.Errorf("Delete() by author error = %v, want nil", err)
	}
}

func TestCommentListByCurrentUser(t *testing.T) {
	database := openTestDB(t)

	alice := createUser(t, database, "Alice", "alice@example.com", models.RoleUser)
	bob := createUser(t, database, "Bob", "bob@example.com", models.RoleUser)
	project := createProject(t, database, alice, "Apollo", models.VisibilityPublic)
	task := createTask(t, database, project, "Design", &alice)

	service := NewCommentService(database)

	if _, err := service.Create(task.ID, "by alice", alice); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if _, err := service.Create(task.ID, "by bob", bob); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	comments, err := service.ListByCurrentUser(bob)
	if err != nil {
		t.Fatalf("ListByCurrentUser() error: %v", err)
	}
	if len(comments) != 1 || comments[0].Text != "by bob" {
		t.Errorf("ListByCurrentUser() = %+v, want only bob's comment", comments)
	}
}
