package access

import (
	"testing"

	"github.com/taskflow-dev/taskflow/internal/models"
)

func user(id uint, role string) models.User {
	u := models.User{Role: role}
	u.ID = id
	return u
}

func project(creatorID uint, visibility string) models.Project {
	return models.Project{CreatorID: creatorID, Visibility: visibility}
}

func TestCanAccessProject(t *testing.T) {
	tests := []struct {
		name    string
		project models.Project
		user    models.User
		want    bool
	}{
		{"admin sees private project of someone else", project(1, models.VisibilityPrivate), user(2, models.RoleAdmin), true},
		{"creator sees own private project", project(1, models.VisibilityPrivate), user(1, models.RoleUser), true},
		{"stranger sees public project", project(1, models.VisibilityPublic), user(2, models.RoleUser), true},
		{"stranger blocked from private project", project(1, models.VisibilityPrivate), user(2, models.RoleUser), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanAccessProject(tt.project, tt.user); got != tt.want {
				t.Errorf("CanAccessProject() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanModifyProject(t *testing.T) {
	tests := []struct {
		name    string
		project models.Project
		user    models.User
		want    bool
	}{
		{"admin modifies any project", project(1, models.VisibilityPrivate), user(2, models.RoleAdmin), true},
		{"creator modifies own project", project(1, models.VisibilityPrivate), user(1, models.RoleUser), true},
		{"public visibility grants no write rights", project(1, models.VisibilityPublic), user(2, models.RoleUser), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanModifyProject(tt.project, tt.user); got != tt.want {
				t.Errorf("CanModifyProject() = %v, want %v", got, tt.want)
			}
			if got := CanManageProject(tt.project, tt.user); got != tt.want {
				t.Errorf("CanManageProject() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanAccessTask(t *testing.T) {
	assigneeID := uint(3)

	tests := []struct {
		name    string
		task    models.Task
		project models.Project
		user    models.User
		want    bool
	}{
		{"assignee sees task on private project they do not own", models.Task{AssignedToID: &assigneeID}, project(1, models.VisibilityPrivate), user(3, models.RoleUser), true},
		{"non-assignee blocked on private project", models.Task{AssignedToID: &assigneeID}, project(1, models.VisibilityPrivate), user(4, models.RoleUser), false},
		{"unassigned task follows project access", models.Task{}, project(1, models.VisibilityPublic), user(4, models.RoleUser), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanAccessTask(tt.task, tt.project, tt.user); got != tt.want {
				t.Errorf("CanAccessTask() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanModifyTask(t *testing.T) {
	assigneeID := uint(3)

	tests := []struct {
		name    string
		task    models.Task
		project models.Project
		user    models.User
		want    bool
	}{
		{"admin modifies any task", models.Task{}, project(1, models.VisibilityPrivate), user(2, models.RoleAdmin), true},
		{"project creator modifies tasks", models.Task{}, project(1, models.VisibilityPrivate), user(1, models.RoleUser), true},
		{"assignee modifies own task", models.Task{AssignedToID: &assigneeID}, project(1, models.VisibilityPrivate), user(3, models.RoleUser), true},
		{"stranger blocked even on public project", models.Task{AssignedToID: &assigneeID}, project(1, models.VisibilityPublic), user(4, models.RoleUser), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanModifyTask(tt.task, tt.project, tt.user); got != tt.want {
				t.Errorf("CanModifyTask() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanAssignToUser(t *testing.T) {
	tests := []struct {
		name     string
		project  models.Project
		actor    models.User
		assignee models.User
		want     bool
	}{
		{"admin assigns to anyone", project(1, models.VisibilityPrivate), user(2, models.RoleAdmin), user(5, models.RoleUser), true},
		{"self-assignment always allowed", project(1, models.VisibilityPrivate), user(5, models.RoleUser), user(5, models.RoleUser), true},
		{"anyone on a public project", project(1, models.VisibilityPublic), user(4, models.RoleUser), user(5, models.RoleUser), true},
		{"stranger blocked on private project", project(1, models.VisibilityPrivate), user(4, models.RoleUser), user(5, models.RoleUser), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanAssignToUser(tt.project, tt.actor, tt.assignee); got != tt.want {
				t.Errorf("CanAssignToUser() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCommentPredicates(t *testing.T) {
	comment := models.Comment{UserID: 1}

	if !CanModifyComment(comment, user(1, models.RoleUser)) {
		t.Error("author should be able to modify their comment")
	}
	if CanModifyComment(comment, user(2, models.RoleAdmin)) {
		t.Error("admins must not edit someone else's comment")
	}
	if !CanDeleteComment(comment, user(2, models.RoleAdmin)) {
		t.Error("admins should be able to delete any comment")
	}
	if CanDeleteComment(comment, user(3, models.RoleUser)) {
		t.Error("non-author non-admin must not delete a comment")
	}
}
