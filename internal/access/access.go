// Package access holds the authorization predicates shared by every
// service. They are pure functions over already-loaded records: callers
// load the entities, the predicates only look at them.
package access

import "github.com/taskflow-dev/taskflow/internal/models"

// CanAccessProject reports whether user may view project and anything
// scoped under it. Admins see everything, creators see their own,
// everyone sees PUBLIC projects.
func CanAccessProject(project models.Project, user models.User) bool {
	if user.Role == models.RoleAdmin {
		return true
	}
	return project.CreatorID == user.ID || project.Visibility == models.VisibilityPublic
}

// CanModifyProject reports whether user may update or delete project.
// Only the creator and admins qualify; PUBLIC visibility grants no write
// rights.
func CanModifyProject(project models.Project, user models.User) bool {
	if user.Role == models.RoleAdmin {
		return true
	}
	return project.CreatorID == user.ID
}

// CanManageProject gates membership changes. Identical test to
// CanModifyProject, kept as its own name because callers mean a
// different thing by it.
func CanManageProject(project models.Project, user models.User) bool {
	return CanModifyProject(project, user)
}

// CanAccessTask extends project access with an independent path for the
// task's assignee, who may see the task even on a PRIVATE project they
// do not own.
func CanAccessTask(task models.Task, project models.Project, user models.User) bool {
	if CanAccessProject(project, user) {
		return true
	}
	return task.AssignedToID != nil && *task.AssignedToID == user.ID
}

// CanModifyTask is broader than CanModifyProject: assignees may update
// their own tasks without owning the project.
func CanModifyTask(task models.Task, project models.Project, user models.User) bool {
	if user.Role == models.RoleAdmin {
		return true
	}
	if project.CreatorID == user.ID {
		return true
	}
	return task.AssignedToID != nil && *task.AssignedToID == user.ID
}

// CanAssignTask reports whether user may pick the assignee at all.
func CanAssignTask(project models.Project, user models.User) bool {
	if user.Role == models.RoleAdmin {
		return true
	}
	return project.CreatorID == user.ID || project.Visibility == models.VisibilityPublic
}

// CanAssignToUser reports whether actor may hand a task in project to
// assignee. Self-assignment is always allowed.
func CanAssignToUser(project models.Project, actor models.User, assignee models.User) bool {
	if actor.Role == models.RoleAdmin {
		return true
	}
	return assignee.ID == actor.ID || project.Visibility == models.VisibilityPublic
}

// CanModifyComment: author only, admins included only for delete.
func CanModifyComment(comment models.Comment, user models.User) bool {
	return comment.UserID == user.ID
}

func CanDeleteComment(comment models.Comment, user models.User) bool {
	return comment.UserID == user.ID || user.Role == models.RoleAdmin
}
