package types

import (
	"time"

	"gorm.io/datatypes"
)

// Wire shapes are flattened: related records appear as ids plus display
// names, never as nested objects.

type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AuthResponse carries either a token or a rejection message, never both.
type AuthResponse struct {
	Token   string `json:"token,omitempty"`
	UserID  uint   `json:"user_id,omitempty"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Role    string `json:"role,omitempty"`
	Message string `json:"message,omitempty"`
}

type ProjectResponse struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	StartDate   *datatypes.Date `json:"start_date"`
	EndDate     *datatypes.Date `json:"end_date"`
	CreatorID   uint            `json:"creator_id"`
	CreatorName string          `json:"creator_name"`
	Visibility  string          `json:"visibility"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type ProjectProgress struct {
	ProjectID      uint    `json:"project_id"`
	TotalTasks     int64   `json:"total_tasks"`
	CompletedTasks int64   `json:"completed_tasks"`
	Progress       float64 `json:"progress"`
}

type MemberResponse struct {
	UserID     uint   `json:"user_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	MemberRole string `json:"member_role"`
}

type TaskResponse struct {
	ID             uint            `json:"id"`
	ProjectID      uint            `json:"project_id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Priority       string          `json:"priority"`
	Status         string          `json:"status"`
	DueDate        *datatypes.Date `json:"due_date"`
	AssignedToID   *uint           `json:"assigned_to_id"`
	AssignedToName string          `json:"assigned_to_name,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type MilestoneResponse struct {
	ID          uint            `json:"id"`
	ProjectID   uint            `json:"project_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	TargetDate  *datatypes.Date `json:"target_date"`
	Completed   bool            `json:"completed"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type MilestoneProgress struct {
	ProjectID           uint    `json:"project_id"`
	TotalMilestones     int64   `json:"total_milestones"`
	CompletedMilestones int64   `json:"completed_milestones"`
	Progress            float64 `json:"progress"`
}

type CommentResponse struct {
	ID        uint      `json:"id"`
	TaskID    uint      `json:"task_id"`
	UserID    uint      `json:"user_id"`
	TaskTitle string    `json:"task_title"`
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TimeEntryResponse struct {
	ID         uint      `json:"id"`
	TaskID     uint      `json:"task_id"`
	UserID     uint      `json:"user_id"`
	TaskTitle  string    `json:"task_title"`
	UserName   string    `json:"user_name"`
	HoursSpent float64   `json:"hours_spent"`
	CreatedAt  time.Time `json:"created_at"`
}

type NotificationResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
