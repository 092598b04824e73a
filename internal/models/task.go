package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"

	StatusTodo       = "TODO"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
)

type Task struct {
	gorm.Model

	ProjectID    uint   `gorm:"not null;index"`
	Title        string `gorm:"not null"`
	Description  string
	Priority     string `gorm:"not null;default:MEDIUM"`
	Status       string `gorm:"not null;default:TODO"`
	DueDate      *datatypes.Date
	AssignedToID *uint `gorm:"index"`

	// Relationships
	Project    Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	AssignedTo *User   `gorm:"foreignKey:AssignedToID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}

func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func ValidStatus(s string) bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}
