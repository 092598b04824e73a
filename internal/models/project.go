package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	VisibilityPublic  = "PUBLIC"
	VisibilityPrivate = "PRIVATE"
)

type Project struct {
	gorm.Model

	Name        string `gorm:"not null"`
	Description string
	StartDate   *datatypes.Date
	EndDate     *datatypes.Date
	CreatorID   uint   `gorm:"not null;index"`
	Visibility  string `gorm:"not null;default:PRIVATE"` // "PUBLIC" or "PRIVATE"

	// Optional outbound webhooks, posted to on task assignment
	DiscordWebhook string
	SlackWebhook   string

	// Relationships
	Creator    User            `gorm:"foreignKey:CreatorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Members    []ProjectMember `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Tasks      []Task          `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Milestones []Milestone     `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

func ValidVisibility(v string) bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}
