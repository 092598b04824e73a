package models

import "gorm.io/gorm"

// Notification rows are created by service-layer side effects (task
// assignment, new comment on an assigned task), never directly by clients.
type Notification struct {
	gorm.Model

	UserID  uint   `gorm:"not null;index"`
	Message string `gorm:"not null"`
	Read    bool   `gorm:"not null;default:false"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
