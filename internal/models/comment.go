package models

import "gorm.io/gorm"

const MaxCommentLength = 1000

type Comment struct {
	gorm.Model

	TaskID uint   `gorm:"not null;index"`
	UserID uint   `gorm:"not null;index"`
	Text   string `gorm:"not null;size:1000"`

	// Relationships
	Task Task `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
