package models

import "gorm.io/gorm"

// TimeEntry is immutable once created: there are no update or delete
// operations on logged hours.
type TimeEntry struct {
	gorm.Model

	TaskID     uint    `gorm:"not null;index"`
	UserID     uint    `gorm:"not null;index"`
	HoursSpent float64 `gorm:"not null"`

	// Relationships
	Task Task `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
