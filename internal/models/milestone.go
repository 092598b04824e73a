package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Milestone struct {
	gorm.Model

	ProjectID   uint   `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string
	TargetDate  *datatypes.Date
	Completed   bool `gorm:"not null;default:false"`

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
