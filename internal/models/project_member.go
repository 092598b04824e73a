package models

import "gorm.io/gorm"

const (
	MemberRoleOwner  = "OWNER"
	MemberRoleAdmin  = "ADMIN"
	MemberRoleMember = "MEMBER"
)

type ProjectMember struct {
	gorm.Model

	ProjectID uint   `gorm:"not null;uniqueIndex:idx_project_user"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_project_user"`
	Role      string `gorm:"not null;default:MEMBER"` // "OWNER", "ADMIN" or "MEMBER", scoped to the project

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

func ValidMemberRole(role string) bool {
	switch role {
	case MemberRoleOwner, MemberRoleAdmin, MemberRoleMember:
		return true
	}
	return false
}
