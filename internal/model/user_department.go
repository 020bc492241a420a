package model

import (
	"time"
)

// UserDepartment represents the association between users and departments.
// It is the single source of truth for the many-to-many relationship: both
// "user.departments" and "department.users" are derived from these rows, so
// the two sides can never diverge.
type UserDepartment struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"uniqueIndex:idx_user_department;not null"`
	DepartmentID uint      `json:"department_id" gorm:"uniqueIndex:idx_user_department;not null"`
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	User       User       `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Department Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID;constraint:OnDelete:CASCADE"`
}
