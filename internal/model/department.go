package model

import (
	"time"
)

// Department represents the department model stored in the database.
// Users are linked to departments through UserDepartment rows; the
// department itself carries no user collection.
type Department struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DepartmentWithUserCount pairs a department with the number of users
// currently attached to it.
type DepartmentWithUserCount struct {
	Department
	UserCount int64 `json:"user_count"`
}
