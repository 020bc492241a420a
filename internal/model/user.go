package model

import (
	"time"
)

// User represents the user model stored in the database
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"type:varchar(50);uniqueIndex;not null"`
	Email     string    `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Age       *int      `json:"age,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Orders owned by this user. Deleting the user deletes its orders.
	Orders []Order `json:"orders,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// Age bounds for user validation, inclusive on both ends.
const (
	MinAge = 0
	MaxAge = 150
)
