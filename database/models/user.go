package models

import (
	"time"
)

// User is an account identity record.
type User struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string  `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email     string  `gorm:"size:255;uniqueIndex;not null" json:"email"`
	FullName  *string `gorm:"size:255" json:"full_name"`
	IsActive  bool    `gorm:"not null" json:"is_active"`
	Password  string  `gorm:"not null" json:"-"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
