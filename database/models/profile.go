package models

import (
	"time"
)

// Profile is the public-facing extension of a user account.
// The unique index on UserID enforces one profile per user at the
// store level, so a concurrent double-create loses on insert instead
// of slipping past an application-side lookup.
type Profile struct {
	ID       uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   uint    `gorm:"uniqueIndex;not null" json:"user_id"`
	User     User    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Bio      *string `gorm:"size:1024" json:"bio"`
	Location *string `gorm:"size:255" json:"location"`
	Website  *string `gorm:"size:255" json:"website"`
	// Image holds the stored asset identifier, not image bytes.
	Image     *string `gorm:"size:255" json:"image"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
