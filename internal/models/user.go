package models

import "time"

// User represents a registered HSA holder. One account per user,
// created together with the user.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"size:255;uniqueIndex;not null"`
	FullName  string `gorm:"size:128;not null"`
	CreatedAt time.Time
}
