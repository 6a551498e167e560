package models

import "time"

// Account holds a user's HSA balance.
// 金额用分存储，避免浮点误差 — balance is kept in whole cents to avoid
// floating-point error; it only changes through deposits and approved
// purchase debits. Accounts are never deleted.
type Account struct {
	ID           uint  `gorm:"primaryKey"`
	UserID       uint  `gorm:"uniqueIndex;not null"`
	BalanceCents int64 `gorm:"not null;default:0"`
	CreatedAt    time.Time
}
