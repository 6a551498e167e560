package models

import "time"

// Card is the debit card linked to an account, at most one per account.
// Immutable once issued. The PAN/CVV here are demo-grade pseudo numbers,
// not real payment credentials.
type Card struct {
	ID          uint   `gorm:"primaryKey"`
	AccountID   uint   `gorm:"uniqueIndex;not null"`
	PAN         string `gorm:"size:16;not null"` // 16-digit number
	CVV         string `gorm:"size:3;not null"`  // 3-digit number
	ExpiryMonth int    `gorm:"not null"`
	ExpiryYear  int    `gorm:"not null"`
	CreatedAt   time.Time
}

// MaskedPAN returns the PAN with all but the last four digits hidden.
func (c *Card) MaskedPAN() string {
	if len(c.PAN) < 4 {
		return c.PAN
	}
	return "**** **** **** " + c.PAN[len(c.PAN)-4:]
}
