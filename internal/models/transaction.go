package models

import "time"

// Transaction is one entry in an account's append-only history. Every
// purchase attempt produces exactly one row, approved or not; every
// deposit produces one approved row with category "deposit". Rows are
// never updated or deleted.
type Transaction struct {
	ID          uint            `gorm:"primaryKey"`
	AccountID   uint            `gorm:"index;not null"`
	AmountCents int64           `gorm:"not null"` // always positive
	Category    ExpenseCategory `gorm:"size:32;index;not null"`
	Approved    bool            `gorm:"not null"`
	Memo        string          `gorm:"size:255"`
	CreatedAt   time.Time       `gorm:"index"`
}
