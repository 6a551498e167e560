package ledger

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/vjchen03/hsa/internal/models"
)

// randDigits returns n digits, each drawn uniformly from 0-9.
// Demo-grade only; real card numbers are not generated this way.
func randDigits(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte('0' + byte(rand.IntN(10)))
	}
	return b.String()
}

// newCard builds a card for the account with a fresh PAN/CVV and an
// expiry six months out: the month wraps within 1..12 and the year
// advances when issuance falls in the second half of the year.
func newCard(accountID uint, now time.Time) *models.Card {
	month := (int(now.Month())+5-1)%12 + 1
	year := now.Year()
	if now.Month() > time.June {
		year++
	}
	return &models.Card{
		AccountID:   accountID,
		PAN:         randDigits(16),
		CVV:         randDigits(3),
		ExpiryMonth: month,
		ExpiryYear:  year,
	}
}
