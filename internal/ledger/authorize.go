package ledger

import "github.com/vjchen03/hsa/internal/models"

// Authorize decides whether a purchase goes through. It is a pure
// function over already-loaded state: a card must exist on the account,
// the category must be HSA-qualified, and the balance must cover the
// amount. Any other category, including "deposit", declines regardless
// of funds. A zero amount trivially satisfies the balance check.
func Authorize(hasCard bool, category models.ExpenseCategory, amountCents, balanceCents int64) bool {
	return hasCard && category.Qualified() && balanceCents >= amountCents
}
