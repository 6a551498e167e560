package ledger

import "errors"

var (
	// ErrNotFound is returned when a referenced user, account or card
	// does not exist. Callers should treat it as an absent result, not
	// a server fault.
	ErrNotFound = errors.New("not found")

	// ErrInvalidAmount is returned for non-positive amounts. Amount
	// strings are validated at the boundary; this guards the ledger
	// itself.
	ErrInvalidAmount = errors.New("invalid amount")
)
