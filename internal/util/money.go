package util

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DollarsToCents converts a decimal-dollar string such as "50" or
// "12.345" to whole cents, rounding to the nearest cent. Parsing goes
// through decimal rather than float64 so amounts like "0.29" survive
// exactly.
func DollarsToCents(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

// CentsToDollars formats cents for display, e.g. 5000 -> "$50.00".
func CentsToDollars(cents int64) string {
	return "$" + decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}
