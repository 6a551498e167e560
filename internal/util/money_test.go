package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDollarsToCents(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"50", 5000},
		{"50.00", 5000},
		{"0.01", 1},
		{"0.29", 29}, // breaks with naive float64 math
		{"12.345", 1235},
		{"12.344", 1234},
		{" 5.00 ", 500},
		{"0", 0},
		{"-3.50", -350}, // sign preserved; positivity is checked by callers
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := DollarsToCents(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDollarsToCentsRejectsJunk(t *testing.T) {
	for _, in := range []string{"", "abc", "12.3.4", "$5", "5,00"} {
		_, err := DollarsToCents(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestCentsToDollars(t *testing.T) {
	assert.Equal(t, "$50.00", CentsToDollars(5000))
	assert.Equal(t, "$0.01", CentsToDollars(1))
	assert.Equal(t, "$0.00", CentsToDollars(0))
	assert.Equal(t, "$12.34", CentsToDollars(1234))
}
