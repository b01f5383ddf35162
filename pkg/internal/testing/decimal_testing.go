package testing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// MustDecimal parses a decimal or panic. To be used for tests only
func MustDecimal(value string) decimal.Decimal {
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return parsed
}

// AssertDecimalEqual asserts a decimal has an exact expected value.
// Comparing with Equal rather than struct equality since exp/value
// representations of a same number can differ
func AssertDecimalEqual(t *testing.T, want string, got decimal.Decimal) bool {
	return assert.True(t, MustDecimal(want).Equal(got),
		"want decimal %v, got %v", want, got)
}
