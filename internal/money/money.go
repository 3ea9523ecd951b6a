// Package money normalizes currency amounts to two decimal places.
package money

import "github.com/shopspring/decimal"

// Round normalizes an amount to at most two decimal places, rounding halves
// away from zero (half-up for the positive amounts this system deals in).
// Idempotent: Round(Round(x)) == Round(x).
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// HasCents reports whether an amount is already expressed in whole cents.
func HasCents(amount decimal.Decimal) bool {
	return amount.Equal(Round(amount))
}
