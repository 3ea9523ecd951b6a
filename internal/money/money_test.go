package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRound_HalfUp(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"5.555", "5.56"},
		{"5.554", "5.55"},
		{"5.545", "5.55"},
		{"2.25", "2.25"},
		{"0.005", "0.01"},
		{"10", "10.00"},
		{"0", "0.00"},
		{"19.999", "20.00"},
	}
	for _, tt := range tests {
		got := Round(dec(tt.in))
		assert.True(t, got.Equal(dec(tt.want)), "Round(%s) = %s, want %s", tt.in, got, tt.want)
	}
}

func TestRound_Idempotent(t *testing.T) {
	for _, in := range []string{"5.555", "1.234567", "0.001", "99.99", "42"} {
		once := Round(dec(in))
		twice := Round(once)
		require.True(t, once.Equal(twice), "Round not idempotent for %s", in)
	}
}

func TestHasCents(t *testing.T) {
	assert.True(t, HasCents(dec("2.25")))
	assert.True(t, HasCents(dec("10")))
	assert.False(t, HasCents(dec("2.251")))
}
