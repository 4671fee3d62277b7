// Package core holds the domain model of the finance tracker: entities,
// monetary amounts, aggregation windows and the error kinds every other
// layer speaks in.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an exact decimal amount in the account's single implied
// currency. All aggregation sums go through Money so no floating point
// rounding ever leaks into a total.
type Money struct {
	decimal.Decimal
}

// ZeroMoney is the explicit zero every empty aggregation yields.
func ZeroMoney() Money { return Money{decimal.Zero} }

// NewMoney builds a Money from integer units and an exponent, e.g.
// NewMoney(1250, -2) is 12.50.
func NewMoney(value int64, exp int32) Money {
	return Money{decimal.New(value, exp)}
}

// ParseMoney converts a decimal string to Money. It accepts both dot and
// comma separators. The result is not sign-checked; validation of sign
// happens at the entity level where the rules differ (transaction amounts
// must be positive, budget limits only non-negative).
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, Validationf("amount is required")
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, Validationf("invalid amount %q", s)
	}
	return Money{d}, nil
}

// MustMoney parses s or panics. Test helper only.
func MustMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Add(o Money) Money { return Money{m.Decimal.Add(o.Decimal)} }
func (m Money) Sub(o Money) Money { return Money{m.Decimal.Sub(o.Decimal)} }

// Positive reports whether the amount is strictly greater than zero.
func (m Money) Positive() bool { return m.Decimal.IsPositive() }

// Negative reports whether the amount is strictly less than zero.
func (m Money) Negative() bool { return m.Decimal.IsNegative() }

// Equal compares by numeric value, so "1.50" equals "1.5".
func (m Money) Equal(o Money) bool { return m.Decimal.Equal(o.Decimal) }
