// Package core provides the receipt domain types and their validation.
//
// Amounts are kept as integer minor units so that group subtotals and the
// grand total are exact.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseDecimalToCents converts a decimal string to minor units.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and at
// most two fractional digits. The result is always positive.
// Returns ErrInvalidAmount for invalid formats, negative values, zero,
// amounts above MaxAmount, or more than two decimal places.
//
// Examples:
//
//	ParseDecimalToCents("600")   -> 60000, nil
//	ParseDecimalToCents("12,5")  -> 1250, nil
//	ParseDecimalToCents("1.234") -> 0, ErrInvalidAmount
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" || strings.ContainsAny(s, "+-eE") {
		return 0, ErrInvalidAmount
	}
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.Exponent() < -2 {
		return 0, ErrInvalidAmount
	}
	if d.GreaterThan(maxAmount) || !d.IsPositive() {
		return 0, ErrInvalidAmount
	}
	return d.Shift(2).IntPart(), nil
}

var maxAmount = decimal.New(MaxAmount, 0)

// MustMoney parses s with ParseDecimalToCents and panics on error.
// Intended for tests and constant defaults.
func MustMoney(s string) Money {
	c, err := ParseDecimalToCents(s)
	if err != nil {
		panic(err)
	}
	return Money{Cents: c}
}

// Decimal returns the exact major-unit value.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// Split returns the whole major units and the minor-unit remainder of |m|.
func (m Money) Split() (whole, cents int64) {
	c := m.Cents
	if c < 0 {
		c = -c
	}
	return c / 100, c % 100
}

// String renders the amount without grouping and without trailing zero
// decimals, e.g. "600", "12.5", "0.05".
func (m Money) String() string {
	return m.Decimal().String()
}

// MarshalText renders the amount as String does, so JSON carries the exact
// value as a string.
func (m Money) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}
