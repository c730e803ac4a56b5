// Package money provides the exact-decimal value model for invoice
// amounts and quantities.
//
// All arithmetic stays in base-10 decimal representation; amounts are
// rounded to the minor currency unit only when formatted, never while
// accumulating. Binary floating point is never involved.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a non-negative monetary value with exact decimal arithmetic.
// The zero value is £0.00.
type Amount struct {
	d decimal.Decimal
}

// Quantity is a positive multiplier for a line item. Unlike Amount it
// may carry more than two fractional digits (e.g. 1.25 hours).
type Quantity struct {
	d decimal.Decimal
}

// One is the default quantity for a line item.
var One = Quantity{d: decimal.NewFromInt(1)}

// ParseAmount parses a decimal-formatted string into an Amount.
// A leading currency symbol is tolerated. The value must be
// non-negative and carry at most two fractional digits.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "£"))
	if s == "" {
		return Amount{}, fmt.Errorf("%w: empty input", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if d.IsNegative() {
		return Amount{}, fmt.Errorf("%w: %q is negative", ErrInvalidAmount, s)
	}
	if !d.Equal(d.Round(2)) {
		return Amount{}, fmt.Errorf("%w: %q has more than two decimal places", ErrInvalidAmount, s)
	}
	return Amount{d: d}, nil
}

// MustAmount parses s or panics. For tests and static values only.
func MustAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// ParseQuantity parses a decimal-formatted string into a Quantity.
// The value must be strictly positive.
func ParseQuantity(s string) (Quantity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Quantity{}, fmt.Errorf("%w: empty input", ErrInvalidQuantity)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Quantity{}, fmt.Errorf("%w: %q", ErrInvalidQuantity, s)
	}
	if !d.IsPositive() {
		return Quantity{}, fmt.Errorf("%w: %q is not positive", ErrInvalidQuantity, s)
	}
	return Quantity{d: d}, nil
}

// Add returns a + b exactly.
func (a Amount) Add(b Amount) Amount {
	return Amount{d: a.d.Add(b.d)}
}

// Mul returns a × q exactly.
func (a Amount) Mul(q Quantity) Amount {
	return Amount{d: a.d.Mul(q.d)}
}

// Equal reports whether two amounts represent the same value.
func (a Amount) Equal(b Amount) bool {
	return a.d.Equal(b.d)
}

// IsZero reports whether the amount is exactly zero.
func (a Amount) IsZero() bool {
	return a.d.IsZero()
}

// String formats the amount with exactly two decimal places and no
// currency symbol, the representation used in the tracker file.
func (a Amount) String() string {
	return a.d.StringFixed(2)
}

// GBP formats the amount for display, e.g. "£120.00".
func (a Amount) GBP() string {
	return "£" + a.d.StringFixed(2)
}

// String formats the quantity without trailing zeros, e.g. "5" or "1.25".
func (q Quantity) String() string {
	return q.d.String()
}
