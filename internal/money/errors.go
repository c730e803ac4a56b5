package money

import "errors"

var (
	// ErrInvalidAmount is returned when text cannot be parsed as a
	// non-negative decimal amount with at most two fractional digits.
	ErrInvalidAmount = errors.New("invalid monetary amount")

	// ErrInvalidQuantity is returned when text cannot be parsed as a
	// positive decimal quantity.
	ErrInvalidQuantity = errors.New("invalid quantity")
)
