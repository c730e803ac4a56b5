package invoice

import "errors"

// Common invoice validation errors
var (
	// ErrInvalidLineItem is returned when a line item has an empty
	// description.
	ErrInvalidLineItem = errors.New("invalid line item")

	// ErrEmptyInvoice is returned when an invoice has no line items.
	// Such an invoice must be rejected before anything is persisted.
	ErrEmptyInvoice = errors.New("invoice has no line items")

	// ErrNoPayer is returned when neither a client name nor a company
	// name is present. An invoice must identify a payer.
	ErrNoPayer = errors.New("either client name or company name is required")

	// ErrDueBeforeIssue is returned when the due date precedes the
	// issue date.
	ErrDueBeforeIssue = errors.New("due date is before issue date")

	// ErrBadNumber is returned when an invoice number does not match
	// the "INV<n>" convention.
	ErrBadNumber = errors.New("malformed invoice number")
)
