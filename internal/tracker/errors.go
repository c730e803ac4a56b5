package tracker

import "errors"

// Tracker errors
var (
	// ErrSequenceMismatch is returned when a commit presents an invoice
	// number that is not the next number in the sequence. Out-of-order
	// commits are rejected rather than renumbered, since renumbering
	// risks collisions with invoices already issued on paper.
	ErrSequenceMismatch = errors.New("invoice number out of sequence")

	// ErrCorruptTracker is returned when the tracker file exists but
	// cannot be parsed. This is fatal for the run; the file must be
	// inspected by hand rather than silently recreated.
	ErrCorruptTracker = errors.New("tracker file is corrupt")

	// ErrRecordNotFound is returned when no ledger record matches the
	// requested invoice number.
	ErrRecordNotFound = errors.New("invoice record not found")
)
