package invoice

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateBusiness checks the business configuration loaded at startup.
func ValidateBusiness(b BusinessDetails) error {
	if err := validate.Struct(b); err != nil {
		return fmt.Errorf("business details invalid: %w", err)
	}
	return nil
}

// ValidateClient checks a client record, enforcing that at least one of
// the name or company fields identifies a payer.
func ValidateClient(c ClientDetails) error {
	if c.Name == "" && c.Company == "" {
		return ErrNoPayer
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("client details invalid: %w", err)
	}
	return nil
}

// Validate checks the whole aggregate before it is rendered or
// committed to the tracker.
func (inv *Invoice) Validate() error {
	if !NumberPattern.MatchString(inv.Number) {
		return fmt.Errorf("%w: %q", ErrBadNumber, inv.Number)
	}
	if len(inv.LineItems) == 0 {
		return ErrEmptyInvoice
	}
	if inv.DueDate.Before(inv.IssueDate) {
		return fmt.Errorf("%w: due %s, issued %s",
			ErrDueBeforeIssue,
			inv.DueDate.Format("2006-01-02"),
			inv.IssueDate.Format("2006-01-02"))
	}
	if err := ValidateClient(inv.Client); err != nil {
		return err
	}
	for _, li := range inv.LineItems {
		if li.Description == "" {
			return fmt.Errorf("%w: description is empty", ErrInvalidLineItem)
		}
	}
	return nil
}
