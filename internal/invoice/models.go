// Package invoice holds the invoice aggregate: the parties on the
// document, its ordered line items, and the derived totals.
//
// Totals are always recomputed from the line items with exact decimal
// arithmetic and never stored, so they cannot diverge from the rows
// that produced them.
package invoice

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"invoicegen/internal/money"
)

// NumberPattern is the invoice number convention: "INV" followed by an
// integer, e.g. INV1001.
var NumberPattern = regexp.MustCompile(`^INV\d+$`)

// BusinessDetails is the issuing business, loaded once per run from the
// business configuration file and never mutated.
type BusinessDetails struct {
	Name          string `json:"name" validate:"required"`
	AddressLine1  string `json:"address_line1" validate:"required"`
	City          string `json:"city" validate:"required"`
	Postcode      string `json:"postcode" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	SortCode      string `json:"sort_code" validate:"required"`
	AccountNumber string `json:"account_number" validate:"required"`
}

// ClientDetails is the invoice recipient. Name and Company are both
// optional, but at least one must be present.
type ClientDetails struct {
	Name         string `json:"name" validate:"required_without=Company"`
	Company      string `json:"company" validate:"required_without=Name"`
	AddressLine1 string `json:"address_line1" validate:"required"`
	City         string `json:"city" validate:"required"`
	Postcode     string `json:"postcode" validate:"required"`
}

// PayerName returns the company name when present, otherwise the client
// name. This is the identity recorded in the tracker and used for the
// output filename.
func (c ClientDetails) PayerName() string {
	if c.Company != "" {
		return c.Company
	}
	return c.Name
}

// LineItem is one billable row on an invoice.
type LineItem struct {
	Description string
	UnitPrice   money.Amount
	Quantity    money.Quantity
}

// NewLineItem builds a line item, rejecting empty descriptions.
func NewLineItem(description string, unitPrice money.Amount, quantity money.Quantity) (LineItem, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return LineItem{}, fmt.Errorf("%w: description is empty", ErrInvalidLineItem)
	}
	return LineItem{
		Description: description,
		UnitPrice:   unitPrice,
		Quantity:    quantity,
	}, nil
}

// LineTotal returns unit price × quantity, computed exactly.
func (li LineItem) LineTotal() money.Amount {
	return li.UnitPrice.Mul(li.Quantity)
}

// Invoice is the full invoice aggregate handed to the PDF renderer.
type Invoice struct {
	Number    string
	IssueDate time.Time
	DueDate   time.Time
	Business  BusinessDetails
	Client    ClientDetails
	LineItems []LineItem
	VATStatus string
}

// DefaultVATStatus is the label shown when the business is not VAT
// registered.
const DefaultVATStatus = "No VAT"

// Subtotal returns the exact sum of all line totals.
func (inv *Invoice) Subtotal() money.Amount {
	var sum money.Amount
	for _, li := range inv.LineItems {
		sum = sum.Add(li.LineTotal())
	}
	return sum
}

// Total returns the amount payable. No VAT arithmetic is applied; the
// VAT status is a label only.
func (inv *Invoice) Total() money.Amount {
	return inv.Subtotal()
}

// DueOnReceipt reports whether the invoice is payable immediately.
func (inv *Invoice) DueOnReceipt() bool {
	return inv.IssueDate.Equal(inv.DueDate)
}
