// Package app wires the prompt protocol, the stores, and the renderer
// into the interactive invoice-creation flow.
//
// The flow never touches the tracker until the user has confirmed the
// invoice and the PDF has been rendered: cancellation or a render
// failure at any point leaves the sequence and the ledger untouched,
// so an abandoned invoice never burns a number.
package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"invoicegen/internal/contacts"
	"invoicegen/internal/invoice"
	"invoicegen/internal/logger"
	"invoicegen/internal/money"
	"invoicegen/internal/prompt"
	"invoicegen/internal/tracker"
)

// Renderer turns a validated invoice into a document on disk.
type Renderer interface {
	Generate(inv *invoice.Invoice, outputPath string) error
}

// App holds the collaborators of one interactive run.
type App struct {
	Prompt    *prompt.Asker
	Tracker   *tracker.Store
	Contacts  *contacts.Store
	Renderer  Renderer
	Business  invoice.BusinessDetails
	OutputDir string

	// Now supplies the issue date; tests pin it.
	Now func() time.Time

	log zerolog.Logger
}

// New builds an App with the given collaborators.
func New(p *prompt.Asker, t *tracker.Store, c *contacts.Store, r Renderer, business invoice.BusinessDetails, outputDir string) *App {
	return &App{
		Prompt:    p,
		Tracker:   t,
		Contacts:  c,
		Renderer:  r,
		Business:  business,
		OutputDir: outputDir,
		Now:       time.Now,
		log:       logger.WithComponent("app"),
	}
}

// Basic UK postcode shape, e.g. "M1 1AA" or "SW1A 2AA".
var postcodePattern = regexp.MustCompile(`^[A-Za-z]{1,2}\d[A-Za-z\d]?\s*\d[A-Za-z]{2}$`)

// Run drives one interactive invoice creation. Closing the input
// stream or declining the confirmation is a clean cancellation, not an
// error.
func (a *App) Run() error {
	err := a.run()
	if errors.Is(err, prompt.ErrAborted) {
		a.Prompt.Printf("\nCancelled.\n")
		return nil
	}
	return err
}

func (a *App) run() error {
	a.Prompt.Printf("\n=== Invoice Generator ===\n\n")

	client, err := a.clientDetails()
	if err != nil {
		return err
	}

	items, err := a.lineItems()
	if err != nil {
		return err
	}

	issueDate := dateOnly(a.Now())
	dueDate, err := a.dueDate(issueDate)
	if err != nil {
		return err
	}

	// Peek only: the number is not consumed until Commit.
	number, err := a.Tracker.PeekNext()
	if err != nil {
		return err
	}

	inv := &invoice.Invoice{
		Number:    number,
		IssueDate: issueDate,
		DueDate:   dueDate,
		Business:  a.Business,
		Client:    client,
		LineItems: items,
		VATStatus: invoice.DefaultVATStatus,
	}
	if err := inv.Validate(); err != nil {
		return err
	}

	a.Prompt.Printf("\nInvoice %s for %s, total %s\n", number, client.PayerName(), inv.Total().GBP())
	confirmed, err := a.Prompt.AskYesNo("Generate this invoice? (Y/n): ", true)
	if err != nil {
		return err
	}
	if !confirmed {
		a.Prompt.Printf("Cancelled. No invoice number was used.\n")
		return nil
	}

	outputPath := filepath.Join(a.OutputDir, inv.Filename())

	// Render before commit so a render failure never consumes a number.
	if err := a.Renderer.Generate(inv, outputPath); err != nil {
		return err
	}

	record := tracker.Record{
		Client:   client.PayerName(),
		Amount:   inv.Total().String(),
		Date:     issueDate.Format("2006-01-02"),
		FilePath: outputPath,
	}
	if err := a.Tracker.Commit(number, record); err != nil {
		return err
	}

	a.log.Info().
		Str("invoice_number", number).
		Str("client", record.Client).
		Str("total", record.Amount).
		Str("file", outputPath).
		Msg("Invoice generated")

	if err := a.offerContactSave(client); err != nil {
		return err
	}

	a.Prompt.Printf("\n✓ Invoice generated successfully!\n")
	a.Prompt.Printf("  File: %s\n", outputPath)
	a.Prompt.Printf("  Invoice Number: %s\n", number)
	a.Prompt.Printf("  Total: %s\n", inv.Total().GBP())
	return nil
}

// clientDetails resolves the invoice recipient, either from a saved
// contact or by manual entry. An unknown label falls back to manual
// entry rather than failing the run.
func (a *App) clientDetails() (invoice.ClientDetails, error) {
	saved, err := a.Contacts.ListAll()
	if err != nil {
		return invoice.ClientDetails{}, err
	}

	if len(saved) > 0 {
		use, err := a.Prompt.AskYesNo("Use a saved contact? (y/N): ", false)
		if err != nil {
			return invoice.ClientDetails{}, err
		}
		if use {
			a.Prompt.Printf("Saved contacts:\n")
			for _, c := range saved {
				a.Prompt.Printf("  - %s\n", c.Label)
			}
			label, err := a.Prompt.Ask("Contact label: ", prompt.NotEmpty("Contact label cannot be empty."))
			if err != nil {
				return invoice.ClientDetails{}, err
			}
			client, err := a.Contacts.Get(label)
			if err == nil {
				return client, nil
			}
			if !errors.Is(err, contacts.ErrContactNotFound) {
				return invoice.ClientDetails{}, err
			}
			a.Prompt.Printf("  Contact %q not found, enter details manually.\n", label)
		}
	}

	return a.manualClientDetails()
}

func (a *App) manualClientDetails() (invoice.ClientDetails, error) {
	a.Prompt.Printf("Client Details\n")
	a.Prompt.Printf("----------------------------------------\n")

	name, err := a.Prompt.Ask("Client name (optional, press Enter to skip): ", nil)
	if err != nil {
		return invoice.ClientDetails{}, err
	}
	company, err := a.Prompt.Ask("Company name (optional, press Enter to skip): ", nil)
	if err != nil {
		return invoice.ClientDetails{}, err
	}
	if name == "" && company == "" {
		a.Prompt.Printf("  Either client name or company name is required.\n")
		name, err = a.Prompt.Ask("Client name: ", prompt.NotEmpty("Client name cannot be empty."))
		if err != nil {
			return invoice.ClientDetails{}, err
		}
	}

	address, err := a.Prompt.Ask("Address line 1: ", prompt.NotEmpty("Address cannot be empty."))
	if err != nil {
		return invoice.ClientDetails{}, err
	}
	city, err := a.Prompt.Ask("City: ", prompt.NotEmpty("City cannot be empty."))
	if err != nil {
		return invoice.ClientDetails{}, err
	}
	postcode, err := a.Prompt.Ask("Postcode: ", prompt.Matches(postcodePattern, "Please enter a valid UK postcode."))
	if err != nil {
		return invoice.ClientDetails{}, err
	}

	return invoice.ClientDetails{
		Name:         name,
		Company:      company,
		AddressLine1: address,
		City:         city,
		Postcode:     strings.ToUpper(postcode),
	}, nil
}

// lineItems collects billable rows until the user submits an empty
// description. At least one item is required before the loop can end.
func (a *App) lineItems() ([]invoice.LineItem, error) {
	a.Prompt.Printf("\nLine Items\n")
	a.Prompt.Printf("----------------------------------------\n")
	a.Prompt.Printf("Enter line items. Press Enter on description to finish.\n\n")

	var items []invoice.LineItem
	for {
		n := len(items) + 1
		desc, err := a.Prompt.Ask(fmt.Sprintf("Item %d description (or Enter to finish): ", n), nil)
		if err != nil {
			return nil, err
		}
		if desc == "" {
			if len(items) == 0 {
				a.Prompt.Printf("  At least one line item is required.\n")
				continue
			}
			return items, nil
		}

		priceStr, err := a.Prompt.Ask(fmt.Sprintf("Item %d unit price (£): ", n), validAmount)
		if err != nil {
			return nil, err
		}
		price, err := money.ParseAmount(priceStr)
		if err != nil {
			return nil, err
		}

		qtyStr, err := a.Prompt.Ask(fmt.Sprintf("Item %d quantity [1]: ", n), validQuantity)
		if err != nil {
			return nil, err
		}
		qty := money.One
		if qtyStr != "" {
			if qty, err = money.ParseQuantity(qtyStr); err != nil {
				return nil, err
			}
		}

		item, err := invoice.NewLineItem(desc, price, qty)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
}

func (a *App) dueDate(issueDate time.Time) (time.Time, error) {
	dueOnReceipt, err := a.Prompt.AskYesNo("\nDue on receipt? (Y/n): ", true)
	if err != nil {
		return time.Time{}, err
	}
	if dueOnReceipt {
		return issueDate, nil
	}

	answer, err := a.Prompt.Ask("Due date (YYYY-MM-DD): ", func(s string) error {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			return errors.New("Please enter a date as YYYY-MM-DD.")
		}
		if d.Before(issueDate) {
			return errors.New("Due date cannot be before the issue date.")
		}
		return nil
	})
	if err != nil {
		return time.Time{}, err
	}
	due, err := time.Parse("2006-01-02", answer)
	if err != nil {
		return time.Time{}, err
	}
	return due, nil
}

// offerContactSave runs after the commit, so closed input here just
// skips the save rather than reporting a cancellation.
func (a *App) offerContactSave(client invoice.ClientDetails) error {
	save, err := a.Prompt.AskYesNo("Save client as a contact? (y/N): ", false)
	if errors.Is(err, prompt.ErrAborted) {
		return nil
	}
	if err != nil {
		return err
	}
	if !save {
		return nil
	}
	label, err := a.Prompt.Ask(fmt.Sprintf("Contact label [%s]: ", client.PayerName()), nil)
	if errors.Is(err, prompt.ErrAborted) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := a.Contacts.Save(label, client); err != nil {
		return err
	}
	a.Prompt.Printf("  Contact saved.\n")
	return nil
}

func validAmount(s string) error {
	if _, err := money.ParseAmount(s); err != nil {
		return errors.New("Please enter a valid amount (e.g., 120.00).")
	}
	return nil
}

func validQuantity(s string) error {
	if s == "" {
		return nil // defaults to 1
	}
	if _, err := money.ParseQuantity(s); err != nil {
		return errors.New("Please enter a positive quantity (e.g., 2 or 1.5).")
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
