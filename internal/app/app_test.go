package app

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicegen/internal/contacts"
	"invoicegen/internal/invoice"
	"invoicegen/internal/prompt"
	"invoicegen/internal/tracker"
)

var errRenderBoom = errors.New("render boom")

type renderCall struct {
	number string
	total  string
	path   string
}

type stubRenderer struct {
	calls []renderCall
	err   error
}

func (r *stubRenderer) Generate(inv *invoice.Invoice, outputPath string) error {
	if r.err != nil {
		return r.err
	}
	r.calls = append(r.calls, renderCall{
		number: inv.Number,
		total:  inv.Total().String(),
		path:   outputPath,
	})
	return nil
}

// harness runs the interactive flow against real file-backed stores in
// a temp directory, feeding canned answers through the prompt protocol.
type harness struct {
	t         *testing.T
	dataDir   string
	outputDir string
	renderer  *stubRenderer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return &harness{
		t:         t,
		dataDir:   t.TempDir(),
		outputDir: filepath.Join(t.TempDir(), "invoices"),
		renderer:  &stubRenderer{},
	}
}

func (h *harness) trackerStore() *tracker.Store {
	return tracker.NewStore(filepath.Join(h.dataDir, "invoice_tracker.json"))
}

func (h *harness) contactStore() *contacts.Store {
	return contacts.NewStore(filepath.Join(h.dataDir, "business_contacts.json"))
}

func (h *harness) run(answers ...string) (*bytes.Buffer, error) {
	h.t.Helper()
	out := &bytes.Buffer{}
	in := strings.NewReader(strings.Join(answers, "\n") + "\n")

	flow := New(
		prompt.New(in, out),
		h.trackerStore(),
		h.contactStore(),
		h.renderer,
		invoice.BusinessDetails{
			Name:          "Holker Removals",
			AddressLine1:  "1 Depot Lane",
			City:          "Manchester",
			Postcode:      "M1 1AA",
			Email:         "billing@holkerremovals.co.uk",
			SortCode:      "Sort Code: 12-34-56",
			AccountNumber: "Account Number: 12345678",
		},
		h.outputDir,
	)
	flow.Now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	}
	return out, flow.Run()
}

func (h *harness) lastNumber() int {
	h.t.Helper()
	state, err := h.trackerStore().Load()
	require.NoError(h.t, err)
	return state.LastInvoiceNumber
}

func TestFirstInvoiceEndToEnd(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(
		"Matt Holker", // client name
		"",            // company
		"2 Client Road",
		"Leeds",
		"m1 1aa",      // postcode, should be upper-cased
		"Van removal", // item 1 description
		"120.00",      // item 1 unit price
		"",            // item 1 quantity, defaults to 1
		"",            // finish line items
		"",            // due on receipt, default yes
		"",            // confirm, default yes
		"n",           // do not save contact
	)
	require.NoError(t, err)

	require.Len(t, h.renderer.calls, 1)
	call := h.renderer.calls[0]
	assert.Equal(t, "INV1001", call.number)
	assert.Equal(t, "120.00", call.total)
	assert.Equal(t, filepath.Join(h.outputDir, "INV1001_Matt_Holker.pdf"), call.path)

	state, err := h.trackerStore().Load()
	require.NoError(t, err)
	assert.Equal(t, 1001, state.LastInvoiceNumber)
	require.Len(t, state.Invoices, 1)
	rec := state.Invoices[0]
	assert.Equal(t, "INV1001", rec.InvoiceNumber)
	assert.Equal(t, "Matt Holker", rec.Client)
	assert.Equal(t, "120.00", rec.Amount)
	assert.Equal(t, "2025-06-01", rec.Date)
	assert.Equal(t, call.path, rec.FilePath)

	assert.Contains(t, out.String(), "Invoice generated successfully!")
	assert.Contains(t, out.String(), "£120.00")
}

func TestSecondInvoiceForCompany(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(
		"Matt Holker", "", "2 Client Road", "Leeds", "M1 1AA",
		"Van removal", "120.00", "", "",
		"", "", "n",
	)
	require.NoError(t, err)

	out, err := h.run(
		"",                    // no client name
		"Holker Mansions Ltd", // company
		"5 Mansion Row",
		"Leeds",
		"LS1 1AA",
		"Day Rate", "100.00", "5",
		"Transport Fee", "25.00", "2",
		"", // finish line items
		"", // due on receipt
		"", // confirm
		"y", // save contact
		"",  // label defaults to company name
	)
	require.NoError(t, err)

	require.Len(t, h.renderer.calls, 2)
	call := h.renderer.calls[1]
	assert.Equal(t, "INV1002", call.number)
	assert.Equal(t, "550.00", call.total)
	assert.Equal(t, filepath.Join(h.outputDir, "INV1002_Holker_Mansions_Ltd.pdf"), call.path)

	assert.Equal(t, 1002, h.lastNumber())
	assert.Contains(t, out.String(), "£550.00")

	saved, err := h.contactStore().Get("Holker Mansions Ltd")
	require.NoError(t, err)
	assert.Equal(t, "Holker Mansions Ltd", saved.Company)
}

func TestDecliningConfirmationLeavesTrackerUntouched(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(
		"Matt Holker", "", "2 Client Road", "Leeds", "M1 1AA",
		"Van removal", "120.00", "", "",
		"", // due on receipt
		"n", // decline confirmation
	)
	require.NoError(t, err, "declining is a clean cancellation, not an error")

	assert.Empty(t, h.renderer.calls)
	assert.Equal(t, tracker.FirstNumber, h.lastNumber())
	assert.Contains(t, out.String(), "No invoice number was used")
}

func TestRenderFailureDoesNotConsumeNumber(t *testing.T) {
	h := newHarness(t)
	h.renderer.err = errRenderBoom

	_, err := h.run(
		"Matt Holker", "", "2 Client Road", "Leeds", "M1 1AA",
		"Van removal", "120.00", "", "",
		"", "",
	)
	require.ErrorIs(t, err, errRenderBoom)

	assert.Equal(t, tracker.FirstNumber, h.lastNumber())
	records, lerr := h.trackerStore().ListAll()
	require.NoError(t, lerr)
	assert.Empty(t, records)
}

func TestClosedInputIsCleanCancellation(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("Matt Holker") // input ends mid-flow
	require.NoError(t, err)

	assert.Empty(t, h.renderer.calls)
	assert.Equal(t, tracker.FirstNumber, h.lastNumber())
	assert.Contains(t, out.String(), "Cancelled.")
}

func TestRequiresPayerBeforeContinuing(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(
		"", // no name
		"", // no company either
		"Matt Holker", // re-prompted name
		"2 Client Road", "Leeds", "M1 1AA",
		"Van removal", "120.00", "", "",
		"", "", "n",
	)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Either client name or company name is required.")
	require.Len(t, h.renderer.calls, 1)
	assert.Equal(t, "INV1001", h.renderer.calls[0].number)
}

func TestRequiresAtLeastOneLineItem(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(
		"Matt Holker", "", "2 Client Road", "Leeds", "M1 1AA",
		"", // try to finish with no items
		"Van removal", "120.00", "",
		"", // finish
		"", "", "n",
	)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "At least one line item is required.")
	require.Len(t, h.renderer.calls, 1)
}

func TestInvalidAmountAndQuantityAreReprompted(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(
		"Matt Holker", "", "2 Client Road", "Leeds", "M1 1AA",
		"Van removal",
		"not-money", // rejected
		"120.00",
		"0", // rejected quantity
		"2",
		"",
		"", "", "n",
	)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Please enter a valid amount")
	assert.Contains(t, out.String(), "Please enter a positive quantity")
	require.Len(t, h.renderer.calls, 1)
	assert.Equal(t, "240.00", h.renderer.calls[0].total)
}

func TestExplicitDueDate(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(
		"Matt Holker", "", "2 Client Road", "Leeds", "M1 1AA",
		"Van removal", "120.00", "", "",
		"n",          // not due on receipt
		"2025-05-01", // before issue date, rejected
		"2025-06-15",
		"", "n",
	)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Due date cannot be before the issue date.")
	require.Len(t, h.renderer.calls, 1)
}

func TestUsesSavedContact(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.contactStore().Save("Acme", invoice.ClientDetails{
		Name:         "Jane Smith",
		Company:      "Acme Ltd",
		AddressLine1: "10 Acme Way",
		City:         "Bristol",
		Postcode:     "BS1 1AA",
	}))

	_, err := h.run(
		"y",    // use a saved contact
		"Acme", // label
		"Consulting", "250.00", "", "",
		"", "", "n",
	)
	require.NoError(t, err)

	require.Len(t, h.renderer.calls, 1)
	call := h.renderer.calls[0]
	assert.Equal(t, filepath.Join(h.outputDir, "INV1001_Acme_Ltd.pdf"), call.path)

	rec, err := h.trackerStore().FindByNumber("INV1001")
	require.NoError(t, err)
	assert.Equal(t, "Acme Ltd", rec.Client)
}

func TestUnknownContactFallsBackToManualEntry(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.contactStore().Save("Acme", invoice.ClientDetails{
		Company:      "Acme Ltd",
		AddressLine1: "10 Acme Way",
		City:         "Bristol",
		Postcode:     "BS1 1AA",
	}))

	out, err := h.run(
		"y",     // use a saved contact
		"Ghost", // unknown label
		"Matt Holker", "", "2 Client Road", "Leeds", "M1 1AA",
		"Van removal", "120.00", "", "",
		"", "", "n",
	)
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"Ghost" not found`)
	require.Len(t, h.renderer.calls, 1)
	assert.Equal(t, filepath.Join(h.outputDir, "INV1001_Matt_Holker.pdf"), h.renderer.calls[0].path)
}
