package pdf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicegen/internal/invoice"
	"invoicegen/internal/money"
)

func sampleInvoice(t *testing.T) *invoice.Invoice {
	t.Helper()
	qty5, err := money.ParseQuantity("5")
	require.NoError(t, err)
	dayRate, err := invoice.NewLineItem("Day Rate", money.MustAmount("100.00"), qty5)
	require.NoError(t, err)
	removal, err := invoice.NewLineItem("Van removal", money.MustAmount("120.00"), money.One)
	require.NoError(t, err)

	issued := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return &invoice.Invoice{
		Number:    "INV1001",
		IssueDate: issued,
		DueDate:   issued.AddDate(0, 0, 14),
		Business: invoice.BusinessDetails{
			Name:          "Holker Removals",
			AddressLine1:  "1 Depot Lane",
			City:          "Manchester",
			Postcode:      "M1 1AA",
			Email:         "billing@holkerremovals.co.uk",
			SortCode:      "Sort Code: 12-34-56",
			AccountNumber: "Account Number: 12345678",
		},
		Client: invoice.ClientDetails{
			Name:         "Matt Holker",
			AddressLine1: "2 Client Road",
			City:         "Leeds",
			Postcode:     "LS1 1AA",
		},
		LineItems: []invoice.LineItem{dayRate, removal},
		VATStatus: invoice.DefaultVATStatus,
	}
}

func TestGenerateWritesPDF(t *testing.T) {
	inv := sampleInvoice(t)
	g := NewGenerator(inv.Business)
	out := filepath.Join(t.TempDir(), "INV1001_Matt_Holker.pdf")

	require.NoError(t, g.Generate(inv, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Greater(t, len(data), 1000, "document should not be trivially small")
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestGenerateCreatesOutputDirectory(t *testing.T) {
	inv := sampleInvoice(t)
	g := NewGenerator(inv.Business)
	out := filepath.Join(t.TempDir(), "nested", "invoices", "INV1001_Matt_Holker.pdf")

	require.NoError(t, g.Generate(inv, out))
	_, err := os.Stat(out)
	require.NoError(t, err)
}

func TestGenerateFailsOnUnwritablePath(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions do not restrict root")
	}

	inv := sampleInvoice(t)
	g := NewGenerator(inv.Business)

	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0555))
	t.Cleanup(func() { os.Chmod(dir, 0755) })

	err := g.Generate(inv, filepath.Join(dir, "sub", "out.pdf"))
	require.ErrorIs(t, err, ErrRenderFailed)
}
