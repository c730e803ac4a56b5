// Package pdf renders a validated invoice aggregate into a paginated
// A4 document.
package pdf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"

	"invoicegen/internal/invoice"
	"invoicegen/internal/logger"
)

const dateFormat = "02/01/2006"

// Generator renders invoices for a single business. The business
// details fill the From column and the payment footer on every
// document.
type Generator struct {
	business invoice.BusinessDetails
	log      zerolog.Logger
}

// NewGenerator returns a renderer for the given business.
func NewGenerator(business invoice.BusinessDetails) *Generator {
	return &Generator{
		business: business,
		log:      logger.WithComponent("pdf"),
	}
}

// Generate writes the invoice as a PDF to outputPath, creating the
// output directory when needed. The invoice must already be validated;
// layout does not re-check invariants.
func (g *Generator) Generate(inv *invoice.Invoice, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("%w: create output directory: %v", ErrRenderFailed, err)
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(20, 20, 20)
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()
	tr := doc.UnicodeTranslatorFromDescriptor("")

	g.writeTitle(doc)
	g.writeAddresses(doc, inv, tr)
	g.writeDetails(doc, inv, tr)
	g.writeLineItems(doc, inv, tr)
	g.writeTotals(doc, inv, tr)
	g.writeFooter(doc, tr)

	if err := doc.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRenderFailed, outputPath, err)
	}

	g.log.Info().
		Str("invoice_number", inv.Number).
		Str("file", outputPath).
		Msg("Invoice PDF written")
	return nil
}

func (g *Generator) writeTitle(doc *gofpdf.Fpdf) {
	doc.SetFont("Helvetica", "B", 28)
	doc.CellFormat(0, 12, "INVOICE", "", 1, "R", false, 0, "")
	doc.Ln(10)
}

// writeAddresses lays out the From and To blocks side by side in two
// 85mm columns.
func (g *Generator) writeAddresses(doc *gofpdf.Fpdf, inv *invoice.Invoice, tr func(string) string) {
	from := []string{
		g.business.Name,
		g.business.AddressLine1,
		g.business.City,
		g.business.Postcode,
		g.business.Email,
	}

	var to []string
	if inv.Client.Name != "" {
		to = append(to, inv.Client.Name)
	}
	if inv.Client.Company != "" {
		to = append(to, inv.Client.Company)
	}
	to = append(to, inv.Client.AddressLine1, inv.Client.City, inv.Client.Postcode)

	const colWidth = 85.0
	left := doc.GetX()
	top := doc.GetY()

	doc.SetFont("Helvetica", "B", 10)
	doc.SetTextColor(128, 128, 128)
	doc.CellFormat(colWidth, 5, "From:", "", 1, "L", false, 0, "")
	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "", 10)
	for _, line := range from {
		doc.CellFormat(colWidth, 5, tr(line), "", 1, "L", false, 0, "")
	}
	bottom := doc.GetY()

	doc.SetXY(left+colWidth, top)
	doc.SetFont("Helvetica", "B", 10)
	doc.SetTextColor(128, 128, 128)
	doc.CellFormat(colWidth, 5, "To:", "", 2, "L", false, 0, "")
	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "", 10)
	for _, line := range to {
		doc.SetX(left + colWidth)
		doc.CellFormat(colWidth, 5, tr(line), "", 1, "L", false, 0, "")
	}
	if doc.GetY() > bottom {
		bottom = doc.GetY()
	}

	doc.SetXY(left, bottom+8)
}

func (g *Generator) writeDetails(doc *gofpdf.Fpdf, inv *invoice.Invoice, tr func(string) string) {
	paymentTerms := "Due on receipt"
	if !inv.DueOnReceipt() {
		paymentTerms = "Due by " + inv.DueDate.Format(dateFormat)
	}

	details := []struct {
		label, value string
	}{
		{"Invoice Number:", inv.Number},
		{"Issue Date:", inv.IssueDate.Format(dateFormat)},
		{"Due Date:", inv.DueDate.Format(dateFormat)},
		{"Payment Terms:", paymentTerms},
	}

	for _, d := range details {
		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(35, 5.5, d.label, "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 10)
		doc.CellFormat(60, 5.5, tr(d.value), "", 1, "L", false, 0, "")
	}
	doc.Ln(8)
}

func (g *Generator) writeLineItems(doc *gofpdf.Fpdf, inv *invoice.Invoice, tr func(string) string) {
	widths := []float64{95, 15, 30, 30}
	headers := []string{"Description", "Qty", "Unit Price (GBP)", "Total (GBP)"}
	aligns := []string{"L", "C", "R", "R"}

	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(230, 230, 230)
	for i, h := range headers {
		doc.CellFormat(widths[i], 9, h, "1", 0, aligns[i], true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 10)
	for _, li := range inv.LineItems {
		cells := []string{
			li.Description,
			li.Quantity.String(),
			li.UnitPrice.GBP(),
			li.LineTotal().GBP(),
		}
		for i, c := range cells {
			doc.CellFormat(widths[i], 9, tr(c), "1", 0, aligns[i], false, 0, "")
		}
		doc.Ln(-1)
	}
	doc.Ln(5)
}

func (g *Generator) writeTotals(doc *gofpdf.Fpdf, inv *invoice.Invoice, tr func(string) string) {
	rows := []struct {
		label, value string
		bold         bool
	}{
		{"Subtotal:", inv.Subtotal().GBP(), false},
		{"VAT:", inv.VATStatus, false},
		{"Total:", inv.Total().GBP(), true},
	}

	for _, r := range rows {
		style := ""
		if r.bold {
			style = "B"
		}
		doc.SetFont("Helvetica", style, 10)
		doc.CellFormat(130, 6, r.label, "", 0, "R", false, 0, "")
		doc.CellFormat(40, 6, tr(r.value), "", 1, "R", false, 0, "")
	}
	doc.Ln(15)
}

func (g *Generator) writeFooter(doc *gofpdf.Fpdf, tr func(string) string) {
	doc.SetFont("Helvetica", "", 10)
	lines := []string{
		"Many thanks and kind regards,",
		g.business.Name,
		g.business.SortCode,
		g.business.AccountNumber,
	}
	for _, line := range lines {
		doc.CellFormat(0, 5, tr(line), "", 1, "L", false, 0, "")
	}
}
