package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"invoicegen/internal/app"
	"invoicegen/internal/config"
	"invoicegen/internal/contacts"
	"invoicegen/internal/logger"
	"invoicegen/internal/pdf"
	"invoicegen/internal/prompt"
	"invoicegen/internal/tracker"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Create a new invoice interactively",
	Long: `Build an invoice through sequential prompts and render it as a PDF.

The flow asks for the client (a saved contact or fresh details), one or
more line items, and the payment terms, then shows the next invoice
number and total for confirmation. The number is only consumed after
the PDF has been rendered: cancelling at any point, or a rendering
failure, leaves the tracker untouched.

Configuration comes from the environment (or a .env file):
  BUSINESS_CONFIG       - business details JSON (default config/business_details.json)
  INVOICE_DATA_DIR      - tracker and contacts directory (default data)
  INVOICE_OUTPUT_DIR    - PDF output directory (default invoices)`,
	Example: `  # Start the interactive flow
  invoicegen generate

  # Same as the bare command
  invoicegen`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("generate")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	business, err := config.LoadBusinessDetails(cfg.BusinessConfig)
	if err != nil {
		log.Error().
			Err(err).
			Str("file", cfg.BusinessConfig).
			Msg("Failed to load business details")
		return err
	}

	flow := app.New(
		prompt.New(os.Stdin, os.Stdout),
		tracker.NewStore(cfg.TrackerFile),
		contacts.NewStore(cfg.ContactsFile),
		pdf.NewGenerator(business),
		business,
		cfg.OutputDir,
	)

	if err := flow.Run(); err != nil {
		return handleGenerateError(err, cfg, log)
	}
	return nil
}

// handleGenerateError turns internal failures into messages that tell
// the user what to do next.
func handleGenerateError(err error, cfg *config.Config, log zerolog.Logger) error {
	log.Error().Err(err).Msg("Invoice generation failed")

	switch {
	case errors.Is(err, tracker.ErrCorruptTracker):
		return fmt.Errorf("the invoice tracker could not be read: %w\n"+
			"Inspect %s by hand; do not delete it, or already-issued invoice numbers may be reused", err, cfg.TrackerFile)
	case errors.Is(err, tracker.ErrSequenceMismatch):
		return fmt.Errorf("the tracker changed while this invoice was being composed: %w\n"+
			"Check %s and run the command again", err, cfg.TrackerFile)
	case errors.Is(err, pdf.ErrRenderFailed):
		return fmt.Errorf("the PDF could not be written (no invoice number was used): %w\n"+
			"Check that %s is writable and has free space", err, cfg.OutputDir)
	default:
		return err
	}
}
