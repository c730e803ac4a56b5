package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"invoicegen/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "invoicegen",
	Short: "Invoicegen - generate PDF invoices with tracked numbering",
	Long: `Invoicegen is an interactive command-line tool for a small service
business. It builds an invoice through sequential prompts, renders it
as a PDF, and records it in a local JSON tracker that owns the
monotonic invoice number sequence.

Client details can be saved as reusable contacts and recalled by label
on later invoices. Running invoicegen with no arguments starts the
interactive invoice flow.`,
	Version: version,
	// Bare invocation runs the interactive flow; the tool needs no
	// flags or subcommands for its main job.
	RunE: runGenerate,
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
