package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"invoicegen/internal/config"
	"invoicegen/internal/tracker"
)

var listCmd = &cobra.Command{
	Use:   "list [invoice-number]",
	Short: "List issued invoices from the tracker",
	Long: `Print the ledger of issued invoices recorded in the tracker file.

With an invoice number argument, print only that record.`,
	Example: `  # Show every issued invoice
  invoicegen list

  # Look up one invoice
  invoicegen list INV1001`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	store := tracker.NewStore(cfg.TrackerFile)

	var records []tracker.Record
	if len(args) == 1 {
		rec, err := store.FindByNumber(args[0])
		if err != nil {
			return err
		}
		records = []tracker.Record{rec}
	} else {
		records, err = store.ListAll()
		if err != nil {
			return err
		}
	}

	if len(records) == 0 {
		fmt.Println("No invoices issued yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NUMBER\tCLIENT\tAMOUNT\tDATE\tFILE")
	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t£%s\t%s\t%s\n",
			rec.InvoiceNumber, rec.Client, rec.Amount, rec.Date, rec.FilePath)
	}
	return w.Flush()
}
