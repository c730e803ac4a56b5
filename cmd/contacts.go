package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"invoicegen/internal/config"
	"invoicegen/internal/contacts"
)

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "List saved client contacts",
	Long: `Print the reusable client contacts saved after invoice creation,
in the order they were first saved.`,
	Args: cobra.NoArgs,
	RunE: runContacts,
}

var contactsDeleteCmd = &cobra.Command{
	Use:   "delete <label>",
	Short: "Delete a saved contact by label",
	Args:  cobra.ExactArgs(1),
	RunE:  runContactsDelete,
}

func init() {
	contactsCmd.AddCommand(contactsDeleteCmd)
	rootCmd.AddCommand(contactsCmd)
}

func contactStore() (*contacts.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return contacts.NewStore(cfg.ContactsFile), nil
}

func runContacts(cmd *cobra.Command, args []string) error {
	store, err := contactStore()
	if err != nil {
		return err
	}
	all, err := store.ListAll()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No contacts saved yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LABEL\tNAME\tCOMPANY\tCITY\tPOSTCODE")
	for _, c := range all {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.Label, c.Name, c.Company, c.City, c.Postcode)
	}
	return w.Flush()
}

func runContactsDelete(cmd *cobra.Command, args []string) error {
	store, err := contactStore()
	if err != nil {
		return err
	}
	if err := store.Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("Contact %q deleted.\n", args[0])
	return nil
}
