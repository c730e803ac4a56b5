package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"invoicegen/internal/invoice"
)

// ErrBusinessConfigMissing is returned when the business details file
// does not exist. This is a startup error: the tool cannot issue
// invoices without knowing who is issuing them.
var ErrBusinessConfigMissing = errors.New("business configuration file not found")

// LoadBusinessDetails reads and validates the business details JSON
// file. It is loaded once at startup and treated as read-only for the
// rest of the run.
func LoadBusinessDetails(path string) (invoice.BusinessDetails, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return invoice.BusinessDetails{}, fmt.Errorf(
				"%w: %s\nCreate the file with your business details (name, address_line1, city, postcode, email, sort_code, account_number)",
				ErrBusinessConfigMissing, path)
		}
		return invoice.BusinessDetails{}, fmt.Errorf("read business config %s: %w", path, err)
	}

	var business invoice.BusinessDetails
	if err := json.Unmarshal(data, &business); err != nil {
		return invoice.BusinessDetails{}, fmt.Errorf("invalid JSON in business config %s: %w", path, err)
	}
	if err := invoice.ValidateBusiness(business); err != nil {
		return invoice.BusinessDetails{}, fmt.Errorf("business config %s: %w", path, err)
	}
	return business, nil
}
