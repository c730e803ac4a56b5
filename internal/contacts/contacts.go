// Package contacts stores reusable client records keyed by a
// user-chosen label, persisted to their own JSON file.
//
// Saving under an existing label overwrites that contact in place
// (last-write-wins, no merge); listing preserves insertion order.
// Duplicate client names under different labels are allowed, since a
// client may have several addresses or billing identities.
package contacts

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"invoicegen/internal/invoice"
	"invoicegen/internal/jsonfile"
	"invoicegen/internal/logger"
)

// Contact is one saved client record.
type Contact struct {
	Label        string `json:"contact_name"`
	Name         string `json:"name"`
	Company      string `json:"company"`
	AddressLine1 string `json:"address_line1"`
	City         string `json:"city"`
	Postcode     string `json:"postcode"`
}

// Client converts the stored record back into invoice client details.
func (c Contact) Client() invoice.ClientDetails {
	return invoice.ClientDetails{
		Name:         c.Name,
		Company:      c.Company,
		AddressLine1: c.AddressLine1,
		City:         c.City,
		Postcode:     c.Postcode,
	}
}

type contactsFile struct {
	Contacts []Contact `json:"contacts"`
}

// Store reads and writes the contacts file. Like the tracker it holds
// no cached state and re-reads the file on every operation.
type Store struct {
	path string
	log  zerolog.Logger
}

// NewStore returns a store backed by the contacts file at path.
func NewStore(path string) *Store {
	return &Store{
		path: path,
		log:  logger.WithComponent("contacts"),
	}
}

func (s *Store) load() (contactsFile, error) {
	var data contactsFile
	err := jsonfile.Read(s.path, &data)
	if os.IsNotExist(err) {
		return contactsFile{Contacts: []Contact{}}, nil
	}
	if err != nil {
		return contactsFile{}, fmt.Errorf("read contacts %s: %w", s.path, err)
	}
	if data.Contacts == nil {
		data.Contacts = []Contact{}
	}
	return data, nil
}

// Save upserts a contact under the given label. An empty label falls
// back to the client's company-or-name. Existing labels are
// overwritten in place so listing order stays stable.
func (s *Store) Save(label string, client invoice.ClientDetails) error {
	if err := invoice.ValidateClient(client); err != nil {
		return err
	}

	label = strings.TrimSpace(label)
	if label == "" {
		label = client.PayerName()
	}

	data, err := s.load()
	if err != nil {
		return err
	}

	entry := Contact{
		Label:        label,
		Name:         client.Name,
		Company:      client.Company,
		AddressLine1: client.AddressLine1,
		City:         client.City,
		Postcode:     client.Postcode,
	}

	replaced := false
	for i := range data.Contacts {
		if data.Contacts[i].Label == label {
			data.Contacts[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		data.Contacts = append(data.Contacts, entry)
	}

	if err := jsonfile.Write(s.path, data); err != nil {
		return fmt.Errorf("save contact %q: %w", label, err)
	}

	s.log.Info().
		Str("label", label).
		Bool("updated", replaced).
		Msg("Contact saved")
	return nil
}

// Get returns the client details saved under the given label.
func (s *Store) Get(label string) (invoice.ClientDetails, error) {
	data, err := s.load()
	if err != nil {
		return invoice.ClientDetails{}, err
	}
	for _, c := range data.Contacts {
		if c.Label == label {
			return c.Client(), nil
		}
	}
	return invoice.ClientDetails{}, fmt.Errorf("%w: %q", ErrContactNotFound, label)
}

// ListAll returns every saved contact in insertion order.
func (s *Store) ListAll() ([]Contact, error) {
	data, err := s.load()
	if err != nil {
		return nil, err
	}
	return data.Contacts, nil
}

// Delete removes the contact saved under the given label.
func (s *Store) Delete(label string) error {
	data, err := s.load()
	if err != nil {
		return err
	}
	for i, c := range data.Contacts {
		if c.Label == label {
			data.Contacts = append(data.Contacts[:i], data.Contacts[i+1:]...)
			if err := jsonfile.Write(s.path, data); err != nil {
				return fmt.Errorf("delete contact %q: %w", label, err)
			}
			s.log.Info().Str("label", label).Msg("Contact deleted")
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrContactNotFound, label)
}
