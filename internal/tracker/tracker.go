// Package tracker owns the invoice number sequence and the append-only
// ledger of issued invoices, both persisted in a single JSON file.
//
// The counter and the ledger live in one file so that incrementing the
// number and appending its record happen in the same durable write:
// the file is never left with one mutation but not the other.
//
// Numbering is split into a peek/commit pair. PeekNext never mutates
// state, so the interactive flow can show the user the next number and
// still abandon the invoice without burning it. Commit verifies the
// presented number is still the next in sequence before persisting.
package tracker

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"

	"invoicegen/internal/jsonfile"
	"invoicegen/internal/logger"
)

// FirstNumber is the counter value a fresh tracker starts from; the
// first issued invoice is therefore INV1001.
const FirstNumber = 1000

// Record is the ledger entry for one issued invoice. It holds metadata
// only, not the full invoice content.
type Record struct {
	InvoiceNumber string `json:"invoice_number"`
	Client        string `json:"client"`
	Amount        string `json:"amount"`
	Date          string `json:"date"`
	FilePath      string `json:"file_path"`
}

// State is the persisted tracker file shape.
type State struct {
	LastInvoiceNumber int      `json:"last_invoice_number"`
	Invoices          []Record `json:"invoices"`
}

// Store reads and mutates the tracker file. It holds no cached state:
// every operation re-reads the file, so edits made between runs are
// always picked up.
type Store struct {
	path string
	log  zerolog.Logger
}

// NewStore returns a store backed by the tracker file at path. The
// file is created on first read or write, not here.
func NewStore(path string) *Store {
	return &Store{
		path: path,
		log:  logger.WithComponent("tracker"),
	}
}

// Path returns the tracker file location, for error messages.
func (s *Store) Path() string {
	return s.path
}

// Load reads the tracker state, initializing the file with a fresh
// counter when it does not exist yet. A file that exists but cannot be
// parsed yields ErrCorruptTracker with the path to inspect.
func (s *Store) Load() (State, error) {
	var state State
	err := jsonfile.Read(s.path, &state)
	if os.IsNotExist(err) {
		state = State{LastInvoiceNumber: FirstNumber, Invoices: []Record{}}
		if werr := jsonfile.Write(s.path, state); werr != nil {
			return State{}, fmt.Errorf("initialize tracker: %w", werr)
		}
		s.log.Info().
			Str("file", s.path).
			Int("last_invoice_number", FirstNumber).
			Msg("Created new invoice tracker")
		return state, nil
	}
	if err != nil {
		if os.IsPermission(err) {
			return State{}, fmt.Errorf("read tracker %s: %w", s.path, err)
		}
		return State{}, fmt.Errorf("%w: %s: %v", ErrCorruptTracker, s.path, err)
	}
	if state.Invoices == nil {
		state.Invoices = []Record{}
	}
	return state, nil
}

// PeekNext returns the next invoice number without mutating state.
// Repeated calls without an intervening Commit return the same value.
func (s *Store) PeekNext() (string, error) {
	state, err := s.Load()
	if err != nil {
		return "", err
	}
	return formatNumber(state.LastInvoiceNumber + 1), nil
}

// Commit durably increments the counter and appends the ledger record
// in a single atomic file replacement. The presented number must equal
// the value PeekNext would return; anything else is ErrSequenceMismatch.
func (s *Store) Commit(number string, rec Record) error {
	state, err := s.Load()
	if err != nil {
		return err
	}

	expected := formatNumber(state.LastInvoiceNumber + 1)
	if number != expected {
		return fmt.Errorf("%w: got %s, expected %s (tracker: %s)",
			ErrSequenceMismatch, number, expected, s.path)
	}

	rec.InvoiceNumber = number
	state.LastInvoiceNumber++
	state.Invoices = append(state.Invoices, rec)

	if err := jsonfile.Write(s.path, state); err != nil {
		return fmt.Errorf("commit %s: %w", number, err)
	}

	s.log.Info().
		Str("invoice_number", number).
		Str("client", rec.Client).
		Str("amount", rec.Amount).
		Msg("Invoice committed to tracker")
	return nil
}

// ListAll returns every ledger record in issue order.
func (s *Store) ListAll() ([]Record, error) {
	state, err := s.Load()
	if err != nil {
		return nil, err
	}
	return state.Invoices, nil
}

// FindByNumber returns the ledger record for the given invoice number.
func (s *Store) FindByNumber(number string) (Record, error) {
	state, err := s.Load()
	if err != nil {
		return Record{}, err
	}
	for _, rec := range state.Invoices {
		if rec.InvoiceNumber == number {
			return rec, nil
		}
	}
	return Record{}, fmt.Errorf("%w: %s", ErrRecordNotFound, number)
}

func formatNumber(n int) string {
	return "INV" + strconv.Itoa(n)
}
