package store

import "tasky/internal/sheet"

// Store is the durable owner of sheets between sessions. Save performs a
// full rewrite of the record; the core assumes exclusive access to a
// given id for the length of a session.
type Store interface {
	// List returns the known sheet ids, sorted.
	List() ([]string, error)
	// Load reads a sheet. Fails with sheet.ErrNotFound if absent and
	// sheet.ErrCorrupt if the record cannot be parsed.
	Load(id string) (*sheet.Sheet, error)
	// Save overwrites the record for the sheet's id.
	Save(s *sheet.Sheet) error
	// Delete removes the record. Fails with sheet.ErrNotFound if absent.
	Delete(id string) error
	Close() error
}
