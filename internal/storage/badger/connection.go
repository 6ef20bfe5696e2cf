// -----------------------------------------------------------------------
// BadgerDB connection management via badgerhold
// -----------------------------------------------------------------------

package badger

import (
	"fmt"
	"os"

	"github.com/timshannon/badgerhold/v4"
)

// openStore opens (or creates) the badgerhold store at the configured path.
// When reset is set the existing database directory is removed first, which
// gives tests and development runs a clean slate.
func openStore(path string, reset bool) (*badgerhold.Store, error) {
	if reset {
		if err := os.RemoveAll(path); err != nil {
			return nil, fmt.Errorf("failed to reset database at %s: %w", path, err)
		}
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory %s: %w", path, err)
	}

	options := badgerhold.DefaultOptions
	options.Dir = path
	options.ValueDir = path
	options.Logger = nil // arbor owns logging; badger's own logger is too chatty

	store, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger store at %s: %w", path, err)
	}
	return store, nil
}
