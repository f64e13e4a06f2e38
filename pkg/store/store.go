// Package store persists the warehouse document between commands.
// Backends share the Store interface so the dispatcher never knows
// whether state lives in a JSON file or a SQLite database.
package store

import (
	"context"
	"errors"

	"github.com/warebot/go-warebot/pkg/warehouse"
)

// Sentinel errors for the store package.
var (
	// ErrClosed is returned when using a store after Close.
	ErrClosed = errors.New("store: store is closed")

	// ErrInvalidDocument indicates persisted state that fails schema
	// validation.
	ErrInvalidDocument = errors.New("store: persisted document is invalid")
)

// Store is the persistence collaborator for the warehouse document.
type Store interface {
	// Load retrieves the persisted document, or (nil, nil) when nothing
	// has been persisted yet.
	Load(ctx context.Context) (*warehouse.Document, error)

	// Save persists the given document, replacing any prior state.
	Save(ctx context.Context, doc *warehouse.Document) error

	// Close releases any resources held by the store.
	Close() error
}
