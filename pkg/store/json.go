package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/warebot/go-warebot/pkg/warehouse"
)

// JSONStore persists the document as a JSON file.
type JSONStore struct {
	FilePath string
}

// NewJSONStore creates a file-backed store at the given path.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{FilePath: path}
}

// Load reads and validates the document file. A missing file means
// nothing has been persisted yet and returns (nil, nil).
func (s *JSONStore) Load(ctx context.Context) (*warehouse.Document, error) {
	data, err := os.ReadFile(s.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: read %s: %w", s.FilePath, err)
	}

	if err := validateDocument(data); err != nil {
		return nil, err
	}
	return warehouse.ParseDocument(data)
}

// Save writes the document, creating the directory if needed.
func (s *JSONStore) Save(ctx context.Context, doc *warehouse.Document) error {
	data, err := warehouse.EncodeDocument(doc)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.FilePath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("store: create directory: %w", err)
		}
	}

	if err := os.WriteFile(s.FilePath, data, 0644); err != nil {
		return fmt.Errorf("store: write %s: %w", s.FilePath, err)
	}
	return nil
}

// Close is a no-op for JSON files.
func (s *JSONStore) Close() error {
	return nil
}

// Ensure JSONStore implements Store
var _ Store = (*JSONStore)(nil)
