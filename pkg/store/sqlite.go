package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/warebot/go-warebot/pkg/warehouse"
)

// SQLiteStore persists the document in a single-row SQLite table. The
// document is small and replaced wholesale on every save, so one TEXT
// column is the whole schema.
type SQLiteStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS warehouse_state (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	doc TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`

// OpenSQLite opens (creating if needed) a SQLite-backed store at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite %s: %w", path, err)
	}
	// One writer at a time keeps modernc's file locking happy.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: init sqlite schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Load retrieves the persisted document, or (nil, nil) when the row does
// not exist yet.
func (s *SQLiteStore) Load(ctx context.Context) (*warehouse.Document, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM warehouse_state WHERE id = 1`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: load sqlite document: %w", err)
	}

	data := []byte(raw)
	if err := validateDocument(data); err != nil {
		return nil, err
	}
	return warehouse.ParseDocument(data)
}

// Save upserts the single document row.
func (s *SQLiteStore) Save(ctx context.Context, doc *warehouse.Document) error {
	data, err := warehouse.EncodeDocument(doc)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO warehouse_state (id, doc, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`,
		string(data), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("store: save sqlite document: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ensure SQLiteStore implements Store
var _ Store = (*SQLiteStore)(nil)
