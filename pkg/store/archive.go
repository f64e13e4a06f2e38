package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/warebot/go-warebot/pkg/warehouse"
)

// Archive keeps a zstd-compressed copy of every persisted document, one
// file per save, so state history survives resets and can be inspected
// after the fact. It is an optional side channel, not a Store backend.
type Archive struct {
	dir string

	mu  sync.Mutex
	seq int
}

// NewArchive creates an archive writing into dir.
func NewArchive(dir string) (*Archive, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("store: create archive directory: %w", err)
	}
	return &Archive{dir: dir}, nil
}

// Write compresses doc and appends it to the archive. File names sort
// chronologically; the sequence counter disambiguates saves within the
// same millisecond.
func (a *Archive) Write(doc *warehouse.Document) (string, error) {
	data, err := warehouse.EncodeDocument(doc)
	if err != nil {
		return "", err
	}

	a.mu.Lock()
	a.seq++
	name := fmt.Sprintf("doc-%d-%04d.json.zst", time.Now().UnixMilli(), a.seq)
	a.mu.Unlock()

	path := filepath.Join(a.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("store: create archive file: %w", err)
	}

	enc, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return "", fmt.Errorf("store: zstd writer: %w", err)
	}
	if _, err := enc.Write(data); err != nil {
		enc.Close()
		f.Close()
		return "", fmt.Errorf("store: write archive: %w", err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return "", fmt.Errorf("store: close zstd writer: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("store: close archive file: %w", err)
	}
	return path, nil
}

// Read decompresses one archived document.
func (a *Archive) Read(path string) (*warehouse.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("store: read archive file: %w", err)
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("store: zstd reader: %w", err)
	}
	defer dec.Close()

	data, err := dec.DecodeAll(raw, nil)
	if err != nil {
		return nil, fmt.Errorf("store: decompress archive: %w", err)
	}
	return warehouse.ParseDocument(data)
}
