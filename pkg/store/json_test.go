package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/warebot/go-warebot/pkg/warehouse"
)

func TestJSONStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "warehouse.json")
	s := NewJSONStore(path)
	defer s.Close()

	ctx := context.Background()

	doc := warehouse.DefaultDocument()
	doc.Robot.State = "dock_b"
	if err := s.Save(ctx, doc); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil || !got.Equal(doc) {
		t.Error("loaded document differs from saved document")
	}
}

func TestJSONStoreLoadMissingFile(t *testing.T) {
	s := NewJSONStore(filepath.Join(t.TempDir(), "nope.json"))

	doc, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc != nil {
		t.Errorf("missing file: got %+v, want nil", doc)
	}
}

func TestJSONStoreRejectsCorruptDocument(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{broken"},
		{"missing robot", `{"warehouse":{"pallets":[]}}`},
		{"bad pallet id", `{"warehouse":{"pallets":[{"id":"one","location":"a","contents":null}]},"robot":{"state":"home","carrying":null}}`},
		{"bad carrying", `{"warehouse":{"pallets":[]},"robot":{"state":"home","carrying":"yes"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "warehouse.json")
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatal(err)
			}

			s := NewJSONStore(path)
			_, err := s.Load(context.Background())
			if !errors.Is(err, ErrInvalidDocument) {
				t.Errorf("expected ErrInvalidDocument, got %v", err)
			}
		})
	}
}

func TestJSONStoreSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warehouse.json")
	s := NewJSONStore(path)
	ctx := context.Background()

	first := warehouse.DefaultDocument()
	if err := s.Save(ctx, first); err != nil {
		t.Fatal(err)
	}

	second := warehouse.DefaultDocument()
	second.Robot.State = "aisle_1"
	if err := s.Save(ctx, second); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.Robot.State != "aisle_1" {
		t.Errorf("robot state: got %q, want aisle_1", got.Robot.State)
	}
}
