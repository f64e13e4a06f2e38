package warehouse

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

// The default snapshot is data, not code: it ships as a JSON asset so the
// initial floor layout can be changed without touching any transition
// logic.
//
//go:embed default_attributes.json
var defaultSnapshot []byte

// DefaultDocument returns a fresh copy of the default warehouse snapshot.
// It is used the first time a command runs with nothing persisted yet, and
// by the reset command, which replaces the stored state wholesale.
func DefaultDocument() *Document {
	doc, err := ParseDocument(defaultSnapshot)
	if err != nil {
		// The embedded asset is validated by tests; a parse failure
		// here means a broken build, not a runtime condition.
		panic(fmt.Sprintf("warehouse: embedded default snapshot: %v", err))
	}
	return doc
}

// ParseDocument decodes a persisted warehouse document from JSON.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("warehouse: parse document: %w", err)
	}
	return &doc, nil
}

// EncodeDocument encodes a document to its persisted JSON form.
func EncodeDocument(doc *Document) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("warehouse: encode document: %w", err)
	}
	return data, nil
}
