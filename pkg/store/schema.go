package store

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed document.schema.json
var documentSchemaJSON string

var documentSchema = jsonschema.MustCompileString("document.schema.json", documentSchemaJSON)

// validateDocument checks raw persisted bytes against the document
// schema. A document that was hand-edited or corrupted on disk fails
// here instead of surfacing as a nil-pointer panic mid-transition.
func validateDocument(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := documentSchema.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return nil
}
