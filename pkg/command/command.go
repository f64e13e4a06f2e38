// Package command implements the warehouse command validator and state
// transition engine. One pure function per command kind takes the current
// document and the command parameters and produces either a rejection or
// the mutated document plus the speech and physical action that go with
// it. No function here performs I/O.
package command

import (
	"errors"
	"fmt"
)

// Kind identifies a warehouse command.
type Kind string

const (
	KindPickup      Kind = "pickup"
	KindDrop        Kind = "drop"
	KindMove        Kind = "move"
	KindSetContents Kind = "set_contents"
	KindSearch      Kind = "search"
	KindReset       Kind = "reset"
)

// Sentinel errors for command validation.
var (
	// ErrUnknownKind indicates an unrecognized command kind.
	ErrUnknownKind = errors.New("command: unknown command kind")

	// ErrBadSlots indicates the slot values violate the command grammar.
	ErrBadSlots = errors.New("command: slot values violate command grammar")
)

// Command is a parsed spoken command: a kind plus the slot values the
// conversational front end extracted. Item and Location carry the raw
// spoken forms; location tokens are normalized inside the transitions.
type Command struct {
	Kind     Kind   `json:"kind"`
	Item     string `json:"item,omitempty"`
	Location string `json:"location,omitempty"`
}

// Validate checks the slot values against the command grammar. The
// grammar guarantees these shapes upstream, so a violation is a contract
// error of the calling layer, checked once at the dispatch boundary and
// never re-checked inside the transitions.
func (c Command) Validate() error {
	switch c.Kind {
	case KindPickup, KindSearch:
		if (c.Item == "") == (c.Location == "") {
			return fmt.Errorf("%w: %s needs exactly one of item or location", ErrBadSlots, c.Kind)
		}
	case KindDrop, KindMove:
		if c.Location == "" {
			return fmt.Errorf("%w: %s needs a location", ErrBadSlots, c.Kind)
		}
	case KindSetContents:
		if c.Item == "" {
			return fmt.Errorf("%w: %s needs an item", ErrBadSlots, c.Kind)
		}
	case KindReset:
		// No slots.
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, c.Kind)
	}
	return nil
}
