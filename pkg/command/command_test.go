package command

import (
	"errors"
	"testing"
)

func TestCommandValidate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     Command
		wantErr bool
	}{
		{
			name: "pickup by item",
			cmd:  Command{Kind: KindPickup, Item: "widgets"},
		},
		{
			name: "pickup by location",
			cmd:  Command{Kind: KindPickup, Location: "aisle 1"},
		},
		{
			name:    "pickup with both selectors",
			cmd:     Command{Kind: KindPickup, Item: "widgets", Location: "aisle 1"},
			wantErr: true,
		},
		{
			name:    "pickup with neither selector",
			cmd:     Command{Kind: KindPickup},
			wantErr: true,
		},
		{
			name: "drop with location",
			cmd:  Command{Kind: KindDrop, Location: "dock a"},
		},
		{
			name:    "drop without location",
			cmd:     Command{Kind: KindDrop},
			wantErr: true,
		},
		{
			name:    "move without location",
			cmd:     Command{Kind: KindMove},
			wantErr: true,
		},
		{
			name: "set contents with item",
			cmd:  Command{Kind: KindSetContents, Item: "crates"},
		},
		{
			name:    "set contents without item",
			cmd:     Command{Kind: KindSetContents},
			wantErr: true,
		},
		{
			name: "search by location",
			cmd:  Command{Kind: KindSearch, Location: "dock a"},
		},
		{
			name:    "search with both selectors",
			cmd:     Command{Kind: KindSearch, Item: "gears", Location: "dock a"},
			wantErr: true,
		},
		{
			name: "reset takes no slots",
			cmd:  Command{Kind: KindReset},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(): got %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrBadSlots) {
				t.Errorf("expected ErrBadSlots, got %v", err)
			}
		})
	}
}

func TestCommandValidateUnknownKind(t *testing.T) {
	err := Command{Kind: "launch"}.Validate()
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}
