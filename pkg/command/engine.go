package command

import (
	"fmt"

	"github.com/warebot/go-warebot/pkg/directive"
	"github.com/warebot/go-warebot/pkg/warehouse"
)

// Apply runs the transition for cmd against doc. The command must already
// have passed Validate. Rejections leave doc untouched; accepted commands
// mutate it in place and set Mutated on the outcome.
func Apply(doc *warehouse.Document, cmd Command) Outcome {
	switch cmd.Kind {
	case KindPickup:
		return Pickup(doc, cmd.Item, cmd.Location)
	case KindDrop:
		return Drop(doc, cmd.Location)
	case KindMove:
		return Move(doc, cmd.Location)
	case KindSetContents:
		return SetContents(doc, cmd.Item)
	case KindSearch:
		return Search(doc, cmd.Item, cmd.Location)
	case KindReset:
		return Reset(doc)
	default:
		// Validate rejects unknown kinds before we get here.
		return rejected(CodeNotFound, fmt.Sprintf("I don't know how to %s", cmd.Kind))
	}
}

// Pickup sends the robot to collect a pallet, selected either by the item
// it contains or by the slot it rests at. Exactly one selector is given.
// A slot with no pallet record is a rejection: there is nothing there to
// lift, even though an empty *pallet* at a slot is picked up fine.
func Pickup(doc *warehouse.Document, item, location string) Outcome {
	if doc.Robot.Carrying != nil {
		return rejected(CodeAlreadyCarrying,
			"The robot is already carrying a pallet. Tell the robot to deliver to a location first.")
	}

	var pallet *warehouse.Pallet
	var speech string

	if location == "" {
		// Selected by item.
		pallet = doc.FindPalletByContents(item)
		if pallet == nil {
			return rejected(CodeNotFound,
				fmt.Sprintf("No pallets in the warehouse contain %s. Say another command.", item))
		}
		speech = fmt.Sprintf("Picking up the %s from %s", item, warehouse.Spoken(pallet.Location))
	} else {
		// Selected by location.
		token := warehouse.Token(location)
		pallet = doc.FindPalletByLocation(token, warehouse.NoExclude)
		if pallet == nil {
			return rejected(CodeNotFound,
				fmt.Sprintf("There is no pallet at %s. Say another command.", location))
		}
		if pallet.Contents == nil {
			speech = fmt.Sprintf("Picking up the empty pallet at %s", location)
		} else {
			speech = fmt.Sprintf("Picking up the %s at %s", *pallet.Contents, location)
		}
	}

	action := &directive.Action{
		Kind:       directive.ActionPickup,
		FromState:  doc.Robot.State,
		ToLocation: pallet.Location,
	}

	doc.Robot.State = pallet.Location
	id := pallet.ID
	doc.Robot.Carrying = &id

	return Outcome{Code: CodeOK, Speech: speech, Action: action, Mutated: true}
}

// Drop delivers the carried pallet to a slot. The destination must not
// hold another pallet; the carried pallet's own stale location record is
// ignored in that check.
func Drop(doc *warehouse.Document, location string) Outcome {
	if doc.Robot.Carrying == nil {
		return rejected(CodeNotCarrying,
			"The robot is not carrying a pallet. Say another command.")
	}

	token := warehouse.Token(location)
	if doc.FindPalletByLocation(token, *doc.Robot.Carrying) != nil {
		return rejected(CodeOccupied,
			fmt.Sprintf("There is already a pallet in %s. Say another command.", location))
	}

	carried := doc.CarriedPallet()
	carried.Location = token

	action := &directive.Action{
		Kind:       directive.ActionDrop,
		FromState:  doc.Robot.State,
		ToLocation: token,
	}

	doc.Robot.State = token
	doc.Robot.Carrying = nil

	return Outcome{
		Code:    CodeOK,
		Speech:  fmt.Sprintf("Moving pallet to %s", location),
		Action:  action,
		Mutated: true,
	}
}

// Move drives the robot to a slot. Robot motion is independent of pallet
// occupancy, so moving onto an occupied slot is allowed; only dropping
// there is not.
func Move(doc *warehouse.Document, location string) Outcome {
	token := warehouse.Token(location)
	if doc.Robot.State == token {
		return rejected(CodeAlreadyThere,
			fmt.Sprintf("The robot is already at %s", location))
	}

	action := &directive.Action{
		Kind:       directive.ActionMove,
		FromState:  doc.Robot.State,
		ToLocation: token,
	}

	doc.Robot.State = token

	return Outcome{
		Code:    CodeOK,
		Speech:  fmt.Sprintf("Moving to %s", location),
		Action:  action,
		Mutated: true,
	}
}

// SetContents labels the pallet the robot is carrying, overwriting any
// prior contents.
func SetContents(doc *warehouse.Document, item string) Outcome {
	if doc.Robot.Carrying == nil {
		return rejected(CodeNotCarrying,
			"The robot is not currently carrying a pallet")
	}

	carried := doc.CarriedPallet()
	contents := item
	carried.Contents = &contents

	return Outcome{
		Code:     CodeOK,
		Speech:   fmt.Sprintf("Ok. This pallet now contains %s. Say another command.", item),
		Reprompt: awaiting,
		Mutated:  true,
	}
}

// Search answers where an item is, or what a slot holds. It never mutates
// the document and produces no robot action.
func Search(doc *warehouse.Document, item, location string) Outcome {
	var speech string

	if location == "" {
		pallet := doc.FindPalletByContents(item)
		switch {
		case pallet == nil:
			speech = fmt.Sprintf("No pallets in the warehouse contain %s", item)
		case doc.Robot.Carrying != nil && pallet.ID == *doc.Robot.Carrying:
			speech = fmt.Sprintf("The robot is carrying the pallet of %s", item)
		default:
			speech = fmt.Sprintf("The pallet containing %s is in %s", item, warehouse.Spoken(pallet.Location))
		}
	} else {
		token := warehouse.Token(location)
		pallet := doc.FindPalletByLocation(token, warehouse.NoExclude)
		switch {
		case pallet == nil:
			speech = fmt.Sprintf("There is no pallet in %s", location)
		case pallet.Contents == nil:
			speech = fmt.Sprintf("The pallet in %s is empty", location)
		default:
			speech = fmt.Sprintf("The %s are in %s", *pallet.Contents, location)
		}
	}

	return Outcome{
		Code:     CodeOK,
		Speech:   speech + ". Say another command.",
		Reprompt: awaiting,
	}
}

// Reset replaces the document with the default snapshot. It has no
// preconditions and sends nothing to the robot.
func Reset(doc *warehouse.Document) Outcome {
	*doc = *warehouse.DefaultDocument()

	return Outcome{
		Code:     CodeOK,
		Speech:   "Warehouse data reset. Say another command",
		Reprompt: awaiting,
		Mutated:  true,
	}
}
