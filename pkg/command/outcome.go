package command

import "github.com/warebot/go-warebot/pkg/directive"

// Code classifies a transition outcome. Everything except CodeOK is a
// precondition violation: the document is left untouched and the user can
// retry with a different command.
type Code string

const (
	CodeOK              Code = "ok"
	CodeAlreadyCarrying Code = "already_carrying"
	CodeNotCarrying     Code = "not_carrying"
	CodeAlreadyThere    Code = "already_there"
	CodeOccupied        Code = "occupied"
	CodeNotFound        Code = "not_found"
)

// Outcome is the result of applying one command to a document.
type Outcome struct {
	// Code is CodeOK for accepted commands, or the rejection class.
	Code Code

	// Speech is the final spoken response.
	Speech string

	// Reprompt is spoken if the user stays silent; empty means the
	// response is terminal and no reprompt is issued.
	Reprompt string

	// Action is the physical action to send to the robot, nil when the
	// command needs no robot motion (set contents, search, reset).
	Action *directive.Action

	// Mutated reports whether the document changed and must be
	// persisted.
	Mutated bool
}

// Rejected reports whether the command was refused.
func (o Outcome) Rejected() bool {
	return o.Code != CodeOK
}

// awaiting is the standard reprompt while no command is in flight.
const awaiting = "Awaiting command"

func rejected(code Code, speech string) Outcome {
	return Outcome{Code: code, Speech: speech, Reprompt: awaiting}
}
