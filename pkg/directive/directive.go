// Package directive encodes physical robot actions into the control
// directive envelope consumed by the gadget messaging layer.
package directive

// Directive addressing constants. Connected gadgets declare the namespace
// in their discovery response and receive control payloads under it.
const (
	// Namespace of the custom control directive.
	Namespace = "Custom.Mindstorms.Gadget"

	// NameControl is the directive name within the namespace.
	NameControl = "control"

	// TypeSendDirective is the outer envelope type.
	TypeSendDirective = "CustomInterfaceController.SendDirective"
)

// ActionKind identifies the physical action the robot must perform.
type ActionKind string

const (
	ActionPickup ActionKind = "pickup"
	ActionDrop   ActionKind = "drop"
	ActionMove   ActionKind = "move"
)

// Action describes a physical action produced by a command transition:
// what to do, where the robot currently is, and where it must go.
type Action struct {
	Kind       ActionKind
	FromState  string
	ToLocation string
}

// Header identifies the directive within its namespace.
type Header struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
}

// Endpoint addresses the gadget the directive is sent to.
type Endpoint struct {
	EndpointID string `json:"endpointId"`
}

// Payload is the control payload executed by the robot.
type Payload struct {
	Type     ActionKind `json:"type"`
	State    string     `json:"state"`
	Location string     `json:"location"`
}

// Directive is the full wire envelope sent to a connected gadget.
type Directive struct {
	Type     string   `json:"type"`
	Header   Header   `json:"header"`
	Endpoint Endpoint `json:"endpoint"`
	Payload  Payload  `json:"payload"`
}

// Build wraps an action in the control envelope addressed to the gadget
// with the given endpoint id. It is total: every action kind encodes.
func Build(endpointID string, action Action) Directive {
	return Directive{
		Type: TypeSendDirective,
		Header: Header{
			Name:      NameControl,
			Namespace: Namespace,
		},
		Endpoint: Endpoint{EndpointID: endpointID},
		Payload: Payload{
			Type:     action.Kind,
			State:    action.FromState,
			Location: action.ToLocation,
		},
	}
}
