// Package skill dispatches parsed voice commands: it resolves the
// connected device, loads the persisted warehouse document (or the
// default snapshot on first use), runs the matching transition, persists
// the result, and packages speech plus the control directive for the
// response layer.
package skill

import (
	"context"
	"errors"
	"fmt"

	"github.com/warebot/go-warebot/internal/audit"
	"github.com/warebot/go-warebot/internal/log"
	"github.com/warebot/go-warebot/pkg/command"
	"github.com/warebot/go-warebot/pkg/directive"
	"github.com/warebot/go-warebot/pkg/store"
	"github.com/warebot/go-warebot/pkg/warehouse"
)

// CodeNoDevice is reported when no connected device could be resolved and
// no transition ran.
const CodeNoDevice command.Code = "no_device"

// speechNoDevice is the terminal response when no robot is reachable.
const speechNoDevice = "I couldn't find a warehouse robot connected to this device"

// ErrNilStore indicates a dispatcher constructed without a store.
var ErrNilStore = errors.New("skill: store is required")

// Request is a parsed command plus the resolved device identifier.
type Request struct {
	Kind     command.Kind `json:"kind"`
	Item     string       `json:"item,omitempty"`
	Location string       `json:"location,omitempty"`
	DeviceID string       `json:"deviceId,omitempty"`
}

// Response is everything the outer response layer needs: the speech and
// reprompt to render, the directive to deliver (nil when no robot motion
// is required), and the document that was persisted (nil when state did
// not change).
type Response struct {
	Code      command.Code
	Speech    string
	Reprompt  string
	Directive *directive.Directive
	Document  *warehouse.Document
}

// Dispatcher wires the transition engine to its collaborators.
type Dispatcher struct {
	store   store.Store
	archive *store.Archive // optional state history
	auditor *audit.Logger  // optional audit trail
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithArchive records every persisted document in the archive.
func WithArchive(a *store.Archive) Option {
	return func(d *Dispatcher) { d.archive = a }
}

// WithAudit records one audit entry per handled command.
func WithAudit(l *audit.Logger) Option {
	return func(d *Dispatcher) { d.auditor = l }
}

// NewDispatcher creates a dispatcher over the given store.
func NewDispatcher(s store.Store, opts ...Option) (*Dispatcher, error) {
	if s == nil {
		return nil, ErrNilStore
	}
	d := &Dispatcher{store: s}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Handle runs one command end to end. A returned error is a collaborator
// failure (load/save) or a contract violation by the caller (bad slots);
// the response layer renders those as a generic failure. Rejections are
// not errors: they come back as a Response with a rejection code.
func (d *Dispatcher) Handle(ctx context.Context, req Request) (Response, error) {
	cmd := command.Command{Kind: req.Kind, Item: req.Item, Location: req.Location}
	if err := cmd.Validate(); err != nil {
		return Response{}, err
	}

	// No reachable device means no transition runs and nothing persists.
	if req.DeviceID == "" {
		resp := Response{Code: CodeNoDevice, Speech: speechNoDevice}
		d.recordAudit(req, resp)
		return resp, nil
	}

	doc, err := d.loadOrDefault(ctx)
	if err != nil {
		return Response{}, err
	}

	out := command.Apply(doc, cmd)

	resp := Response{
		Code:     out.Code,
		Speech:   out.Speech,
		Reprompt: out.Reprompt,
	}

	if out.Action != nil {
		dir := directive.Build(req.DeviceID, *out.Action)
		resp.Directive = &dir
	}

	if out.Mutated {
		if err := d.store.Save(ctx, doc); err != nil {
			return Response{}, fmt.Errorf("skill: persist document: %w", err)
		}
		resp.Document = doc
		if d.archive != nil {
			if _, err := d.archive.Write(doc); err != nil {
				log.Warn("archive write failed", "error", err)
			}
		}
	}

	d.recordAudit(req, resp)
	return resp, nil
}

// Document returns the current warehouse document, falling back to the
// default snapshot when nothing is persisted yet. Read-only surfaces use
// it so they see exactly what the next command will operate on.
func (d *Dispatcher) Document(ctx context.Context) (*warehouse.Document, error) {
	return d.loadOrDefault(ctx)
}

// loadOrDefault is the single load-or-default accessor: every command
// kind goes through it, so the first-use fallback lives in one place.
func (d *Dispatcher) loadOrDefault(ctx context.Context) (*warehouse.Document, error) {
	doc, err := d.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("skill: load document: %w", err)
	}
	if doc == nil {
		doc = warehouse.DefaultDocument()
	}
	return doc, nil
}

func (d *Dispatcher) recordAudit(req Request, resp Response) {
	if d.auditor == nil {
		return
	}
	e := audit.Entry{
		EndpointID: req.DeviceID,
		Command:    string(req.Kind),
		Item:       req.Item,
		Location:   req.Location,
		Outcome:    string(resp.Code),
		Speech:     resp.Speech,
	}
	if resp.Directive != nil {
		e.Directive = string(resp.Directive.Payload.Type)
	}
	if err := d.auditor.Record(e); err != nil {
		log.Warn("audit record failed", "error", err)
	}
}
