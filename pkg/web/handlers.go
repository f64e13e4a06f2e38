package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/warebot/go-warebot/internal/log"
	"github.com/warebot/go-warebot/pkg/command"
	"github.com/warebot/go-warebot/pkg/directive"
	"github.com/warebot/go-warebot/pkg/gadget"
	"github.com/warebot/go-warebot/pkg/skill"
)

// CommandRequest is the body of POST /v1/command: the parsed command the
// conversational front end extracted, plus an optional explicit device.
type CommandRequest struct {
	Kind     command.Kind `json:"kind"`
	Item     string       `json:"item,omitempty"`
	Location string       `json:"location,omitempty"`
	DeviceID string       `json:"deviceId,omitempty"`
}

// CommandResponse carries the rendered outcome back to the front end.
type CommandResponse struct {
	Outcome   string               `json:"outcome"`
	Speech    string               `json:"speech"`
	Reprompt  string               `json:"reprompt,omitempty"`
	Directive *directive.Directive `json:"directive,omitempty"`
	Delivered bool                 `json:"delivered"`
}

// handleHealth reports liveness.
func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// handleCommand runs one voice command end to end.
func (s *Server) handleCommand(c *fiber.Ctx) error {
	var req CommandRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "malformed command body",
		})
	}

	deviceID, err := s.resolveDevice(c, req.DeviceID)
	if err != nil {
		log.Warn("device discovery failed", "error", err)
		// Treated the same as no device: the dispatcher answers with
		// the terminal no-device response.
		deviceID = ""
	}

	resp, err := s.dispatch.Handle(c.Context(), skill.Request{
		Kind:     req.Kind,
		Item:     req.Item,
		Location: req.Location,
		DeviceID: deviceID,
	})
	if err != nil {
		if errors.Is(err, command.ErrBadSlots) || errors.Is(err, command.ErrUnknownKind) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		log.Error("command failed", "kind", req.Kind, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "command could not be completed",
		})
	}

	out := CommandResponse{
		Outcome:   string(resp.Code),
		Speech:    resp.Speech,
		Reprompt:  resp.Reprompt,
		Directive: resp.Directive,
	}

	if resp.Directive != nil {
		if err := s.hub.Send(*resp.Directive); err != nil {
			// The gadget may be reachable through an external
			// messaging channel instead of our websocket; the
			// directive still goes back in the response.
			log.Warn("directive not delivered locally",
				"endpointId", resp.Directive.Endpoint.EndpointID, "error", err)
		} else {
			out.Delivered = true
		}
	}

	return c.JSON(out)
}

// handleWarehouse returns the current document (default snapshot when
// nothing is persisted yet).
func (s *Server) handleWarehouse(c *fiber.Ctx) error {
	doc, err := s.dispatch.Document(c.Context())
	if err != nil {
		log.Error("load warehouse failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "warehouse state unavailable",
		})
	}
	return c.JSON(doc)
}

// handleEndpoints lists reachable gadgets: locally connected ones first,
// then whatever the enumeration API reports.
func (s *Server) handleEndpoints(c *fiber.Ctx) error {
	ids := s.hub.Connected()
	if s.discover != nil {
		remote, err := s.discover.ConnectedEndpoints(c.Context())
		if err != nil {
			log.Warn("endpoint enumeration failed", "error", err)
		}
		for _, ep := range remote {
			ids = append(ids, ep.EndpointID)
		}
	}
	return c.JSON(fiber.Map{"endpoints": ids})
}

// resolveDevice picks the endpoint a directive would be addressed to:
// the explicit id from the request, else the first locally connected
// gadget, else the first endpoint the enumeration API reports.
func (s *Server) resolveDevice(c *fiber.Ctx, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if ids := s.hub.Connected(); len(ids) > 0 {
		return ids[0], nil
	}
	if s.discover != nil {
		return s.discover.FirstEndpointID(c.Context())
	}
	return "", nil
}

// registered is the first frame a gadget receives, echoing the endpoint
// id it was registered under (minted server-side when absent).
type registered struct {
	Type       string `json:"type"`
	EndpointID string `json:"endpointId"`
}

// handleGadgetWS registers a gadget connection and pumps directives to it.
func (s *Server) handleGadgetWS(c *websocket.Conn) {
	endpointID := c.Query("endpointId")
	if endpointID == "" {
		endpointID = "gadget-" + uuid.NewString()
	}

	// Safe to write directly: the client's write pump is not running yet.
	if err := c.WriteJSON(registered{Type: "registered", EndpointID: endpointID}); err != nil {
		c.Close()
		return
	}

	client := gadget.NewClient(s.hub, c, endpointID)
	client.Run()
}
