// Package gadget delivers control directives to connected warehouse
// robots over websockets. Each gadget registers under its endpoint id;
// the hub routes a directive to exactly one gadget, unlike a broadcast
// fan-out. Locally connected gadgets also serve as a discovery source
// when no enumeration API is configured.
package gadget

import (
	"encoding/json"
	"errors"
	"sort"
	"sync"

	"github.com/warebot/go-warebot/internal/log"
	"github.com/warebot/go-warebot/pkg/directive"
)

// Sentinel errors for the gadget package.
var (
	// ErrNotConnected indicates no gadget with that endpoint id.
	ErrNotConnected = errors.New("gadget: endpoint not connected")

	// ErrBufferFull indicates the gadget is reading too slowly and the
	// directive was dropped.
	ErrBufferFull = errors.New("gadget: send buffer full")
)

// Hub tracks connected gadgets by endpoint id.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[string]*Client)}
}

// register adds a client. A reconnecting gadget replaces its previous
// connection, which gets closed.
func (h *Hub) register(c *Client) {
	h.mu.Lock()
	old := h.clients[c.endpointID]
	h.clients[c.endpointID] = c
	count := len(h.clients)
	h.mu.Unlock()

	if old != nil {
		old.closeSend()
	}
	log.Info("gadget connected", "endpointId", c.endpointID, "total", count)
}

// unregister removes a client if it is still the registered connection
// for its endpoint id.
func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if h.clients[c.endpointID] == c {
		delete(h.clients, c.endpointID)
		c.closeSend()
	}
	count := len(h.clients)
	h.mu.Unlock()

	log.Info("gadget disconnected", "endpointId", c.endpointID, "remaining", count)
}

// Connected returns the endpoint ids of all connected gadgets, sorted.
func (h *Hub) Connected() []string {
	h.mu.RLock()
	ids := make([]string, 0, len(h.clients))
	for id := range h.clients {
		ids = append(ids, id)
	}
	h.mu.RUnlock()

	sort.Strings(ids)
	return ids
}

// IsConnected reports whether a gadget with the given endpoint id is
// currently registered.
func (h *Hub) IsConnected(endpointID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[endpointID]
	return ok
}

// Send routes a directive to the gadget it is addressed to.
func (h *Hub) Send(d directive.Directive) error {
	h.mu.RLock()
	c := h.clients[d.Endpoint.EndpointID]
	h.mu.RUnlock()

	if c == nil {
		return ErrNotConnected
	}

	data, err := json.Marshal(d)
	if err != nil {
		return err
	}

	select {
	case c.send <- data:
		return nil
	default:
		// The gadget stopped reading; drop it rather than block the
		// command path.
		h.unregister(c)
		return ErrBufferFull
	}
}
