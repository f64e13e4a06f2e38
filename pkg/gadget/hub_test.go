package gadget

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/warebot/go-warebot/pkg/directive"
)

// fakeClient builds a registered client without a live connection. Hub
// routing only touches the send channel.
func fakeClient(h *Hub, endpointID string, buffer int) *Client {
	c := &Client{
		hub:        h,
		endpointID: endpointID,
		send:       make(chan []byte, buffer),
	}
	h.register(c)
	return c
}

func TestHubConnected(t *testing.T) {
	h := NewHub()
	if got := h.Connected(); len(got) != 0 {
		t.Errorf("empty hub: got %v", got)
	}

	fakeClient(h, "ep-b", 1)
	fakeClient(h, "ep-a", 1)

	want := []string{"ep-a", "ep-b"}
	if got := h.Connected(); !reflect.DeepEqual(got, want) {
		t.Errorf("connected: got %v, want %v", got, want)
	}
	if !h.IsConnected("ep-a") {
		t.Error("ep-a should be connected")
	}
	if h.IsConnected("ep-z") {
		t.Error("ep-z should not be connected")
	}
}

func TestHubSendRoutesByEndpoint(t *testing.T) {
	h := NewHub()
	a := fakeClient(h, "ep-a", 4)
	b := fakeClient(h, "ep-b", 4)

	d := directive.Build("ep-a", directive.Action{Kind: directive.ActionMove, ToLocation: "aisle_1"})
	if err := h.Send(d); err != nil {
		t.Fatalf("send: %v", err)
	}

	select {
	case data := <-a.send:
		var got directive.Directive
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got.Endpoint.EndpointID != "ep-a" || got.Payload.Location != "aisle_1" {
			t.Errorf("frame: got %+v", got)
		}
	default:
		t.Fatal("addressed gadget received nothing")
	}

	select {
	case <-b.send:
		t.Error("directive leaked to the wrong gadget")
	default:
	}
}

func TestHubSendNotConnected(t *testing.T) {
	h := NewHub()
	d := directive.Build("ep-missing", directive.Action{Kind: directive.ActionDrop, ToLocation: "aisle_2"})
	if err := h.Send(d); !errors.Is(err, ErrNotConnected) {
		t.Errorf("expected ErrNotConnected, got %v", err)
	}
}

func TestHubSendDropsSlowGadget(t *testing.T) {
	h := NewHub()
	fakeClient(h, "ep-slow", 1)

	d := directive.Build("ep-slow", directive.Action{Kind: directive.ActionMove, ToLocation: "aisle_1"})
	if err := h.Send(d); err != nil {
		t.Fatalf("first send: %v", err)
	}
	// Buffer is full and the gadget is not reading.
	if err := h.Send(d); !errors.Is(err, ErrBufferFull) {
		t.Errorf("expected ErrBufferFull, got %v", err)
	}
	if h.IsConnected("ep-slow") {
		t.Error("slow gadget should have been dropped")
	}
}

func TestHubReconnectReplaces(t *testing.T) {
	h := NewHub()
	old := fakeClient(h, "ep-1", 1)
	fresh := fakeClient(h, "ep-1", 1)

	if got := h.Connected(); !reflect.DeepEqual(got, []string{"ep-1"}) {
		t.Fatalf("connected: got %v", got)
	}

	// Replaced connection's send channel is closed.
	select {
	case _, ok := <-old.send:
		if ok {
			t.Error("old client received data instead of close")
		}
	default:
		t.Error("old client's send channel should be closed")
	}

	// Unregistering the stale client must not evict the fresh one.
	h.unregister(old)
	if !h.IsConnected("ep-1") {
		t.Error("fresh connection was evicted by the stale unregister")
	}
	_ = fresh
}
