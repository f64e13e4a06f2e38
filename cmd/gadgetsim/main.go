// gadgetsim is a simulated warehouse robot. It connects to a warebot
// server's gadget websocket, prints every control directive it receives,
// and acknowledges it, standing in for the physical robot during
// development.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/warebot/go-warebot/internal/log"
	"github.com/warebot/go-warebot/pkg/directive"
)

type ack struct {
	Type       string `json:"type"`
	EndpointID string `json:"endpointId"`
	Directive  string `json:"directive"`
}

func main() {
	server := flag.String("server", "localhost:8080", "warebot server host:port")
	endpointID := flag.String("endpoint", "", "Endpoint id to register as (default: generated)")
	flag.Parse()

	log.Init("info")

	id := *endpointID
	if id == "" {
		id = "gadgetsim-" + uuid.NewString()
	}

	u := url.URL{
		Scheme:   "ws",
		Host:     *server,
		Path:     "/ws/gadget",
		RawQuery: "endpointId=" + url.QueryEscape(id),
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: connect to %s: %v\n", u.String(), err)
		os.Exit(1)
	}
	defer conn.Close()

	log.Info("gadget connected", "server", *server, "endpointId", id)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				log.Warn("connection closed", "error", err)
				return
			}

			var d directive.Directive
			if err := json.Unmarshal(data, &d); err != nil || d.Type != directive.TypeSendDirective {
				// Registration echo or anything else we don't act on.
				log.Debug("non-directive frame", "data", string(data))
				continue
			}

			log.Info("directive received",
				"action", d.Payload.Type,
				"from", d.Payload.State,
				"to", d.Payload.Location)

			reply := ack{Type: "ack", EndpointID: id, Directive: string(d.Payload.Type)}
			if err := conn.WriteJSON(reply); err != nil {
				log.Warn("ack failed", "error", err)
				return
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		log.Info("shutting down")
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	case <-done:
	}
}
