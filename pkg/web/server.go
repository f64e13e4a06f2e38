// Package web exposes the warehouse controller over HTTP: a command
// endpoint for the conversational front end, read-only state queries,
// and the websocket that connected gadgets receive their directives on.
package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/warebot/go-warebot/internal/log"
	"github.com/warebot/go-warebot/pkg/discovery"
	"github.com/warebot/go-warebot/pkg/gadget"
	"github.com/warebot/go-warebot/pkg/skill"
)

// Config wires the server's collaborators.
type Config struct {
	Addr       string
	AuthSecret string            // empty disables auth
	Dispatcher *skill.Dispatcher // required
	Hub        *gadget.Hub       // required
	Discovery  *discovery.Client // optional remote endpoint enumeration
}

// Server is the warebot HTTP surface.
type Server struct {
	app      *fiber.App
	addr     string
	dispatch *skill.Dispatcher
	hub      *gadget.Hub
	discover *discovery.Client
}

// NewServer builds the fiber app and its routes.
func NewServer(cfg Config) *Server {
	s := &Server{
		addr:     cfg.Addr,
		dispatch: cfg.Dispatcher,
		hub:      cfg.Hub,
		discover: cfg.Discovery,
	}

	app := fiber.New(fiber.Config{
		AppName:               "Warebot",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	app.Get("/healthz", s.handleHealth)

	// API routes
	api := app.Group("/v1")
	if cfg.AuthSecret != "" {
		api.Use(RequireAuth(cfg.AuthSecret))
	}
	api.Post("/command", s.handleCommand)
	api.Get("/warehouse", s.handleWarehouse)
	api.Get("/endpoints", s.handleEndpoints)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	// WebSocket routes
	app.Get("/ws/gadget", websocket.New(s.handleGadgetWS))

	s.app = app
	return s
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	log.Info("warebot listening", "addr", s.addr)
	return s.app.Listen(s.addr)
}

// StartAsync starts the server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("web server stopped", "error", err)
		}
	}()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}
