// Package gateway exposes the endpoint registry and LLM query client
// over HTTP and WebSocket for sigma pins.
package gateway

import (
	"log/slog"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/sigmapin/go-sigma/pkg/llm"
)

// OverrideSource supplies the ambient default endpoint name, with the
// same semantics as os.LookupEnv. Injecting it keeps the server
// testable without touching the process environment.
type OverrideSource func() (string, bool)

// Server routes pin requests to configured LLM endpoints.
type Server struct {
	app          *fiber.App
	registryPath string
	override     OverrideSource
	querier      llm.Querier
	queryTimeout time.Duration
	logger       *slog.Logger
	hub          *Hub
	latency      *latencyWindow
}

// Option configures the server.
type Option func(*Server)

// WithRegistryPath sets the llms.txt document path.
func WithRegistryPath(path string) Option {
	return func(s *Server) { s.registryPath = path }
}

// WithQuerier sets the LLM querier.
func WithQuerier(q llm.Querier) Option {
	return func(s *Server) { s.querier = q }
}

// WithOverrideSource sets the ambient endpoint override source.
func WithOverrideSource(src OverrideSource) Option {
	return func(s *Server) { s.override = src }
}

// WithQueryTimeout bounds a single upstream LLM request.
func WithQueryTimeout(d time.Duration) Option {
	return func(s *Server) { s.queryTimeout = d }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New creates the gateway server.
func New(opts ...Option) *Server {
	s := &Server{
		registryPath: "llms.txt",
		override:     func() (string, bool) { return "", false },
		querier:      llm.New(),
		queryTimeout: 30 * time.Second,
		logger:       slog.Default(),
		hub:          NewHub(),
		latency:      newLatencyWindow(256),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "gateway")

	app := fiber.New(fiber.Config{
		AppName:               "sigma-gateway",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type,Authorization",
	}))

	app.Get("/health", s.handleHealth)

	api := app.Group("/api")
	api.Get("/endpoints", s.handleListEndpoints)
	api.Get("/endpoints/resolve", s.handleResolveEndpoint)
	api.Post("/query", s.handleQuery)
	api.Get("/stats", s.handleStats)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/pin/:id", websocket.New(s.handlePinSocket))

	s.app = app
	return s
}

// App exposes the fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen starts serving on addr and blocks.
func (s *Server) Listen(addr string) error {
	s.logger.Info("gateway listening", "addr", addr, "registry", s.registryPath)
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
