package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sigmapin/go-sigma/pkg/llm"
	"github.com/sigmapin/go-sigma/pkg/registry"
)

// QueryRequest is the body of POST /api/query and of pin WebSocket
// messages.
type QueryRequest struct {
	Prompt string         `json:"prompt"`
	Name   string         `json:"name,omitempty"`
	Extra  map[string]any `json:"extra,omitempty"`
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"pins":   s.hub.PinCount(),
	})
}

func (s *Server) handleListEndpoints(c *fiber.Ctx) error {
	reg, err := registry.Load(s.registryPath)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if reg == nil {
		reg = registry.Registry{}
	}
	return c.JSON(fiber.Map{
		"endpoints": reg,
		"count":     len(reg),
	})
}

func (s *Server) handleResolveEndpoint(c *fiber.Ctx) error {
	name := c.Query("name")
	reg, err := registry.Load(s.registryPath)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	override, overrideSet := s.override()
	ep, err := reg.Resolve(name, override, overrideSet)
	if err != nil {
		return s.resolveError(c, err)
	}
	return c.JSON(fiber.Map{
		"name":       ep.Name,
		"url":        ep.URL,
		"is_default": name == "" && !overrideSet,
	})
}

func (s *Server) handleQuery(c *fiber.Ctx) error {
	var req QueryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	resp, err := s.runQuery(c.UserContext(), req)
	if err != nil {
		return s.queryError(c, err)
	}
	return c.JSON(resp)
}

func (s *Server) handleStats(c *fiber.Ctx) error {
	snap := s.latency.snapshot()
	return c.JSON(fiber.Map{
		"pins":              s.hub.PinCount(),
		"messages_received": s.hub.MessagesReceived(),
		"messages_sent":     s.hub.MessagesSent(),
		"requests":          snap.Requests,
		"avg_latency_ms":    snap.AvgMs,
		"last_latency_ms":   snap.LastMs,
		"last_latency_rank": snap.LastRank,
	})
}

// runQuery resolves the endpoint and performs one LLM request,
// recording its latency.
func (s *Server) runQuery(parent context.Context, req QueryRequest) (*llm.Response, error) {
	reg, err := registry.Load(s.registryPath)
	if err != nil {
		return nil, err
	}
	override, overrideSet := s.override()
	ep, err := reg.Resolve(req.Name, override, overrideSet)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(parent, s.queryTimeout)
	defer cancel()

	start := time.Now()
	resp, err := s.querier.Query(ctx, ep, req.Prompt, req.Extra)
	if err != nil {
		return nil, err
	}
	s.latency.record(time.Since(start))

	s.logger.Info("query routed",
		"endpoint", resp.Name,
		"status", resp.Status,
		"request_id", resp.RequestID,
	)
	return resp, nil
}

// resolveError maps registry failures onto HTTP statuses.
func (s *Server) resolveError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case registry.IsNotFound(err):
		status = fiber.StatusNotFound
	case errors.Is(err, registry.ErrEmptyName), errors.Is(err, registry.ErrEmptyOverride):
		status = fiber.StatusBadRequest
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// queryError maps query failures onto HTTP statuses. Upstream
// endpoint failures surface as 502 so pins can tell them apart from
// their own bad requests.
func (s *Server) queryError(c *fiber.Ctx, err error) error {
	var (
		shapeErr     *llm.ShapeError
		apiErr       *llm.APIError
		transportErr *llm.TransportError
	)
	switch {
	case registry.IsNotFound(err),
		errors.Is(err, registry.ErrEmptyName),
		errors.Is(err, registry.ErrEmptyOverride):
		return s.resolveError(c, err)
	case errors.Is(err, llm.ErrUnsupportedScheme),
		errors.Is(err, llm.ErrEmptyPrompt),
		errors.Is(err, llm.ErrEmptyPayload):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &shapeErr), errors.As(err, &apiErr), errors.As(err, &transportErr):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
