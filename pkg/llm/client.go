// Package llm sends prompts to configured LLM endpoints and
// normalizes the wide variety of provider reply shapes into a single
// text response.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sigmapin/go-sigma/internal/httpc"
	"github.com/sigmapin/go-sigma/pkg/registry"
)

// Querier sends a prompt to a resolved endpoint. Implemented by
// *Client and by *Mock for tests.
type Querier interface {
	Query(ctx context.Context, endpoint registry.Endpoint, prompt string, extra map[string]any) (*Response, error)
}

// Response is the normalized reply from an LLM endpoint.
type Response struct {
	// Name and URL identify the endpoint as stored in the registry.
	Name string `json:"name"`
	URL  string `json:"url"`

	// Text is the canonical extracted reply.
	Text string `json:"text"`

	// Status is the HTTP status code.
	Status int `json:"status"`

	// RequestID is the client-generated id sent with the request.
	RequestID string `json:"request_id"`

	// Raw is the response body as received.
	Raw []byte `json:"-"`

	// JSON is the decoded body when the response was JSON, else nil.
	JSON any `json:"-"`
}

// Client queries HTTP LLM endpoints. It performs no retries and keeps
// no state between calls; cancellation belongs to the caller's context.
type Client struct {
	cfg    *Config
	http   *http.Client
	logger *slog.Logger
}

var _ Querier = (*Client)(nil)

// New creates a query client.
func New(opts ...Option) *Client {
	cfg := DefaultConfig()
	cfg.Apply(opts...)

	hc := cfg.HTTPClient
	if hc == nil {
		hc = httpc.NewClient(cfg.Timeout)
	}

	return &Client{
		cfg:    cfg,
		http:   hc,
		logger: cfg.Logger.With("component", "llm.client"),
	}
}

// Query POSTs prompt to the endpoint and returns the normalized reply.
// Extra payload fields are merged into the JSON body but never
// overwrite an explicit prompt. The endpoint URL must be http or
// https; anything else fails before a request is attempted.
func (c *Client) Query(ctx context.Context, endpoint registry.Endpoint, prompt string, extra map[string]any) (*Response, error) {
	target := strings.TrimSpace(endpoint.URL)
	parsed, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("llm: endpoint %q has invalid URL: %w", endpoint.Name, err)
	}
	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, fmt.Errorf("llm: endpoint %q uses scheme %q: %w",
			endpoint.Name, parsed.Scheme, ErrUnsupportedScheme)
	}

	body, err := buildPayload(prompt, extra)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("llm: build request for %q: %w", endpoint.Name, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Accept", "application/json, text/plain")
	req.Header.Set("X-Request-ID", requestID)
	if auth := c.authorization(); auth != "" {
		req.Header.Set("Authorization", auth)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint.Name, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint.Name, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Endpoint: endpoint.Name, StatusCode: resp.StatusCode}
	}

	// Attempt JSON regardless of the declared content-type; providers
	// mislabel JSON as plain text. A body that fails to decode is the
	// plain-text reply itself.
	text := string(raw)
	var decoded any
	if len(raw) > 0 && json.Unmarshal(raw, &decoded) == nil {
		extracted, err := ExtractText(decoded)
		if err != nil {
			return nil, fmt.Errorf("llm: endpoint %q: %w", endpoint.Name, err)
		}
		text = extracted
	} else {
		decoded = nil
	}

	c.logger.Debug("query completed",
		"endpoint", endpoint.Name,
		"status", resp.StatusCode,
		"request_id", requestID,
		"latency_ms", time.Since(start).Milliseconds(),
	)

	return &Response{
		Name:      endpoint.Name,
		URL:       endpoint.URL,
		Text:      text,
		Status:    resp.StatusCode,
		RequestID: requestID,
		Raw:       raw,
		JSON:      decoded,
	}, nil
}

// authorization builds the Authorization header value. An empty
// scheme sends the bare token.
func (c *Client) authorization() string {
	token := strings.TrimSpace(c.cfg.AuthToken)
	if token == "" {
		return ""
	}
	scheme := strings.TrimSpace(c.cfg.AuthScheme)
	if scheme == "" {
		return token
	}
	return scheme + " " + token
}
