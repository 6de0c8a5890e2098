package llm

import (
	"log/slog"
	"net/http"
	"time"
)

// Config holds query client configuration.
type Config struct {
	// Timeout bounds a single request when no custom HTTP client is set.
	Timeout time.Duration

	// AuthToken, when non-empty, is sent in the Authorization header.
	AuthToken string

	// AuthScheme prefixes the token ("Bearer" by default). An empty
	// scheme sends the bare token.
	AuthScheme string

	// HTTPClient overrides the default client built from Timeout.
	HTTPClient *http.Client

	// Logger is the structured logger.
	Logger *slog.Logger
}

// Option is a functional option for configuring the client.
type Option func(*Config)

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) { c.Timeout = d }
}

// WithAuthToken sets the Authorization token.
func WithAuthToken(token string) Option {
	return func(c *Config) { c.AuthToken = token }
}

// WithAuthScheme sets the Authorization scheme. Pass "" to send the
// bare token.
func WithAuthScheme(scheme string) Option {
	return func(c *Config) { c.AuthScheme = scheme }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Config) { c.HTTPClient = hc }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// DefaultConfig returns the client defaults.
func DefaultConfig() *Config {
	return &Config{
		Timeout:    10 * time.Second,
		AuthScheme: "Bearer",
		Logger:     slog.Default(),
	}
}

// Apply applies functional options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}
