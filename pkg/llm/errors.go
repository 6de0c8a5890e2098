package llm

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for request validation.
var (
	// ErrUnsupportedScheme is returned for endpoint URLs that are not
	// http or https. This is a configuration error detected before any
	// request is attempted.
	ErrUnsupportedScheme = errors.New("llm: endpoint URL scheme must be http or https")

	// ErrEmptyPrompt is returned when a prompt trims to nothing.
	ErrEmptyPrompt = errors.New("llm: prompt must be non-empty")

	// ErrEmptyPayload is returned when neither a prompt nor extra
	// payload fields were provided.
	ErrEmptyPayload = errors.New("llm: payload must include at least one field")
)

// ShapeError reports a response that parsed as JSON but matched no
// known provider shape. This is a hard error: it signals an
// unsupported or changed provider contract.
type ShapeError struct {
	// Keys lists the top-level JSON object keys, for diagnostics.
	Keys []string
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	if len(e.Keys) == 0 {
		return "llm: response JSON matches no known provider shape"
	}
	keys := append([]string(nil), e.Keys...)
	sort.Strings(keys)
	return fmt.Sprintf("llm: response JSON matches no known provider shape (top-level keys: %s)",
		strings.Join(keys, ", "))
}

// TransportError wraps a network-level failure from the HTTP layer
// unchanged; this package does not classify it further and never
// retries.
type TransportError struct {
	Endpoint string
	Err      error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("llm: request to %q failed: %v", e.Endpoint, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError represents a non-2xx HTTP status from an LLM endpoint.
type APIError struct {
	Endpoint   string
	StatusCode int
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("llm: endpoint %q returned HTTP status %d", e.Endpoint, e.StatusCode)
}

// IsServerError returns true for a server-side failure (HTTP 5xx).
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// IsRateLimited returns true for a rate limit response (HTTP 429).
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == 429
}
