package llm

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sigmapin/go-sigma/pkg/registry"
)

// Mock implements Querier for testing.
type Mock struct {
	// QueryFunc is called when Query is invoked.
	QueryFunc func(ctx context.Context, endpoint registry.Endpoint, prompt string, extra map[string]any) (*Response, error)

	mu    sync.Mutex
	calls []MockCall
}

var _ Querier = (*Mock)(nil)

// MockCall records a method invocation.
type MockCall struct {
	Endpoint string
	Prompt   string
	Time     time.Time
}

// NewMock creates a mock querier that echoes the prompt back.
func NewMock() *Mock {
	return &Mock{
		QueryFunc: func(ctx context.Context, endpoint registry.Endpoint, prompt string, extra map[string]any) (*Response, error) {
			return &Response{
				Name:      endpoint.Name,
				URL:       endpoint.URL,
				Text:      "mock reply to: " + prompt,
				Status:    http.StatusOK,
				RequestID: uuid.NewString(),
			}, nil
		},
	}
}

// Query calls QueryFunc and records the call.
func (m *Mock) Query(ctx context.Context, endpoint registry.Endpoint, prompt string, extra map[string]any) (*Response, error) {
	m.record(endpoint.Name, prompt)
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, endpoint, prompt, extra)
	}
	return nil, &TransportError{Endpoint: endpoint.Name, Err: context.Canceled}
}

// Calls returns all recorded invocations.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockCall(nil), m.calls...)
}

// CallCount returns the number of recorded invocations.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *Mock) record(endpoint, prompt string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MockCall{Endpoint: endpoint, Prompt: prompt, Time: time.Now()})
}
