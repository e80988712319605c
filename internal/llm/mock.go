package llm

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"sync"
)

const mockModel = "mock"

var errMockDrained = errors.New("mock: response queue is empty")

// MockResponse is one queued reply of a MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Model   string // "" reports mockModel
	Err     error

	// Hold blocks the call until it is closed or the context ends.
	Hold <-chan struct{}
}

// MockText queues a plain-text reply, the shape chat turns come back in.
func MockText(text string) MockResponse {
	b, _ := json.Marshal(text)
	return MockResponse{Content: b}
}

// MockProvider replays queued responses in order. It records every request
// together with the purpose label it was sent under.
type MockProvider struct {
	mu       sync.Mutex
	queue    []MockResponse
	Calls    []Request
	Purposes []string
}

// NewMockProvider queues responses for successive Generate calls. Once the
// queue is empty every call fails with ErrProviderUnavailable.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{queue: slices.Clone(responses)}
}

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	next, ok := m.take(ctx, req)
	if !ok {
		return nil, &ErrProviderUnavailable{Err: errMockDrained}
	}

	if next.Hold != nil {
		select {
		case <-next.Hold:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if next.Err != nil {
		return nil, next.Err
	}

	model := next.Model
	if model == "" {
		model = mockModel
	}
	return &Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      model,
		StopReason: "end",
	}, nil
}

// take records the call and pops the next response.
func (m *MockProvider) take(ctx context.Context, req Request) (MockResponse, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	m.Purposes = append(m.Purposes, PurposeFrom(ctx))
	if len(m.queue) == 0 {
		return MockResponse{}, false
	}
	next := m.queue[0]
	m.queue = m.queue[1:]
	return next, true
}

func (m *MockProvider) ModelID() string { return mockModel }

// Enqueue appends responses after those already queued.
func (m *MockProvider) Enqueue(responses ...MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, responses...)
}

// CallCount returns how many Generate calls were made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Pending returns how many queued responses are left.
func (m *MockProvider) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}
