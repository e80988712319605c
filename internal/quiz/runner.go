package quiz

import (
	"context"
	"log/slog"
	"sync"
)

// Runner allows at most one generation at a time and keeps the latest
// result. A new result replaces the previous one wholesale.
type Runner struct {
	gen Generator

	mu     sync.Mutex
	busy   bool
	closed bool
	result *Result
}

// NewRunner wraps gen.
func NewRunner(gen Generator) *Runner {
	return &Runner{gen: gen}
}

// Run generates a result for a snapshot of items and blocks until it
// completes. It returns ErrGenerationInFlight if another Run is active and
// ErrEmptySelection without calling the generator if items is empty. The
// previous result survives a failed run.
func (r *Runner) Run(ctx context.Context, items []RequestItem) (*Result, error) {
	if len(items) == 0 {
		return nil, ErrEmptySelection
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, ErrRunnerClosed
	}
	if r.busy {
		r.mu.Unlock()
		return nil, ErrGenerationInFlight
	}
	r.busy = true
	r.mu.Unlock()

	snapshot := make([]RequestItem, len(items))
	copy(snapshot, items)

	res, err := r.gen.Generate(ctx, snapshot)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.busy = false

	if r.closed {
		slog.Debug("discarding quiz result after runner close")
		return nil, ErrRunnerClosed
	}
	if err != nil {
		return nil, err
	}
	r.result = res
	return res, nil
}

// Busy reports whether a generation is in flight.
func (r *Runner) Busy() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.busy
}

// Result returns the latest successful result, or nil.
func (r *Runner) Result() *Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result
}

// Close stops the runner from accepting or publishing results. A run still
// in flight completes but its result is dropped.
func (r *Runner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
}
