package quiz

import "context"

// Generator produces a question set for a batch of request items.
type Generator interface {
	// Generate returns a validated Result covering every item, in order.
	// An empty items slice yields ErrEmptySelection without contacting the
	// model. All other failures are reported as *GenerationError.
	Generate(ctx context.Context, items []RequestItem) (*Result, error)
}
