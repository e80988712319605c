package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrRateLimit is a 429 from the provider. RetryAfter is zero when the
// provider did not say how long to wait.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("llm: rate limited, retry in %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("llm: rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse carries model output that failed schema validation.
// Content is kept for the event log.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("llm: response does not match schema: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers 5xx responses, network failures and
// missing backends.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "llm: provider unavailable"
	}
	return fmt.Sprintf("llm: provider unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded means the output was cut at MaxTokens. A quiz batch
// that hits it needs a larger budget or fewer questions, not a retry.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return fmt.Sprintf("llm: output truncated at max tokens (%d bytes received)", len(e.Content))
}

// ErrRequestRejected is a 4xx other than 429: a bad key, an unknown model
// or a request the provider refuses. Retrying cannot help.
type ErrRequestRejected struct {
	Status int
	Err    error
}

func (e *ErrRequestRejected) Error() string {
	return fmt.Sprintf("llm: request rejected (HTTP %d): %v", e.Status, e.Err)
}

func (e *ErrRequestRejected) Unwrap() error { return e.Err }

// retryPolicy says how often an error may be retried within one call.
type retryPolicy int

const (
	retryNever retryPolicy = iota
	retryOnce
	retryAlways
)

// classify maps an error to its retry policy. Unrecognized errors are
// treated as transient network failures.
func classify(err error) retryPolicy {
	var (
		maxTok   *ErrMaxTokensExceeded
		invalid  *ErrInvalidResponse
		rejected *ErrRequestRejected
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return retryNever
	case errors.As(err, &maxTok), errors.As(err, &rejected):
		return retryNever
	case errors.As(err, &invalid):
		return retryOnce
	default:
		return retryAlways
	}
}
