package llm

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"
)

// RetryProvider retries transient failures with capped exponential
// backoff. Schema violations get a single second chance; truncation and
// cancellation are returned at once.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
	sleep  func(ctx context.Context, d time.Duration) error
}

// WithRetry wraps p with the retry policy in cfg. MaxAttempts below one
// means a single attempt.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, config: cfg, sleep: sleepCtx}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.config.MaxAttempts, 1)
	usedOnce := false

	for attempt := 1; ; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		switch classify(err) {
		case retryNever:
			return nil, err
		case retryOnce:
			if usedOnce {
				return nil, err
			}
			usedOnce = true
		}
		if attempt >= attempts {
			return nil, err
		}

		wait := r.wait(attempt, err)
		slog.Warn("llm call failed, retrying",
			"purpose", PurposeFrom(ctx),
			"model", r.inner.ModelID(),
			"attempt", attempt,
			"of", attempts,
			"wait", wait,
			"error", err,
		)
		if err := r.sleep(ctx, wait); err != nil {
			return nil, err
		}
	}
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// wait is the pause before attempt+1. A provider-supplied RetryAfter wins;
// otherwise InitialWait grows by Multiplier per attempt up to MaxWait,
// with ±20% jitter.
func (r *RetryProvider) wait(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	d := float64(r.config.InitialWait)
	for range attempt - 1 {
		d *= r.config.Multiplier
	}
	if limit := float64(r.config.MaxWait); limit > 0 && d > limit {
		d = limit
	}
	d *= 0.8 + 0.4*rand.Float64()
	return time.Duration(max(d, 0))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// timeoutProvider bounds each Generate, retries included.
type timeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

// WithTimeout caps every call on p at d. A zero d returns p unchanged.
func WithTimeout(p Provider, d time.Duration) Provider {
	if d <= 0 {
		return p
	}
	return &timeoutProvider{inner: p, timeout: d}
}

func (t *timeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Generate(ctx, req)
}

func (t *timeoutProvider) ModelID() string {
	return t.inner.ModelID()
}
