package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// retrier wraps a Provider with exponential backoff on transient
// failures. Rate limits honor the vendor's Retry-After when present;
// schema-invalid replies get exactly one second chance.
type retrier struct {
	inner Provider
	cfg   RetryConfig
}

// WithRetry adds retry behavior to a Provider.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &retrier{inner: p, cfg: cfg}
}

func (r *retrier) Generate(ctx context.Context, req Request) (*Response, error) {
	var lastErr error
	invalidRetried := false

	for attempt := 0; attempt < r.cfg.MaxAttempts; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !retryable(err, &invalidRetried) || attempt == r.cfg.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.backoff(attempt, err)):
		}
	}
	return nil, lastErr
}

func (r *retrier) ModelID() string { return r.inner.ModelID() }

// retryable classifies an error. Context errors and token-cap overruns
// never retry; one retry for an invalid reply, since a model that
// produced malformed JSON once will often correct itself but rarely on
// the third try.
func retryable(err error, invalidRetried *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return false
	}

	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		if *invalidRetried {
			return false
		}
		*invalidRetried = true
		return true
	}

	// Rate limits, outages, and plain network errors are transient.
	return true
}

// backoff computes the wait before the next attempt, with ±20% jitter.
func (r *retrier) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.cfg.InitialWait) * math.Pow(r.cfg.Multiplier, float64(attempt))
	wait = math.Min(wait, float64(r.cfg.MaxWait))
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
