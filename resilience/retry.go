package resilience

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"github.com/jonwraymond/svcops/apperr"
)

// BackoffStrategy defines how delays grow between retries.
type BackoffStrategy int

const (
	// BackoffExponential multiplies the delay by Multiplier each attempt.
	BackoffExponential BackoffStrategy = iota
	// BackoffLinear increases the delay linearly.
	BackoffLinear
	// BackoffConstant uses the same delay for all retries.
	BackoffConstant
)

// RetryConfig configures the retry policy.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts, including the initial
	// one. Must be >= 1.
	// Default: 3
	MaxAttempts int

	// BaseDelay is the wait before the first retry. The wait after attempt i
	// is BaseDelay scaled by the strategy with exponent i-1, so the first
	// retry waits exactly BaseDelay.
	// Default: 100ms
	BaseDelay time.Duration

	// MaxDelay caps the delay between retries regardless of strategy.
	// Default: 30s
	MaxDelay time.Duration

	// Multiplier is the growth factor for exponential backoff.
	// Default: 2.0
	Multiplier float64

	// Strategy selects the backoff growth function.
	// Default: BackoffExponential
	Strategy BackoffStrategy

	// Jitter adds up to 25% randomness to delays to prevent thundering
	// herd. Off by default so delays are exactly reproducible.
	Jitter bool

	// RetryIf determines whether an error should trigger another attempt.
	// Default: apperr.IsTransient, so only transient operational errors
	// (timeouts, network failures, rate limits) are retried.
	RetryIf func(err error) bool

	// OnRetry is called before each retry attempt.
	OnRetry func(attempt int, err error, delay time.Duration)
}

// Retry repeats a failing operation under a policy. A Retry value is
// stateless and reentrant: concurrent Execute calls never interfere.
type Retry struct {
	config RetryConfig
}

// NewRetry creates a retry handler with defaults applied.
func NewRetry(config RetryConfig) *Retry {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 3
	}
	if config.BaseDelay <= 0 {
		config.BaseDelay = 100 * time.Millisecond
	}
	if config.MaxDelay <= 0 {
		config.MaxDelay = 30 * time.Second
	}
	if config.Multiplier <= 0 {
		config.Multiplier = 2.0
	}
	if config.RetryIf == nil {
		config.RetryIf = apperr.IsTransient
	}

	return &Retry{config: config}
}

// Execute invokes op up to MaxAttempts times. After attempt i fails, the
// last error propagates when i equals MaxAttempts or RetryIf reports false;
// otherwise Execute waits the backoff delay (honoring ctx cancellation)
// before the next attempt. On success the operation's outcome is returned
// unchanged and no further attempts occur.
func (r *Retry) Execute(ctx context.Context, op func(context.Context) error) error {
	var lastErr error

	for attempt := 1; attempt <= r.config.MaxAttempts; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}

		lastErr = err

		if !r.config.RetryIf(err) {
			return err
		}
		if attempt >= r.config.MaxAttempts {
			break
		}

		delay := r.delayFor(attempt)
		if r.config.OnRetry != nil {
			r.config.OnRetry(attempt, err, delay)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return lastErr
}

// delayFor computes the wait after the given failed attempt (1-based).
func (r *Retry) delayFor(attempt int) time.Duration {
	var delay time.Duration

	switch r.config.Strategy {
	case BackoffConstant:
		delay = r.config.BaseDelay
	case BackoffLinear:
		delay = r.config.BaseDelay * time.Duration(attempt)
	case BackoffExponential:
		multiplier := math.Pow(r.config.Multiplier, float64(attempt-1))
		delay = time.Duration(float64(r.config.BaseDelay) * multiplier)
	}

	if delay > r.config.MaxDelay {
		delay = r.config.MaxDelay
	}

	if r.config.Jitter && delay > 0 {
		// #nosec G404 -- jitter is non-cryptographic timing variance.
		delay += time.Duration(rand.Int64N(int64(delay / 4)))
	}

	return delay
}

// Config returns the retry configuration.
func (r *Retry) Config() RetryConfig {
	return r.config
}

// RetryValue runs a value-returning operation with retry logic. On success
// the operation's result is returned; no partial results are exposed on
// failure.
func RetryValue[T any](ctx context.Context, r *Retry, op func(context.Context) (T, error)) (T, error) {
	var result T
	err := r.Execute(ctx, func(ctx context.Context) error {
		v, err := op(ctx)
		if err != nil {
			return err
		}
		result = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
