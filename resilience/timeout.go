package resilience

import (
	"context"
	"fmt"
	"time"

	"github.com/jonwraymond/svcops/apperr"
)

// TimeoutConfig configures the timeout guard.
type TimeoutConfig struct {
	// Timeout is the maximum duration for the operation.
	// Default: 30 seconds
	Timeout time.Duration
}

// Timeout races an operation against a deadline.
//
// If the operation completes first its outcome is returned unchanged. If the
// deadline fires first, Execute fails with an operational TIMEOUT error and
// the operation keeps running in the background; its eventual result is
// discarded. This is deliberate best-effort behavior: callers that cannot
// tolerate leaked background work must give the operation its own
// cancellation path.
type Timeout struct {
	config TimeoutConfig
}

// NewTimeout creates a timeout guard with defaults applied.
func NewTimeout(config TimeoutConfig) *Timeout {
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	return &Timeout{config: config}
}

// Execute runs the operation under the deadline. The operation receives the
// caller's context unchanged; the guard does not cancel it on timeout.
func (t *Timeout) Execute(ctx context.Context, op func(context.Context) error) error {
	// Buffered so the abandoned goroutine can finish after a timeout.
	done := make(chan error, 1)
	go func() {
		done <- op(ctx)
	}()

	timer := time.NewTimer(t.config.Timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return newTimeoutError(t.config.Timeout)
	}
}

// Config returns the timeout configuration.
func (t *Timeout) Config() TimeoutConfig {
	return t.config
}

// ExecuteWithTimeout is a convenience function to run an operation under a
// deadline.
func ExecuteWithTimeout(ctx context.Context, timeout time.Duration, op func(context.Context) error) error {
	t := NewTimeout(TimeoutConfig{Timeout: timeout})
	return t.Execute(ctx, op)
}

// TimeoutValue runs a value-returning operation under a deadline. A late
// result is discarded.
func TimeoutValue[T any](ctx context.Context, timeout time.Duration, op func(context.Context) (T, error)) (T, error) {
	type outcome struct {
		value T
		err   error
	}

	done := make(chan outcome, 1)
	go func() {
		v, err := op(ctx)
		done <- outcome{value: v, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var zero T
	select {
	case out := <-done:
		if out.err != nil {
			return zero, out.err
		}
		return out.value, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-timer.C:
		return zero, newTimeoutError(timeout)
	}
}

// newTimeoutError builds the operational timeout failure. The message format
// is load-bearing: callers and tests match on it.
func newTimeoutError(d time.Duration) *apperr.AppError {
	return apperr.NewTimeout(fmt.Sprintf("Operation timed out after %dms", d.Milliseconds()))
}
