package resilience

import (
	"context"
	"time"

	"github.com/jonwraymond/svcops/apperr"
	"github.com/jonwraymond/svcops/logx"
)

// Executor composes multiple resilience patterns around one operation.
type Executor struct {
	circuitBreaker *CircuitBreaker
	retry          *Retry
	rateLimiter    *RateLimiter
	bulkhead       *Bulkhead
	timeout        *Timeout
	logger         *logx.Logger
	instruments    *Instruments
	name           string
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// NewExecutor creates a resilience executor.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{
		logger: logx.Nop(),
		name:   "operation",
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithCircuitBreaker adds a circuit breaker to the executor.
func WithCircuitBreaker(cb *CircuitBreaker) ExecutorOption {
	return func(e *Executor) {
		e.circuitBreaker = cb
	}
}

// WithRetry adds retry logic to the executor.
func WithRetry(r *Retry) ExecutorOption {
	return func(e *Executor) {
		e.retry = r
	}
}

// WithRateLimiter adds rate limiting to the executor.
func WithRateLimiter(rl *RateLimiter) ExecutorOption {
	return func(e *Executor) {
		e.rateLimiter = rl
	}
}

// WithBulkhead adds bulkhead isolation to the executor.
func WithBulkhead(b *Bulkhead) ExecutorOption {
	return func(e *Executor) {
		e.bulkhead = b
	}
}

// WithTimeout adds a timeout guard to the executor.
func WithTimeout(timeout time.Duration) ExecutorOption {
	return func(e *Executor) {
		e.timeout = NewTimeout(TimeoutConfig{Timeout: timeout})
	}
}

// WithTimeoutConfig adds a preconfigured timeout guard to the executor.
func WithTimeoutConfig(t *Timeout) ExecutorOption {
	return func(e *Executor) {
		e.timeout = t
	}
}

// WithLogger sets the logger the executor reports outcomes to.
func WithLogger(l *logx.Logger) ExecutorOption {
	return func(e *Executor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithInstruments attaches telemetry instruments to the executor.
func WithInstruments(in *Instruments) ExecutorOption {
	return func(e *Executor) {
		e.instruments = in
	}
}

// WithName names the protected operation in log entries and telemetry.
func WithName(name string) ExecutorOption {
	return func(e *Executor) {
		if name != "" {
			e.name = name
		}
	}
}

// Execute runs the operation through all configured resilience patterns.
//
// The layering order, outermost first, is:
//  1. Rate Limiter - limits request rate
//  2. Bulkhead - limits concurrency
//  3. Circuit Breaker - prevents cascading failures
//  4. Retry - retries on transient failure
//  5. Timeout - limits execution time
//
// Retry sits inside the breaker, so a breaker rejection is never retried;
// the timeout sits innermost, so each retry attempt gets its own deadline.
// The final outcome is reported to the logger: DEBUG on success, WARN for
// operational failures, ERROR (with stack) for defects.
func (e *Executor) Execute(ctx context.Context, op func(context.Context) error) error {
	execute := op

	if e.timeout != nil {
		inner := execute
		execute = func(ctx context.Context) error {
			return e.timeout.Execute(ctx, inner)
		}
	}

	if e.retry != nil {
		inner := execute
		execute = func(ctx context.Context) error {
			return e.retry.Execute(ctx, inner)
		}
	}

	if e.circuitBreaker != nil {
		inner := execute
		execute = func(ctx context.Context) error {
			return e.circuitBreaker.Execute(ctx, inner)
		}
	}

	if e.bulkhead != nil {
		inner := execute
		execute = func(ctx context.Context) error {
			return e.bulkhead.Execute(ctx, inner)
		}
	}

	if e.rateLimiter != nil {
		inner := execute
		execute = func(ctx context.Context) error {
			return e.rateLimiter.Execute(ctx, inner)
		}
	}

	start := time.Now()
	err := execute(ctx)
	duration := time.Since(start)

	e.report(ctx, err, duration)
	if e.instruments != nil {
		e.instruments.Record(ctx, e.name, duration, err)
	}
	return err
}

// ExecuteValue runs a value-returning operation through the executor.
func ExecuteValue[T any](ctx context.Context, e *Executor, op func(context.Context) (T, error)) (T, error) {
	var result T
	err := e.Execute(ctx, func(ctx context.Context) error {
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

// report logs the outcome per the propagation policy: operational failures
// at WARN, defects at ERROR with stack, rejections at WARN.
func (e *Executor) report(ctx context.Context, err error, duration time.Duration) {
	fields := []logx.Field{
		logx.F("operation", e.name),
		logx.F("durationMs", duration.Milliseconds()),
	}

	switch {
	case err == nil:
		e.logger.Debug(ctx, "operation succeeded", fields...)
	case isRejection(err):
		e.logger.Warn(ctx, "operation rejected", append(fields, logx.Err(err))...)
	case apperr.IsOperational(err):
		e.logger.Warn(ctx, "operation failed", append(fields, logx.Err(err))...)
	default:
		e.logger.Error(ctx, "operation failed", append(fields, logx.Err(apperr.Normalize(err)))...)
	}
}
