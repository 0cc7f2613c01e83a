// Package resilience provides failure-handling patterns for outbound calls.
//
// This package implements the resilience primitives the dashboard's request
// handlers and job consumer wrap around LLM invocations and persistence
// calls. The patterns can be composed together to build robust execution
// pipelines.
//
// # Patterns
//
//   - Circuit Breaker: stops calling a failing dependency after a threshold
//     of consecutive failures, periodically probing recovery.
//
//   - Retry: repeats a failing operation under a policy with configurable
//     backoff growth (exponential, linear, constant) and a delay cap.
//
//   - Timeout: races an operation against a deadline. The underlying
//     operation is not cancelled when the deadline fires; see Timeout.
//
//   - Bulkhead: limits concurrent operations to prevent resource exhaustion.
//
//   - Rate Limiter: controls the rate of operations.
//
// # Usage
//
// Each pattern can be used independently or composed together:
//
//	cb := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
//	    FailureThreshold: 5,
//	    ResetTimeout:     30 * time.Second,
//	})
//
//	retry := resilience.NewRetry(resilience.RetryConfig{
//	    MaxAttempts: 3,
//	    BaseDelay:   100 * time.Millisecond,
//	})
//
//	executor := resilience.NewExecutor(
//	    resilience.WithCircuitBreaker(cb),
//	    resilience.WithRetry(retry),
//	    resilience.WithTimeout(5*time.Second),
//	)
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return callExternalService(ctx)
//	})
//
// The composition order is rate limiter, bulkhead, circuit breaker, retry,
// timeout, outermost first. Retry runs inside the breaker, so a breaker
// rejection is never retried and never counted as a dependency failure.
//
// # Error classification
//
// By default retries trigger only for transient operational errors
// (apperr.IsTransient): timeouts, network failures, rate limits, transient
// database and availability errors. Defects propagate immediately.
package resilience
