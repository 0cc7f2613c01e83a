package health

import (
	"context"
	"fmt"

	"github.com/jonwraymond/svcops/resilience"
)

// BreakerCheck derives a component's health from the circuit breaker that
// guards it. A closed breaker is healthy, a half-open breaker is degraded
// while recovery probes are in flight, and an open breaker is unhealthy.
type BreakerCheck struct {
	name    string
	breaker *resilience.CircuitBreaker
}

// NewBreakerCheck creates a checker over the given breaker.
func NewBreakerCheck(name string, breaker *resilience.CircuitBreaker) *BreakerCheck {
	return &BreakerCheck{name: name, breaker: breaker}
}

// Name implements Checker.
func (c *BreakerCheck) Name() string {
	return c.name
}

// Check implements Checker. It reads breaker state without mutating it.
func (c *BreakerCheck) Check(ctx context.Context) Result {
	snap := c.breaker.Snapshot()

	details := map[string]any{
		"state":    snap.State.String(),
		"failures": snap.FailureCount,
	}
	if !snap.LastFailure.IsZero() {
		details["lastFailure"] = snap.LastFailure.UTC().Format("2006-01-02T15:04:05.000Z07:00")
	}

	switch snap.State {
	case resilience.StateOpen:
		return Unhealthy(
			fmt.Sprintf("circuit open after %d consecutive failures", snap.FailureCount),
			resilience.ErrCircuitOpen,
		).WithDetails(details)
	case resilience.StateHalfOpen:
		return Degraded("circuit half-open, probing recovery").WithDetails(details)
	default:
		return Healthy("circuit closed").WithDetails(details)
	}
}
