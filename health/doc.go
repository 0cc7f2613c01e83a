// Package health reports dependency health, including the state of circuit
// breakers guarding those dependencies.
//
// A Checker reports one component's health as a Result with a Status of
// Healthy, Degraded, or Unhealthy. BreakerCheck derives health from a
// circuit breaker: a closed breaker is healthy, a half-open breaker is
// degraded while probes are in flight, and an open breaker is unhealthy.
//
// Use Aggregator to combine checkers into one composite report:
//
//	agg := health.NewAggregator(health.AggregatorConfig{Timeout: 5 * time.Second})
//	agg.Register(health.NewBreakerCheck("payments", paymentsBreaker))
//	agg.Register(health.NewFuncCheck("database", pingDatabase))
//
//	report := agg.Report(ctx)
//	if report.Status == health.StatusUnhealthy {
//	    // shed load, alert, etc.
//	}
package health
