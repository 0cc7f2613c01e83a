package health

import (
	"context"
	"time"
)

// Status is a component health state. Ordering matters: higher values are
// worse, and an aggregate report carries the worst status among its parts.
type Status int

const (
	// StatusHealthy indicates the component is functioning normally.
	StatusHealthy Status = iota
	// StatusDegraded indicates the component works but with reduced
	// capacity or confidence.
	StatusDegraded
	// StatusUnhealthy indicates the component is not functioning.
	StatusUnhealthy
)

func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusDegraded:
		return "degraded"
	case StatusUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// Result is the outcome of one health check.
type Result struct {
	// Status is the component's health state.
	Status Status

	// Message describes the state in human terms.
	Message string

	// Details carries check-specific metadata.
	Details map[string]any

	// Duration is how long the check took.
	Duration time.Duration

	// Timestamp is when the check ran.
	Timestamp time.Time

	// Error is set when the check failed.
	Error error
}

// Healthy creates a healthy result.
func Healthy(message string) Result {
	return Result{Status: StatusHealthy, Message: message, Timestamp: time.Now().UTC()}
}

// Degraded creates a degraded result.
func Degraded(message string) Result {
	return Result{Status: StatusDegraded, Message: message, Timestamp: time.Now().UTC()}
}

// Unhealthy creates an unhealthy result.
func Unhealthy(message string, err error) Result {
	return Result{Status: StatusUnhealthy, Message: message, Error: err, Timestamp: time.Now().UTC()}
}

// WithDetails returns a copy of the result carrying the given details.
func (r Result) WithDetails(details map[string]any) Result {
	r.Details = details
	return r
}

// Checker reports one component's health.
type Checker interface {
	// Name identifies the component in reports.
	Name() string

	// Check runs the health check. It should honor ctx cancellation.
	Check(ctx context.Context) Result
}

// FuncCheck adapts a function into a Checker.
type FuncCheck struct {
	name string
	fn   func(context.Context) Result
}

// NewFuncCheck creates a checker from a function.
func NewFuncCheck(name string, fn func(context.Context) Result) *FuncCheck {
	return &FuncCheck{name: name, fn: fn}
}

// Name implements Checker.
func (f *FuncCheck) Name() string {
	return f.name
}

// Check implements Checker.
func (f *FuncCheck) Check(ctx context.Context) Result {
	return f.fn(ctx)
}
