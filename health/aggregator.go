package health

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonwraymond/svcops/logx"
)

// AggregatorConfig configures the health aggregator.
type AggregatorConfig struct {
	// Timeout bounds a full Report run. Checks that do not finish in time
	// report unhealthy with ErrCheckTimeout.
	// Default: 10 seconds
	Timeout time.Duration

	// Logger receives a WARN entry for every non-healthy check result.
	// Default: logx.Nop()
	Logger *logx.Logger
}

// Report is the composite outcome of all registered checks.
type Report struct {
	// Status is the worst status among the results.
	Status Status

	// Results maps checker name to its result.
	Results map[string]Result

	// Timestamp is when the report was assembled.
	Timestamp time.Time
}

// Aggregator combines registered checkers into a single composite report.
// Registration and reporting are safe for concurrent use.
type Aggregator struct {
	config AggregatorConfig

	mu       sync.RWMutex
	checkers map[string]Checker
	order    []string
}

// NewAggregator creates an aggregator with defaults applied.
func NewAggregator(config AggregatorConfig) *Aggregator {
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	if config.Logger == nil {
		config.Logger = logx.Nop()
	}

	return &Aggregator{
		config:   config,
		checkers: make(map[string]Checker),
	}
}

// Register adds a checker. Registering the same name again replaces the
// previous checker.
func (a *Aggregator) Register(checker Checker) {
	a.mu.Lock()
	defer a.mu.Unlock()

	name := checker.Name()
	if _, exists := a.checkers[name]; !exists {
		a.order = append(a.order, name)
	}
	a.checkers[name] = checker
}

// Unregister removes a checker by name.
func (a *Aggregator) Unregister(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	delete(a.checkers, name)
	for i, n := range a.order {
		if n == name {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
}

// Names returns the registered checker names in registration order.
func (a *Aggregator) Names() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	names := make([]string, len(a.order))
	copy(names, a.order)
	return names
}

// Check runs one named check.
func (a *Aggregator) Check(ctx context.Context, name string) (Result, error) {
	a.mu.RLock()
	checker, ok := a.checkers[name]
	a.mu.RUnlock()

	if !ok {
		return Result{}, ErrCheckerNotFound
	}
	return a.run(ctx, checker), nil
}

// Report runs every registered check concurrently under the configured
// timeout and returns the composite report.
func (a *Aggregator) Report(ctx context.Context) Report {
	a.mu.RLock()
	checkers := make([]Checker, 0, len(a.order))
	for _, name := range a.order {
		checkers = append(checkers, a.checkers[name])
	}
	a.mu.RUnlock()

	report := Report{
		Status:    StatusHealthy,
		Results:   make(map[string]Result, len(checkers)),
		Timestamp: time.Now().UTC(),
	}
	if len(checkers) == 0 {
		return report
	}

	ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	for _, checker := range checkers {
		g.Go(func() error {
			result := a.run(ctx, checker)
			mu.Lock()
			report.Results[checker.Name()] = result
			if result.Status > report.Status {
				report.Status = result.Status
			}
			mu.Unlock()

			if result.Status != StatusHealthy {
				a.config.Logger.Warn(ctx, "health check not healthy",
					logx.F("checker", checker.Name()),
					logx.F("status", result.Status.String()),
					logx.F("message", result.Message),
				)
			}
			return nil
		})
	}
	_ = g.Wait()

	return report
}

// run executes one check, stamping duration and guarding against checks
// that ignore cancellation.
func (a *Aggregator) run(ctx context.Context, checker Checker) Result {
	start := time.Now()
	done := make(chan Result, 1)

	go func() {
		result := checker.Check(ctx)
		result.Duration = time.Since(start)
		if result.Timestamp.IsZero() {
			result.Timestamp = start.UTC()
		}
		done <- result
	}()

	select {
	case result := <-done:
		return result
	case <-ctx.Done():
		return Result{
			Status:    StatusUnhealthy,
			Message:   "health check timed out",
			Error:     ErrCheckTimeout,
			Duration:  time.Since(start),
			Timestamp: start.UTC(),
		}
	}
}
