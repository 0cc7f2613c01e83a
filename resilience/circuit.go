package resilience

import (
	"context"
	"sync"
	"time"
)

// State represents the circuit breaker state.
type State int

const (
	// StateClosed means the circuit is operating normally.
	StateClosed State = iota
	// StateOpen means the circuit is rejecting all calls.
	StateOpen
	// StateHalfOpen means the circuit is probing whether the dependency
	// recovered.
	StateHalfOpen
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig configures the circuit breaker.
type CircuitBreakerConfig struct {
	// FailureThreshold is the number of consecutive failures that opens the
	// circuit. The transition happens exactly at the threshold-th failure.
	// Default: 5
	FailureThreshold int

	// ResetTimeout is the cool-down after opening. Once it elapses the
	// breaker admits trial calls in the half-open state.
	// Default: 30 seconds
	ResetTimeout time.Duration

	// HalfOpenProbeBudget is the number of trial calls admitted per
	// half-open episode. Calls beyond the budget are rejected until a probe
	// settles the state.
	// Default: 1
	HalfOpenProbeBudget int

	// OnStateChange is called after every state transition.
	OnStateChange func(from, to State)

	// IsFailure determines whether an error counts as a dependency failure.
	// Default: all non-nil errors are failures.
	IsFailure func(err error) bool
}

// CircuitBreaker is a stateful gate around repeated calls to a
// possibly-failing dependency. Each instance exclusively owns its state;
// all transitions are serialized under a single mutex, so interleaved
// failures cannot under- or over-count and transitions are linearizable.
type CircuitBreaker struct {
	config CircuitBreakerConfig

	mu          sync.Mutex
	state       State
	failures    int
	lastFailure time.Time
	probes      int
}

// BreakerSnapshot is a read-only view of breaker state.
type BreakerSnapshot struct {
	State        State
	FailureCount int
	LastFailure  time.Time
}

// NewCircuitBreaker creates a circuit breaker in the closed state with
// defaults applied.
func NewCircuitBreaker(config CircuitBreakerConfig) *CircuitBreaker {
	if config.FailureThreshold <= 0 {
		config.FailureThreshold = 5
	}
	if config.ResetTimeout <= 0 {
		config.ResetTimeout = 30 * time.Second
	}
	if config.HalfOpenProbeBudget <= 0 {
		config.HalfOpenProbeBudget = 1
	}
	if config.IsFailure == nil {
		config.IsFailure = func(err error) bool { return err != nil }
	}

	return &CircuitBreaker{
		config: config,
		state:  StateClosed,
	}
}

// Execute runs the operation through the circuit breaker.
//
// In the open state the operation is not invoked and ErrCircuitOpen is
// returned. A rejection is protection, not a dependency failure: it never
// increments the failure count and never restarts the cool-down.
func (cb *CircuitBreaker) Execute(ctx context.Context, op func(context.Context) error) error {
	if err := cb.admit(); err != nil {
		return err
	}

	err := op(ctx)
	cb.settle(err)
	return err
}

// Snapshot returns the current state without mutating it. An open breaker
// whose cool-down has elapsed reports half-open; the transition itself is
// performed by the next Execute.
func (cb *CircuitBreaker) Snapshot() BreakerSnapshot {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return BreakerSnapshot{
		State:        cb.effectiveStateLocked(),
		FailureCount: cb.failures,
		LastFailure:  cb.lastFailure,
	}
}

// State returns the current circuit state. Read-only, like Snapshot.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.effectiveStateLocked()
}

// Reset returns the circuit breaker to the closed state and zeroes its
// counters.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	oldState := cb.state
	cb.state = StateClosed
	cb.failures = 0
	cb.probes = 0
	cb.lastFailure = time.Time{}

	if oldState != StateClosed && cb.config.OnStateChange != nil {
		cb.config.OnStateChange(oldState, StateClosed)
	}
}

// admit decides whether a call may proceed, performing the open-to-half-open
// transition when the cool-down has elapsed.
func (cb *CircuitBreaker) admit() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen && time.Since(cb.lastFailure) >= cb.config.ResetTimeout {
		cb.transitionLocked(StateHalfOpen)
	}

	switch cb.state {
	case StateOpen:
		return ErrCircuitOpen
	case StateHalfOpen:
		if cb.probes >= cb.config.HalfOpenProbeBudget {
			return ErrCircuitOpen
		}
		cb.probes++
	}

	return nil
}

// settle records the outcome of an admitted call.
func (cb *CircuitBreaker) settle(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	isFailure := cb.config.IsFailure(err)

	switch cb.state {
	case StateClosed:
		if isFailure {
			cb.failures++
			cb.lastFailure = time.Now()
			if cb.failures >= cb.config.FailureThreshold {
				cb.transitionLocked(StateOpen)
			}
		} else {
			cb.failures = 0
		}

	case StateHalfOpen:
		if isFailure {
			// Failed probe: restart the cool-down.
			cb.lastFailure = time.Now()
			cb.transitionLocked(StateOpen)
		} else {
			cb.failures = 0
			cb.transitionLocked(StateClosed)
		}

	case StateOpen:
		// A call admitted in half-open may settle after another probe
		// already re-opened the circuit. Its outcome no longer matters.
	}
}

// effectiveStateLocked reports open-past-cool-down as half-open without
// writing the transition.
func (cb *CircuitBreaker) effectiveStateLocked() State {
	if cb.state == StateOpen && time.Since(cb.lastFailure) >= cb.config.ResetTimeout {
		return StateHalfOpen
	}
	return cb.state
}

// transitionLocked moves to a new state and fires the change callback. Must
// be called with the mutex held.
func (cb *CircuitBreaker) transitionLocked(to State) {
	from := cb.state
	if from == to {
		return
	}
	cb.state = to
	if to == StateHalfOpen {
		cb.probes = 0
	}
	if cb.config.OnStateChange != nil {
		cb.config.OnStateChange(from, to)
	}
}

// BreakerValue runs a value-returning operation through the breaker.
func BreakerValue[T any](ctx context.Context, cb *CircuitBreaker, op func(context.Context) (T, error)) (T, error) {
	var result T
	err := cb.Execute(ctx, func(ctx context.Context) error {
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
