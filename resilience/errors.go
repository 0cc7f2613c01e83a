package resilience

import (
	stderrors "errors"

	"github.com/jonwraymond/svcops/apperr"
)

// Sentinel errors for resilience operations. All are typed apperr values so
// callers can translate them into responses directly.
var (
	// ErrCircuitOpen is returned when the circuit breaker rejects a call
	// without invoking the operation. It signals protection, not a new
	// dependency failure, and is never counted toward the failure threshold.
	ErrCircuitOpen = apperr.NewUnavailable("Circuit breaker is OPEN")

	// ErrBulkheadFull is returned when the bulkhead is at capacity.
	ErrBulkheadFull = apperr.NewUnavailable("bulkhead at capacity")

	// ErrRateLimited is returned when the rate limit is exceeded.
	ErrRateLimited = apperr.NewRateLimit("rate limit exceeded")
)

// IsTimeout reports whether err carries the TIMEOUT code produced by the
// timeout guard.
func IsTimeout(err error) bool {
	var appErr *apperr.AppError
	if !stderrors.As(err, &appErr) {
		return false
	}
	return appErr.Code() == apperr.CodeTimeout
}

// isRejection reports whether err is a fail-fast rejection emitted by a
// resilience layer itself rather than by the wrapped operation.
func isRejection(err error) bool {
	return stderrors.Is(err, ErrCircuitOpen) ||
		stderrors.Is(err, ErrBulkheadFull) ||
		stderrors.Is(err, ErrRateLimited)
}
