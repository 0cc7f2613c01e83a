package health

import "github.com/jonwraymond/svcops/apperr"

var (
	// ErrCheckerNotFound is returned when a named check is not registered.
	ErrCheckerNotFound = apperr.NewNotFound("health checker not registered")

	// ErrCheckTimeout marks a result whose check did not finish within the
	// aggregator's deadline.
	ErrCheckTimeout = apperr.NewTimeout("health check timed out")
)
