// Package apperr provides the typed error taxonomy for application failures.
//
// This package extends Go's standard error handling with machine-readable
// error codes, HTTP-style status codes, an operational/defect classification,
// context metadata, and JSON serialization. It maintains full compatibility
// with the standard library errors package (errors.Is, errors.As,
// errors.Unwrap).
//
// # Classification
//
// Errors are classified as operational or non-operational:
//
//   - Operational: anticipated failures business logic knows how to handle
//     (validation, authentication, rate limiting, transient I/O). These may
//     be retried and are typically logged at WARN.
//
//   - Non-operational: programmer defects. These are logged at ERROR with a
//     full stack and are expected to bubble to a top-level boundary that
//     decides whether to keep serving or terminate.
//
// Use IsTransient to drive retry decisions; it reports true only for
// operational errors whose code indicates a temporary condition.
//
// # Quick Start
//
//	// Typed construction
//	err := apperr.NewValidation("name must not be empty")
//
//	// Wrapping a cause
//	err = apperr.Wrap(cause, apperr.CodeDatabase, "query users")
//
//	// Normalizing unknown errors at a boundary
//	appErr := apperr.Normalize(err)
//
//	// API responses
//	payload := appErr.ToJSON()
//
// Every constructed error captures its timestamp and stack at construction
// time; both are immutable thereafter.
package apperr
