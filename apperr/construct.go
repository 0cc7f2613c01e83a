package apperr

import (
	"fmt"
	"time"
)

// DefaultAuthenticationMessage is used when NewAuthentication is called with
// an empty message.
const DefaultAuthenticationMessage = "Authentication required"

// newError is the single construction path. All exported constructors funnel
// through it so the timestamp/stack invariants hold for every instance.
func newError(name string, code ErrorCode, status int, operational bool, message string, cause error) *AppError {
	return &AppError{
		name:        name,
		message:     message,
		code:        code,
		statusCode:  status,
		operational: operational,
		timestamp:   time.Now().UTC(),
		stack:       captureStack(2),
		cause:       cause,
	}
}

// New creates an AppError with the given code and message. The status code
// follows the code's default mapping and the error is marked operational.
func New(code ErrorCode, message string) *AppError {
	return newError("AppError", code, HTTPStatus(code), true, message, nil)
}

// Newf creates an AppError with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *AppError {
	return newError("AppError", code, HTTPStatus(code), true, fmt.Sprintf(format, args...), nil)
}

// Wrap creates an AppError that wraps a cause. The cause remains reachable
// through errors.Is/errors.As/errors.Unwrap.
func Wrap(cause error, code ErrorCode, message string) *AppError {
	return newError("AppError", code, HTTPStatus(code), true, message, cause)
}

// NewValidation creates an operational VALIDATION_ERROR (400).
func NewValidation(message string) *AppError {
	return newError("ValidationError", CodeValidation, HTTPStatus(CodeValidation), true, message, nil)
}

// NewAuthentication creates an operational UNAUTHORIZED error (401).
// An empty message defaults to "Authentication required".
func NewAuthentication(message string) *AppError {
	if message == "" {
		message = DefaultAuthenticationMessage
	}
	return newError("AuthenticationError", CodeUnauthorized, HTTPStatus(CodeUnauthorized), true, message, nil)
}

// NewAuthorization creates an operational FORBIDDEN error (403).
func NewAuthorization(message string) *AppError {
	return newError("AuthorizationError", CodeForbidden, HTTPStatus(CodeForbidden), true, message, nil)
}

// NewNotFound creates an operational NOT_FOUND error (404).
func NewNotFound(message string) *AppError {
	return newError("NotFoundError", CodeNotFound, HTTPStatus(CodeNotFound), true, message, nil)
}

// NewConflict creates an operational CONFLICT error (409).
func NewConflict(message string) *AppError {
	return newError("ConflictError", CodeConflict, HTTPStatus(CodeConflict), true, message, nil)
}

// NewRateLimit creates an operational RATE_LIMITED error (429).
func NewRateLimit(message string) *AppError {
	return newError("RateLimitError", CodeRateLimited, HTTPStatus(CodeRateLimited), true, message, nil)
}

// NewAPI creates an operational API_ERROR (500).
func NewAPI(message string) *AppError {
	return newError("ApiError", CodeAPI, HTTPStatus(CodeAPI), true, message, nil)
}

// NewDatabase creates an operational DATABASE_ERROR (500) wrapping a cause.
func NewDatabase(message string, cause error) *AppError {
	return newError("DatabaseError", CodeDatabase, HTTPStatus(CodeDatabase), true, message, cause)
}

// NewNetwork creates an operational NETWORK_ERROR (502) wrapping a cause.
func NewNetwork(message string, cause error) *AppError {
	return newError("NetworkError", CodeNetwork, HTTPStatus(CodeNetwork), true, message, cause)
}

// NewTimeout creates an operational TIMEOUT error (504).
func NewTimeout(message string) *AppError {
	return newError("TimeoutError", CodeTimeout, HTTPStatus(CodeTimeout), true, message, nil)
}

// NewUnavailable creates an operational SERVICE_UNAVAILABLE error (503).
func NewUnavailable(message string) *AppError {
	return newError("UnavailableError", CodeUnavailable, HTTPStatus(CodeUnavailable), true, message, nil)
}

// NewInternal creates a non-operational INTERNAL_ERROR (500) wrapping a
// cause. Internal errors represent defects and are not retried.
func NewInternal(message string, cause error) *AppError {
	return newError("InternalError", CodeInternal, HTTPStatus(CodeInternal), false, message, cause)
}
