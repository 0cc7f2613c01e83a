package apperr

import "net/http"

// ErrorCode identifies a specific failure condition.
// Codes are string-based for debuggability and natural JSON serialization.
type ErrorCode string

const (
	// CodeValidation indicates the provided input failed validation.
	CodeValidation ErrorCode = "VALIDATION_ERROR"

	// CodeUnauthorized indicates the request lacks valid authentication.
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"

	// CodeForbidden indicates the authenticated caller lacks permission.
	CodeForbidden ErrorCode = "FORBIDDEN"

	// CodeNotFound indicates a requested resource does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeConflict indicates a resource state conflict.
	CodeConflict ErrorCode = "CONFLICT"

	// CodeRateLimited indicates the caller exceeded a rate limit.
	CodeRateLimited ErrorCode = "RATE_LIMITED"

	// CodeAPI indicates a general upstream or application failure.
	// Unknown, untyped errors are normalized to this code.
	CodeAPI ErrorCode = "API_ERROR"

	// CodeDatabase indicates a persistence operation failed.
	CodeDatabase ErrorCode = "DATABASE_ERROR"

	// CodeNetwork indicates a network operation failed.
	CodeNetwork ErrorCode = "NETWORK_ERROR"

	// CodeTimeout indicates an operation exceeded its deadline.
	CodeTimeout ErrorCode = "TIMEOUT"

	// CodeUnavailable indicates a dependency is temporarily unavailable.
	CodeUnavailable ErrorCode = "SERVICE_UNAVAILABLE"

	// CodeInternal indicates an internal defect.
	CodeInternal ErrorCode = "INTERNAL_ERROR"
)

// statusCodes maps each error code to its default HTTP status.
var statusCodes = map[ErrorCode]int{
	CodeValidation:   http.StatusBadRequest,
	CodeUnauthorized: http.StatusUnauthorized,
	CodeForbidden:    http.StatusForbidden,
	CodeNotFound:     http.StatusNotFound,
	CodeConflict:     http.StatusConflict,
	CodeRateLimited:  http.StatusTooManyRequests,
	CodeAPI:          http.StatusInternalServerError,
	CodeDatabase:     http.StatusInternalServerError,
	CodeNetwork:      http.StatusBadGateway,
	CodeTimeout:      http.StatusGatewayTimeout,
	CodeUnavailable:  http.StatusServiceUnavailable,
	CodeInternal:     http.StatusInternalServerError,
}

// transientCodes marks codes that represent temporary conditions.
// Transient operational errors are safe to retry.
var transientCodes = map[ErrorCode]bool{
	CodeTimeout:     true,
	CodeNetwork:     true,
	CodeRateLimited: true,
	CodeUnavailable: true,
	CodeDatabase:    true,
}

// HTTPStatus returns the default HTTP status for a code.
// Unknown codes map to 500.
func HTTPStatus(code ErrorCode) int {
	if status, ok := statusCodes[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
