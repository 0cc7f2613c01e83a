package apperr

import (
	stderrors "errors"
	"net/http"
)

// Normalize converts any error into an AppError.
//
// A nil error yields nil. An AppError anywhere in the chain passes through
// unchanged. Anything else becomes a non-operational API_ERROR wrapping the
// original: an untyped error is by definition not one business logic
// anticipated. Normalize never panics.
func Normalize(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return newError("ApiError", CodeAPI, http.StatusInternalServerError, false, err.Error(), err)
}

// IsOperational reports whether err is an anticipated business failure.
// Untyped errors are treated as defects.
func IsOperational(err error) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.IsOperational()
	}
	return false
}

// IsTransient reports whether err represents a temporary condition that is
// safe to retry: an operational error whose code marks a transient failure
// (timeout, network, rate limit, unavailable, transient database issue).
func IsTransient(err error) bool {
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return false
	}
	return appErr.IsOperational() && transientCodes[appErr.Code()]
}

// GetCode extracts the ErrorCode from an error. Returns CodeAPI when the
// error is not an AppError, matching the normalization default.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code()
	}
	return CodeAPI
}

// GetStatus extracts the HTTP status from an error. Untyped errors map
// to 500.
func GetStatus(err error) int {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.StatusCode()
	}
	return http.StatusInternalServerError
}
