package apperr

import (
	"fmt"
	"time"
)

// AppError is a typed application error carrying a machine-readable code,
// HTTP-style status, operational flag, and free-form context.
//
// Values are immutable once constructed: the timestamp and stack are captured
// at construction, accessors return defensive copies, and WithContext derives
// a new value rather than mutating the receiver.
type AppError struct {
	name        string
	message     string
	code        ErrorCode
	statusCode  int
	operational bool
	context     map[string]any
	timestamp   time.Time
	stack       string
	cause       error
}

// Error returns the string representation of the error.
// Format: "[CODE] message" or "[CODE] message: cause" when a cause is present.
func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.code, e.message)
}

// Name returns the error kind name, e.g. "ValidationError".
func (e *AppError) Name() string {
	return e.name
}

// Message returns the human-readable message.
func (e *AppError) Message() string {
	return e.message
}

// Code returns the error code.
func (e *AppError) Code() ErrorCode {
	return e.code
}

// StatusCode returns the HTTP-style status code.
func (e *AppError) StatusCode() int {
	return e.statusCode
}

// IsOperational reports whether the error is an anticipated business failure
// rather than a defect.
func (e *AppError) IsOperational() bool {
	return e.operational
}

// Context returns a defensive copy of the context map, or nil when no
// context has been attached.
func (e *AppError) Context() map[string]any {
	if e.context == nil {
		return nil
	}
	ctx := make(map[string]any, len(e.context))
	for k, v := range e.context {
		ctx[k] = v
	}
	return ctx
}

// Timestamp returns the construction time.
func (e *AppError) Timestamp() time.Time {
	return e.timestamp
}

// Stack returns the stack trace text captured at construction.
func (e *AppError) Stack() string {
	return e.stack
}

// Unwrap returns the wrapped cause for standard library compatibility.
func (e *AppError) Unwrap() error {
	return e.cause
}

// WithContext returns a copy of the error with an additional context entry.
// The receiver is not modified.
func (e *AppError) WithContext(key string, value any) *AppError {
	clone := *e
	clone.context = make(map[string]any, len(e.context)+1)
	for k, v := range e.context {
		clone.context[k] = v
	}
	clone.context[key] = value
	return &clone
}

// WithContextMap returns a copy of the error with all entries merged in.
func (e *AppError) WithContextMap(entries map[string]any) *AppError {
	clone := *e
	clone.context = make(map[string]any, len(e.context)+len(entries))
	for k, v := range e.context {
		clone.context[k] = v
	}
	for k, v := range entries {
		clone.context[k] = v
	}
	return &clone
}
