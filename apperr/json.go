package apperr

import (
	"encoding/json"
	"time"
)

// Payload is the flat JSON representation of an AppError. Every payload
// contains the error kind name, message, code, status code, an ISO-8601
// timestamp, and the stack text; context is included when present.
//
// The wrapped cause chain is intentionally excluded to prevent information
// leakage across API boundaries.
type Payload struct {
	Name          string         `json:"name"`
	Message       string         `json:"message"`
	Code          ErrorCode      `json:"code"`
	StatusCode    int            `json:"statusCode"`
	IsOperational bool           `json:"isOperational"`
	Timestamp     string         `json:"timestamp"`
	Stack         string         `json:"stack"`
	Context       map[string]any `json:"context,omitempty"`
}

// ToJSON returns the serializable representation of the error.
func (e *AppError) ToJSON() Payload {
	return Payload{
		Name:          e.name,
		Message:       e.message,
		Code:          e.code,
		StatusCode:    e.statusCode,
		IsOperational: e.operational,
		Timestamp:     e.timestamp.Format(time.RFC3339Nano),
		Stack:         e.stack,
		Context:       e.Context(),
	}
}

// MarshalJSON implements json.Marshaler so AppError values can be embedded
// directly in response structs.
func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.ToJSON())
}
