// Package reqctx propagates per-unit-of-work fields (request id, user id)
// through context.Context so log entries emitted during one request or job
// are annotated consistently.
//
// Fields are immutable context values: With* derives a new context and never
// mutates shared state, so concurrent units of work cannot bleed fields into
// each other's log lines.
package reqctx

import (
	"context"

	"github.com/google/uuid"
)

type contextKey int

const (
	requestIDKey contextKey = iota
	userIDKey
)

// WithRequestID returns a context carrying the request id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithUserID returns a context carrying the user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// RequestID extracts the request id from the context.
func RequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok && id != ""
}

// UserID extracts the user id from the context.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// Clear returns a context with both fields detached. Parent contexts are
// unaffected.
func Clear(ctx context.Context) context.Context {
	ctx = context.WithValue(ctx, requestIDKey, "")
	return context.WithValue(ctx, userIDKey, "")
}

// EnsureRequestID returns the context unchanged when a request id is already
// present, otherwise derives one carrying a freshly minted id.
func EnsureRequestID(ctx context.Context) (context.Context, string) {
	if id, ok := RequestID(ctx); ok {
		return ctx, id
	}
	id := uuid.NewString()
	return WithRequestID(ctx, id), id
}

// Fields returns a snapshot of the request-scoped fields for log annotation.
// The returned map is owned by the caller.
func Fields(ctx context.Context) map[string]string {
	fields := make(map[string]string, 2)
	if id, ok := RequestID(ctx); ok {
		fields["requestId"] = id
	}
	if id, ok := UserID(ctx); ok {
		fields["userId"] = id
	}
	return fields
}
