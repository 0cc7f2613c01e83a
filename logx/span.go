package logx

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// SpanTransport records log entries as events on the span carried by the
// logging call's context. Entries logged outside a recording span are
// silently skipped.
type SpanTransport struct{}

// NewSpanTransport creates a span transport.
func NewSpanTransport() *SpanTransport {
	return &SpanTransport{}
}

// Name implements Transport.
func (t *SpanTransport) Name() string {
	return "span"
}

// Log implements Transport.
func (t *SpanTransport) Log(ctx context.Context, entry Entry) error {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return nil
	}

	attrs := []attribute.KeyValue{
		attribute.String("log.severity", entry.Level.String()),
		attribute.String("log.message", entry.Message),
	}
	if entry.RequestID != "" {
		attrs = append(attrs, attribute.String("request.id", entry.RequestID))
	}
	if entry.Error != "" {
		attrs = append(attrs, attribute.String("error.message", entry.Error))
	}

	span.AddEvent("log", trace.WithAttributes(attrs...))
	return nil
}
