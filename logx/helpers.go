package logx

import (
	"context"
	"time"
)

// PerformanceThreshold is the duration above which Performance escalates
// from DEBUG to WARN.
const PerformanceThreshold = 5 * time.Second

// APICall logs an outbound API call at INFO.
func (l *Logger) APICall(ctx context.Context, method, url string, statusCode int, duration time.Duration, fields ...Field) {
	all := append([]Field{
		F("method", method),
		F("url", url),
		F("statusCode", statusCode),
		F("durationMs", duration.Milliseconds()),
	}, fields...)
	l.Info(ctx, "api call", all...)
}

// Performance logs an operation timing, escalating to WARN when the
// duration exceeds PerformanceThreshold.
func (l *Logger) Performance(ctx context.Context, operation string, duration time.Duration, fields ...Field) {
	level := LevelDebug
	if duration > PerformanceThreshold {
		level = LevelWarn
	}
	all := append([]Field{
		F("operation", operation),
		F("durationMs", duration.Milliseconds()),
	}, fields...)
	l.Log(ctx, level, "performance", all...)
}

// SecurityEvent logs a security-relevant event. Severity maps low to INFO,
// medium to WARN, and high to ERROR; unknown severities log at WARN.
func (l *Logger) SecurityEvent(ctx context.Context, event, severity string, fields ...Field) {
	var level Level
	switch severity {
	case "low":
		level = LevelInfo
	case "medium":
		level = LevelWarn
	case "high":
		level = LevelError
	default:
		level = LevelWarn
	}
	all := append([]Field{
		F("event", event),
		F("severity", severity),
	}, fields...)
	l.Log(ctx, level, "security event", all...)
}
