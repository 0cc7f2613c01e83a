package resilience

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Instruments records execution telemetry for protected operations.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Errors: recording is best-effort and must not panic.
type Instruments struct {
	totalCount    metric.Int64Counter
	errorCount    metric.Int64Counter
	rejectedCount metric.Int64Counter
	durationHist  metric.Float64Histogram
}

// NewInstruments creates instruments on the given meter.
func NewInstruments(meter metric.Meter) (*Instruments, error) {
	totalCount, err := meter.Int64Counter(
		"resilience.exec.total",
		metric.WithDescription("Total number of protected executions"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"resilience.exec.errors",
		metric.WithDescription("Total number of failed executions"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	rejectedCount, err := meter.Int64Counter(
		"resilience.exec.rejected",
		metric.WithDescription("Executions rejected by a resilience layer without running the operation"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"resilience.exec.duration_ms",
		metric.WithDescription("Protected execution duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &Instruments{
		totalCount:    totalCount,
		errorCount:    errorCount,
		rejectedCount: rejectedCount,
		durationHist:  durationHist,
	}, nil
}

// Record records one execution outcome.
func (in *Instruments) Record(ctx context.Context, operation string, duration time.Duration, err error) {
	opt := metric.WithAttributes(attribute.String("operation", operation))

	in.totalCount.Add(ctx, 1, opt)
	if err != nil {
		if isRejection(err) {
			in.rejectedCount.Add(ctx, 1, opt)
		} else {
			in.errorCount.Add(ctx, 1, opt)
		}
	}
	in.durationHist.Record(ctx, float64(duration.Milliseconds()), opt)
}
