package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestInstruments(t *testing.T) (*Instruments, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	in, err := NewInstruments(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewInstruments() error = %v", err)
	}
	return in, reader
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func counterValue(t *testing.T, rm metricdata.ResourceMetrics, name string) int64 {
	t.Helper()
	m := findMetric(rm, name)
	if m == nil {
		return 0
	}
	sum, ok := m.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("%s: expected Sum[int64], got %T", name, m.Data)
	}
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestInstruments_RecordsTotalAndDuration(t *testing.T) {
	in, reader := newTestInstruments(t)

	in.Record(context.Background(), "fetch", 100*time.Millisecond, nil)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if got := counterValue(t, rm, "resilience.exec.total"); got != 1 {
		t.Errorf("total = %d, want 1", got)
	}
	if findMetric(rm, "resilience.exec.duration_ms") == nil {
		t.Error("duration histogram not recorded")
	}
}

func TestInstruments_FailureCountsAsError(t *testing.T) {
	in, reader := newTestInstruments(t)

	in.Record(context.Background(), "fetch", time.Millisecond, errors.New("boom"))

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if got := counterValue(t, rm, "resilience.exec.errors"); got != 1 {
		t.Errorf("errors = %d, want 1", got)
	}
	if got := counterValue(t, rm, "resilience.exec.rejected"); got != 0 {
		t.Errorf("rejected = %d, want 0", got)
	}
}

func TestInstruments_RejectionCountedSeparately(t *testing.T) {
	in, reader := newTestInstruments(t)

	in.Record(context.Background(), "fetch", time.Millisecond, ErrCircuitOpen)
	in.Record(context.Background(), "fetch", time.Millisecond, ErrBulkheadFull)
	in.Record(context.Background(), "fetch", time.Millisecond, ErrRateLimited)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if got := counterValue(t, rm, "resilience.exec.rejected"); got != 3 {
		t.Errorf("rejected = %d, want 3", got)
	}
	if got := counterValue(t, rm, "resilience.exec.errors"); got != 0 {
		t.Errorf("errors = %d, want 0", got)
	}
}

func TestExecutor_WithInstruments(t *testing.T) {
	in, reader := newTestInstruments(t)
	e := NewExecutor(WithInstruments(in), WithName("protected"))

	_ = e.Execute(context.Background(), func(ctx context.Context) error { return nil })
	_ = e.Execute(context.Background(), func(ctx context.Context) error { return errors.New("boom") })

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if got := counterValue(t, rm, "resilience.exec.total"); got != 2 {
		t.Errorf("total = %d, want 2", got)
	}
	if got := counterValue(t, rm, "resilience.exec.errors"); got != 1 {
		t.Errorf("errors = %d, want 1", got)
	}
}
