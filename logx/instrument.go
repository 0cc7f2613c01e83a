package logx

import (
	"context"
	"time"
)

// Instrument wraps an operation so every invocation records start/end timing
// through Performance under the given name. The wrapped operation's outcome
// is returned unchanged.
func Instrument(l *Logger, name string, op func(context.Context) error) func(context.Context) error {
	return func(ctx context.Context) error {
		start := time.Now()
		err := op(ctx)
		fields := make([]Field, 0, 1)
		if err != nil {
			fields = append(fields, Err(err))
		}
		l.Performance(ctx, name, time.Since(start), fields...)
		return err
	}
}

// InstrumentValue is Instrument for value-returning operations.
func InstrumentValue[T any](l *Logger, name string, op func(context.Context) (T, error)) func(context.Context) (T, error) {
	return func(ctx context.Context) (T, error) {
		start := time.Now()
		v, err := op(ctx)
		fields := make([]Field, 0, 1)
		if err != nil {
			fields = append(fields, Err(err))
		}
		l.Performance(ctx, name, time.Since(start), fields...)
		return v, err
	}
}
