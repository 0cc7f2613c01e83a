package resilience

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestNewBulkhead_Defaults(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{})

	if b.config.MaxConcurrent != 10 {
		t.Errorf("MaxConcurrent = %d, want 10", b.config.MaxConcurrent)
	}
}

func TestBulkhead_AcquireRelease(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{MaxConcurrent: 2})

	if err := b.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if got := b.Snapshot().Active; got != 1 {
		t.Errorf("Active = %d, want 1", got)
	}

	b.Release()
	if got := b.Snapshot().Active; got != 0 {
		t.Errorf("Active after Release = %d, want 0", got)
	}
}

func TestBulkhead_RejectsWhenFull(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{MaxConcurrent: 1})

	if err := b.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	err := b.Acquire(context.Background())
	if !errors.Is(err, ErrBulkheadFull) {
		t.Errorf("Acquire() = %v, want ErrBulkheadFull", err)
	}
	if got := b.Snapshot().Rejected; got != 1 {
		t.Errorf("Rejected = %d, want 1", got)
	}
}

func TestBulkhead_WaitsForSlot(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{MaxConcurrent: 1, MaxWait: time.Second})

	if err := b.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	go func() {
		time.Sleep(10 * time.Millisecond)
		b.Release()
	}()

	if err := b.Acquire(context.Background()); err != nil {
		t.Errorf("Acquire() with wait = %v, want nil", err)
	}
}

func TestBulkhead_ExecuteLimitsConcurrency(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{MaxConcurrent: 3, MaxWait: time.Second})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = b.Execute(context.Background(), func(ctx context.Context) error {
				time.Sleep(time.Millisecond)
				return nil
			})
		}()
	}
	wg.Wait()

	snap := b.Snapshot()
	if snap.Peak > 3 {
		t.Errorf("Peak = %d, want <= 3", snap.Peak)
	}
	if snap.Active != 0 {
		t.Errorf("Active after drain = %d, want 0", snap.Active)
	}
}
