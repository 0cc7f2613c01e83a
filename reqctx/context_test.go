package reqctx

import (
	"context"
	"testing"
)

func TestRequestID_RoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-123")

	id, ok := RequestID(ctx)
	if !ok {
		t.Fatal("RequestID() ok = false, want true")
	}
	if id != "req-123" {
		t.Errorf("RequestID() = %q, want req-123", id)
	}
}

func TestRequestID_Absent(t *testing.T) {
	if _, ok := RequestID(context.Background()); ok {
		t.Error("RequestID() ok = true on empty context")
	}
}

func TestUserID_RoundTrip(t *testing.T) {
	ctx := WithUserID(context.Background(), "user-9")

	id, ok := UserID(ctx)
	if !ok || id != "user-9" {
		t.Errorf("UserID() = %q, %v, want user-9, true", id, ok)
	}
}

func TestClear(t *testing.T) {
	ctx := WithUserID(WithRequestID(context.Background(), "req-1"), "user-1")
	cleared := Clear(ctx)

	if _, ok := RequestID(cleared); ok {
		t.Error("RequestID() present after Clear")
	}
	if _, ok := UserID(cleared); ok {
		t.Error("UserID() present after Clear")
	}

	// Parent context is untouched.
	if id, ok := RequestID(ctx); !ok || id != "req-1" {
		t.Errorf("parent RequestID() = %q, %v, want req-1, true", id, ok)
	}
}

func TestEnsureRequestID_MintsWhenAbsent(t *testing.T) {
	ctx, id := EnsureRequestID(context.Background())

	if id == "" {
		t.Fatal("EnsureRequestID() minted empty id")
	}
	if got, ok := RequestID(ctx); !ok || got != id {
		t.Errorf("RequestID() = %q, %v, want %q, true", got, ok, id)
	}
}

func TestEnsureRequestID_KeepsExisting(t *testing.T) {
	base := WithRequestID(context.Background(), "req-keep")
	ctx, id := EnsureRequestID(base)

	if id != "req-keep" {
		t.Errorf("EnsureRequestID() id = %q, want req-keep", id)
	}
	if ctx != base {
		t.Error("EnsureRequestID() derived a new context despite existing id")
	}
}

func TestFields(t *testing.T) {
	ctx := WithUserID(WithRequestID(context.Background(), "req-5"), "user-5")

	fields := Fields(ctx)
	if fields["requestId"] != "req-5" {
		t.Errorf("fields[requestId] = %q, want req-5", fields["requestId"])
	}
	if fields["userId"] != "user-5" {
		t.Errorf("fields[userId] = %q, want user-5", fields["userId"])
	}
}

func TestFields_IsolationBetweenContexts(t *testing.T) {
	a := WithRequestID(context.Background(), "req-a")
	b := WithRequestID(context.Background(), "req-b")

	if Fields(a)["requestId"] != "req-a" || Fields(b)["requestId"] != "req-b" {
		t.Error("request ids bled between independent contexts")
	}
}
