package logx

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConsoleTransport_WritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	transport := NewConsoleTransport(&buf)

	entries := []Entry{
		{Timestamp: time.Now().UTC(), Level: LevelInfo, Message: "first"},
		{Timestamp: time.Now().UTC(), Level: LevelError, Message: "second", Error: "boom"},
	}
	for _, entry := range entries {
		if err := transport.Log(context.Background(), entry); err != nil {
			t.Fatalf("Log() error = %v", err)
		}
	}

	scanner := bufio.NewScanner(&buf)
	var lines int
	for scanner.Scan() {
		var decoded Entry
		if err := json.Unmarshal(scanner.Bytes(), &decoded); err != nil {
			t.Fatalf("line %d not valid JSON: %v", lines, err)
		}
		if decoded.Message != entries[lines].Message {
			t.Errorf("line %d Message = %q, want %q", lines, decoded.Message, entries[lines].Message)
		}
		lines++
	}
	if lines != 2 {
		t.Errorf("lines = %d, want 2", lines)
	}
}

func TestConsoleTransport_OmitsEmptyFields(t *testing.T) {
	var buf bytes.Buffer
	transport := NewConsoleTransport(&buf)

	entry := Entry{Timestamp: time.Now().UTC(), Level: LevelInfo, Message: "bare"}
	if err := transport.Log(context.Background(), entry); err != nil {
		t.Fatalf("Log() error = %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	for _, key := range []string{"requestId", "userId", "context", "error", "trace"} {
		if _, present := raw[key]; present {
			t.Errorf("key %q present for empty field", key)
		}
	}
}

func TestFileTransport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	transport, err := NewFileTransport(path)
	if err != nil {
		t.Fatalf("NewFileTransport() error = %v", err)
	}

	entry := Entry{Timestamp: time.Now().UTC(), Level: LevelWarn, Message: "persisted"}
	if err := transport.Log(context.Background(), entry); err != nil {
		t.Fatalf("Log() error = %v", err)
	}
	if err := transport.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	var decoded Entry
	if err := json.Unmarshal(bytes.TrimSpace(data), &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.Message != "persisted" || decoded.Level != LevelWarn {
		t.Errorf("decoded = %+v, want persisted/warn", decoded)
	}
}

func TestFileTransport_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	for i := 0; i < 2; i++ {
		transport, err := NewFileTransport(path)
		if err != nil {
			t.Fatalf("NewFileTransport() error = %v", err)
		}
		if err := transport.Log(context.Background(), Entry{Level: LevelInfo, Message: "line"}); err != nil {
			t.Fatalf("Log() error = %v", err)
		}
		if err := transport.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if got := bytes.Count(data, []byte("\n")); got != 2 {
		t.Errorf("lines = %d, want 2 (reopen must append)", got)
	}
}

func TestTransportFunc_DefaultName(t *testing.T) {
	anon := TransportFunc{Fn: func(context.Context, Entry) error { return nil }}
	if got := anon.Name(); got != "func" {
		t.Errorf("Name() = %q, want func", got)
	}

	named := TransportFunc{TransportName: "audit"}
	if got := named.Name(); got != "audit" {
		t.Errorf("Name() = %q, want audit", got)
	}
}
