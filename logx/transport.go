package logx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
)

// Transport is a sink that receives structured log entries.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: a returned error is reported to the logger's fallback writer
//   and never reaches the logging caller.
type Transport interface {
	// Name identifies the transport in fallback diagnostics.
	Name() string

	// Log delivers one entry. The context is the logging call's context.
	Log(ctx context.Context, entry Entry) error
}

// ConsoleTransport writes entries as JSON lines to a writer.
type ConsoleTransport struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsoleTransport creates a console transport. A nil writer defaults to
// os.Stdout.
func NewConsoleTransport(w io.Writer) *ConsoleTransport {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleTransport{w: w}
}

// Name implements Transport.
func (t *ConsoleTransport) Name() string {
	return "console"
}

// Log implements Transport.
func (t *ConsoleTransport) Log(_ context.Context, entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, err := t.w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write entry: %w", err)
	}
	return nil
}

// FileTransport appends entries as JSON lines to a file.
type FileTransport struct {
	file    *os.File
	console *ConsoleTransport
}

// NewFileTransport opens (or creates) the file at path for appending.
func NewFileTransport(path string) (*FileTransport, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &FileTransport{file: f, console: NewConsoleTransport(f)}, nil
}

// Name implements Transport.
func (t *FileTransport) Name() string {
	return "file"
}

// Log implements Transport.
func (t *FileTransport) Log(ctx context.Context, entry Entry) error {
	return t.console.Log(ctx, entry)
}

// Close closes the underlying file.
func (t *FileTransport) Close() error {
	return t.file.Close()
}

// TransportFunc adapts a function into a Transport.
type TransportFunc struct {
	TransportName string
	Fn            func(ctx context.Context, entry Entry) error
}

// Name implements Transport.
func (t TransportFunc) Name() string {
	if t.TransportName == "" {
		return "func"
	}
	return t.TransportName
}

// Log implements Transport.
func (t TransportFunc) Log(ctx context.Context, entry Entry) error {
	return t.Fn(ctx, entry)
}
