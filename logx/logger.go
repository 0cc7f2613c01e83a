package logx

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonwraymond/svcops/apperr"
	"github.com/jonwraymond/svcops/reqctx"
)

// Config configures a Logger.
type Config struct {
	// MinLevel is the least severe level that is still emitted.
	// Default: LevelInfo
	MinLevel Level

	// Service is stamped on every entry.
	Service string

	// Transports receive accepted entries. A logger without transports
	// drops everything.
	Transports []Transport

	// DefaultContext is merged into every entry's context.
	DefaultContext map[string]any

	// Fallback receives transport failure diagnostics.
	// Default: os.Stderr
	Fallback io.Writer
}

// Logger is a level-gated, multi-transport structured logger. The transport
// list and default context are fixed at construction and only read
// afterwards, so logging never contends on setup state. Loggers are safe for
// concurrent use.
type Logger struct {
	minLevel   Level
	service    string
	transports []Transport
	defaults   map[string]any

	fallbackMu sync.Mutex
	fallback   io.Writer
}

// New creates a logger. The config's transport slice and context map are
// copied; later mutation by the caller has no effect.
func New(cfg Config) *Logger {
	if cfg.Fallback == nil {
		cfg.Fallback = os.Stderr
	}

	transports := make([]Transport, len(cfg.Transports))
	copy(transports, cfg.Transports)

	defaults := make(map[string]any, len(cfg.DefaultContext))
	for k, v := range cfg.DefaultContext {
		defaults[k] = v
	}

	return &Logger{
		minLevel:   cfg.MinLevel,
		service:    cfg.Service,
		transports: transports,
		defaults:   defaults,
		fallback:   cfg.Fallback,
	}
}

// Nop returns a logger that drops everything. Useful as a default for
// optional logger dependencies.
func Nop() *Logger {
	return &Logger{minLevel: Level(-1), fallback: io.Discard}
}

// With returns a derived logger whose default context additionally carries
// the given fields. The receiver is unchanged.
func (l *Logger) With(fields ...Field) *Logger {
	defaults := make(map[string]any, len(l.defaults)+len(fields))
	for k, v := range l.defaults {
		defaults[k] = v
	}
	for _, f := range fields {
		defaults[f.Key] = f.Value
	}

	return &Logger{
		minLevel:   l.minLevel,
		service:    l.service,
		transports: l.transports,
		defaults:   defaults,
		fallback:   l.fallback,
	}
}

// Error logs at ERROR severity.
func (l *Logger) Error(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, LevelError, msg, fields)
}

// Warn logs at WARN severity.
func (l *Logger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, LevelWarn, msg, fields)
}

// Info logs at INFO severity.
func (l *Logger) Info(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, LevelInfo, msg, fields)
}

// Debug logs at DEBUG severity.
func (l *Logger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, LevelDebug, msg, fields)
}

// Trace logs at TRACE severity.
func (l *Logger) Trace(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, LevelTrace, msg, fields)
}

// Log emits an entry at an arbitrary level.
func (l *Logger) Log(ctx context.Context, level Level, msg string, fields ...Field) {
	l.log(ctx, level, msg, fields)
}

// Enabled reports whether entries at the given level reach transports.
func (l *Logger) Enabled(level Level) bool {
	return level <= l.minLevel
}

func (l *Logger) log(ctx context.Context, level Level, msg string, fields []Field) {
	if level > l.minLevel {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	entry := Entry{
		Timestamp: time.Now().UTC(),
		Level:     level,
		Message:   msg,
		Service:   l.service,
	}

	if id, ok := reqctx.RequestID(ctx); ok {
		entry.RequestID = id
	}
	if id, ok := reqctx.UserID(ctx); ok {
		entry.UserID = id
	}

	merged := make(map[string]any, len(l.defaults)+len(fields))
	for k, v := range l.defaults {
		merged[k] = v
	}
	for _, f := range fields {
		if f.Key == errorFieldKey {
			if err, ok := f.Value.(error); ok {
				l.foldError(&entry, err)
				continue
			}
		}
		if isRedactedKey(f.Key) {
			merged[f.Key] = "[REDACTED]"
			continue
		}
		merged[f.Key] = f.Value
	}
	if len(merged) > 0 {
		entry.Context = merged
	}

	l.dispatch(ctx, entry)
}

// foldError stamps the error message and, for typed errors, the captured
// stack onto the entry.
func (l *Logger) foldError(entry *Entry, err error) {
	if err == nil {
		return
	}
	entry.Error = err.Error()

	var appErr *apperr.AppError
	if stderrors.As(err, &appErr) {
		entry.Trace = appErr.Stack()
	}
}

// dispatch delivers the entry to every transport concurrently and waits for
// all of them. Failures and panics are reported to the fallback writer;
// nothing propagates to the logging caller.
func (l *Logger) dispatch(ctx context.Context, entry Entry) {
	if len(l.transports) == 0 {
		return
	}

	var g errgroup.Group
	for _, transport := range l.transports {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					l.reportFailure(transport.Name(), fmt.Errorf("panic: %v", r))
				}
			}()
			if err := transport.Log(ctx, entry); err != nil {
				l.reportFailure(transport.Name(), err)
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (l *Logger) reportFailure(transport string, err error) {
	l.fallbackMu.Lock()
	defer l.fallbackMu.Unlock()
	fmt.Fprintf(l.fallback, "logx: transport %s failed: %v\n", transport, err)
}

// redactedKeys lists field keys whose values never reach a transport.
var redactedKeys = map[string]bool{
	"password":   true,
	"secret":     true,
	"token":      true,
	"api_key":    true,
	"apiKey":     true,
	"credential": true,
}

func isRedactedKey(key string) bool {
	return redactedKeys[key]
}
