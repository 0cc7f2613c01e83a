// Package logx provides a level-gated, multi-transport structured logger
// with mergeable context.
//
// A Logger is an explicit instance created at process start and injected
// into every component that needs it; there is no package-level singleton,
// so tests and tenants get isolated instances. Entries below the configured
// minimum severity are dropped before reaching any transport. Accepted
// entries are merged with the logger's default context and the
// request-scoped fields carried by the call's context.Context (see the
// reqctx package), then dispatched to every registered transport
// concurrently. A transport failure or panic is reported to the fallback
// writer and never reaches the caller, never blocks sibling transports.
//
// Severity is ordered ERROR < WARN < INFO < DEBUG < TRACE, lower numeric
// value meaning higher severity.
//
//	logger := logx.New(logx.Config{
//	    Service:  "dashboard",
//	    MinLevel: logx.LevelInfo,
//	    Transports: []logx.Transport{
//	        logx.NewConsoleTransport(os.Stdout),
//	    },
//	})
//
//	ctx = reqctx.WithRequestID(ctx, requestID)
//	logger.Info(ctx, "upstream call finished", logx.F("status", 200))
//
// Logging methods never return errors and never panic.
package logx
