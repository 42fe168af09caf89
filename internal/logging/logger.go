// Package logging defines a minimal structured-logging interface used across
// the project, with adapters for log/slog and zap.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "request served", "method", r.Method, "status", status)
type Logger interface {
	// Debug logs verbose diagnostics.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// New builds a Logger for the given backend ("slog" or "zap") and format
// ("json" or "text"). Unknown backends are rejected.
func New(backend, format string, w io.Writer) (Logger, error) {
	switch backend {
	case "", "slog":
		var h slog.Handler
		if format == "text" {
			h = slog.NewTextHandler(w, nil)
		} else {
			h = slog.NewJSONHandler(w, nil)
		}
		return NewSlogLogger(slog.New(h)), nil
	case "zap":
		return NewZapLogger(newZap(format, w)), nil
	default:
		return nil, fmt.Errorf("unknown log backend %q", backend)
	}
}
