// Package logging defines the minimal structured-logging interface used
// across the dashboard. Implementations can wrap slog or any comparable
// structured backend.
package logging

import "context"

// Logger is a context-aware, structured logger. The variadic args are
// interpreted as key–value pairs:
//
//	log.Info(ctx, "merging history", "kind", kind, "user", userID)
type Logger interface {
	// Debug logs a message useful only when diagnosing behaviour.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning for unusual but non-fatal conditions, such as an
	// unreadable local cache or a failed remote fetch with a local fallback.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs a failure.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}
