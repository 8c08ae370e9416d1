// Package logger provides the logging seam for go-scpi, allowing users to
// plug their preferred logging implementation into the instrument controllers.
//
// The Logger interface defines structured, key-value logging at Debug, Info,
// Warn and Error levels. The default implementation is built on log/slog with
// a human-friendly console handler in development.
package logger

// Level indicates the logging severity level.
type Level = int8

const (
	// DebugLevel logs are typically voluminous, and are usually disabled in
	// production. Instrument command traffic is logged at this level.
	DebugLevel Level = iota - 1
	// InfoLevel is the default logging priority.
	InfoLevel
	// WarnLevel logs are more important than Info, but don't need individual
	// human review.
	WarnLevel
	// ErrorLevel logs are high-priority. If a measurement run is going
	// smoothly, it shouldn't generate any error-level logs.
	ErrorLevel
)

// Logger defines a common interface for logging.
// This interface is used throughout the go-scpi packages, enabling
// integration with various logging frameworks.
type Logger interface {
	// Debug logs a message at DebugLevel with optional key-value pairs.
	Debug(msg string, keysAndValues ...any)
	// Info logs a message at InfoLevel with optional key-value pairs.
	Info(msg string, keysAndValues ...any)
	// Warn logs a message at WarnLevel with optional key-value pairs.
	Warn(msg string, keysAndValues ...any)
	// Error logs a message at ErrorLevel with optional key-value pairs.
	Error(msg string, keysAndValues ...any)
	// With creates a child logger and adds structured context to it.
	// Key-values added to the child don't affect the parent, and vice versa.
	With(keysAndValues ...any) Logger
	// Level returns the minimum enabled level for this logger.
	Level() Level
	// SetLevel sets the minimum enabled level for this logger.
	SetLevel(level Level)
}
