package log

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

// DefaultContextProvider supplies the context of the logging functions and
// methods that do not take one.
var DefaultContextProvider = context.TODO

var defaultLog atomic.Pointer[Logger]

func init() {
	SetDefault(Make(os.Stderr))
}

// Default returns the package-level logger used by the logging functions.
func Default() Logger { return *defaultLog.Load() }

// SetDefault replaces the package-level logger.
func SetDefault(l Logger) { defaultLog.Store(&l) }

// Config applies opts to the package-level logger and returns the result.
func Config(opts ...Option) Logger {
	l := Default().Wrap(opts...)
	SetDefault(l)

	return l
}

// TraceContext logs at [LevelTrace] with the package-level logger.
func TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().log(ctx, LevelTrace, msg, attrs)
}

// Trace logs at [LevelTrace] with the package-level logger.
func Trace(msg string, attrs ...slog.Attr) {
	Default().log(DefaultContextProvider(), LevelTrace, msg, attrs)
}

// DebugContext logs at [LevelDebug] with the package-level logger.
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().log(ctx, LevelDebug, msg, attrs)
}

// Debug logs at [LevelDebug] with the package-level logger.
func Debug(msg string, attrs ...slog.Attr) {
	Default().log(DefaultContextProvider(), LevelDebug, msg, attrs)
}

// InfoContext logs at [LevelInfo] with the package-level logger.
func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().log(ctx, LevelInfo, msg, attrs)
}

// Info logs at [LevelInfo] with the package-level logger.
func Info(msg string, attrs ...slog.Attr) {
	Default().log(DefaultContextProvider(), LevelInfo, msg, attrs)
}

// WarnContext logs at [LevelWarn] with the package-level logger.
func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().log(ctx, LevelWarn, msg, attrs)
}

// Warn logs at [LevelWarn] with the package-level logger.
func Warn(msg string, attrs ...slog.Attr) {
	Default().log(DefaultContextProvider(), LevelWarn, msg, attrs)
}

// ErrorContext logs at [LevelError] with the package-level logger.
func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().log(ctx, LevelError, msg, attrs)
}

// Error logs at [LevelError] with the package-level logger.
func Error(msg string, attrs ...slog.Attr) {
	Default().log(DefaultContextProvider(), LevelError, msg, attrs)
}
