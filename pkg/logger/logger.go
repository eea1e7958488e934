/*
logger writes structured log records. Records always go to a writer other
than standard output, which is reserved for protocol traffic.
*/
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Logger struct {
	*slog.Logger
}

// Format of the log records
type Format uint

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	Text Format = iota
	JSON
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns a logger which writes to w. Debug records are only written
// when debug is true.
func New(w io.Writer, format Format, debug bool) *Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}
	if debug {
		opts.Level = slog.LevelDebug
	}

	var handler slog.Handler
	switch format {
	case JSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return &Logger{slog.New(handler)}
}

// Discard returns a logger which writes nothing
func Discard() *Logger {
	return New(io.Discard, Text, false)
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Print writes an informational record
func (l *Logger) Print(ctx context.Context, v ...any) {
	l.InfoContext(ctx, fmt.Sprint(v...))
}

// Printf writes a formatted informational record
func (l *Logger) Printf(ctx context.Context, format string, v ...any) {
	l.InfoContext(ctx, fmt.Sprintf(format, v...))
}

// Debugf writes a formatted debug record
func (l *Logger) Debugf(ctx context.Context, format string, v ...any) {
	if l.Enabled(ctx, slog.LevelDebug) {
		l.DebugContext(ctx, fmt.Sprintf(format, v...))
	}
}

// Errorf writes a formatted error record
func (l *Logger) Errorf(ctx context.Context, format string, v ...any) {
	l.ErrorContext(ctx, fmt.Sprintf(format, v...))
}

// With returns a logger which adds the attributes to every record
func (l *Logger) With(args ...any) *Logger {
	return &Logger{l.Logger.With(args...)}
}
