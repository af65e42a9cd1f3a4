// Package logging provides diagnostic logging for the codecbench CLI.
//
// The report on stdout is the product of a run; this logger carries the
// operational detail (resolved configuration, every external argv) on
// stderr, at debug level unless verbose mode is enabled.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog with nil-safe, printf-style helpers.
type Logger struct {
	slog *slog.Logger
}

// Config contains logger configuration options.
type Config struct {
	Verbose bool
	Output  io.Writer
}

// New creates a logger writing to cfg.Output (stderr by default).
// Verbose mode lowers the level to debug.
func New(cfg Config) *Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(output, &slog.HandlerOptions{Level: level})
	return &Logger{slog: slog.New(handler)}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return &Logger{slog: slog.New(handler)}
}

// Info logs an info-level message.
func (l *Logger) Info(format string, args ...any) {
	if l == nil {
		return
	}
	l.slog.Info(fmt.Sprintf(format, args...))
}

// Debug logs a debug-level message (only emitted in verbose mode).
func (l *Logger) Debug(format string, args ...any) {
	if l == nil {
		return
	}
	l.slog.Debug(fmt.Sprintf(format, args...))
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...any) {
	if l == nil {
		return
	}
	l.slog.Warn(fmt.Sprintf(format, args...))
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...any) {
	if l == nil {
		return
	}
	l.slog.Error(fmt.Sprintf(format, args...))
}
