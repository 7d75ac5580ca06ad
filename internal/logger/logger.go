// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The pianoman Authors

// Package logger provides a thin wrapper around zerolog.Logger that adds
// convenience constructors and context-aware helpers used throughout
// pianoman.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, etc.) are available directly on *Logger.
// Library code never creates its own output: it logs through a *Logger the
// caller hands in, or the one attached to the context, which is silent when
// nothing was attached.
package logger

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a thin wrapper around zerolog.Logger.
type Logger struct {
	zerolog.Logger
}

// Options configures NewLogger.
type Options struct {
	// Level is the minimum level emitted. Zero value is Debug.
	Level zerolog.Level

	// Output receives log lines. Defaults to os.Stderr so that stdout stays
	// free for command output.
	Output io.Writer

	// Pretty switches from JSON lines to zerolog's console writer.
	Pretty bool
}

// NewLogger constructs a *Logger for the given role label (e.g. "cli",
// "loader").
//
// Every entry carries a "role" field and a timestamp.
func NewLogger(role string, opts Options) *Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out}
	}

	logger := zerolog.New(out).
		Level(opts.Level).
		With().
		Str("role", role).
		Timestamp().
		Logger()

	return &Logger{logger}
}

// ParseLevel parses a level name case-insensitively. Unknown names yield
// fallback.
func ParseLevel(level string, fallback zerolog.Level) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return fallback
	}
	return lvl
}

// Nop returns a *Logger that discards all log output.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a new *Logger that inherits all fields of the
// receiver. The child logger can be enriched with additional context fields
// without affecting the parent logger.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// WithContext attaches l to ctx so that FromContext finds it.
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return l.Logger.WithContext(ctx)
}

// FromContext extracts the zerolog.Logger stored in ctx by zerolog's log.Ctx
// helper and returns it as a *Logger.
//
// If no logger has been attached to ctx, the result is disabled (or
// zerolog.DefaultContextLogger when set), so this function never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
