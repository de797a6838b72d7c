// Package logging configures structured logging for the tagger CLI.
//
// Output goes to stderr so stdout stays clean for command output, following
// Unix CLI conventions. Text output is the default; JSON can be enabled for
// log collectors in CI.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New builds a slog.Logger writing to stderr at the given level.
// Unrecognized level names fall back to info.
func New(level string, json bool) *slog.Logger {
	return NewWithWriter(os.Stderr, level, json)
}

// NewWithWriter is New with an explicit destination, for tests.
func NewWithWriter(w io.Writer, level string, json bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
