// Package logging builds the slog loggers shared by the server and the
// terminal view.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New logs to stderr at level. Stdout belongs to the terminal view.
func New(level slog.Level) *slog.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter logs text records to w. Attributes named "error" are
// written as "err".
func NewWithWriter(w io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level, ReplaceAttr: renameError}
	return slog.New(slog.NewTextHandler(w, opts))
}

// NewNop discards everything. Tests and optional loggers use it.
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func renameError(_ []string, a slog.Attr) slog.Attr {
	if a.Key == "error" {
		a.Key = "err"
	}
	return a
}

// ParseLevel maps debug, info, warn and error; anything else is info.
func ParseLevel(s string) slog.Level {
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
