package cli

import (
	"io"

	"golang.org/x/exp/slog"
)

// SetupStructuredLogger creates the logger used by all commands. Debug
// messages, including one per store call, are only written if verbose is set.
func SetupStructuredLogger(w io.Writer, format string, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}
