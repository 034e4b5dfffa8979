// Package logging configures slog: JSON to stdout, optionally fanned out to
// a persistent sink for errors.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// ParseLevel maps debug/info/warn/error to a slog level, defaulting to info.
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

// NewJSONHandler writes records as JSON with the timestamp under "ts" in loc.
func NewJSONHandler(w io.Writer, level slog.Level, loc *time.Location) slog.Handler {
	if loc == nil {
		loc = time.UTC
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.String("ts", a.Value.Time().In(loc).Format(time.RFC3339Nano))
			}
			return a
		},
	})
}

// Setup installs the default logger: JSON on stdout plus any extra handlers.
func Setup(level slog.Level, loc *time.Location, extra ...slog.Handler) *slog.Logger {
	var h slog.Handler = NewJSONHandler(os.Stdout, level, loc)
	if len(extra) > 0 {
		h = NewMultiHandler(append([]slog.Handler{h}, extra...)...)
	}
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}
