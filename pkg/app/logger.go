package app

import (
	"io"
	"log/slog"
	"strings"

	"github.com/japaniel/speakmeaning/pkg/config"
)

// NewLogger builds the process logger from the log section and installs it as
// slog's default. The window app writes to stderr; the -word mode shares it so
// diagnostics never mix with the printed definition on stdout.
//
// "json" selects one record per line; anything else is logfmt-style text.
// Source locations are added to text output at debug level only.
func NewLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	level := ParseLevel(cfg.Level)
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		opts.AddSource = level == slog.LevelDebug
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler).With("app", "speakmeaning")
	slog.SetDefault(logger)
	return logger
}

// ParseLevel maps a level name to a slog.Level, falling back to info.
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
