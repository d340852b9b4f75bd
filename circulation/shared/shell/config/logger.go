package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Level parses the configured log level.
func (c ObservabilityConfig) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("observability.logLevel %q is not one of debug, info, warn, error", c.LogLevel)
	}
}

// NewLogger creates the JSON slog handler of the service with the configured level.
func NewLogger(w io.Writer, cfg ObservabilityConfig) *slog.Logger {
	level, _ := cfg.Level()

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})).
		With("service", cfg.ServiceName)
}
