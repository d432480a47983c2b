// Package util provides shared utility functions for logging.
package util

import (
	"log/slog"
	"strings"
)

// ParseLevel maps a configuration level string to a slog.Level. Supported
// levels: "debug", "info", "warn", "error". Anything else means info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
