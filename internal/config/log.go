package config

import (
	"log/slog"
	"os"
	"strings"
)

// parseLogLevel converts a LOG_LEVEL value. An empty value means INFO.
func parseLogLevel(value string) (slog.Level, bool) {
	switch strings.ToUpper(value) {
	case "DEBUG":
		return slog.LevelDebug, true
	case "", "INFO":
		return slog.LevelInfo, true
	case "WARN":
		return slog.LevelWarn, true
	case "ERROR":
		return slog.LevelError, true
	default:
		return 0, false
	}
}

// SetLogLevel sets the log level for the application from LOG_LEVEL.
// LOG_FORMAT=json switches from text to JSON output.
func SetLogLevel() {
	envLevel := os.Getenv("LOG_LEVEL")

	level, ok := parseLogLevel(envLevel)
	if !ok {
		slog.Error("Invalid log level", "level", envLevel)
		os.Exit(1)
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(os.Getenv("LOG_FORMAT")) {
	case "", "text":
		handler = slog.NewTextHandler(os.Stderr, opts)
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		slog.Error("Invalid log format", "format", os.Getenv("LOG_FORMAT"))
		os.Exit(1)
	}

	slog.SetDefault(slog.New(handler))
}
