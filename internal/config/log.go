package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// SetLogLevel configures the default logger from LOG_LEVEL and LOG_FORMAT.
// LOG_FORMAT is "text" (default) or "json".
func SetLogLevel() {
	level, err := parseLogLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		slog.Error("Invalid log level", "error", err)
		os.Exit(1)
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch format := strings.ToLower(os.Getenv("LOG_FORMAT")); format {
	case "", "text":
		handler = slog.NewTextHandler(os.Stderr, opts)
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		slog.Error("Invalid log format", "format", format)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(handler).With("app", "reversi"))
}

func parseLogLevel(value string) (slog.Level, error) {
	switch strings.ToUpper(value) {
	case "", "INFO":
		return slog.LevelInfo, nil
	case "DEBUG":
		return slog.LevelDebug, nil
	case "WARN":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", value)
	}
}
