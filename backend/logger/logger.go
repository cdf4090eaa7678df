// ABOUTME: Structured logging setup for the sizing service
// ABOUTME: Builds the process slog logger from LOG_LEVEL and LOG_FORMAT

package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

const serviceName = "separator-sizer"

// Init installs the default logger. LOG_LEVEL accepts debug, info, warn or
// error (default info); LOG_FORMAT accepts text or json (default text).
func Init() {
	slog.SetDefault(New(os.Stdout, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT")))
}

// New builds a logger writing to w. Unknown levels fall back to info and
// unknown formats to text. Debug logging also records the source position.
func New(w io.Writer, level, format string) *slog.Logger {
	lvl := parseLevel(level)
	opts := &slog.HandlerOptions{Level: lvl, AddSource: lvl <= slog.LevelDebug}

	var h slog.Handler = slog.NewTextHandler(w, opts)
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(h).With("service", serviceName)
}

func parseLevel(level string) slog.Level {
	level = strings.TrimSpace(level)
	if strings.EqualFold(level, "warning") {
		return slog.LevelWarn
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
