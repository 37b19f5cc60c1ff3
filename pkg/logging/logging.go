// Package logging configures colored structured logging with tint.
//
// Usage:
//
//	logging.Setup("info")                                    // stderr, colored
//	logging.SetupWithLevel(file, slog.LevelDebug, true)      // any writer, no color
//
// Levels: debug, info, warn, error (default: info)
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup configures colored logging on stderr at the named level.
func Setup(level string) {
	SetupWithLevel(os.Stderr, ParseLevel(level), false)
}

// SetupWithLevel configures logging to w at the given level.
// noColor should be set when w is not a terminal (e.g. a log file).
func SetupWithLevel(w io.Writer, level slog.Level, noColor bool) {
	slog.SetDefault(slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			AddSource:  true,
			NoColor:    noColor,
		}),
	))
}

// ParseLevel maps a level name onto slog levels; unknown names mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
