// Package logging wraps github.com/willibrandon/mtlog into the small
// leveled-logging surface the rest of this core depends on, initialized
// once at startup the way the teacher's logger package is (main.go's
// logger.InitLogger/logger.Close), but backed by mtlog's structured
// pipeline rather than a bespoke file writer.
package logging

import (
	"time"

	"github.com/willibrandon/mtlog"
	"github.com/willibrandon/mtlog/core"
)

// Logger is the subset of mtlog's core.Logger this core calls.
type Logger = core.Logger

// Config drives logger construction.
type Config struct {
	// LogPath is the well-known append-only log file (spec §6). Empty
	// disables file logging (console-only); logging is optional for
	// correctness.
	LogPath string
	// Level is one of "verbose", "debug", "information", "warning", "error".
	Level string
	// RequestDeadline is passed straight to mtlog's deadline-awareness
	// enricher so it warns independently of (and at the same threshold
	// as) the bounded-latency executor's own fallback (spec §4.5).
	RequestDeadline time.Duration
}

// New builds a Logger per cfg. Console output always goes to stderr —
// stdout is reserved entirely for the framed protocol (spec §6).
func New(cfg Config) (Logger, error) {
	opts := []mtlog.Option{
		mtlog.WithConsole(),
		mtlog.WithMinimumLevel(parseLevel(cfg.Level)),
	}
	if cfg.LogPath != "" {
		opts = append(opts, mtlog.WithFile(cfg.LogPath))
	}
	if cfg.RequestDeadline > 0 {
		opts = append(opts, mtlog.WithContextDeadlineWarning(cfg.RequestDeadline))
	}
	return mtlog.Build(opts...)
}

func parseLevel(level string) core.LogEventLevel {
	switch level {
	case "verbose":
		return core.VerboseLevel
	case "debug":
		return core.DebugLevel
	case "warning":
		return core.WarningLevel
	case "error":
		return core.ErrorLevel
	default:
		return core.InformationLevel
	}
}
