// Package logging configures the process-wide slog logger: a console
// handler plus a timestamped run log under <dir>/run/logs.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Options control handler levels and the run-log location.
type Options struct {
	// BaseDir is the directory under which run/logs/run-<utc>.log is
	// created. Empty disables the file handler.
	BaseDir      string
	ConsoleLevel string // e.g. "INFO", "DEBUG"; default INFO
	FileLevel    string // default INFO
}

// Init installs the default slog logger and returns the run-log path
// (empty when no file handler was configured).
func Init(opts Options) (string, error) {
	console := newHandler(os.Stderr, parseLevel(opts.ConsoleLevel))

	if opts.BaseDir == "" {
		slog.SetDefault(slog.New(console))
		return "", nil
	}

	logDir := filepath.Join(opts.BaseDir, "run", "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return "", fmt.Errorf("creating log directory %s: %w", logDir, err)
	}
	stamp := time.Now().UTC().Format("20060102-150405")
	logPath := filepath.Join(logDir, "run-"+stamp+".log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("opening log file %s: %w", logPath, err)
	}

	file := newHandler(f, parseLevel(opts.FileLevel))
	slog.SetDefault(slog.New(&teeHandler{handlers: []slog.Handler{console, file}}))
	return logPath, nil
}

func newHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
}

func parseLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
