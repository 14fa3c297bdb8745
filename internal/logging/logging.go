// Package logging configures the process-wide slog logger.
//
// The TUI owns the terminal, so logs never go to stdout or stderr. They are
// written as JSON lines to a file when one is configured and dropped otherwise.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// EnvFile names the log file when --log-file is not given.
const EnvFile = "CALENTRY_LOG"

// EnvLevel sets the minimum level (debug, info, warn, error). Default debug.
const EnvLevel = "CALENTRY_LOG_LEVEL"

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup installs the default logger. path wins over $CALENTRY_LOG; with
// neither set, logs are discarded. The returned closer flushes the file.
func Setup(path string) (io.Closer, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = strings.TrimSpace(os.Getenv(EnvFile))
	}
	if path == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	slog.SetDefault(New(f, ParseLevel(os.Getenv(EnvLevel))))
	return f, nil
}

// New returns a JSON logger writing to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// ParseLevel maps a level name to a slog.Level. Unknown names mean debug.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
