// Package logging writes structured JSON lines to <dataDir>/logs/stepfolio.log.
// The TUI owns the terminal, so nothing is ever logged to stdout or stderr.
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"stepfolio/internal/store"
)

const fileName = "stepfolio.log"

// Logger is a slog.Logger bound to an open log file.
type Logger struct {
	*slog.Logger
	file *os.File
}

// New opens (or appends to) the log file selected by cfg. cfg.File == "-"
// returns a logger that discards everything.
func New(dataDir string, cfg store.LogConfig) (*Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	path := strings.TrimSpace(cfg.File)
	if path == "-" {
		return Discard(), nil
	}
	if path == "" {
		if strings.TrimSpace(dataDir) == "" {
			return Discard(), nil
		}
		path = filepath.Join(dataDir, "logs", fileName)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}
	h := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})
	return &Logger{Logger: slog.New(h), file: f}, nil
}

func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.DiscardHandler)}
}

// Close releases the file handle.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("logging: unknown level %q (expected debug|info|warn|error)", s)
	}
}
