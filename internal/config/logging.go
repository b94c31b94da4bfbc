package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// SetupLogging points the default slog logger at a JSON log file, since the
// TUI owns the terminal. The returned closer flushes the file.
func SetupLogging(path string, debug bool) (io.Closer, error) {
	if path == "" {
		p, err := DefaultLogPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	slog.SetDefault(NewLogger(f, debug))
	return f, nil
}

// NewLogger returns a JSON logger writing to w.
func NewLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}
