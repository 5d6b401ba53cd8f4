// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package obs contains observability utilities such as logging.
//
// The TUI owns stdout, so logs go to a file instead.
package obs

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Logger is the global structured logger. It discards everything until
// InitLogger is called.
var Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))

var (
	mu      sync.Mutex
	logFile *os.File
)

// ParseLevel maps debug|info|warn|error to a slog level. Unknown values
// fall back to info.
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

// InitLogger points the global Logger at a JSON handler writing to path at
// the given level. An empty path discards output.
func InitLogger(path, level string) error {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()

	if path == "" {
		Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logFile = f

	Logger = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: ParseLevel(level)}))
	return nil
}

// InitWriter points the global Logger at w. Used by tests and by the
// one-shot commands in verbose mode.
func InitWriter(w io.Writer, level string) {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()
	Logger = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// Discard silences the global Logger.
func Discard() {
	InitWriter(io.Discard, "error")
}

// Close releases the log file, if any.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
}

func closeLocked() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}
