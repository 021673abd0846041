// Package logging builds the zerolog logger used by the hook.
//
// The hook runs inside Claude Code, so nothing may be written to stdout or
// stderr during normal operation. Logging is therefore file-only and disabled
// by default; when disabled, a no-op logger is returned. The logger is built
// once at startup and passed explicitly to every component that logs.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Options controls logger construction.
type Options struct {
	// Enabled turns on file logging. When false, New returns a no-op logger.
	Enabled bool
	// Level is one of debug, info, warn, error. Unknown values fall back to info.
	Level string
	// Path is the log file path. Empty means DefaultPath().
	Path string
}

// DefaultPath returns ~/.config/claude-notify/notify.log.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = os.TempDir()
	}
	return filepath.Join(home, ".config", "claude-notify", "notify.log")
}

// New opens the log file and returns a logger writing JSON lines to it.
// The returned io.Closer must be closed when the process finishes.
// A file that cannot be opened yields a no-op logger and the open error;
// callers treat that error as non-fatal.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	if !opts.Enabled {
		return zerolog.Nop(), nopCloser{}, nil
	}

	path := opts.Path
	if path == "" {
		path = DefaultPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("creating log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("opening log file %s: %w", path, err)
	}

	return NewWithWriter(f, opts.Level), f, nil
}

// NewWithWriter returns a logger writing to w at the given level.
func NewWithWriter(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(zerolog.SyncWriter(w)).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Str("component", "claude-notify").
		Logger()
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
