// Package log routes the slicer's logging through a slog text handler. The
// TUI points it at a file so the alternate screen stays clean.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// LevelOff is above every level slog writes.
const LevelOff = slog.LevelError + 4

var (
	level = new(slog.LevelVar)
	out   = &switchWriter{w: os.Stderr}

	logger = slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
)

// switchWriter lets ToFile and Close move the handler's output.
type switchWriter struct {
	mu     sync.Mutex
	w      io.Writer
	closer io.Closer
}

func (s *switchWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// swap points output at w and returns the closer it replaced.
func (s *switchWriter) swap(w io.Writer, c io.Closer) io.Closer {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.closer
	s.w, s.closer = w, c
	return prev
}

// ParseLevel reads debug/info/warn/error/off; anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "off", "none":
		return LevelOff
	default:
		return slog.LevelInfo
	}
}

// SetLevel sets the minimum level written.
func SetLevel(l slog.Level) { level.Set(l) }

// SetOutput redirects log lines to w.
func SetOutput(w io.Writer) {
	if prev := out.swap(w, nil); prev != nil {
		_ = prev.Close()
	}
}

// ToFile appends log lines to path until Close is called.
func ToFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	if prev := out.swap(f, f); prev != nil {
		_ = prev.Close()
	}
	return nil
}

// Close releases a file opened by ToFile and returns output to stderr.
func Close() error {
	if prev := out.swap(os.Stderr, nil); prev != nil {
		return prev.Close()
	}
	return nil
}

func Debug(msg string, kv ...any) { logger.Debug(msg, kv...) }

func Info(msg string, kv ...any) { logger.Info(msg, kv...) }

func Error(msg string, err error, kv ...any) {
	logger.Error(msg, append([]any{"err", err}, kv...)...)
}
