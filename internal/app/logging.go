package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lmittmann/tint"

	"github.com/dshills/quill/internal/config"
)

// ParseLogLevel parses a level name, ignoring case.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, s)
	}
}

// NewLogger builds the editor logger from cfg. Output goes to cfg.File;
// with no file, logs are discarded because the terminal is in use. The
// returned closer releases the file.
func NewLogger(cfg config.LoggingConfig) (*slog.Logger, io.Closer, error) {
	level, err := ParseLogLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	if cfg.File == "" {
		return DiscardLogger(), nopCloser{}, nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, &InitError{Component: "logging", Err: err}
	}
	return NewLoggerTo(f, level), f, nil
}

// NewLoggerTo returns a logger writing tint-formatted lines to w, tagged
// with a fresh session id.
func NewLoggerTo(w io.Writer, level slog.Level) *slog.Logger {
	handler := tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.StampMilli,
		NoColor:    true,
	})
	return slog.New(handler).With("session", uuid.NewString())
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// WithComponent returns a child logger tagged with a component name.
func WithComponent(logger *slog.Logger, name string) *slog.Logger {
	return logger.With("component", name)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
