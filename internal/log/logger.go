// =============================================================================
// T-ID CSV Renumberer - Logging
// =============================================================================
//
// Structured logging for the renumberer. Every diagnostic the pipeline emits
// (resolved path, existence, byte length, decoding outcome, summary) goes
// through the Logger interface so the core transform never prints directly.
//
// FORMATS:
//   text - key=value lines, the default for interactive use
//   json - one JSON object per line, for log collectors
//
// =============================================================================

package log

import (
	"io"
	"log/slog"
	"strings"
)

// Logger is the logging interface used across the renumberer.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}

// Config represents logging configuration.
type Config struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "text",
	}
}

// ParseLevel parses a string log level to slog.Level.
// Unknown values fall back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// logger wraps slog.Logger
type logger struct {
	slog *slog.Logger
}

// New creates a logger writing to w according to cfg.
func New(w io.Writer, cfg Config) Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return FromHandler(handler)
}

// FromHandler creates a logger backed by an arbitrary slog handler.
func FromHandler(handler slog.Handler) Logger {
	return &logger{slog: slog.New(handler)}
}

// Discard returns a logger that drops everything.
func Discard() Logger {
	return New(io.Discard, DefaultConfig())
}

func (l *logger) Debug(msg string, args ...any) {
	l.slog.Debug(msg, args...)
}

func (l *logger) Info(msg string, args ...any) {
	l.slog.Info(msg, args...)
}

func (l *logger) Warn(msg string, args ...any) {
	l.slog.Warn(msg, args...)
}

func (l *logger) Error(msg string, args ...any) {
	l.slog.Error(msg, args...)
}

func (l *logger) With(args ...any) Logger {
	return &logger{slog: l.slog.With(args...)}
}
