package logging

import (
	"io"
	"os"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
)

// Logger is the structured logger used across textenc.
type Logger interface {
	Debug(msg string, keyvals ...any)
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
	With(keyvals ...any) Logger
}

// Config configures a Logger.
type Config struct {
	Level  string
	JSON   bool
	Output io.Writer
}

type charmLogger struct {
	l *charmlog.Logger
}

// New builds a Logger writing to cfg.Output (stderr when nil).
// Unknown levels fall back to info.
func New(cfg Config) Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	level, err := charmlog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil {
		level = charmlog.InfoLevel
	}
	opts := charmlog.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "textenc",
	}
	if cfg.JSON {
		opts.Formatter = charmlog.JSONFormatter
	}
	return &charmLogger{l: charmlog.NewWithOptions(out, opts)}
}

// Discard returns a Logger that drops every record.
func Discard() Logger {
	return New(Config{Level: "error", Output: io.Discard})
}

func (c *charmLogger) Debug(msg string, keyvals ...any) { c.l.Debug(msg, keyvals...) }
func (c *charmLogger) Info(msg string, keyvals ...any)  { c.l.Info(msg, keyvals...) }
func (c *charmLogger) Warn(msg string, keyvals ...any)  { c.l.Warn(msg, keyvals...) }
func (c *charmLogger) Error(msg string, keyvals ...any) { c.l.Error(msg, keyvals...) }

func (c *charmLogger) With(keyvals ...any) Logger {
	return &charmLogger{l: c.l.With(keyvals...)}
}
