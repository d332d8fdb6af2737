// Package logger configures the structured slog loggers used by the
// edmundson commands and servers.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogFormat defines how log records are formatted
type LogFormat int

// Log format constants
const (
	TEXT LogFormat = iota
	JSON
)

// LevelDisabled is above every slog level and silences the logger.
const LevelDisabled = slog.Level(100)

// Config holds configuration options for the logger
type Config struct {
	Level       slog.Level
	Format      LogFormat
	Output      io.Writer
	DefaultTags map[string]interface{}
}

// DefaultConfig returns a default logger configuration
func DefaultConfig() *Config {
	return &Config{
		Level:       slog.LevelInfo,
		Format:      TEXT,
		Output:      os.Stderr,
		DefaultTags: map[string]interface{}{"service": "edmundson"},
	}
}

// New creates a new slog logger with the given configuration
func New(config *Config) *slog.Logger {
	if config == nil {
		config = DefaultConfig()
	}

	out := config.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: config.Level}
	var handler slog.Handler
	if config.Format == JSON {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	logger := slog.New(handler)
	for k, v := range config.DefaultTags {
		logger = logger.With(k, v)
	}
	return logger
}

// FromSettings builds a logger from the level and format strings of the
// configuration file.
func FromSettings(level, format string, out io.Writer) *slog.Logger {
	return New(&Config{
		Level:       ParseLevel(level),
		Format:      ParseFormat(format),
		Output:      out,
		DefaultTags: DefaultConfig().DefaultTags,
	})
}

// WithContext returns a logger tagged with a dotted context path
func WithContext(logger *slog.Logger, contexts ...string) *slog.Logger {
	if len(contexts) == 0 {
		return logger
	}
	return logger.With("context", strings.Join(contexts, "."))
}

// ParseLevel converts a string level to a slog level
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	case "DISABLED", "OFF":
		return LevelDisabled
	default:
		return slog.LevelInfo
	}
}

// ParseFormat converts a string format to a LogFormat
func ParseFormat(format string) LogFormat {
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		return JSON
	}
	return TEXT
}

// SetDefaultLogger installs logger as the slog default
func SetDefaultLogger(logger *slog.Logger) {
	slog.SetDefault(logger)
}
