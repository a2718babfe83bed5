// Package logger provides the structured logger shared by hostgrep commands.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

const LevelTrace = slog.Level(-8)

const (
	EnvLogFormat = "HOSTGREP_LOG_FORMAT"
	EnvLogLevel  = "HOSTGREP_LOG_LEVEL"
)

const (
	FormatJSON = "json"
	FormatText = "text"
)

// LogConfig selects the log format and minimum level.
type LogConfig struct {
	Format string `yaml:"format,omitempty"`
	Level  string `yaml:"level,omitempty"`
}

var (
	instance *Logger
	mu       sync.Mutex
)

// InitInstance replaces the process-wide logger and makes it the slog default.
func InitInstance(config LogConfig) {
	mu.Lock()
	defer mu.Unlock()

	instance = NewLogger(config, os.Stderr)
	slog.SetDefault(instance.Logger)
}

// GetInstance returns the process-wide logger, building one from the
// environment on first use.
func GetInstance() *Logger {
	mu.Lock()
	defer mu.Unlock()

	if instance == nil {
		instance = NewDefaultLogger()
	}
	return instance
}

// ParseLevel maps a level name to a slog level. Unknown names map to info.
func ParseLevel(name string) slog.Level {
	if strings.EqualFold(name, "trace") {
		return LevelTrace
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// NewLogger builds a logger writing to w.
func NewLogger(config LogConfig, w io.Writer) *Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(config.Level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if l, ok := a.Value.Any().(slog.Level); ok && l == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			if a.Key == slog.TimeKey {
				a.Key = "timestamp"
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format(time.RFC3339))
				}
			}
			return a
		},
	}

	var handler slog.Handler
	switch config.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return &Logger{slog.New(handler)}
}

// ConfigFromEnv returns the log configuration from the environment,
// defaulting to text output at warn level.
func ConfigFromEnv() LogConfig {
	return LogConfig{
		Format: getEnv(EnvLogFormat, FormatText),
		Level:  getEnv(EnvLogLevel, "warn"),
	}
}

// NewDefaultLogger builds a stderr logger configured from the environment.
func NewDefaultLogger() *Logger {
	return NewLogger(ConfigFromEnv(), os.Stderr)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Logger wraps slog.Logger with printf-style helpers.
type Logger struct {
	*slog.Logger
}

func (l *Logger) Trace(msg string, args ...any) {
	l.Logger.Log(context.Background(), LevelTrace, msg, args...)
}

func (l *Logger) Debugf(format string, args ...any) {
	l.Logger.Debug(fmt.Sprintf(format, args...))
}

func (l *Logger) Infof(format string, args ...any) {
	l.Logger.Info(fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...any) {
	l.Logger.Warn(fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...any) {
	l.Logger.Error(fmt.Sprintf(format, args...))
}

func (l *Logger) IsLevelEnabled(level slog.Level) bool {
	return l.Enabled(context.Background(), level)
}

func (l *Logger) WithFields(fields map[string]any) *Logger {
	if len(fields) == 0 {
		return l
	}
	args := make([]any, 0, len(fields))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	return &Logger{l.Logger.With(args...)}
}
