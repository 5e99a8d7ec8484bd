package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger writes JSON records tagged with the service name, host and an
// action key that identifies the operation being logged.
type Logger struct {
	service  string
	hostname string
	handler  *slog.Logger
}

func New(service, level string) *Logger {
	return NewWithWriter(os.Stdout, service, level)
}

func NewWithWriter(w io.Writer, service, level string) *Logger {
	hostname, _ := os.Hostname()

	handler := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	}))

	return &Logger{
		service:  service,
		hostname: hostname,
		handler:  handler,
	}
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *Logger {
	return NewWithWriter(io.Discard, "test", "error")
}

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

func (l *Logger) Debug(action, message string, args ...any) {
	l.log(slog.LevelDebug, action, message, nil, args)
}

func (l *Logger) Info(action, message string, args ...any) {
	l.log(slog.LevelInfo, action, message, nil, args)
}

func (l *Logger) Warn(action, message string, args ...any) {
	l.log(slog.LevelWarn, action, message, nil, args)
}

func (l *Logger) Error(action, message string, err error, args ...any) {
	l.log(slog.LevelError, action, message, err, args)
}

func (l *Logger) log(level slog.Level, action, message string, err error, args []any) {
	ctx := context.Background()
	if !l.handler.Enabled(ctx, level) {
		return
	}

	attrs := []any{
		slog.String("service", l.service),
		slog.String("hostname", l.hostname),
		slog.String("action", action),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	attrs = append(attrs, args...)

	l.handler.Log(ctx, level, message, attrs...)
}
