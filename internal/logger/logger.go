package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

type ctxKey string

const requestIDKey ctxKey = AttrKeyRequestID

// InitLogger installs the configured logger as the process default
func InitLogger(config Config) {
	InitLoggerWithWriter(config, os.Stdout)
}

// InitLoggerWithWriter installs a logger writing to w, used by tests
func InitLoggerWithWriter(config Config, w io.Writer) {
	opts := &slog.HandlerOptions{
		Level:     config.LogLevel(),
		AddSource: config.AddSource,
	}

	var handler slog.Handler
	if config.IsJSON() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler.WithAttrs(config.BaseAttributes()))
	slog.SetDefault(logger)
}

// GenerateRequestID creates a new UUID for tracing requests
func GenerateRequestID() string {
	return uuid.NewString()
}

// WithRequestID returns a new context containing the request ID
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext extracts the request ID from the context, if present
func RequestIDFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(requestIDKey)
	if v == nil {
		return "", false
	}
	if id, ok := v.(string); ok {
		return id, true
	}
	return "", false
}

// FromContext returns a logger that includes the request_id attribute when present
func FromContext(ctx context.Context) *slog.Logger {
	if id, ok := RequestIDFromContext(ctx); ok {
		return slog.Default().With(AttrKeyRequestID, id)
	}
	return slog.Default()
}

// Debug logs at debug level on the default logger
func Debug(msg string, args ...any) { slog.Default().Debug(msg, args...) }

// Info logs at info level on the default logger
func Info(msg string, args ...any) { slog.Default().Info(msg, args...) }

// Warn logs at warn level on the default logger
func Warn(msg string, args ...any) { slog.Default().Warn(msg, args...) }

// Error logs at error level on the default logger
func Error(msg string, args ...any) { slog.Default().Error(msg, args...) }
