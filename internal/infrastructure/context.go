package infrastructure

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	apperrors "degradecli/internal/errors"
)

// GenerateTraceID creates a new unique run ID using UUID v4
func GenerateTraceID() string {
	return uuid.New().String()
}

// EnsureTraceID ensures the context has a trace ID, generating one if needed
func EnsureTraceID(ctx context.Context) context.Context {
	if GetTraceID(ctx) == "" {
		return WithTraceID(ctx, GenerateTraceID())
	}
	return ctx
}

// WithComponent creates a logger with a component field
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = GetLogger()
	}
	return logger.With("component", component)
}

// ErrorAttrs returns the attributes logged for a failed run: the error text
// and, for application errors, their type.
func ErrorAttrs(err error) []any {
	attrs := []any{slog.String("error", err.Error())}
	if kind := apperrors.TypeOf(err); kind != "" {
		attrs = append(attrs, slog.String("error_type", string(kind)))
	}
	return attrs
}
