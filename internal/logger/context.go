package logger

import (
	"context"
	"log/slog"
)

// Ключи для context
type contextKey string

const (
	requestIDKey contextKey = "request_id"
	userIDKey    contextKey = "user_id"
)

// WithRequestID добавляет request ID в context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithUserID добавляет user ID в context
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetRequestID извлекает request ID из context
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// GetUserID извлекает user ID из context
func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(userIDKey).(string); ok {
		return userID
	}
	return ""
}

// FromContext создает логгер с полями из context
// Автоматически добавляет request_id и user_id, если они есть в контексте
func FromContext(ctx context.Context) *slog.Logger {
	logger := GetLogger()

	if requestID := GetRequestID(ctx); requestID != "" {
		logger = logger.With("request_id", requestID)
	}
	if userID := GetUserID(ctx); userID != "" {
		logger = logger.With("user_id", userID)
	}

	return logger
}

// CtxInfo логирует info с полями из context
func CtxInfo(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Info(msg, args...)
}

// CtxWarn логирует warning с полями из context
func CtxWarn(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Warn(msg, args...)
}

// CtxError логирует error с полями из context
func CtxError(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Error(msg, args...)
}

// CtxWithError логирует error вместе с самой ошибкой
func CtxWithError(ctx context.Context, msg string, err error, args ...any) {
	FromContext(ctx).With("error", err.Error()).Error(msg, args...)
}
