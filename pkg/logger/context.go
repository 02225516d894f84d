package logger

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request id between middleware and clients
const RequestIDHeader = "X-Request-ID"

type contextKey string

const ctxLoggerKey contextKey = "logger"

// loggerKey is the echo.Context key holding the request-scoped logger
const loggerKey = "logger"

// FromContext retrieves the logger from a context.Context
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxLoggerKey).(*zap.Logger); ok {
		return l
	}
	return GetLogger()
}

// WithContext adds the logger to the context
func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey, l)
}

// FromEcho retrieves the logger from the Echo context
func FromEcho(c echo.Context) *zap.Logger {
	if l, ok := c.Get(loggerKey).(*zap.Logger); ok {
		return l
	}

	requestID := c.Request().Header.Get(RequestIDHeader)
	if requestID == "" {
		requestID = "unknown"
	}
	return GetLogger().With(zap.String("request_id", requestID))
}

// SetEcho stores a request-scoped logger on the Echo context
func SetEcho(c echo.Context, l *zap.Logger) {
	c.Set(loggerKey, l)
}
