package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BlackWidow29/Entrevista-Docket/pkg/config"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitLogger(t *testing.T) {
	t.Cleanup(func() { SetLogger(zap.NewNop()) })

	cfg := &config.Config{AppName: "docketApp", Server: config.ServerConfig{Env: "production"}, Log: config.LogConfig{Level: "warn"}}
	require.NoError(t, InitLogger(cfg))

	l := GetLogger()
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
}

func TestInitLogger_InvalidLevelDefaultsToInfo(t *testing.T) {
	t.Cleanup(func() { SetLogger(zap.NewNop()) })

	cfg := &config.Config{Server: config.ServerConfig{Env: "development"}, Log: config.LogConfig{Level: "loud"}}
	require.NoError(t, InitLogger(cfg))
	assert.True(t, GetLogger().Core().Enabled(zapcore.InfoLevel))
	assert.False(t, GetLogger().Core().Enabled(zapcore.DebugLevel))
}

func TestMiddleware_LogsRequest(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	e := echo.New()
	e.Use(Middleware(zap.New(core)))

	var fromHandler *zap.Logger
	var fromCtx *zap.Logger
	e.GET("/ok", func(c echo.Context) error {
		fromHandler = FromEcho(c)
		fromCtx = FromContext(c.Request().Context())
		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotNil(t, fromHandler)
	assert.Same(t, fromHandler, fromCtx)

	entries := logs.FilterMessage("HTTP request completed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, int64(http.StatusNoContent), fields["status"])
	assert.Equal(t, "/ok", fields["path"])
}

func TestMiddleware_LogsFailureWithFinalStatus(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	e := echo.New()
	e.Use(Middleware(zap.New(core)))
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "short and stout")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	entries := logs.FilterMessage("HTTP request failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(http.StatusTeapot), entries[0].ContextMap()["status"])
}

func TestFromContext_FallsBackToGlobal(t *testing.T) {
	nop := zap.NewNop()
	SetLogger(nop)
	assert.Same(t, nop, FromContext(context.Background()))
}
