package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BlackWidow29/Entrevista-Docket/internal/model"
	"github.com/BlackWidow29/Entrevista-Docket/internal/repository"
	"github.com/BlackWidow29/Entrevista-Docket/internal/view"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViewServer(t *testing.T, store *repository.MemoryStore) *echo.Echo {
	t.Helper()
	renderer, err := view.NewRenderer()
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = renderer
	e.GET("/allregistries", NewViewHandler(store.Registries(), store.Certificates()).ShowAllRegistries)
	return e
}

func TestShowAllRegistries(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()

	registry := &model.Registry{Name: "Primeiro Ofício", City: "Recife"}
	require.NoError(t, store.Registries().Create(ctx, registry))
	owned := &model.Certificate{Name: "Habite-se"}
	registry.AddCertificate(owned)
	require.NoError(t, store.Certificates().Create(ctx, owned))
	require.NoError(t, store.Certificates().Create(ctx, &model.Certificate{Name: "Loose"}))

	rec := httptest.NewRecorder()
	newViewServer(t, store).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/allregistries", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Registries</title>")
	assert.Contains(t, body, "Primeiro Ofício")
	assert.Contains(t, body, "Habite-se")
	assert.Contains(t, body, "unassigned")
	assert.NotContains(t, body, "No registries")
	assert.Contains(t, body, `<p id="registry-count">1 registries</p>`)
	assert.Contains(t, body, `<p id="certificate-count">2 certificates</p>`)
}

func TestShowAllRegistries_Empty(t *testing.T) {
	rec := httptest.NewRecorder()
	newViewServer(t, repository.NewMemoryStore()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/allregistries", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No registries")
	assert.Contains(t, rec.Body.String(), "No certificates")
	assert.Contains(t, rec.Body.String(), `<p id="registry-count">0 registries</p>`)
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name   string
		ping   func(context.Context) error
		status int
		want   string
	}{
		{name: "healthy", ping: func(context.Context) error { return nil }, status: http.StatusOK, want: "healthy"},
		{name: "database down", ping: func(context.Context) error { return errors.New("connection refused") }, status: http.StatusServiceUnavailable, want: "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.GET("/health", HealthCheck(testApp, tt.ping))

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.status, rec.Code)
			body := decode[map[string]string](t, rec)
			assert.Equal(t, tt.want, body["status"])
			assert.Equal(t, testApp, body["service"])
		})
	}
}
