package server

import (
	"context"
	"net/http"

	"github.com/BlackWidow29/Entrevista-Docket/internal/handler"
	mid "github.com/BlackWidow29/Entrevista-Docket/internal/middleware"
	"github.com/BlackWidow29/Entrevista-Docket/internal/repository"
	"github.com/BlackWidow29/Entrevista-Docket/internal/view"
	"github.com/BlackWidow29/Entrevista-Docket/pkg/jwtutil"
	"github.com/BlackWidow29/Entrevista-Docket/pkg/logger"
	"github.com/BlackWidow29/Entrevista-Docket/prometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// Dependencies are the collaborators the HTTP server is assembled from
type Dependencies struct {
	AppName      string
	Registries   repository.RegistryStore
	Certificates repository.CertificateStore
	Logger       *zap.Logger
	// Metrics may be nil to disable instrumentation and /metrics
	Metrics *prometheus.Metrics
	// Auth may be nil to leave /api open
	Auth *jwtutil.JWTUtil
	// Ping backs /health; nil reports healthy unconditionally
	Ping func(ctx context.Context) error
}

// New builds the echo instance with middleware and routes
func New(deps Dependencies) (*echo.Echo, error) {
	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}

	log := deps.Logger
	if log == nil {
		log = logger.GetLogger()
	}
	ping := deps.Ping
	if ping == nil {
		ping = func(context.Context) error { return nil }
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer

	// order matters: ids first so the request logger can pick them up
	e.Use(echomiddleware.Recover())
	e.Use(mid.RequestIDMiddleware())
	e.Use(logger.Middleware(log))
	if deps.Metrics != nil {
		e.Use(deps.Metrics.Middleware())
		e.GET("/metrics", echo.WrapHandler(deps.Metrics.Handler()))
	}

	e.GET("/health", handler.HealthCheck(deps.AppName, ping))

	views := handler.NewViewHandler(deps.Registries, deps.Certificates)
	e.GET("/allregistries", views.ShowAllRegistries)

	api := e.Group("/api")
	if deps.Auth != nil {
		api.Use(mid.JWTAuthMiddleware(deps.Auth))
	}
	handler.NewRegistryHandler(deps.Registries, deps.AppName, deps.Metrics).Register(api)

	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found"})
	})

	return e, nil
}
