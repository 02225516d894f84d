package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/BlackWidow29/Entrevista-Docket/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// HealthCheck returns a handler reporting whether ping succeeds
func HealthCheck(service string, ping func(ctx context.Context) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		if err := ping(ctx); err != nil {
			logger.FromEcho(c).Warn("Health check failed", zap.Error(err))
			return c.JSON(http.StatusServiceUnavailable, echo.Map{
				"status":  "unhealthy",
				"service": service,
			})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"status":  "healthy",
			"service": service,
		})
	}
}
