package middleware

import (
	"github.com/BlackWidow29/Entrevista-Docket/pkg/logger"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestIDMiddleware adds a unique request ID to each request, keeping one
// supplied by the caller. The id is written to the request header so
// logger.Middleware can attach it to the request logger.
func RequestIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(logger.RequestIDHeader)
			if requestID == "" {
				requestID = uuid.New().String()
				c.Request().Header.Set(logger.RequestIDHeader, requestID)
			}

			c.Response().Header().Set(logger.RequestIDHeader, requestID)
			c.Set("request_id", requestID)

			return next(c)
		}
	}
}
