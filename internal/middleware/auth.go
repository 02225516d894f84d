package middleware

import (
	"net/http"
	"strings"

	"github.com/BlackWidow29/Entrevista-Docket/pkg/jwtutil"
	"github.com/BlackWidow29/Entrevista-Docket/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ClaimsKey is the echo.Context key holding validated token claims
const ClaimsKey = "claims"

// JWTAuthMiddleware rejects requests without a valid Bearer token
func JWTAuthMiddleware(jwtUtil *jwtutil.JWTUtil) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				log.Warn("Missing authorization header")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization header"})
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				log.Warn("Invalid authorization header format")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
			}

			claims, err := jwtUtil.ValidateToken(parts[1])
			if err != nil {
				log.Warn("Invalid or expired token", zap.Error(err))
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}

			c.Set(ClaimsKey, claims)
			log.Debug("JWT token validated", zap.String("subject", claims.Subject))

			return next(c)
		}
	}
}
