package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/yussufhh/Novella/internal/rental"
	"github.com/yussufhh/Novella/pkg/jwtutil"
	"github.com/yussufhh/Novella/pkg/logger"
	"go.uber.org/zap"
)

// AuthMiddleware validates the JWT token from the Authorization header and
// resolves it into the authenticated user's id and role. The core services
// never see the token itself.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		// Get the Authorization header
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Error("Missing Authorization header")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token", "kind": rental.KindUnauthenticated})
		}

		// Check if it's a Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Error("Invalid Authorization header format")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token", "kind": rental.KindUnauthenticated})
		}

		// Validate the token
		claims, err := jwtutil.ValidateToken(parts[1])
		if err != nil {
			log.Error("Invalid JWT token", zap.Error(err))
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token", "kind": rental.KindUnauthenticated})
		}

		// Store user info in context for later use
		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		return next(c)
	}
}

// UserID extracts the authenticated user's id from the request context.
func UserID(c echo.Context) uint {
	id, _ := c.Get("user_id").(uint)
	return id
}
