package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	authpkg "github.com/octobees/commtrack/api/internal/auth"
)

// JWT validates bearer tokens and stores user metadata in the request context.
func JWT(manager *authpkg.JWTManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return abort(c, http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return abort(c, http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := manager.ParseToken(strings.TrimSpace(parts[1]))
			if err != nil {
				return abort(c, http.StatusUnauthorized, "invalid token")
			}

			c.Set(ContextKeyUserID, claims.Subject)
			c.Set(ContextKeyUserEmail, claims.Email)
			c.Set(ContextKeyUserRole, claims.Role)
			c.Set(ContextKeyClaims, claims)

			return next(c)
		}
	}
}

// ClaimsFromContext returns the verified token claims, if any.
func ClaimsFromContext(c echo.Context) *authpkg.Claims {
	claims, _ := c.Get(ContextKeyClaims).(*authpkg.Claims)
	return claims
}

// UserIDFromContext returns the authenticated user's id, if any.
func UserIDFromContext(c echo.Context) string {
	id, _ := c.Get(ContextKeyUserID).(string)
	return id
}
