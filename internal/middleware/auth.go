package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/foodondoor/backend/pkg/tokens"
	"github.com/labstack/echo/v4"
)

const (
	CtxSubject = "subject"
	CtxRole    = "role"
)

// Auth validates the Authorization bearer token and stores the subject and
// role on the request context.
func Auth(issuer *tokens.Issuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
			}

			claims, err := issuer.Parse(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}
			if claims.TokenType != tokens.TypeAccess {
				return echo.NewHTTPError(http.StatusUnauthorized, "not an access token")
			}
			if claims.Subject == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token has no subject")
			}

			c.Set(CtxSubject, claims.Subject)
			c.Set(CtxRole, claims.Role)
			return next(c)
		}
	}
}

func RequireRole(required ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if role == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing role")
			}
			if !slices.Contains(required, role) {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient rights")
			}
			return next(c)
		}
	}
}

// Subject returns the authenticated caller's ID from the context.
func Subject(c echo.Context) string {
	s, _ := c.Get(CtxSubject).(string)
	return s
}
