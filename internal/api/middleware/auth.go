package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/staffdesk/employee-api/internal/auth"
	"github.com/staffdesk/employee-api/internal/core/domain"
)

// identityKey is the echo context key the verified identity is stored
// under. Handlers read it through IdentityFromContext, never directly.
const identityKey = "identity"

// Auth verifies the bearer token and injects the resulting identity into
// the request context. A missing or ill-formed Authorization header is
// 401; every token verification failure collapses to 403 so the response
// does not leak whether the token was malformed, expired, or tampered.
func Auth(tokens *auth.TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			identity, err := tokens.Verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "invalid token")
			}

			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// IdentityFromContext extracts the identity injected by Auth. Absence
// means the middleware did not run on this route; reject rather than
// proceed unauthenticated.
func IdentityFromContext(c echo.Context) (domain.Identity, error) {
	identity, ok := c.Get(identityKey).(domain.Identity)
	if !ok || identity.Username == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return identity, nil
}
