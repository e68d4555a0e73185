package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Capability is a predicate over the role claim, typically one of the
// named functions in the roles package (roles.CanManageMatches, ...).
type Capability func(role string) bool

// RequireCapability returns a middleware that enforces the given
// capability predicate against the role stored in the context by
// JWTAuth. Requests from roles that lack the capability are aborted
// with 403 Forbidden. Gating on predicates instead of raw role lists
// keeps each permission decision defined once.
func RequireCapability(allowed Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || !allowed(role) {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
