package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/imspro/inventory-system/internal/core/domain"
)

// RequireRole gates a route on the role the Auth middleware resolved.
// Admins pass every gate: inventory writes are their exclusive territory,
// and nothing an operator may do is closed to them.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if role == domain.RoleAdmin {
				return next(c)
			}
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}
			return next(c)
		}
	}
}
