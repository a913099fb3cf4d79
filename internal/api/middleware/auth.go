package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/imspro/inventory-system/internal/core/domain"
)

// SessionCookie is the cookie carrying the browser session identifier.
const SessionCookie = "session_id"

// Resolver turns a request credential into an authenticated identity.
// Two implementations exist: token verification and session lookup.
type Resolver interface {
	ValidateToken(token string) (*domain.AuthDecision, error)
	ResolveSession(ctx context.Context, sessionID string) (*domain.AuthDecision, error)
}

// Auth resolves the caller's identity and injects it into the echo context.
// A bearer token takes precedence; requests without one fall back to the
// session cookie. Both paths produce the same AuthDecision shape.
func Auth(resolver Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision, err := resolve(c, resolver)
			if err != nil {
				return err
			}

			c.Set("username", decision.Username)
			c.Set("role", decision.Role)

			return next(c)
		}
	}
}

func resolve(c echo.Context, resolver Resolver) (*domain.AuthDecision, error) {
	if authHeader := c.Request().Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
		}

		decision, err := resolver.ValidateToken(parts[1])
		if err != nil {
			if errors.Is(err, domain.ErrTokenExpired) {
				return nil, echo.NewHTTPError(http.StatusUnauthorized, "token expired")
			}
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		return decision, nil
	}

	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		decision, err := resolver.ResolveSession(c.Request().Context(), cookie.Value)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
		}
		return decision, nil
	}

	return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing credentials")
}
