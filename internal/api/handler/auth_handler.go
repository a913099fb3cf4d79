package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/imspro/inventory-system/internal/api/metrics"
	"github.com/imspro/inventory-system/internal/api/middleware"
	"github.com/imspro/inventory-system/internal/core/domain"
	"github.com/imspro/inventory-system/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Email    string `json:"email"    validate:"required,email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin operator"`
}

type authResponse struct {
	Token    string `json:"token,omitempty"`
	Username string `json:"username"`
	Role     string `json:"role"`
	FullName string `json:"full_name,omitempty"`
}

type operatorStatsResponse struct {
	Total  int64 `json:"total"`
	Active int64 `json:"active"`
}

// Login authenticates an operator and returns a signed token. A server-side
// session is established as well so browser clients can rely on the cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	op, err := h.authService.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid username or password"})
		}
		return err
	}

	token, err := h.authService.IssueToken(op.Username, op.Role)
	if err != nil {
		return err
	}

	sessionID, err := h.authService.EstablishSession(c.Request().Context(), op)
	if err != nil {
		return err
	}
	c.SetCookie(sessionCookie(sessionID, false))

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, authResponse{
		Token:    token,
		Username: op.Username,
		Role:     op.Role,
		FullName: op.FullName,
	})
}

// Register creates a new operator account and logs it in immediately.
//
// @Summary      Register a new operator
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	op, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		FullName: req.FullName,
		Role:     req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUsernameTaken):
			return c.JSON(http.StatusConflict, map[string]string{"error": "username already exists"})
		case errors.Is(err, domain.ErrEmailTaken):
			return c.JSON(http.StatusConflict, map[string]string{"error": "email already exists"})
		case errors.Is(err, domain.ErrInvalidCredentials):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid registration details"})
		}
		return err
	}

	token, err := h.authService.IssueToken(op.Username, op.Role)
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(op.Role).Inc()
	return c.JSON(http.StatusCreated, authResponse{
		Token:    token,
		Username: op.Username,
		Role:     op.Role,
		FullName: op.FullName,
	})
}

// Validate checks the bearer token and echoes the identity it carries,
// enriched with the operator's display name.
//
// @Summary      Validate a bearer token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  authResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/validate [get]
func (h *AuthHandler) Validate(c echo.Context) error {
	authHeader := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
	}

	decision, err := h.authService.ValidateToken(parts[1])
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenExpired):
			metrics.TokenValidationsTotal.WithLabelValues("expired").Inc()
		default:
			metrics.TokenValidationsTotal.WithLabelValues("malformed").Inc()
		}
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
	}
	metrics.TokenValidationsTotal.WithLabelValues("valid").Inc()

	resp := authResponse{
		Token:    parts[1],
		Username: decision.Username,
		Role:     decision.Role,
	}
	// Token claims stay authoritative; the lookup only adds the display name.
	if op, err := h.authService.FindOperator(c.Request().Context(), decision.Username); err == nil {
		resp.FullName = op.FullName
	}

	return c.JSON(http.StatusOK, resp)
}

// Logout tears down the server-side session and clears the cookie.
//
// @Summary      Logout
// @Tags         auth
// @Success      204  "session terminated"
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil && cookie.Value != "" {
		if err := h.authService.TeardownSession(c.Request().Context(), cookie.Value); err != nil {
			return err
		}
	}
	c.SetCookie(sessionCookie("", true))
	return c.NoContent(http.StatusNoContent)
}

// DeactivateOperator handles DELETE /auth/operators/:id. Deactivation is the
// removal path for operators; the record is kept and the username and email
// stay reserved.
//
// @Summary      Deactivate an operator
// @Tags         auth
// @Security     BearerAuth
// @Param        id   path  int  true  "Operator id"
// @Success      204  "operator deactivated"
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /auth/operators/{id} [delete]
func (h *AuthHandler) DeactivateOperator(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid operator id")
	}

	if err := h.authService.Deactivate(c.Request().Context(), id); err != nil {
		if errors.Is(err, domain.ErrOperatorNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "operator not found"})
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Stats handles GET /auth/stats.
//
// @Summary      Operator statistics
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  operatorStatsResponse
// @Router       /auth/stats [get]
func (h *AuthHandler) Stats(c echo.Context) error {
	stats, err := h.authService.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, operatorStatsResponse{
		Total:  stats.Total,
		Active: stats.Active,
	})
}

func sessionCookie(value string, expire bool) *http.Cookie {
	cookie := &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if expire {
		cookie.MaxAge = -1
	}
	return cookie
}
