package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"antrian/internal/auth"
	apperrors "antrian/internal/errors"
	"antrian/internal/metrics"
	"antrian/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	cookies     *auth.CookieHelper
	log         logrus.FieldLogger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, cookies *auth.CookieHelper, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies, log: log}
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned on a successful login. The token itself travels only
// in the session cookie.
type LoginResponse struct {
	Message string              `json:"message"`
	User    service.UserSummary `json:"user"`
}

// SessionResponse describes the current session.
type SessionResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Expires  int64  `json:"expires_at"`
}

// Login godoc
// @Summary Sign in
// @Description Sets the HttpOnly session cookie "token" on success.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		metrics.RecordLogin(metrics.LoginInvalidRequest)
		return badRequest("username and password are required")
	}

	result, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.RecordLogin(loginOutcome(err))
		if errors.Is(err, apperrors.ErrServerMisconfigured) {
			h.log.Error("login refused: JWT_SECRET is not configured")
		}
		return failure(c, h.log, err, "login failed")
	}

	h.cookies.SetSession(c, result.Token)
	metrics.RecordLogin(metrics.LoginSuccess)
	return c.JSON(http.StatusOK, LoginResponse{Message: "login successful", User: result.User})
}

// Logout godoc
// @Summary Sign out
// @Description Clears the session cookie and, when Redis is configured, revokes the token.
// @Tags auth
// @Produce json
// @Security CookieAuth
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, _ := auth.ClaimsFrom(c)
	if err := h.authService.Logout(c.Request().Context(), claims); err != nil {
		h.log.WithError(err).Warn("token revocation failed")
	}
	h.cookies.Clear(c)
	return c.JSON(http.StatusOK, MessageResponse{Message: "logged out"})
}

// Me godoc
// @Summary Current session
// @Tags auth
// @Produce json
// @Security CookieAuth
// @Success 200 {object} SessionResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return failure(c, h.log, apperrors.ErrUnauthenticated, "")
	}
	resp := SessionResponse{ID: claims.Subject, Username: claims.Username, Role: claims.Role}
	if claims.ExpiresAt != nil {
		resp.Expires = claims.ExpiresAt.Unix()
	}
	return c.JSON(http.StatusOK, resp)
}

func loginOutcome(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrInvalidRequest):
		return metrics.LoginInvalidRequest
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return metrics.LoginInvalidCredentials
	case errors.Is(err, apperrors.ErrServerMisconfigured):
		return metrics.LoginMisconfigured
	default:
		return metrics.LoginError
	}
}
