package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openboard/forum-api/internal/api/metrics"
	"github.com/openboard/forum-api/internal/core/domain"
	"github.com/openboard/forum-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=28"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type logoutResponse struct {
	IsLoggedIn bool `json:"isLoggedIn"`
}

// Register creates a new account with the Member role and sets the auth cookie.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, token, err := h.authService.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	setAuthCookie(c, token)
	metrics.UsersRegisteredTotal.Inc()

	return c.JSON(http.StatusOK, authResponse{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
}

// Login verifies credentials and sets the auth cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	setAuthCookie(c, token)
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, authResponse{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
}

// Logout revokes the presented token and clears the auth cookie.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  logoutResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if ctxPrincipal(c) == nil {
		return domain.ErrUnauthenticated
	}

	tokenID, expiresAt := ctxToken(c)
	if err := h.authService.Logout(c.Request().Context(), tokenID, expiresAt); err != nil {
		return err
	}

	clearAuthCookie(c)
	return c.JSON(http.StatusOK, logoutResponse{IsLoggedIn: false})
}

// Me returns the authenticated principal's public profile.
//
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  authResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	p := ctxPrincipal(c)
	if p == nil {
		return domain.ErrUnauthenticated
	}

	return c.JSON(http.StatusOK, authResponse{
		UserID:   p.UserID,
		Username: p.Username,
		Role:     p.Role,
	})
}
