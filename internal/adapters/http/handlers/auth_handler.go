package handlers

import (
	"time"

	"fixithub/internal/config"
	"fixithub/internal/core/services"
	"fixithub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// RefreshRequest represents refresh/logout request body
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// Register handles self-service registration
// @Summary Register new account
// @Description Register a client or handyman account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.RegisterInput true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}

	result, err := h.authService.Register(c.Context(), &input)
	if err != nil {
		return respondError(c, err)
	}

	h.setAuthCookies(c, result.AccessToken, result.RefreshToken)

	return response.Created(c, "Account registered successfully", result)
}

// Login handles login
// @Summary Obtain tokens
// @Description Authenticate with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /token [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input services.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}

	result, err := h.authService.Login(c.Context(), &input)
	if err != nil {
		return respondError(c, err)
	}

	h.setAuthCookies(c, result.AccessToken, result.RefreshToken)

	return response.Success(c, "Login successful", result)
}

// RefreshToken handles token rotation
// @Summary Refresh access token
// @Description Rotate the refresh token (body "refresh" or refresh_token cookie)
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RefreshRequest false "Refresh token"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /token/refresh [post]
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	refreshToken := h.refreshTokenFrom(c)
	if refreshToken == "" {
		return response.Unauthorized(c, "Refresh token not found")
	}

	result, err := h.authService.RefreshToken(c.Context(), refreshToken)
	if err != nil {
		h.clearAuthCookies(c)
		return respondError(c, err)
	}

	h.setAuthCookies(c, result.AccessToken, result.RefreshToken)

	return response.Success(c, "Token refreshed successfully", result)
}

// Logout revokes the presented refresh token
// @Summary Logout
// @Description Revoke the refresh token and clear cookies
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RefreshRequest false "Refresh token"
// @Success 200 {object} response.Response
// @Router /token/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if refreshToken := h.refreshTokenFrom(c); refreshToken != "" {
		_ = h.authService.Logout(c.Context(), refreshToken)
	}

	h.clearAuthCookies(c)

	return response.Success(c, "Logged out successfully", nil)
}

// LogoutAll revokes every refresh token of the caller
// @Summary Logout from all devices
// @Description Revoke all refresh tokens for the caller
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /token/logout-all [post]
func (h *AuthHandler) LogoutAll(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.authService.LogoutAll(c.Context(), p.ID); err != nil {
		return respondError(c, err)
	}

	h.clearAuthCookies(c)

	return response.Success(c, "Logged out from all devices", nil)
}

// RegisterAdmin creates an admin account
// @Summary Register admin
// @Description Create an admin account (Admin only)
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.RegisterInput true "Admin account data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin-register [post]
func (h *AuthHandler) RegisterAdmin(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}

	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}

	user, err := h.authService.RegisterAdmin(c.Context(), p, &input)
	if err != nil {
		return respondError(c, err)
	}

	return response.Created(c, "Admin registered successfully", fiber.Map{"user": user})
}

func (h *AuthHandler) refreshTokenFrom(c *fiber.Ctx) string {
	var req RefreshRequest
	if len(c.Body()) > 0 {
		_ = c.BodyParser(&req)
	}
	if req.Refresh != "" {
		return req.Refresh
	}
	return c.Cookies("refresh_token")
}

// setAuthCookies sets access and refresh token cookies
func (h *AuthHandler) setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Path:     "/",
		MaxAge:   h.cfg.JWT.AccessTokenMins * 60,
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})

	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Path:     "/api/token",
		MaxAge:   h.cfg.JWT.RefreshTokenDays * 24 * 60 * 60,
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}

// clearAuthCookies clears auth cookies
func (h *AuthHandler) clearAuthCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-1 * time.Hour)

	for name, path := range map[string]string{"access_token": "/", "refresh_token": "/api/token"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Path:     path,
			MaxAge:   -1,
			Expires:  expired,
			Secure:   h.cfg.Cookie.Secure,
			HTTPOnly: true,
			SameSite: h.cfg.Cookie.SameSite,
			Domain:   h.cfg.Cookie.Domain,
		})
	}
}
