package handlers

import (
	"fixithub/internal/core/services"
	"fixithub/internal/pkg/pagination"
	"fixithub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles account endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ============================================================
// Self-service
// ============================================================

// GetProfile returns the caller's account
// @Summary Get current account
// @Description Get the authenticated caller's account
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /users [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}

	user, err := h.userService.GetProfile(c.Context(), p)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Profile retrieved successfully", fiber.Map{"user": user})
}

// UpdateProfile updates the caller's own account
// @Summary Update current account
// @Description Update name, phone, location or password. Role and active flag are refused.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.UpdateProfileInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users [put]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}

	var input services.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}

	user, err := h.userService.UpdateProfile(c.Context(), p, &input)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Profile updated successfully", fiber.Map{"user": user})
}

// ChangePassword changes the caller's password and revokes their sessions
// @Summary Change password
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ChangePasswordInput true "Old and new password"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /users/change-password [post]
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}

	var input services.ChangePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}

	if err := h.userService.ChangePassword(c.Context(), p, &input); err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Password changed successfully, please login again", nil)
}

// ============================================================
// Admin
// ============================================================

// ListUsers lists accounts (Admin only)
// @Summary List accounts
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Email, name or phone contains"
// @Param role query string false "client | handyman | admin"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /users/all [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}

	params := pagination.GetParams(c)
	result, err := h.userService.ListUsers(c.Context(), p, &services.ListUsersInput{
		Page:   params.Page,
		Limit:  params.Limit,
		Search: c.Query("search"),
		Role:   c.Query("role"),
	})
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Users retrieved successfully", result)
}

// GetUser returns one account (Admin only)
// @Summary Get account by ID
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	user, err := h.userService.GetUserByID(c.Context(), p, id)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "User retrieved successfully", fiber.Map{"user": user})
}

// UpdateUser updates any account (Admin only)
// @Summary Update account
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body services.UpdateUserByAdminInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var input services.UpdateUserByAdminInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}

	user, err := h.userService.UpdateUserByAdmin(c.Context(), p, id, &input)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "User updated successfully", fiber.Map{"user": user})
}

// DeleteUser deletes an account and everything it owns (Admin only)
// @Summary Delete account
// @Tags Users
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 204
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.userService.DeleteUser(c.Context(), p, id); err != nil {
		return respondError(c, err)
	}

	return response.NoContent(c)
}
