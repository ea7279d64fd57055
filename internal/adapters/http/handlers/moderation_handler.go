package handlers

import (
	"fixithub/internal/core/services"
	"fixithub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ModerationHandler handles ban/unban endpoints
type ModerationHandler struct {
	moderationService *services.ModerationService
}

// NewModerationHandler creates a new moderation handler
func NewModerationHandler(moderationService *services.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService}
}

// Ban deactivates an account
// @Summary Ban account
// @Description Deactivate a non-admin account and revoke its refresh tokens (Admin only)
// @Tags Moderation
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id}/ban [post]
func (h *ModerationHandler) Ban(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	user, err := h.moderationService.Ban(c.Context(), p, id)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "User banned successfully", fiber.Map{"user": user})
}

// Unban reactivates an account
// @Summary Unban account
// @Tags Moderation
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id}/unban [post]
func (h *ModerationHandler) Unban(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	user, err := h.moderationService.Unban(c.Context(), p, id)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "User unbanned successfully", fiber.Map{"user": user})
}
