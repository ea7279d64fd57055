package handlers

import (
	"fixithub/internal/core/services"
	"fixithub/internal/pkg/pagination"
	"fixithub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ProfileHandler handles handyman profile endpoints
type ProfileHandler struct {
	profileService *services.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// VerifyRequest represents the admin verification body
type VerifyRequest struct {
	Verified *bool `json:"verified"`
}

// List lists handyman profiles
// @Summary List handyman profiles
// @Tags Profiles
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param category query string false "electrician | plumber | carpenter | other"
// @Param verified query bool false "Verified flag"
// @Success 200 {object} response.Response
// @Router /handyman-profiles [get]
func (h *ProfileHandler) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	verified, err := queryBool(c, "verified")
	if err != nil {
		return respondError(c, err)
	}

	params := pagination.GetParams(c)
	result, err := h.profileService.List(c.Context(), p, &services.ListProfilesInput{
		Page:     params.Page,
		Limit:    params.Limit,
		Category: c.Query("category"),
		Verified: verified,
	})
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Profiles retrieved successfully", result)
}

// Create creates the caller's handyman profile
// @Summary Create own handyman profile
// @Tags Profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateProfileInput true "Profile"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /handyman-profiles [post]
func (h *ProfileHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}

	var input services.CreateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}

	profile, err := h.profileService.Create(c.Context(), p, &input)
	if err != nil {
		return respondError(c, err)
	}

	return response.Created(c, "Profile created successfully", profile)
}

// UpdateOwn updates the caller's handyman profile
// @Summary Update own handyman profile
// @Tags Profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.UpdateProfileDetailsInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /handyman-profiles [put]
func (h *ProfileHandler) UpdateOwn(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	return h.update(c, p.ID)
}

// Update updates a handyman profile by handyman ID (owner or admin)
// @Summary Update handyman profile
// @Tags Profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Handyman user ID"
// @Param body body services.UpdateProfileDetailsInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /handyman-profiles/{id} [put]
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	return h.update(c, id)
}

func (h *ProfileHandler) update(c *fiber.Ctx, handymanID uint) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}

	var input services.UpdateProfileDetailsInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}

	profile, err := h.profileService.Update(c.Context(), p, handymanID, &input)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Profile updated successfully", profile)
}

// Get returns one handyman profile
// @Summary Get handyman profile
// @Tags Profiles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Handyman user ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /handyman-profiles/{id} [get]
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	profile, err := h.profileService.Get(c.Context(), p, id)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Profile retrieved successfully", profile)
}

// Verify sets the verified flag (Admin only)
// @Summary Verify handyman profile
// @Tags Profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Handyman user ID"
// @Param body body VerifyRequest true "Verified flag"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /handyman-profiles/{id}/verify [put]
func (h *ProfileHandler) Verify(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	verified := true
	if req.Verified != nil {
		verified = *req.Verified
	}

	profile, err := h.profileService.Verify(c.Context(), p, id, verified)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Profile verification updated", profile)
}
