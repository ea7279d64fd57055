package handlers

import (
	"fixithub/internal/core/services"
	"fixithub/internal/pkg/pagination"
	"fixithub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// JobAdHandler handles handyman advertisement endpoints
type JobAdHandler struct {
	adService *services.JobAdService
}

// NewJobAdHandler creates a new job ad handler
func NewJobAdHandler(adService *services.JobAdService) *JobAdHandler {
	return &JobAdHandler{adService: adService}
}

// List lists active ads, or the caller's own ads with mine=true
// @Summary List job ads
// @Tags JobAds
// @Produce json
// @Security BearerAuth
// @Param mine query bool false "Only the caller's ads, active or not"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /job-ads [get]
func (h *JobAdHandler) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	mine, err := queryBool(c, "mine")
	if err != nil {
		return respondError(c, err)
	}

	params := pagination.GetParams(c)
	result, err := h.adService.List(c.Context(), p, mine != nil && *mine, params.Page, params.Limit)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Job ads retrieved successfully", result)
}

// Create creates an ad (Handyman only)
// @Summary Create job ad
// @Tags JobAds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateJobAdInput true "Ad"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /job-ads [post]
func (h *JobAdHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}

	var input services.CreateJobAdInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}

	ad, err := h.adService.Create(c.Context(), p, &input)
	if err != nil {
		return respondError(c, err)
	}

	return response.Created(c, "Job ad created successfully", ad)
}

// Update edits an ad (owner or admin)
// @Summary Update job ad
// @Tags JobAds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ad ID"
// @Param body body services.UpdateJobAdInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /job-ads/{id} [put]
func (h *JobAdHandler) Update(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var input services.UpdateJobAdInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}

	ad, err := h.adService.Update(c.Context(), p, id, &input)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Job ad updated successfully", ad)
}

// Delete removes an ad (owner or admin)
// @Summary Delete job ad
// @Tags JobAds
// @Security BearerAuth
// @Param id path int true "Ad ID"
// @Success 204
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /job-ads/{id} [delete]
func (h *JobAdHandler) Delete(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.adService.Delete(c.Context(), p, id); err != nil {
		return respondError(c, err)
	}

	return response.NoContent(c)
}
