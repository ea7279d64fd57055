package handlers

import (
	"fixithub/internal/core/services"
	"fixithub/internal/pkg/pagination"
	"fixithub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReviewHandler handles review endpoints
type ReviewHandler struct {
	reviewService *services.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// List lists reviews, optionally for one handyman
// @Summary List reviews
// @Tags Reviews
// @Produce json
// @Security BearerAuth
// @Param handyman_id query int false "Handyman user ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /reviews [get]
func (h *ReviewHandler) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	handymanID, err := queryUint(c, "handyman_id")
	if err != nil {
		return respondError(c, err)
	}

	params := pagination.GetParams(c)
	result, err := h.reviewService.List(c.Context(), p, handymanID, params.Page, params.Limit)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Reviews retrieved successfully", result)
}

// Submit reviews a completed job (Client only)
// @Summary Submit review
// @Tags Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.SubmitReviewInput true "Review"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /reviews [post]
func (h *ReviewHandler) Submit(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}

	var input services.SubmitReviewInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}

	review, err := h.reviewService.Submit(c.Context(), p, &input)
	if err != nil {
		return respondError(c, err)
	}

	return response.Created(c, "Review submitted successfully", review)
}
