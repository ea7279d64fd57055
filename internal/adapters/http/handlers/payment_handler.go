package handlers

import (
	"fixithub/internal/core/services"
	"fixithub/internal/pkg/pagination"
	"fixithub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles payment endpoints
type PaymentHandler struct {
	paymentService *services.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// List lists the caller's payments (all payments for admins)
// @Summary List payments
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /payments [get]
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}

	params := pagination.GetParams(c)
	result, err := h.paymentService.List(c.Context(), p, params.Page, params.Limit)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Payments retrieved successfully", result)
}

// Create records a payment
// @Summary Record payment
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreatePaymentInput true "Payment"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /payments [post]
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}

	var input services.CreatePaymentInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}

	payment, err := h.paymentService.Create(c.Context(), p, &input)
	if err != nil {
		return respondError(c, err)
	}

	return response.Created(c, "Payment recorded successfully", payment)
}

// Get returns one payment (owner or admin)
// @Summary Get payment
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /payments/{id} [get]
func (h *PaymentHandler) Get(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	payment, err := h.paymentService.Get(c.Context(), p, id)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Payment retrieved successfully", payment)
}

// UpdateStatus marks a payment successful or failed (Admin only)
// @Summary Update payment status
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Param body body services.UpdatePaymentStatusInput true "Status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /payments/{id}/status [put]
func (h *PaymentHandler) UpdateStatus(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var input services.UpdatePaymentStatusInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}

	payment, err := h.paymentService.UpdateStatus(c.Context(), p, id, &input)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Payment status updated", payment)
}
