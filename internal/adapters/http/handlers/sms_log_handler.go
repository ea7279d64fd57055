package handlers

import (
	"fixithub/internal/core/services"
	"fixithub/internal/pkg/pagination"
	"fixithub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SMSLogHandler exposes the SMS audit log
type SMSLogHandler struct {
	notificationService *services.NotificationService
}

// NewSMSLogHandler creates a new SMS log handler
func NewSMSLogHandler(notificationService *services.NotificationService) *SMSLogHandler {
	return &SMSLogHandler{notificationService: notificationService}
}

// List lists SMS notices (Admin only)
// @Summary List SMS logs
// @Tags SMSLogs
// @Produce json
// @Security BearerAuth
// @Param user_id query int false "Recipient user ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /sms-logs [get]
func (h *SMSLogHandler) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	userID, err := queryUint(c, "user_id")
	if err != nil {
		return respondError(c, err)
	}

	params := pagination.GetParams(c)
	result, err := h.notificationService.ListSMSLogs(c.Context(), p, userID, params.Page, params.Limit)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "SMS logs retrieved successfully", result)
}
