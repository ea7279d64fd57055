package handlers

import (
	"context"

	"fixithub/internal/adapters/persistence/models"
	"fixithub/internal/core/domain"
	"fixithub/internal/core/services"
	"fixithub/internal/pkg/pagination"
	"fixithub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// JobHandler handles job request endpoints
type JobHandler struct {
	jobService *services.JobService
}

// NewJobHandler creates a new job handler
func NewJobHandler(jobService *services.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

type jobAction func(ctx context.Context, p domain.Principal, id uint) (*models.JobRequestResponse, error)

// List lists job requests visible to the caller
// @Summary List job requests
// @Description Clients see their own jobs, handymen their assigned jobs (scope=open for pending unassigned jobs), admins all
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param scope query string false "open"
// @Param status query string false "pending | accepted | in_progress | completed | cancelled"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /job-requests [get]
func (h *JobHandler) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}

	params := pagination.GetParams(c)
	result, err := h.jobService.List(c.Context(), p, &services.ListJobsInput{
		Page:   params.Page,
		Limit:  params.Limit,
		Scope:  c.Query("scope"),
		Status: c.Query("status"),
	})
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Job requests retrieved successfully", result)
}

// Create creates a job request (Client only)
// @Summary Create job request
// @Tags Jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateJobInput true "Job request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /job-requests [post]
func (h *JobHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}

	var input services.CreateJobInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}

	job, err := h.jobService.Create(c.Context(), p, &input)
	if err != nil {
		return respondError(c, err)
	}

	return response.Created(c, "Job request created successfully", job)
}

// Get returns one job request
// @Summary Get job request
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job request ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /job-requests/{id} [get]
func (h *JobHandler) Get(c *fiber.Ctx) error {
	return h.run(c, h.jobService.Get, "Job request retrieved successfully")
}

// Accept assigns the calling handyman to a pending job
// @Summary Accept job request
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job request ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /job-requests/{id}/accept [post]
func (h *JobHandler) Accept(c *fiber.Ctx) error {
	return h.run(c, h.jobService.Accept, "Job request accepted")
}

// Start moves an accepted job to in_progress
// @Summary Start job
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job request ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /job-requests/{id}/start [post]
func (h *JobHandler) Start(c *fiber.Ctx) error {
	return h.run(c, h.jobService.Start, "Job started")
}

// Complete moves an in-progress job to completed
// @Summary Complete job
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job request ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /job-requests/{id}/complete [post]
func (h *JobHandler) Complete(c *fiber.Ctx) error {
	return h.run(c, h.jobService.Complete, "Job completed")
}

// Cancel cancels a job that has not started
// @Summary Cancel job
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job request ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /job-requests/{id}/cancel [post]
func (h *JobHandler) Cancel(c *fiber.Ctx) error {
	return h.run(c, h.jobService.Cancel, "Job cancelled")
}

func (h *JobHandler) run(c *fiber.Ctx, action jobAction, message string) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	job, err := action(c.Context(), p, id)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, message, job)
}
