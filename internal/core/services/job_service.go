package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"fixithub/internal/adapters/persistence/models"
	"fixithub/internal/adapters/persistence/repositories"
	"fixithub/internal/core/domain"
	"fixithub/internal/core/policy"
	"fixithub/internal/pkg/pagination"
)

// JobService runs the job request lifecycle
type JobService struct {
	jobRepo  repositories.JobRepository
	notifier *NotificationService
}

// NewJobService creates a new job service
func NewJobService(jobRepo repositories.JobRepository, notifier *NotificationService) *JobService {
	return &JobService{
		jobRepo:  jobRepo,
		notifier: notifier,
	}
}

// CreateJobInput represents a new job request
type CreateJobInput struct {
	Category      string `json:"category" validate:"required,oneof=electrician plumber carpenter other"`
	Description   string `json:"job_description" validate:"required"`
	Location      string `json:"job_location" validate:"required,max=100"`
	PreferredDate string `json:"preferred_date" validate:"required"`
}

// ListJobsInput represents job listing filters
type ListJobsInput struct {
	Page   int
	Limit  int
	Scope  string // "" or "open"
	Status string
}

// Create creates a job request owned by the calling client
func (s *JobService) Create(ctx context.Context, p domain.Principal, input *CreateJobInput) (*models.JobRequestResponse, error) {
	if err := authorize(p, policy.CreateJob, &policy.Resource{OwnerID: p.ID}); err != nil {
		return nil, err
	}

	input.Description = strings.TrimSpace(input.Description)
	input.Location = strings.TrimSpace(input.Location)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	preferred, err := parseDate("preferred_date", input.PreferredDate)
	if err != nil {
		return nil, err
	}
	if preferred.Before(today()) {
		return nil, domain.NewValidationError("Validation failed", map[string]string{
			"preferred_date": "Preferred date cannot be in the past",
		})
	}

	job := &models.JobRequest{
		ClientID:      p.ID,
		Category:      input.Category,
		Description:   input.Description,
		Location:      input.Location,
		PreferredDate: preferred,
		Status:        string(domain.JobPending),
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	s.notifier.Publish(ctx, domain.JobEventsStream, domain.EventJobCreated, domain.JobEvent{
		JobID:    job.ID,
		ClientID: job.ClientID,
		Status:   job.Status,
		ActorID:  p.ID,
	})

	log.Printf("✅ Job request #%d created by client %d", job.ID, p.ID)
	return job.ToResponse(), nil
}

// Get returns one job if the principal may see it
func (s *JobService) Get(ctx context.Context, p domain.Principal, id uint) (*models.JobRequestResponse, error) {
	if err := authorize(p, policy.ViewJob, nil); err != nil {
		return nil, err
	}

	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authorize(p, policy.ViewJob, jobResource(job)); err != nil {
		return nil, err
	}
	return job.ToResponse(), nil
}

// List lists jobs scoped to the principal's role
func (s *JobService) List(ctx context.Context, p domain.Principal, input *ListJobsInput) (*pagination.Response, error) {
	if err := authorize(p, policy.ListJobs, nil); err != nil {
		return nil, err
	}

	scope := repositories.JobScope{}
	switch {
	case input.Scope == "open":
		if err := authorize(p, policy.BrowseOpenJobs, nil); err != nil {
			return nil, err
		}
		scope.OpenOnly = true
	case input.Scope != "":
		return nil, domain.NewValidationError("Validation failed", map[string]string{
			"scope": "Must be one of: open",
		})
	case p.Role == domain.RoleClient:
		scope.ClientID = uintPtr(p.ID)
	case p.Role == domain.RoleHandyman:
		scope.HandymanID = uintPtr(p.ID)
	}

	if input.Status != "" {
		if !domain.JobStatus(input.Status).Valid() {
			return nil, domain.NewValidationError("Validation failed", map[string]string{
				"status": "Must be one of: pending accepted in_progress completed cancelled",
			})
		}
		scope.Status = input.Status
	}

	params := pagination.New(input.Page, input.Limit)
	jobs, total, err := s.jobRepo.List(ctx, scope, params.Offset, params.Limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.JobRequestResponse, len(jobs))
	for i, job := range jobs {
		responses[i] = job.ToResponse()
	}

	return pagination.NewResponse(responses, params, total), nil
}

// Accept assigns the calling handyman to a pending, unassigned job. Under
// concurrent accepts exactly one caller wins; the rest get AlreadyAssigned.
func (s *JobService) Accept(ctx context.Context, p domain.Principal, id uint) (*models.JobRequestResponse, error) {
	if err := authorize(p, policy.AcceptJob, nil); err != nil {
		return nil, err
	}

	accepted, err := s.jobRepo.Accept(ctx, id, p.ID)
	if err != nil {
		return nil, err
	}

	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !accepted {
		if job.HandymanID != nil {
			return nil, domain.ErrAlreadyAssigned
		}
		return nil, domain.ErrNotFound
	}

	s.notifier.NotifyUser(ctx, job.ClientID, fmt.Sprintf(
		"Your job request #%d has been accepted by %s.", job.ID, p.FullName))
	s.notifier.Publish(ctx, domain.JobEventsStream, domain.EventJobAccepted, domain.JobEvent{
		JobID:      job.ID,
		ClientID:   job.ClientID,
		HandymanID: job.HandymanID,
		From:       string(domain.JobPending),
		Status:     job.Status,
		ActorID:    p.ID,
	})

	log.Printf("✅ Job request #%d accepted by handyman %d", job.ID, p.ID)
	return job.ToResponse(), nil
}

// Start moves an accepted job to in_progress
func (s *JobService) Start(ctx context.Context, p domain.Principal, id uint) (*models.JobRequestResponse, error) {
	return s.transition(ctx, p, id, policy.StartJob, domain.JobInProgress)
}

// Complete finishes an in-progress job
func (s *JobService) Complete(ctx context.Context, p domain.Principal, id uint) (*models.JobRequestResponse, error) {
	return s.transition(ctx, p, id, policy.CompleteJob, domain.JobCompleted)
}

// Cancel cancels a job that is not yet terminal
func (s *JobService) Cancel(ctx context.Context, p domain.Principal, id uint) (*models.JobRequestResponse, error) {
	return s.transition(ctx, p, id, policy.CancelJob, domain.JobCancelled)
}

func (s *JobService) transition(ctx context.Context, p domain.Principal, id uint, action policy.Action, to domain.JobStatus) (*models.JobRequestResponse, error) {
	if err := authorize(p, action, nil); err != nil {
		return nil, err
	}

	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(p, action, jobResource(job)); err != nil {
		return nil, err
	}

	from := job.JobStatus()
	if !domain.CanTransition(from, to) {
		return nil, domain.ErrInvalidTransition
	}

	// Conditional on the status we just read; a concurrent change loses
	moved, err := s.jobRepo.Transition(ctx, job.ID, string(from), string(to))
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, domain.ErrInvalidTransition
	}

	job, err = s.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidTransition
		}
		return nil, err
	}

	s.announceTransition(ctx, p, job, from)

	log.Printf("✅ Job request #%d: %s → %s (by user %d)", job.ID, from, to, p.ID)
	return job.ToResponse(), nil
}

// announceTransition logs SMS notices to the parties other than the actor
// and publishes the status change
func (s *JobService) announceTransition(ctx context.Context, p domain.Principal, job *models.JobRequest, from domain.JobStatus) {
	var message string
	switch job.JobStatus() {
	case domain.JobCompleted:
		message = fmt.Sprintf("Your job request #%d has been completed. You can now leave a review.", job.ID)
	case domain.JobCancelled:
		message = fmt.Sprintf("Job request #%d has been cancelled.", job.ID)
	}
	if message != "" {
		if job.ClientID != p.ID {
			s.notifier.NotifyUser(ctx, job.ClientID, message)
		}
		if job.JobStatus() == domain.JobCancelled && job.HandymanID != nil && *job.HandymanID != p.ID {
			s.notifier.NotifyUser(ctx, *job.HandymanID, message)
		}
	}

	s.notifier.Publish(ctx, domain.JobEventsStream, domain.EventJobStatusChanged, domain.JobEvent{
		JobID:      job.ID,
		ClientID:   job.ClientID,
		HandymanID: job.HandymanID,
		From:       string(from),
		Status:     job.Status,
		ActorID:    p.ID,
	})
}

func jobResource(job *models.JobRequest) *policy.Resource {
	return &policy.Resource{
		OwnerID:    job.ClientID,
		AssigneeID: job.HandymanID,
		JobStatus:  job.JobStatus(),
	}
}
