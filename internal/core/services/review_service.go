package services

import (
	"context"
	"log"

	"fixithub/internal/adapters/persistence/models"
	"fixithub/internal/adapters/persistence/repositories"
	"fixithub/internal/core/domain"
	"fixithub/internal/core/policy"
	"fixithub/internal/pkg/pagination"
)

// ReviewService records reviews and keeps handyman ratings current
type ReviewService struct {
	reviewRepo repositories.ReviewRepository
	jobRepo    repositories.JobRepository
	notifier   *NotificationService
}

// NewReviewService creates a new review service
func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	jobRepo repositories.JobRepository,
	notifier *NotificationService,
) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		jobRepo:    jobRepo,
		notifier:   notifier,
	}
}

// SubmitReviewInput represents a review of a completed job
type SubmitReviewInput struct {
	JobID   uint    `json:"job" validate:"required"`
	Rating  int     `json:"rating" validate:"gte=1,lte=5"`
	Comment *string `json:"comment"`
}

// Submit records a review by the job's client. The handyman is taken from
// the job, never from the caller.
func (s *ReviewService) Submit(ctx context.Context, p domain.Principal, input *SubmitReviewInput) (*models.Review, error) {
	if err := authorize(p, policy.PostReview, nil); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	job, err := s.jobRepo.GetByID(ctx, input.JobID)
	if err != nil {
		return nil, err
	}

	if err := authorize(p, policy.PostReview, &policy.Resource{OwnerID: job.ClientID}); err != nil {
		return nil, err
	}
	if job.JobStatus() != domain.JobCompleted || job.HandymanID == nil {
		return nil, domain.ErrJobNotCompleted
	}

	exists, err := s.reviewRepo.ExistsByJobID(ctx, job.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateReview
	}

	review := &models.Review{
		JobID:      job.ID,
		ClientID:   job.ClientID,
		HandymanID: *job.HandymanID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}
	// The unique job index catches a concurrent duplicate
	if err := s.reviewRepo.CreateWithRating(ctx, review); err != nil {
		return nil, err
	}

	s.notifier.Publish(ctx, domain.ReviewEventsStream, domain.EventReviewCreated, domain.ReviewEvent{
		ReviewID:   review.ID,
		JobID:      review.JobID,
		HandymanID: review.HandymanID,
		Rating:     review.Rating,
	})

	log.Printf("⭐ Review #%d (%d/5) recorded for handyman %d", review.ID, review.Rating, review.HandymanID)
	return review, nil
}

// List lists reviews, optionally for one handyman
func (s *ReviewService) List(ctx context.Context, p domain.Principal, handymanID *uint, page, limit int) (*pagination.Response, error) {
	if err := authorize(p, policy.ViewReviews, nil); err != nil {
		return nil, err
	}

	params := pagination.New(page, limit)
	reviews, total, err := s.reviewRepo.List(ctx, handymanID, params.Offset, params.Limit)
	if err != nil {
		return nil, err
	}

	return pagination.NewResponse(reviews, params, total), nil
}
