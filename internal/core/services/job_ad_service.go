package services

import (
	"context"
	"log"
	"strings"
	"time"

	"fixithub/internal/adapters/persistence/models"
	"fixithub/internal/adapters/persistence/repositories"
	"fixithub/internal/core/domain"
	"fixithub/internal/core/policy"
	"fixithub/internal/pkg/pagination"
)

// JobAdService manages handyman advertisements
type JobAdService struct {
	adRepo repositories.JobAdRepository
}

// NewJobAdService creates a new job ad service
func NewJobAdService(adRepo repositories.JobAdRepository) *JobAdService {
	return &JobAdService{adRepo: adRepo}
}

// CreateJobAdInput represents a new ad
type CreateJobAdInput struct {
	Title       string  `json:"title" validate:"required,max=100"`
	Description string  `json:"ad_description" validate:"required"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url,max=255"`
	StartDate   string  `json:"start_date" validate:"required"`
	EndDate     string  `json:"end_date" validate:"required"`
}

// UpdateJobAdInput represents editable ad fields
type UpdateJobAdInput struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=100"`
	Description *string `json:"ad_description" validate:"omitempty,min=1"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url,max=255"`
	IsActive    *bool   `json:"is_active"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

// Create creates an ad owned by the calling handyman
func (s *JobAdService) Create(ctx context.Context, p domain.Principal, input *CreateJobAdInput) (*models.JobAdResponse, error) {
	if err := authorize(p, policy.CreateJobAd, &policy.Resource{OwnerID: p.ID}); err != nil {
		return nil, err
	}

	input.Title = strings.TrimSpace(input.Title)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	start, end, err := adWindow(input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	ad := &models.JobAd{
		HandymanID:  p.ID,
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		IsActive:    !end.Before(today()),
		StartDate:   start,
		EndDate:     end,
	}
	if err := s.adRepo.Create(ctx, ad); err != nil {
		return nil, err
	}

	log.Printf("📣 Job ad #%d created by handyman %d", ad.ID, p.ID)
	return ad.ToResponse(), nil
}

// Update edits an ad (owner or admin)
func (s *JobAdService) Update(ctx context.Context, p domain.Principal, id uint, input *UpdateJobAdInput) (*models.JobAdResponse, error) {
	ad, err := s.ownedAd(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	startValue := ad.StartDate.Format(dateLayout)
	if input.StartDate != nil {
		startValue = *input.StartDate
	}
	endValue := ad.EndDate.Format(dateLayout)
	if input.EndDate != nil {
		endValue = *input.EndDate
	}
	start, end, err := adWindow(startValue, endValue)
	if err != nil {
		return nil, err
	}
	ad.StartDate, ad.EndDate = start, end

	if input.Title != nil {
		ad.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		ad.Description = *input.Description
	}
	if input.ImageURL != nil {
		ad.ImageURL = input.ImageURL
	}
	if input.IsActive != nil {
		ad.IsActive = *input.IsActive
	}

	if err := s.adRepo.Update(ctx, ad); err != nil {
		return nil, err
	}
	return ad.ToResponse(), nil
}

// Delete removes an ad (owner or admin)
func (s *JobAdService) Delete(ctx context.Context, p domain.Principal, id uint) error {
	ad, err := s.ownedAd(ctx, p, id)
	if err != nil {
		return err
	}
	if err := s.adRepo.Delete(ctx, ad.ID); err != nil {
		return err
	}

	log.Printf("🗑️ Job ad #%d deleted by user %d", ad.ID, p.ID)
	return nil
}

// List lists active ads, or all of the caller's own ads when mine is set
func (s *JobAdService) List(ctx context.Context, p domain.Principal, mine bool, page, limit int) (*pagination.Response, error) {
	if err := authorize(p, policy.ViewJobAds, nil); err != nil {
		return nil, err
	}

	var owner *uint
	activeOnly := true
	if mine {
		owner = uintPtr(p.ID)
		activeOnly = false
	}

	params := pagination.New(page, limit)
	ads, total, err := s.adRepo.List(ctx, owner, activeOnly, params.Offset, params.Limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.JobAdResponse, len(ads))
	for i, ad := range ads {
		responses[i] = ad.ToResponse()
	}

	return pagination.NewResponse(responses, params, total), nil
}

func (s *JobAdService) ownedAd(ctx context.Context, p domain.Principal, id uint) (*models.JobAd, error) {
	if err := authorize(p, policy.EditJobAd, nil); err != nil {
		return nil, err
	}

	ad, err := s.adRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(p, policy.EditJobAd, &policy.Resource{OwnerID: ad.HandymanID}); err != nil {
		return nil, err
	}
	return ad, nil
}

// adWindow parses the ad dates and enforces end >= start
func adWindow(startValue, endValue string) (time.Time, time.Time, error) {
	start, err := parseDate("start_date", startValue)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseDate("end_date", endValue)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, domain.NewValidationError("Validation failed", map[string]string{
			"end_date": "End date must not be before start date",
		})
	}
	return start, end, nil
}
