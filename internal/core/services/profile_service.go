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

// ProfileService manages handyman profiles
type ProfileService struct {
	profileRepo repositories.HandymanProfileRepository
}

// NewProfileService creates a new profile service
func NewProfileService(profileRepo repositories.HandymanProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// CreateProfileInput represents a new handyman profile
type CreateProfileInput struct {
	Category         string  `json:"category" validate:"required,oneof=electrician plumber carpenter other"`
	ExperienceYears  int     `json:"experience_years" validate:"gte=0,lte=80"`
	Bio              *string `json:"bio"`
	SubscriptionPlan string  `json:"subscription_plan" validate:"omitempty,oneof=free premium"`
}

// UpdateProfileDetailsInput represents editable profile fields
type UpdateProfileDetailsInput struct {
	Category         *string `json:"category" validate:"omitempty,oneof=electrician plumber carpenter other"`
	ExperienceYears  *int    `json:"experience_years" validate:"omitempty,gte=0,lte=80"`
	Bio              *string `json:"bio"`
	SubscriptionPlan *string `json:"subscription_plan" validate:"omitempty,oneof=free premium"`
}

// ListProfilesInput represents profile listing filters
type ListProfilesInput struct {
	Page     int
	Limit    int
	Category string
	Verified *bool
}

// Create creates the calling handyman's profile; at most one per handyman
func (s *ProfileService) Create(ctx context.Context, p domain.Principal, input *CreateProfileInput) (*models.HandymanProfile, error) {
	if err := authorize(p, policy.CreateProfile, &policy.Resource{OwnerID: p.ID}); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	exists, err := s.profileRepo.ExistsByHandymanID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrProfileExists
	}

	plan := input.SubscriptionPlan
	if plan == "" {
		plan = domain.PlanFree
	}

	profile := &models.HandymanProfile{
		HandymanID:       p.ID,
		Category:         input.Category,
		ExperienceYears:  input.ExperienceYears,
		Bio:              input.Bio,
		SubscriptionPlan: plan,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	log.Printf("✅ Handyman profile created for user %d", p.ID)
	return s.profileRepo.GetByHandymanID(ctx, p.ID)
}

// Update edits a profile. Handymen edit their own; admins edit any.
func (s *ProfileService) Update(ctx context.Context, p domain.Principal, handymanID uint, input *UpdateProfileDetailsInput) (*models.HandymanProfile, error) {
	if err := authorize(p, policy.EditProfile, nil); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByHandymanID(ctx, handymanID)
	if err != nil {
		return nil, err
	}
	if err := authorize(p, policy.EditProfile, &policy.Resource{OwnerID: profile.HandymanID}); err != nil {
		return nil, err
	}

	if input.Category != nil {
		profile.Category = *input.Category
	}
	if input.ExperienceYears != nil {
		profile.ExperienceYears = *input.ExperienceYears
	}
	if input.Bio != nil {
		profile.Bio = input.Bio
	}
	if input.SubscriptionPlan != nil {
		profile.SubscriptionPlan = *input.SubscriptionPlan
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByHandymanID(ctx, handymanID)
}

// Verify sets the verified flag (admin only)
func (s *ProfileService) Verify(ctx context.Context, p domain.Principal, handymanID uint, verified bool) (*models.HandymanProfile, error) {
	if err := authorize(p, policy.VerifyProfile, nil); err != nil {
		return nil, err
	}

	if _, err := s.profileRepo.GetByHandymanID(ctx, handymanID); err != nil {
		return nil, err
	}
	if err := s.profileRepo.SetVerified(ctx, handymanID, verified); err != nil {
		return nil, err
	}

	log.Printf("✅ Handyman profile %d verified=%t by admin %d", handymanID, verified, p.ID)
	return s.profileRepo.GetByHandymanID(ctx, handymanID)
}

// Get returns one profile
func (s *ProfileService) Get(ctx context.Context, p domain.Principal, handymanID uint) (*models.HandymanProfile, error) {
	if err := authorize(p, policy.ViewProfiles, nil); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByHandymanID(ctx, handymanID)
}

// List lists profiles, best rated first
func (s *ProfileService) List(ctx context.Context, p domain.Principal, input *ListProfilesInput) (*pagination.Response, error) {
	if err := authorize(p, policy.ViewProfiles, nil); err != nil {
		return nil, err
	}

	params := pagination.New(input.Page, input.Limit)
	filter := repositories.ProfileFilter{
		Category: input.Category,
		Verified: input.Verified,
	}

	profiles, total, err := s.profileRepo.List(ctx, filter, params.Offset, params.Limit)
	if err != nil {
		return nil, err
	}

	return pagination.NewResponse(profiles, params, total), nil
}
