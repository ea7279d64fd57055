package services

import (
	"context"

	"fixithub/internal/adapters/persistence/repositories"
	"fixithub/internal/core/domain"
	"fixithub/internal/core/policy"
)

// DashboardService handles dashboard operations
type DashboardService struct {
	userRepo    repositories.UserRepository
	jobRepo     repositories.JobRepository
	paymentRepo repositories.PaymentRepository
	profileRepo repositories.HandymanProfileRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	userRepo repositories.UserRepository,
	jobRepo repositories.JobRepository,
	paymentRepo repositories.PaymentRepository,
	profileRepo repositories.HandymanProfileRepository,
) *DashboardService {
	return &DashboardService{
		userRepo:    userRepo,
		jobRepo:     jobRepo,
		paymentRepo: paymentRepo,
		profileRepo: profileRepo,
	}
}

// ============================================================
// Admin Dashboard
// ============================================================

// topHandymenLimit is the size of the leaderboard
const topHandymenLimit = 5

// AdminDashboardData represents admin dashboard data
type AdminDashboardData struct {
	// Account Statistics
	TotalUsers     int64            `json:"total_users"`
	UsersByRole    map[string]int64 `json:"users_by_role"`
	TotalJobs      int64            `json:"total_jobs"`
	JobsByStatus   map[string]int64 `json:"jobs_by_status"`
	SuccessfulPaid string           `json:"successful_payments_total"`

	// Top Handymen
	TopHandymen []HandymanStats `json:"top_handymen"`
}

// HandymanStats represents one leaderboard row
type HandymanStats struct {
	HandymanID    uint    `json:"handyman_id"`
	FullName      string  `json:"full_name"`
	Category      string  `json:"category"`
	Rating        float64 `json:"rating"`
	RatingCount   int     `json:"rating_count"`
	JobsCompleted int     `json:"jobs_completed"`
	IsVerified    bool    `json:"is_verified"`
}

// GetAdminDashboard returns admin dashboard data
func (s *DashboardService) GetAdminDashboard(ctx context.Context, p domain.Principal) (*AdminDashboardData, error) {
	if err := authorize(p, policy.ViewDashboard, nil); err != nil {
		return nil, err
	}

	data := &AdminDashboardData{
		UsersByRole:  map[string]int64{},
		JobsByStatus: map[string]int64{},
	}

	// Account counts by role, with every role present
	byRole, err := s.userRepo.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	for _, role := range []domain.Role{domain.RoleClient, domain.RoleHandyman, domain.RoleAdmin} {
		data.UsersByRole[string(role)] = byRole[string(role)]
		data.TotalUsers += byRole[string(role)]
	}

	// Job counts by status
	byStatus, err := s.jobRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	for _, status := range []domain.JobStatus{
		domain.JobPending, domain.JobAccepted, domain.JobInProgress, domain.JobCompleted, domain.JobCancelled,
	} {
		data.JobsByStatus[string(status)] = byStatus[string(status)]
		data.TotalJobs += byStatus[string(status)]
	}

	// Successful payments total
	paid, err := s.paymentRepo.SumByStatus(ctx, domain.PaymentSuccessful)
	if err != nil {
		return nil, err
	}
	data.SuccessfulPaid = domain.FormatAmount(paid)

	// Top handymen by rating
	profiles, err := s.profileRepo.TopRated(ctx, topHandymenLimit)
	if err != nil {
		return nil, err
	}
	data.TopHandymen = make([]HandymanStats, 0, len(profiles))
	for _, profile := range profiles {
		stats := HandymanStats{
			HandymanID:    profile.HandymanID,
			Category:      profile.Category,
			Rating:        profile.Rating,
			RatingCount:   profile.RatingCount,
			JobsCompleted: profile.JobsCompleted,
			IsVerified:    profile.IsVerified,
		}
		if profile.Handyman != nil {
			stats.FullName = profile.Handyman.FullName
		}
		data.TopHandymen = append(data.TopHandymen, stats)
	}

	return data, nil
}
