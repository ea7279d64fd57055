package repositories

import (
	"context"

	"fixithub/internal/adapters/persistence/models"
	"fixithub/internal/core/domain"

	"gorm.io/gorm"
)

// handymanProfileRepository implements HandymanProfileRepository interface
type handymanProfileRepository struct {
	db *gorm.DB
}

// NewHandymanProfileRepository creates a new handyman profile repository
func NewHandymanProfileRepository(db *gorm.DB) HandymanProfileRepository {
	return &handymanProfileRepository{db: db}
}

// Create creates a profile; a second profile for the same handyman is a conflict
func (r *handymanProfileRepository) Create(ctx context.Context, profile *models.HandymanProfile) error {
	return translate(r.db.WithContext(ctx).Create(profile).Error, domain.ErrProfileExists)
}

// GetByHandymanID gets the profile of a handyman
func (r *handymanProfileRepository) GetByHandymanID(ctx context.Context, handymanID uint) (*models.HandymanProfile, error) {
	var profile models.HandymanProfile
	err := r.db.WithContext(ctx).
		Preload("Handyman").
		Where("handyman_id = ?", handymanID).
		First(&profile).Error
	if err != nil {
		return nil, translate(err, nil)
	}
	return &profile, nil
}

// Update writes the editable columns only. Derived reputation columns and the
// verified flag have their own write paths.
func (r *handymanProfileRepository) Update(ctx context.Context, profile *models.HandymanProfile) error {
	result := r.db.WithContext(ctx).
		Model(&models.HandymanProfile{}).
		Where("handyman_id = ?", profile.HandymanID).
		Updates(map[string]interface{}{
			"category":          profile.Category,
			"experience_years":  profile.ExperienceYears,
			"bio":               profile.Bio,
			"subscription_plan": profile.SubscriptionPlan,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetVerified sets the admin verification flag
func (r *handymanProfileRepository) SetVerified(ctx context.Context, handymanID uint, verified bool) error {
	result := r.db.WithContext(ctx).
		Model(&models.HandymanProfile{}).
		Where("handyman_id = ?", handymanID).
		Update("is_verified", verified)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lists profiles with optional category and verification filters
func (r *handymanProfileRepository) List(ctx context.Context, filter ProfileFilter, offset, limit int) ([]*models.HandymanProfile, int64, error) {
	var profiles []*models.HandymanProfile
	var total int64

	query := r.db.WithContext(ctx).Model(&models.HandymanProfile{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Verified != nil {
		query = query.Where("is_verified = ?", *filter.Verified)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Handyman").
		Order("rating DESC, handyman_id ASC").
		Offset(offset).Limit(limit).
		Find(&profiles).Error
	if err != nil {
		return nil, 0, err
	}

	return profiles, total, nil
}

// ExistsByHandymanID checks if a handyman already has a profile
func (r *handymanProfileRepository) ExistsByHandymanID(ctx context.Context, handymanID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.HandymanProfile{}).Where("handyman_id = ?", handymanID).Count(&count).Error
	return count > 0, err
}

// TopRated returns the best rated profiles that have at least one review
func (r *handymanProfileRepository) TopRated(ctx context.Context, limit int) ([]*models.HandymanProfile, error) {
	var profiles []*models.HandymanProfile
	err := r.db.WithContext(ctx).
		Preload("Handyman").
		Where("rating_count > 0").
		Order("rating DESC, rating_count DESC, handyman_id ASC").
		Limit(limit).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}
