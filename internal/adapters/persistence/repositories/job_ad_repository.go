package repositories

import (
	"context"
	"time"

	"fixithub/internal/adapters/persistence/models"
	"fixithub/internal/core/domain"

	"gorm.io/gorm"
)

// jobAdRepository implements JobAdRepository interface
type jobAdRepository struct {
	db *gorm.DB
}

// NewJobAdRepository creates a new job ad repository
func NewJobAdRepository(db *gorm.DB) JobAdRepository {
	return &jobAdRepository{db: db}
}

// Create creates a job ad
func (r *jobAdRepository) Create(ctx context.Context, ad *models.JobAd) error {
	return r.db.WithContext(ctx).Create(ad).Error
}

// GetByID gets a job ad by ID
func (r *jobAdRepository) GetByID(ctx context.Context, id uint) (*models.JobAd, error) {
	var ad models.JobAd
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&ad).Error
	if err != nil {
		return nil, translate(err, nil)
	}
	return &ad, nil
}

// Update updates a job ad
func (r *jobAdRepository) Update(ctx context.Context, ad *models.JobAd) error {
	return r.db.WithContext(ctx).Save(ad).Error
}

// Delete hard deletes a job ad
func (r *jobAdRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.JobAd{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lists job ads, optionally of one handyman and/or only active ones
func (r *jobAdRepository) List(ctx context.Context, handymanID *uint, activeOnly bool, offset, limit int) ([]*models.JobAd, int64, error) {
	var ads []*models.JobAd
	var total int64

	query := r.db.WithContext(ctx).Model(&models.JobAd{})
	if handymanID != nil {
		query = query.Where("handyman_id = ?", *handymanID)
	}
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("start_date DESC, id DESC").Offset(offset).Limit(limit).Find(&ads).Error; err != nil {
		return nil, 0, err
	}

	return ads, total, nil
}

// DeactivateExpired switches off active ads whose end date is before today
func (r *jobAdRepository) DeactivateExpired(ctx context.Context, today time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.JobAd{}).
		Where("is_active = ? AND end_date < ?", true, today).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}
