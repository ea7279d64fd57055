package repositories

import (
	"context"
	"time"

	"fixithub/internal/adapters/persistence/models"
	"fixithub/internal/core/domain"

	"gorm.io/gorm"
)

// reviewRepository implements ReviewRepository interface
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// ratingUpdate folds one rating into the stored mean. rating is assigned
// before rating_count so both expressions read the pre-update count.
const ratingUpdate = `UPDATE handyman_profiles
SET rating = rating + (? - rating) / (rating_count + 1),
    rating_count = rating_count + 1,
    updated_at = ?
WHERE handyman_id = ?`

// CreateWithRating inserts a review and updates the handyman's mean rating.
// A handyman without a profile keeps the review but gets no aggregate.
func (r *reviewRepository) CreateWithRating(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return translate(err, domain.ErrDuplicateReview)
		}
		return tx.Exec(ratingUpdate, float64(review.Rating), time.Now(), review.HandymanID).Error
	})
}

// ExistsByJobID checks if a job already has its review
func (r *reviewRepository) ExistsByJobID(ctx context.Context, jobID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).Where("job_id = ?", jobID).Count(&count).Error
	return count > 0, err
}

// List lists reviews, optionally for one handyman, newest first
func (r *reviewRepository) List(ctx context.Context, handymanID *uint, offset, limit int) ([]*models.Review, int64, error) {
	var reviews []*models.Review
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Review{})
	if handymanID != nil {
		query = query.Where("handyman_id = ?", *handymanID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&reviews).Error; err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}
