package repositories

import (
	"context"
	"time"

	"fixithub/internal/adapters/persistence/models"
	"fixithub/internal/core/domain"

	"gorm.io/gorm"
)

// jobRepository implements JobRepository interface
type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new job request repository
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

// Create creates a new job request
func (r *jobRepository) Create(ctx context.Context, job *models.JobRequest) error {
	return r.db.WithContext(ctx).Create(job).Error
}

// GetByID gets a job request by ID
func (r *jobRepository) GetByID(ctx context.Context, id uint) (*models.JobRequest, error) {
	var job models.JobRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&job).Error
	if err != nil {
		return nil, translate(err, nil)
	}
	return &job, nil
}

// List lists job requests inside the given scope, newest first
func (r *jobRepository) List(ctx context.Context, scope JobScope, offset, limit int) ([]*models.JobRequest, int64, error) {
	var jobs []*models.JobRequest
	var total int64

	query := r.db.WithContext(ctx).Model(&models.JobRequest{})
	if scope.ClientID != nil {
		query = query.Where("client_id = ?", *scope.ClientID)
	}
	if scope.HandymanID != nil {
		query = query.Where("handyman_id = ?", *scope.HandymanID)
	}
	if scope.OpenOnly {
		query = query.Where("status = ? AND handyman_id IS NULL", string(domain.JobPending))
	}
	if scope.Status != "" {
		query = query.Where("status = ?", scope.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&jobs).Error; err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

// Accept claims a pending, unassigned job in a single conditional UPDATE
func (r *jobRepository) Accept(ctx context.Context, id, handymanID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.JobRequest{}).
		Where("id = ? AND status = ? AND handyman_id IS NULL", id, string(domain.JobPending)).
		Updates(map[string]interface{}{
			"handyman_id": handymanID,
			"status":      string(domain.JobAccepted),
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// Transition moves a job between statuses. Completion also bumps the
// assigned handyman's jobs_completed inside the same transaction.
func (r *jobRepository) Transition(ctx context.Context, id uint, from, to string) (bool, error) {
	moved := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.JobRequest{}).
			Where("id = ? AND status = ?", id, from).
			Updates(map[string]interface{}{
				"status":     to,
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		moved = true

		if to != string(domain.JobCompleted) {
			return nil
		}
		assignee := tx.Model(&models.JobRequest{}).Select("handyman_id").Where("id = ?", id)
		return tx.Model(&models.HandymanProfile{}).
			Where("handyman_id = (?)", assignee).
			Update("jobs_completed", gorm.Expr("jobs_completed + ?", 1)).Error
	})
	if err != nil {
		return false, err
	}
	return moved, nil
}

// CountByStatus returns the number of jobs per status
func (r *jobRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.JobRequest{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
