package repositories

import (
	"context"

	"fixithub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// smsLogRepository implements SMSLogRepository interface
type smsLogRepository struct {
	db *gorm.DB
}

// NewSMSLogRepository creates a new SMS log repository
func NewSMSLogRepository(db *gorm.DB) SMSLogRepository {
	return &smsLogRepository{db: db}
}

// Create appends an entry to the SMS audit log
func (r *smsLogRepository) Create(ctx context.Context, entry *models.SMSLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// List lists SMS log entries, newest first
func (r *smsLogRepository) List(ctx context.Context, userID *uint, offset, limit int) ([]*models.SMSLog, int64, error) {
	var entries []*models.SMSLog
	var total int64

	query := r.db.WithContext(ctx).Model(&models.SMSLog{})
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("sent_at DESC, id DESC").Offset(offset).Limit(limit).Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
