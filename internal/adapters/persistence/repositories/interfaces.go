package repositories

import (
	"context"
	"time"

	"fixithub/internal/adapters/persistence/models"
)

// UserFilter narrows account listings
type UserFilter struct {
	Search string
	Role   string
}

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	SetActive(ctx context.Context, id uint, active bool) error
	DeleteCascade(ctx context.Context, id uint) error
	List(ctx context.Context, filter UserFilter, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	ExistsByRole(ctx context.Context, role string) (bool, error)
	CountByRole(ctx context.Context) (map[string]int64, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
	CountActiveByUserID(ctx context.Context, userID uint) (int64, error)
}

// ProfileFilter narrows handyman profile listings
type ProfileFilter struct {
	Category string
	Verified *bool
}

// HandymanProfileRepository defines handyman profile repository interface
type HandymanProfileRepository interface {
	Create(ctx context.Context, profile *models.HandymanProfile) error
	GetByHandymanID(ctx context.Context, handymanID uint) (*models.HandymanProfile, error)
	Update(ctx context.Context, profile *models.HandymanProfile) error
	SetVerified(ctx context.Context, handymanID uint, verified bool) error
	List(ctx context.Context, filter ProfileFilter, offset, limit int) ([]*models.HandymanProfile, int64, error)
	ExistsByHandymanID(ctx context.Context, handymanID uint) (bool, error)
	TopRated(ctx context.Context, limit int) ([]*models.HandymanProfile, error)
}

// JobScope selects which jobs a listing returns
type JobScope struct {
	ClientID   *uint
	HandymanID *uint
	OpenOnly   bool
	Status     string
}

// JobRepository defines job request repository interface
type JobRepository interface {
	Create(ctx context.Context, job *models.JobRequest) error
	GetByID(ctx context.Context, id uint) (*models.JobRequest, error)
	List(ctx context.Context, scope JobScope, offset, limit int) ([]*models.JobRequest, int64, error)
	// Accept assigns handymanID to a pending unassigned job. It reports false
	// when the precondition no longer holds.
	Accept(ctx context.Context, id, handymanID uint) (bool, error)
	// Transition moves a job from one status to another. It reports false when
	// the job is no longer in the expected status.
	Transition(ctx context.Context, id uint, from, to string) (bool, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

// ReviewRepository defines review repository interface
type ReviewRepository interface {
	// CreateWithRating inserts the review and folds its rating into the
	// handyman's profile in one transaction.
	CreateWithRating(ctx context.Context, review *models.Review) error
	ExistsByJobID(ctx context.Context, jobID uint) (bool, error)
	List(ctx context.Context, handymanID *uint, offset, limit int) ([]*models.Review, int64, error)
}

// PaymentRepository defines payment repository interface
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id uint) (*models.Payment, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	List(ctx context.Context, userID *uint, offset, limit int) ([]*models.Payment, int64, error)
	SumByStatus(ctx context.Context, status string) (int64, error)
}

// JobAdRepository defines job ad repository interface
type JobAdRepository interface {
	Create(ctx context.Context, ad *models.JobAd) error
	GetByID(ctx context.Context, id uint) (*models.JobAd, error)
	Update(ctx context.Context, ad *models.JobAd) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, handymanID *uint, activeOnly bool, offset, limit int) ([]*models.JobAd, int64, error)
	DeactivateExpired(ctx context.Context, today time.Time) (int64, error)
}

// SMSLogRepository defines SMS log repository interface
type SMSLogRepository interface {
	Create(ctx context.Context, entry *models.SMSLog) error
	List(ctx context.Context, userID *uint, offset, limit int) ([]*models.SMSLog, int64, error)
}
