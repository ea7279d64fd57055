package models

import (
	"time"

	"fixithub/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Accounts & Auth
// ============================================================

// User represents users table
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:254;not null" json:"email"`
	FullName  string    `gorm:"size:100;not null" json:"full_name"`
	Phone     string    `gorm:"uniqueIndex;size:20;not null" json:"phone"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      string    `gorm:"size:20;not null;default:'client';index" json:"role"`
	Location  *string   `gorm:"size:100" json:"location"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Principal returns the identity carried in tokens for this user
func (u *User) Principal() domain.Principal {
	return domain.Principal{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     domain.Role(u.Role),
	}
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	Location  *string   `json:"location"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Phone:     u.Phone,
		Role:      u.Role,
		Location:  u.Location,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Marketplace
// ============================================================

// HandymanProfile is the 1:1 extension of a handyman account.
// Rating, RatingCount and JobsCompleted are maintained by the repository
// and never bound from request bodies.
type HandymanProfile struct {
	HandymanID       uint      `gorm:"primaryKey;autoIncrement:false" json:"handyman_id"`
	Category         string    `gorm:"size:50;not null;default:'other'" json:"category"`
	ExperienceYears  int       `gorm:"not null;default:0" json:"experience_years"`
	Bio              *string   `gorm:"type:text" json:"bio"`
	Rating           float64   `gorm:"not null;default:0" json:"rating"`
	RatingCount      int       `gorm:"not null;default:0" json:"rating_count"`
	JobsCompleted    int       `gorm:"not null;default:0" json:"jobs_completed"`
	IsVerified       bool      `gorm:"not null;default:false" json:"is_verified"`
	SubscriptionPlan string    `gorm:"size:20;not null;default:'free'" json:"subscription_plan"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Handyman *User `gorm:"foreignKey:HandymanID;constraint:OnDelete:CASCADE" json:"handyman,omitempty"`
}

func (HandymanProfile) TableName() string {
	return "handyman_profiles"
}

// JobRequest represents job_requests table
type JobRequest struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ClientID      uint      `gorm:"not null;index" json:"client_id"`
	HandymanID    *uint     `gorm:"index" json:"handyman_id"`
	Category      string    `gorm:"size:50;not null" json:"category"`
	Description   string    `gorm:"type:text;not null" json:"job_description"`
	Location      string    `gorm:"size:100;not null" json:"job_location"`
	PreferredDate time.Time `gorm:"type:date;not null" json:"preferred_date"`
	Status        string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Client   *User `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"-"`
	Handyman *User `gorm:"foreignKey:HandymanID;constraint:OnDelete:SET NULL" json:"-"`
}

func (JobRequest) TableName() string {
	return "job_requests"
}

// JobStatus returns the typed status
func (j *JobRequest) JobStatus() domain.JobStatus {
	return domain.JobStatus(j.Status)
}

// JobRequestResponse DTO
type JobRequestResponse struct {
	ID            uint      `json:"id"`
	ClientID      uint      `json:"client_id"`
	HandymanID    *uint     `json:"handyman_id"`
	Category      string    `json:"category"`
	Description   string    `json:"job_description"`
	Location      string    `json:"job_location"`
	PreferredDate string    `json:"preferred_date"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (j *JobRequest) ToResponse() *JobRequestResponse {
	return &JobRequestResponse{
		ID:            j.ID,
		ClientID:      j.ClientID,
		HandymanID:    j.HandymanID,
		Category:      j.Category,
		Description:   j.Description,
		Location:      j.Location,
		PreferredDate: j.PreferredDate.Format(DateLayout),
		Status:        j.Status,
		CreatedAt:     j.CreatedAt,
		UpdatedAt:     j.UpdatedAt,
	}
}

// Review represents reviews table
type Review struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	JobID      uint      `gorm:"uniqueIndex;not null" json:"job_id"`
	ClientID   uint      `gorm:"not null;index" json:"client_id"`
	HandymanID uint      `gorm:"not null;index" json:"handyman_id"`
	Rating     int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment    *string   `gorm:"type:text" json:"comment"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	Job      *JobRequest `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
	Client   *User       `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"-"`
	Handyman *User       `gorm:"foreignKey:HandymanID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Review) TableName() string {
	return "reviews"
}

// Payment represents payments table. Amounts are stored in minor units.
type Payment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	AmountMinor   int64     `gorm:"not null" json:"-"`
	Purpose       string    `gorm:"size:50;not null" json:"purpose"`
	ReferenceCode string    `gorm:"size:100;not null;index" json:"reference_code"`
	PaymentMethod string    `gorm:"size:50;not null" json:"payment_method"`
	Status        string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Payment) TableName() string {
	return "payments"
}

// PaymentResponse DTO
type PaymentResponse struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	Amount        string    `json:"amount"`
	Purpose       string    `json:"purpose"`
	ReferenceCode string    `json:"reference_code"`
	PaymentMethod string    `json:"payment_method"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

func (p *Payment) ToResponse() *PaymentResponse {
	return &PaymentResponse{
		ID:            p.ID,
		UserID:        p.UserID,
		Amount:        domain.FormatAmount(p.AmountMinor),
		Purpose:       p.Purpose,
		ReferenceCode: p.ReferenceCode,
		PaymentMethod: p.PaymentMethod,
		Status:        p.Status,
		CreatedAt:     p.CreatedAt,
	}
}

// JobAd represents job_ads table
type JobAd struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	HandymanID  uint      `gorm:"not null;index" json:"handyman_id"`
	Title       string    `gorm:"size:100;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"ad_description"`
	ImageURL    *string   `gorm:"size:255" json:"image_url"`
	IsActive    bool      `gorm:"not null;default:true;index" json:"is_active"`
	StartDate   time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate     time.Time `gorm:"type:date;not null" json:"end_date"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	Handyman *User `gorm:"foreignKey:HandymanID;constraint:OnDelete:CASCADE" json:"-"`
}

func (JobAd) TableName() string {
	return "job_ads"
}

// JobAdResponse DTO
type JobAdResponse struct {
	ID          uint    `json:"id"`
	HandymanID  uint    `json:"handyman_id"`
	Title       string  `json:"title"`
	Description string  `json:"ad_description"`
	ImageURL    *string `json:"image_url"`
	IsActive    bool    `json:"is_active"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
}

func (a *JobAd) ToResponse() *JobAdResponse {
	return &JobAdResponse{
		ID:          a.ID,
		HandymanID:  a.HandymanID,
		Title:       a.Title,
		Description: a.Description,
		ImageURL:    a.ImageURL,
		IsActive:    a.IsActive,
		StartDate:   a.StartDate.Format(DateLayout),
		EndDate:     a.EndDate.Format(DateLayout),
	}
}

// SMSLog represents sms_logs table
type SMSLog struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	UserID  uint      `gorm:"not null;index" json:"user_id"`
	Message string    `gorm:"type:text;not null" json:"message"`
	Phone   string    `gorm:"size:20;not null" json:"phone"`
	Status  string    `gorm:"size:20;not null" json:"status"`
	SentAt  time.Time `gorm:"autoCreateTime" json:"sent_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (SMSLog) TableName() string {
	return "sms_logs"
}

// DateLayout is the wire format of date-only fields
const DateLayout = "2006-01-02"

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&HandymanProfile{},
		&JobRequest{},
		&Review{},
		&Payment{},
		&JobAd{},
		&SMSLog{},
	)
}
