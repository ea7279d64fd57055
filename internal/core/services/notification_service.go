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

// NotificationService records SMS notices and publishes domain events.
// SMS messages are written to the audit log only; nothing leaves the system.
// Both paths are best effort and never fail the calling operation.
type NotificationService struct {
	smsRepo   repositories.SMSLogRepository
	userRepo  repositories.UserRepository
	publisher EventPublisher
}

// NewNotificationService creates a new notification service
func NewNotificationService(
	smsRepo repositories.SMSLogRepository,
	userRepo repositories.UserRepository,
	publisher EventPublisher,
) *NotificationService {
	return &NotificationService{
		smsRepo:   smsRepo,
		userRepo:  userRepo,
		publisher: publisher,
	}
}

// NotifyUser logs an SMS notice for the account
func (s *NotificationService) NotifyUser(ctx context.Context, userID uint, message string) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		log.Printf("⚠️ SMS notice for user %d skipped: %v", userID, err)
		return
	}
	s.notify(ctx, user, message)
}

func (s *NotificationService) notify(ctx context.Context, user *models.User, message string) {
	entry := &models.SMSLog{
		UserID:  user.ID,
		Message: message,
		Phone:   user.Phone,
		Status:  domain.SMSSent,
	}
	if err := s.smsRepo.Create(ctx, entry); err != nil {
		log.Printf("❌ Failed to log SMS notice for user %d: %v", user.ID, err)
	}
}

// Publish sends a domain event
func (s *NotificationService) Publish(ctx context.Context, stream, eventType string, data any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, stream, eventType, data); err != nil {
		log.Printf("⚠️ Event %s not published: %v", eventType, err)
	}
}

// ListSMSLogs lists the SMS audit log (admin only)
func (s *NotificationService) ListSMSLogs(ctx context.Context, actor domain.Principal, userID *uint, page, limit int) (*pagination.Response, error) {
	if err := authorize(actor, policy.ViewSMSLogs, nil); err != nil {
		return nil, err
	}

	params := pagination.New(page, limit)
	entries, total, err := s.smsRepo.List(ctx, userID, params.Offset, params.Limit)
	if err != nil {
		return nil, err
	}

	return pagination.NewResponse(entries, params, total), nil
}
