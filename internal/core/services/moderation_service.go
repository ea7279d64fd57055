package services

import (
	"context"
	"log"

	"fixithub/internal/adapters/persistence/models"
	"fixithub/internal/adapters/persistence/repositories"
	"fixithub/internal/core/domain"
	"fixithub/internal/core/policy"
)

// ModerationService suspends and restores accounts
type ModerationService struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	notifier         *NotificationService
}

// NewModerationService creates a new moderation service
func NewModerationService(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	notifier *NotificationService,
) *ModerationService {
	return &ModerationService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		notifier:         notifier,
	}
}

// Ban deactivates an account and revokes its refresh tokens. Access tokens
// already issued stay valid until they expire.
func (s *ModerationService) Ban(ctx context.Context, actor domain.Principal, targetID uint) (*models.UserResponse, error) {
	target, err := s.guard(ctx, actor, targetID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SetActive(ctx, target.ID, false); err != nil {
		return nil, err
	}
	if err := s.refreshTokenRepo.RevokeAllByUserID(ctx, target.ID); err != nil {
		return nil, err
	}
	target.IsActive = false

	s.notifier.notify(ctx, target, "Your FixItHub account has been suspended by an administrator.")
	s.notifier.Publish(ctx, domain.AccountEventsStream, domain.EventAccountBanned, domain.AccountEvent{
		AccountID: target.ID,
		ActorID:   actor.ID,
	})

	log.Printf("🚫 User %d banned by admin %d", target.ID, actor.ID)
	return target.ToResponse(), nil
}

// Unban reactivates a suspended account
func (s *ModerationService) Unban(ctx context.Context, actor domain.Principal, targetID uint) (*models.UserResponse, error) {
	target, err := s.guard(ctx, actor, targetID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SetActive(ctx, target.ID, true); err != nil {
		return nil, err
	}
	target.IsActive = true

	s.notifier.notify(ctx, target, "Your FixItHub account has been reactivated.")
	s.notifier.Publish(ctx, domain.AccountEventsStream, domain.EventAccountUnbanned, domain.AccountEvent{
		AccountID: target.ID,
		ActorID:   actor.ID,
	})

	log.Printf("✅ User %d unbanned by admin %d", target.ID, actor.ID)
	return target.ToResponse(), nil
}

// guard applies the moderation checks in order: actor role, target
// existence, target protection
func (s *ModerationService) guard(ctx context.Context, actor domain.Principal, targetID uint) (*models.User, error) {
	if err := authorize(actor, policy.DeactivateUser, nil); err != nil {
		return nil, err
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if policy.Authorize(actor, policy.DeactivateUser, &policy.Resource{Role: domain.Role(target.Role)}) == policy.Deny {
		return nil, domain.ErrProtectedAccount
	}

	return target, nil
}
