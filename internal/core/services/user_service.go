package services

import (
	"context"
	"log"
	"strings"

	"fixithub/internal/adapters/persistence/models"
	"fixithub/internal/adapters/persistence/repositories"
	"fixithub/internal/core/domain"
	"fixithub/internal/core/policy"
	"fixithub/internal/pkg/pagination"
	"fixithub/internal/pkg/password"
)

// User service errors
var (
	ErrOldPasswordWrong = domain.NewValidationError("Validation failed", map[string]string{
		"old_password": "Old password is incorrect",
	})
)

// UserService handles self-service account access and admin account management
type UserService struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
) *UserService {
	return &UserService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
	}
}

// ListUsersInput represents list users input
type ListUsersInput struct {
	Page   int
	Limit  int
	Search string
	Role   string
}

// UpdateUserByAdminInput represents update user input (for admin)
type UpdateUserByAdminInput struct {
	Email    *string `json:"email" validate:"omitempty,email,max=254"`
	FullName *string `json:"full_name" validate:"omitempty,min=1,max=100"`
	Phone    *string `json:"phone" validate:"omitempty,min=1,max=20"`
	Location *string `json:"location" validate:"omitempty,max=100"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

// UpdateProfileInput represents update profile input (for self).
// Role and the active flags are decoded only so they can be refused.
type UpdateProfileInput struct {
	FullName *string `json:"full_name" validate:"omitempty,min=1,max=100"`
	Phone    *string `json:"phone" validate:"omitempty,min=1,max=20"`
	Location *string `json:"location" validate:"omitempty,max=100"`
	Password *string `json:"password" validate:"omitempty,min=8"`

	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
	Active   *bool   `json:"active"`
}

// ChangePasswordInput represents change password input
type ChangePasswordInput struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// ============================================================
// Self-service
// ============================================================

// GetProfile gets own account
func (s *UserService) GetProfile(ctx context.Context, p domain.Principal) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

// UpdateProfile updates own account. A patch touching role or the active flag
// is refused as a whole.
func (s *UserService) UpdateProfile(ctx context.Context, p domain.Principal, input *UpdateProfileInput) (*models.UserResponse, error) {
	forbidden := map[string]string{}
	if input.Role != nil {
		forbidden["role"] = "Role cannot be changed through self-service"
	}
	if input.IsActive != nil {
		forbidden["is_active"] = "Account status cannot be changed through self-service"
	}
	if input.Active != nil {
		forbidden["active"] = "Account status cannot be changed through self-service"
	}
	if len(forbidden) > 0 {
		return nil, domain.NewValidationError("Validation failed", forbidden)
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		name, err := nonBlank("full_name", *input.FullName)
		if err != nil {
			return nil, err
		}
		user.FullName = name
	}
	if input.Phone != nil {
		if err := s.changePhone(ctx, user, *input.Phone); err != nil {
			return nil, err
		}
	}
	if input.Location != nil {
		user.Location = input.Location
	}
	if input.Password != nil {
		hashedPassword, err := password.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashedPassword
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user.ToResponse(), nil
}

// ChangePassword changes own password after verifying the old one and
// revokes every refresh token of the account
func (s *UserService) ChangePassword(ctx context.Context, p domain.Principal, input *ChangePasswordInput) error {
	if err := validateInput(input); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}

	// Verify old password
	if !password.Verify(input.OldPassword, user.Password) {
		return ErrOldPasswordWrong
	}

	// Hash new password
	hashedPassword, err := password.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	return s.refreshTokenRepo.RevokeAllByUserID(ctx, user.ID)
}

// ============================================================
// Admin
// ============================================================

// ListUsers lists all users with pagination
func (s *UserService) ListUsers(ctx context.Context, actor domain.Principal, input *ListUsersInput) (*pagination.Response, error) {
	if err := authorize(actor, policy.ManageAccounts, nil); err != nil {
		return nil, err
	}
	if input.Role != "" && !domain.Role(input.Role).Valid() {
		return nil, domain.NewValidationError("Validation failed", map[string]string{
			"role": "Must be one of: client handyman admin",
		})
	}

	params := pagination.New(input.Page, input.Limit)
	filter := repositories.UserFilter{
		Search: strings.TrimSpace(input.Search),
		Role:   input.Role,
	}

	users, total, err := s.userRepo.List(ctx, filter, params.Offset, params.Limit)
	if err != nil {
		return nil, err
	}

	userResponses := make([]*models.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = user.ToResponse()
	}

	return pagination.NewResponse(userResponses, params, total), nil
}

// GetUserByID gets any account
func (s *UserService) GetUserByID(ctx context.Context, actor domain.Principal, id uint) (*models.UserResponse, error) {
	if err := authorize(actor, policy.ManageAccounts, nil); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

// UpdateUserByAdmin updates any account
func (s *UserService) UpdateUserByAdmin(ctx context.Context, actor domain.Principal, id uint, input *UpdateUserByAdminInput) (*models.UserResponse, error) {
	if err := authorize(actor, policy.ManageAccounts, nil); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	role := domain.Role(user.Role)
	if input.Role != nil {
		role = domain.Role(strings.ToLower(strings.TrimSpace(*input.Role)))
		if !role.Valid() {
			return nil, domain.NewValidationError("Validation failed", map[string]string{
				"role": "Must be one of: client handyman admin",
			})
		}
		// Prevent admin from changing own role
		if id == actor.ID && role != domain.Role(user.Role) {
			return nil, domain.ErrCannotChangeOwnRole
		}
	}

	active := user.IsActive
	if input.IsActive != nil {
		active = *input.IsActive
	}

	// Admin accounts are never deactivated, including one promoted by this patch
	if !active && (input.Role != nil || input.IsActive != nil) {
		if err := authorize(actor, policy.DeactivateUser, &policy.Resource{Role: role}); err != nil {
			return nil, domain.ErrProtectedAccount
		}
	}

	if input.Email != nil {
		email := domain.NormalizeEmail(*input.Email)
		if email != user.Email {
			exists, err := s.userRepo.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, domain.ErrDuplicateIdentity
			}
			user.Email = email
		}
	}

	if input.Phone != nil {
		if err := s.changePhone(ctx, user, *input.Phone); err != nil {
			return nil, err
		}
	}

	if input.FullName != nil {
		name, err := nonBlank("full_name", *input.FullName)
		if err != nil {
			return nil, err
		}
		user.FullName = name
	}

	if input.Location != nil {
		user.Location = input.Location
	}

	user.Role = string(role)
	user.IsActive = active

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if !user.IsActive {
		if err := s.refreshTokenRepo.RevokeAllByUserID(ctx, user.ID); err != nil {
			return nil, err
		}
	}

	log.Printf("✅ User %d updated by admin %d", user.ID, actor.ID)
	return user.ToResponse(), nil
}

// DeleteUser hard deletes an account and its owned records
func (s *UserService) DeleteUser(ctx context.Context, actor domain.Principal, id uint) error {
	if err := authorize(actor, policy.ManageAccounts, nil); err != nil {
		return err
	}

	// Prevent admin from deleting self
	if id == actor.ID {
		return domain.ErrCannotDeleteSelf
	}

	if err := s.userRepo.DeleteCascade(ctx, id); err != nil {
		return err
	}

	log.Printf("🗑️ User %d deleted by admin %d", id, actor.ID)
	return nil
}

// changePhone sets a new phone number after checking it is free
func (s *UserService) changePhone(ctx context.Context, user *models.User, phone string) error {
	phone, err := nonBlank("phone", phone)
	if err != nil {
		return err
	}
	if phone == user.Phone {
		return nil
	}

	exists, err := s.userRepo.ExistsByPhone(ctx, phone)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrDuplicateIdentity
	}

	user.Phone = phone
	return nil
}

// nonBlank trims value and rejects what is left empty
func nonBlank(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", domain.NewValidationError("Validation failed", map[string]string{
			field: "Must not be blank",
		})
	}
	return value, nil
}
