package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"fixithub/internal/adapters/persistence/models"
	"fixithub/internal/adapters/persistence/repositories"
	"fixithub/internal/config"
	"fixithub/internal/core/domain"
	"fixithub/internal/core/policy"
	"fixithub/internal/pkg/jwt"
	"fixithub/internal/pkg/password"

	"github.com/google/uuid"
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	cfg              *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		cfg:              cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Email    string  `json:"email" validate:"required,email,max=254"`
	FullName string  `json:"full_name" validate:"required,max=100"`
	Phone    string  `json:"phone" validate:"required,max=20"`
	Password string  `json:"password" validate:"required,min=8"`
	Role     string  `json:"role"`
	Location *string `json:"location" validate:"omitempty,max=100"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *models.UserResponse `json:"user"`
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
}

// Register registers a new client or handyman
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResponse, error) {
	// 1. Only self-service roles; empty defaults to client
	role := domain.Role(strings.ToLower(strings.TrimSpace(input.Role)))
	if role == "" {
		role = domain.RoleClient
	}
	if !role.SelfService() {
		return nil, domain.ErrInvalidRole
	}

	// 2. Create the account
	user, err := s.createAccount(ctx, input, role)
	if err != nil {
		return nil, err
	}

	// 3. Issue and store tokens
	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User registered: %s (%s)", user.Email, user.Role)

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// RegisterAdmin creates an admin account. Only admins may call it.
func (s *AuthService) RegisterAdmin(ctx context.Context, actor domain.Principal, input *RegisterInput) (*models.UserResponse, error) {
	if err := authorize(actor, policy.RegisterAdmin, nil); err != nil {
		return nil, err
	}

	user, err := s.createAccount(ctx, input, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Admin registered: %s (by user ID: %d)", user.Email, actor.ID)
	return user.ToResponse(), nil
}

// createAccount validates input, checks identity uniqueness and persists the account
func (s *AuthService) createAccount(ctx context.Context, input *RegisterInput, role domain.Role) (*models.User, error) {
	input.Email = domain.NormalizeEmail(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)
	input.FullName = strings.TrimSpace(input.FullName)

	if err := validateInput(input); err != nil {
		return nil, err
	}

	// Check if email already exists
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateIdentity
	}

	// Check if phone already exists
	exists, err = s.userRepo.ExistsByPhone(ctx, input.Phone)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateIdentity
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    input.Email,
		FullName: input.FullName,
		Phone:    input.Phone,
		Password: hashedPassword,
		Role:     string(role),
		Location: input.Location,
		IsActive: true,
	}

	// The unique indexes catch a concurrent registration that passed the checks
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login authenticates a user. Unknown email, wrong password and inactive
// account are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	// 1. Find user by email
	user, err := s.userRepo.GetByEmail(ctx, domain.NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			password.VerifyDecoy(input.Password)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Verify password and active flag
	if !password.Verify(input.Password, user.Password) || !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}

	// 3. Issue and store tokens
	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User logged in: %s", user.Email)

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// RefreshToken rotates a refresh token and issues a new pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	// 1. Validate refresh token JWT
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrInvalidToken
	}

	// 2. Find the stored hash
	storedToken, err := s.refreshTokenRepo.GetByTokenHash(ctx, password.HashToken(refreshToken))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	if storedToken.UserID != claims.UserID {
		return nil, domain.ErrInvalidToken
	}

	// 3. Check revocation and expiry
	if storedToken.IsRevoked() {
		return nil, domain.ErrTokenRevoked
	}
	if storedToken.IsExpired() {
		return nil, domain.ErrTokenExpired
	}

	// 4. Get user; banned accounts cannot refresh
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}

	// 5. Revoke old refresh token (Token Rotation)
	if err := s.refreshTokenRepo.Revoke(ctx, storedToken.ID); err != nil {
		return nil, err
	}

	// 6. Issue and store new tokens
	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Token refreshed for user: %s", user.Email)

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Logout revokes the refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.refreshTokenRepo.RevokeByTokenHash(ctx, password.HashToken(refreshToken)); err != nil {
		return err
	}

	log.Printf("✅ User logged out")
	return nil
}

// LogoutAll revokes all refresh tokens for a user
func (s *AuthService) LogoutAll(ctx context.Context, userID uint) error {
	active, err := s.refreshTokenRepo.CountActiveByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.refreshTokenRepo.RevokeAllByUserID(ctx, userID); err != nil {
		return err
	}

	log.Printf("✅ %d sessions revoked for user ID: %d", active, userID)
	return nil
}

// ResolvePrincipal verifies an access token and returns its principal.
// Stateless: no storage is consulted.
func (s *AuthService) ResolvePrincipal(accessToken string) (domain.Principal, error) {
	claims, err := jwt.ValidateAccessToken(accessToken, s.cfg.JWT.Secret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Principal{}, domain.ErrTokenExpired
		}
		return domain.Principal{}, domain.ErrInvalidToken
	}

	return domain.Principal{
		ID:       claims.UserID,
		Email:    claims.Email,
		FullName: claims.FullName,
		Role:     domain.Role(claims.Role),
	}, nil
}

// issueTokens generates access and refresh tokens and stores the refresh hash
func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	accessToken, err := jwt.GenerateAccessToken(
		user.ID,
		user.Email,
		user.FullName,
		user.Role,
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	// Unique token ID keeps two refresh tokens issued in the same second distinct
	refreshToken, err := jwt.GenerateRefreshToken(
		user.ID,
		uuid.New().String(),
		s.cfg.JWT.RefreshSecret,
		s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	token := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: password.HashToken(refreshToken),
		ExpiresAt: jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays),
	}
	if err := s.refreshTokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
