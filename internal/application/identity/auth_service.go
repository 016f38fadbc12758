package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/verdantia/storefront/internal/domain/identity"
	"github.com/verdantia/storefront/internal/domain/shared"
	"github.com/verdantia/storefront/internal/infrastructure/auth"
)

// ErrInvalidCredentials is returned for unknown email or wrong password,
// deliberately indistinguishable to the caller.
var ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")

// ErrUserDisabled is returned when a deactivated user attempts to log in
var ErrUserDisabled = shared.NewDomainError("USER_DISABLED", "This account has been disabled")

// TokenIssuer abstracts JWT operations for testing
type TokenIssuer interface {
	GenerateTokenPair(input auth.GenerateTokenInput) (*auth.TokenPair, error)
	ValidateRefreshToken(tokenString string) (*auth.Claims, error)
	ValidateAccessToken(tokenString string) (*auth.Claims, error)
}

// AuthService handles admin authentication
type AuthService struct {
	userRepo identity.AdminUserRepository
	tokens   TokenIssuer
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.AdminUserRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Login authenticates an admin user and issues a token pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.VerifyPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrUserDisabled
	}

	user.RecordLogin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	tokens, err := s.tokens.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		User:   ToAdminUserResponse(user),
		Tokens: tokens,
	}, nil
}

// Refresh exchanges a valid refresh token for a new token pair. The user
// is re-loaded so a deactivated account cannot keep refreshing.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*LoginResponse, error) {
	claims, err := s.tokens.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.ErrUnauthorized
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUnauthorized
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrUserDisabled
	}

	tokens, err := s.tokens.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		User:   ToAdminUserResponse(user),
		Tokens: tokens,
	}, nil
}

// ChangePassword changes the authenticated user's own password
func (s *AuthService) ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error {
	user, err := s.findByStringID(ctx, userID)
	if err != nil {
		return err
	}

	if err := user.ChangePassword(req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}

	return s.userRepo.Save(ctx, user)
}

func (s *AuthService) findByStringID(ctx context.Context, userID string) (*identity.AdminUser, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	return s.userRepo.FindByID(ctx, id)
}
