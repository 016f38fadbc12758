package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/verdantia/storefront/internal/domain/identity"
	"github.com/verdantia/storefront/internal/domain/shared"
	"github.com/verdantia/storefront/internal/infrastructure/auth"
	"github.com/verdantia/storefront/internal/infrastructure/config"
)

// MockAdminUserRepository is a mock implementation of AdminUserRepository
type MockAdminUserRepository struct {
	mock.Mock
}

func (m *MockAdminUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.AdminUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.AdminUser), args.Error(1)
}

func (m *MockAdminUserRepository) FindByEmail(ctx context.Context, email string) (*identity.AdminUser, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.AdminUser), args.Error(1)
}

func (m *MockAdminUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.AdminUser, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.AdminUser), args.Error(1)
}

func (m *MockAdminUserRepository) Save(ctx context.Context, user *identity.AdminUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockAdminUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAdminUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAdminUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func newTestTokenIssuer() TokenIssuer {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "verdantia-test",
	})
}

func createTestAdmin(t *testing.T, password string) *identity.AdminUser {
	t.Helper()
	user, err := identity.NewAdminUser("maya@verdantia.example", password, "Maya", identity.AdminRoleAdmin)
	require.NoError(t, err)
	return user
}

func TestAuthService_Login(t *testing.T) {
	repo := new(MockAdminUserRepository)
	svc := NewAuthService(repo, newTestTokenIssuer())

	user := createTestAdmin(t, "correct-horse-battery")

	repo.On("FindByEmail", mock.Anything, "maya@verdantia.example").Return(user, nil)
	repo.On("Save", mock.Anything, user).Return(nil)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "  Maya@Verdantia.example ",
		Password: "correct-horse-battery",
	})

	require.NoError(t, err)
	assert.Equal(t, user.Email, resp.User.Email)
	assert.Equal(t, "admin", resp.User.Role)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.NotEmpty(t, resp.Tokens.RefreshToken)
	assert.NotNil(t, user.LastLoginAt)
	repo.AssertExpectations(t)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := new(MockAdminUserRepository)
	svc := NewAuthService(repo, newTestTokenIssuer())

	repo.On("FindByEmail", mock.Anything, "ghost@verdantia.example").Return(nil, shared.ErrNotFound)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ghost@verdantia.example",
		Password: "whatever-password",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := new(MockAdminUserRepository)
	svc := NewAuthService(repo, newTestTokenIssuer())

	user := createTestAdmin(t, "correct-horse-battery")
	repo.On("FindByEmail", mock.Anything, "maya@verdantia.example").Return(user, nil)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "maya@verdantia.example",
		Password: "wrong-password-here",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, user.LastLoginAt)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_Login_DisabledUser(t *testing.T) {
	repo := new(MockAdminUserRepository)
	svc := NewAuthService(repo, newTestTokenIssuer())

	user := createTestAdmin(t, "correct-horse-battery")
	require.NoError(t, user.Deactivate())

	repo.On("FindByEmail", mock.Anything, "maya@verdantia.example").Return(user, nil)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "maya@verdantia.example",
		Password: "correct-horse-battery",
	})

	assert.ErrorIs(t, err, ErrUserDisabled)
}

func TestAuthService_Refresh(t *testing.T) {
	repo := new(MockAdminUserRepository)
	issuer := newTestTokenIssuer()
	svc := NewAuthService(repo, issuer)

	user := createTestAdmin(t, "correct-horse-battery")

	pair, err := issuer.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	resp, err := svc.Refresh(context.Background(), RefreshRequest{RefreshToken: pair.RefreshToken})

	require.NoError(t, err)
	assert.Equal(t, user.Email, resp.User.Email)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
}

func TestAuthService_Refresh_InvalidToken(t *testing.T) {
	repo := new(MockAdminUserRepository)
	svc := NewAuthService(repo, newTestTokenIssuer())

	_, err := svc.Refresh(context.Background(), RefreshRequest{RefreshToken: "garbage"})

	assert.ErrorIs(t, err, shared.ErrUnauthorized)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestAuthService_Refresh_DeactivatedSinceIssue(t *testing.T) {
	repo := new(MockAdminUserRepository)
	issuer := newTestTokenIssuer()
	svc := NewAuthService(repo, issuer)

	user := createTestAdmin(t, "correct-horse-battery")

	pair, err := issuer.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	require.NoError(t, err)

	require.NoError(t, user.Deactivate())
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	_, err = svc.Refresh(context.Background(), RefreshRequest{RefreshToken: pair.RefreshToken})

	assert.ErrorIs(t, err, ErrUserDisabled)
}

func TestAuthService_ChangePassword(t *testing.T) {
	repo := new(MockAdminUserRepository)
	svc := NewAuthService(repo, newTestTokenIssuer())

	user := createTestAdmin(t, "correct-horse-battery")
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("Save", mock.Anything, user).Return(nil)

	err := svc.ChangePassword(context.Background(), user.ID.String(), ChangePasswordRequest{
		CurrentPassword: "correct-horse-battery",
		NewPassword:     "an-even-longer-secret",
	})

	require.NoError(t, err)
	assert.True(t, user.VerifyPassword("an-even-longer-secret"))
	repo.AssertExpectations(t)
}

func TestAuthService_ChangePassword_WrongCurrent(t *testing.T) {
	repo := new(MockAdminUserRepository)
	svc := NewAuthService(repo, newTestTokenIssuer())

	user := createTestAdmin(t, "correct-horse-battery")
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	err := svc.ChangePassword(context.Background(), user.ID.String(), ChangePasswordRequest{
		CurrentPassword: "not-the-password",
		NewPassword:     "an-even-longer-secret",
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PASSWORD", domainErr.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
