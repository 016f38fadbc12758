package identity

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/verdantia/storefront/internal/domain/identity"
	"github.com/verdantia/storefront/internal/domain/shared"
)

// UserService handles admin user management
type UserService struct {
	userRepo identity.AdminUserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.AdminUserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Create creates a new admin user
func (s *UserService) Create(ctx context.Context, req CreateAdminUserRequest) (*AdminUserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An admin user with this email already exists")
	}

	user, err := identity.NewAdminUser(email, req.Password, req.DisplayName, identity.AdminRole(req.Role))
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	return ToAdminUserResponse(user), nil
}

// GetByID retrieves an admin user by ID
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*AdminUserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToAdminUserResponse(user), nil
}

// List retrieves admin users with pagination
func (s *UserService) List(ctx context.Context, page, pageSize int) (*shared.Paginated[AdminUserResponse], error) {
	f := shared.DefaultFilter()
	if page > 0 {
		f.Page = page
	}
	if pageSize > 0 {
		f.PageSize = pageSize
	}

	users, err := s.userRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}

	total, err := s.userRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	items := make([]AdminUserResponse, len(users))
	for i := range users {
		items[i] = *ToAdminUserResponse(&users[i])
	}

	result := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &result, nil
}

// Update applies a partial update to an admin user
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req UpdateAdminUserRequest) (*AdminUserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		if *req.DisplayName == "" {
			return nil, shared.NewDomainError("INVALID_NAME", "Display name cannot be empty")
		}
		user.DisplayName = *req.DisplayName
		user.IncrementVersion()
	}
	if req.Role != nil {
		if err := user.SetRole(identity.AdminRole(*req.Role)); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	return ToAdminUserResponse(user), nil
}

// ResetPassword sets a new password for another user without knowing the old one
func (s *UserService) ResetPassword(ctx context.Context, id uuid.UUID, req ResetPasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return err
	}

	return s.userRepo.Save(ctx, user)
}

// SetActive activates or deactivates an admin user. A user cannot
// deactivate their own account.
func (s *UserService) SetActive(ctx context.Context, id uuid.UUID, callerID uuid.UUID, active bool) (*AdminUserResponse, error) {
	if !active && id == callerID {
		return nil, shared.NewDomainError("SELF_DEACTIVATION", "You cannot deactivate your own account")
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if active {
		err = user.Activate()
	} else {
		err = user.Deactivate()
	}
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	return ToAdminUserResponse(user), nil
}

// Delete removes an admin user. Self-deletion is rejected.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID, callerID uuid.UUID) error {
	if id == callerID {
		return shared.NewDomainError("SELF_DELETION", "You cannot delete your own account")
	}

	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return err
	}

	return s.userRepo.Delete(ctx, id)
}
