package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/verdantia/storefront/internal/domain/shared"
)

// AdminUserRepository defines the interface for admin user persistence
type AdminUserRepository interface {
	// FindByID finds an admin user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*AdminUser, error)

	// FindByEmail finds an admin user by email (lowercased)
	FindByEmail(ctx context.Context, email string) (*AdminUser, error)

	// FindAll finds all admin users matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]AdminUser, error)

	// Save creates or updates an admin user
	Save(ctx context.Context, user *AdminUser) error

	// Delete deletes an admin user
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts admin users matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByEmail checks if an admin user with the given email exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
