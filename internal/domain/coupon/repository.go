package coupon

import (
	"context"

	"github.com/google/uuid"
	"github.com/verdantia/storefront/internal/domain/shared"
)

// CouponRepository defines the interface for coupon persistence
type CouponRepository interface {
	// FindByID finds a coupon by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Coupon, error)

	// FindByCode finds a coupon by its code (case-insensitive)
	FindByCode(ctx context.Context, code string) (*Coupon, error)

	// FindAll finds all coupons matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Coupon, error)

	// Save creates or updates a coupon
	Save(ctx context.Context, coupon *Coupon) error

	// Delete deletes a coupon
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts coupons matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByCode checks if a coupon with the given code exists
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
