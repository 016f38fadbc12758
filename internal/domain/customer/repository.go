package customer

import (
	"context"

	"github.com/google/uuid"
	"github.com/verdantia/storefront/internal/domain/shared"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByEmail(ctx context.Context, email string) (*Customer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)
	Save(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// WishlistRepository defines the interface for wishlist persistence
type WishlistRepository interface {
	// FindByCustomer lists a customer's saved products, newest first
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]WishlistItem, error)

	// Exists checks whether the customer already saved the product
	Exists(ctx context.Context, customerID, productID uuid.UUID) (bool, error)

	// Save stores a wishlist entry; duplicate pairs are rejected by the index
	Save(ctx context.Context, item *WishlistItem) error

	// Delete removes a customer's entry for a product
	Delete(ctx context.Context, customerID, productID uuid.UUID) error
}
