package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CartRepository defines the interface for cart persistence
type CartRepository interface {
	// FindByID finds a cart by its ID, items included in insertion order
	FindByID(ctx context.Context, id uuid.UUID) (*Cart, error)

	// FindByClientToken finds the active cart for a client token
	FindByClientToken(ctx context.Context, clientToken string) (*Cart, error)

	// FindByCustomer finds the active cart for a customer
	FindByCustomer(ctx context.Context, customerID uuid.UUID) (*Cart, error)

	// Save creates or updates a cart together with its items
	Save(ctx context.Context, cart *Cart) error

	// Delete deletes a cart and its items
	Delete(ctx context.Context, id uuid.UUID) error

	// FindStale finds active carts untouched since the cutoff, for abandonment sweeps
	FindStale(ctx context.Context, cutoff time.Time, limit int) ([]Cart, error)
}
