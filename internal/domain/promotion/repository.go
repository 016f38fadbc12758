package promotion

import (
	"context"

	"github.com/google/uuid"
	"github.com/verdantia/storefront/internal/domain/shared"
)

// PromotionRepository defines the interface for promotion persistence
type PromotionRepository interface {
	// FindByID finds a promotion by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Promotion, error)

	// FindAll finds all promotions matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Promotion, error)

	// FindByKind finds all promotions of one kind
	FindByKind(ctx context.Context, kind Kind, filter shared.Filter) ([]Promotion, error)

	// FindActive finds all active promotions in creation order.
	// Window, targeting, and throttling checks are the selector's concern.
	FindActive(ctx context.Context) ([]Promotion, error)

	// Save creates or updates a promotion
	Save(ctx context.Context, promotion *Promotion) error

	// Delete deletes a promotion
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts promotions matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
