package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/verdantia/storefront/internal/domain/cart"
	"github.com/verdantia/storefront/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCartRepository implements CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// preloadItems loads cart items in insertion order
func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

// FindByID finds a cart by its ID, items included in insertion order
func (r *GormCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.Cart, error) {
	var c cart.Cart
	if err := preloadItems(r.db.WithContext(ctx)).
		First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindByClientToken finds the active cart for a client token
func (r *GormCartRepository) FindByClientToken(ctx context.Context, clientToken string) (*cart.Cart, error) {
	var c cart.Cart
	if err := preloadItems(r.db.WithContext(ctx)).
		Where("client_token = ? AND status = ?", clientToken, cart.CartStatusActive).
		First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindByCustomer finds the active cart for a customer
func (r *GormCartRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) (*cart.Cart, error) {
	var c cart.Cart
	if err := preloadItems(r.db.WithContext(ctx)).
		Where("customer_id = ? AND status = ?", customerID, cart.CartStatusActive).
		Order("updated_at DESC").
		First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Save creates or updates a cart together with its items.
// Items removed from the aggregate are deleted so the stored line
// set always mirrors the in-memory one.
func (r *GormCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(c).Error; err != nil {
			return err
		}

		currentItemIDs := make([]uuid.UUID, len(c.Items))
		for i, item := range c.Items {
			currentItemIDs[i] = item.ID
		}

		// Delete lines not in the current list
		if len(currentItemIDs) > 0 {
			if err := tx.Where("cart_id = ? AND id NOT IN ?", c.ID, currentItemIDs).
				Delete(&cart.CartItem{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("cart_id = ?", c.ID).
				Delete(&cart.CartItem{}).Error; err != nil {
				return err
			}
		}

		// Save/update remaining lines
		for i := range c.Items {
			c.Items[i].CartID = c.ID
			if err := tx.Save(&c.Items[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete deletes a cart and its items
func (r *GormCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", id).Delete(&cart.CartItem{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&cart.Cart{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindStale finds active carts untouched since the cutoff, for abandonment sweeps
func (r *GormCartRepository) FindStale(ctx context.Context, cutoff time.Time, limit int) ([]cart.Cart, error) {
	var carts []cart.Cart
	query := r.db.WithContext(ctx).
		Where("status = ? AND updated_at < ?", cart.CartStatusActive, cutoff).
		Order("updated_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&carts).Error; err != nil {
		return nil, err
	}
	return carts, nil
}

// Ensure GormCartRepository implements CartRepository
var _ cart.CartRepository = (*GormCartRepository)(nil)
