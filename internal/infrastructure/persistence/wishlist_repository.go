package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/verdantia/storefront/internal/domain/customer"
	"github.com/verdantia/storefront/internal/domain/shared"
	"gorm.io/gorm"
)

// GormWishlistRepository implements WishlistRepository using GORM
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewGormWishlistRepository creates a new GormWishlistRepository
func NewGormWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// FindByCustomer lists a customer's saved products, newest first
func (r *GormWishlistRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]customer.WishlistItem, error) {
	var items []customer.WishlistItem
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Exists checks whether the customer already saved the product
func (r *GormWishlistRepository) Exists(ctx context.Context, customerID, productID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&customer.WishlistItem{}).
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save stores a wishlist entry; duplicate pairs are rejected by the index
func (r *GormWishlistRepository) Save(ctx context.Context, item *customer.WishlistItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete removes a customer's entry for a product
func (r *GormWishlistRepository) Delete(ctx context.Context, customerID, productID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		Delete(&customer.WishlistItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormWishlistRepository implements WishlistRepository
var _ customer.WishlistRepository = (*GormWishlistRepository)(nil)
