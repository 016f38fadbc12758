package persistence

import (
	"context"

	orderapp "github.com/verdantia/storefront/internal/application/order"
	"gorm.io/gorm"
)

// CheckoutTransactor runs checkout's multi-aggregate writes in a single
// database transaction. The repositories handed to fn are bound to that
// transaction, so a failed save rolls back every earlier one.
type CheckoutTransactor struct {
	db *Database
}

// NewCheckoutTransactor creates a new CheckoutTransactor
func NewCheckoutTransactor(db *Database) *CheckoutTransactor {
	return &CheckoutTransactor{db: db}
}

// InTransaction implements the order service's Transactor port
func (t *CheckoutTransactor) InTransaction(ctx context.Context, fn func(stores orderapp.CheckoutStores) error) error {
	return t.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(orderapp.CheckoutStores{
			Orders:   NewGormOrderRepository(tx),
			Carts:    NewGormCartRepository(tx),
			Products: NewGormProductRepository(tx),
			Coupons:  NewGormCouponRepository(tx),
		})
	})
}
