// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"

	"gorm.io/gorm"
)

// GormStoreMetricsProvider implements StoreMetricsProvider using GORM.
// It queries the products and carts tables directly for aggregated counts.
type GormStoreMetricsProvider struct {
	db *gorm.DB
}

// NewGormStoreMetricsProvider creates a new GormStoreMetricsProvider.
func NewGormStoreMetricsProvider(db *gorm.DB) *GormStoreMetricsProvider {
	return &GormStoreMetricsProvider{db: db}
}

// CountOutOfStockProducts returns the number of active products with no stock.
func (p *GormStoreMetricsProvider) CountOutOfStockProducts(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("products").
		Where("status = ? AND stock_quantity <= 0", "active").
		Count(&count).Error

	return count, err
}

// CountActiveCarts returns the number of carts still open.
func (p *GormStoreMetricsProvider) CountActiveCarts(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("carts").
		Where("status = ?", "active").
		Count(&count).Error

	return count, err
}

var _ StoreMetricsProvider = (*GormStoreMetricsProvider)(nil)
