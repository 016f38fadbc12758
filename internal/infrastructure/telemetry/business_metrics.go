// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go.opentelemetry.io/otel/metric"
)

// BusinessMetrics provides business metrics for the storefront.
// It tracks checkout activity, cart lifecycle, coupon usage, and
// promotional display volume.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	orderPlacedTotal         *Counter
	orderRevenueTotal        *Counter
	cartCreatedTotal         *Counter
	cartAbandonedTotal       *Counter
	couponRedeemedTotal      *Counter
	promotionImpressionTotal *Counter

	// Gauge metrics (point-in-time values)
	outOfStockCount *Gauge
	activeCartCount *Gauge

	// Periodic collector
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	// Data provider for periodic collection
	storeProvider StoreMetricsProvider
}

// StoreMetricsProvider provides storefront data for periodic metrics collection.
// This interface lets the telemetry layer query catalog and cart state without
// depending on the domain packages directly.
type StoreMetricsProvider interface {
	// CountOutOfStockProducts returns the number of active products with no stock
	CountOutOfStockProducts(ctx context.Context) (int64, error)

	// CountActiveCarts returns the number of carts still open
	CountActiveCarts(ctx context.Context) (int64, error)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter           metric.Meter
	Logger          *zap.Logger
	CollectInterval time.Duration // Default: 5 minutes
	StoreProvider   StoreMetricsProvider
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:         cfg.Meter,
		logger:        logger,
		stopChan:      make(chan struct{}),
		storeProvider: cfg.StoreProvider,
	}

	var err error

	// Order metrics
	bm.orderPlacedTotal, err = NewCounter(
		cfg.Meter,
		"storefront_order_placed_total",
		"Total number of orders placed at checkout",
		"{orders}",
	)
	if err != nil {
		return nil, err
	}

	bm.orderRevenueTotal, err = NewCounter(
		cfg.Meter,
		"storefront_order_revenue_total",
		"Total order revenue in cents",
		"{cents}",
	)
	if err != nil {
		return nil, err
	}

	// Cart metrics
	bm.cartCreatedTotal, err = NewCounter(
		cfg.Meter,
		"storefront_cart_created_total",
		"Total number of carts created",
		"{carts}",
	)
	if err != nil {
		return nil, err
	}

	bm.cartAbandonedTotal, err = NewCounter(
		cfg.Meter,
		"storefront_cart_abandoned_total",
		"Total number of carts marked abandoned by the sweeper",
		"{carts}",
	)
	if err != nil {
		return nil, err
	}

	// Coupon metrics
	bm.couponRedeemedTotal, err = NewCounter(
		cfg.Meter,
		"storefront_coupon_redeemed_total",
		"Total number of coupon redemptions at checkout",
		"{redemptions}",
	)
	if err != nil {
		return nil, err
	}

	// Promotion metrics
	bm.promotionImpressionTotal, err = NewCounter(
		cfg.Meter,
		"storefront_promotion_impression_total",
		"Total number of recorded promotion displays",
		"{impressions}",
	)
	if err != nil {
		return nil, err
	}

	// Gauge metrics
	bm.outOfStockCount, err = NewGauge(
		cfg.Meter,
		"storefront_product_out_of_stock_count",
		"Number of active products with zero stock",
		"{products}",
	)
	if err != nil {
		return nil, err
	}

	bm.activeCartCount, err = NewGauge(
		cfg.Meter,
		"storefront_active_cart_count",
		"Number of carts currently open",
		"{carts}",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// =============================================================================
// Order Metrics
// =============================================================================

// RecordOrderPlaced records a successful checkout.
// Total is the order grand total; it is converted to cents for the
// revenue counter.
func (bm *BusinessMetrics) RecordOrderPlaced(ctx context.Context, total decimal.Decimal, couponUsed bool) {
	bm.orderPlacedTotal.Inc(ctx)

	cents := total.Mul(decimal.NewFromInt(100)).IntPart()
	if cents > 0 {
		bm.orderRevenueTotal.Add(ctx, cents)
	}

	if couponUsed {
		bm.couponRedeemedTotal.Inc(ctx)
	}
}

// RecordCouponRedeemed records a coupon redemption with its discount type label.
func (bm *BusinessMetrics) RecordCouponRedeemed(ctx context.Context, discountType string) {
	bm.couponRedeemedTotal.Inc(ctx,
		AttrDiscountType.String(discountType),
	)
}

// =============================================================================
// Cart Metrics
// =============================================================================

// RecordCartCreated records the creation of a new cart.
func (bm *BusinessMetrics) RecordCartCreated(ctx context.Context) {
	bm.cartCreatedTotal.Inc(ctx)
}

// RecordCartsAbandoned records a batch of carts marked abandoned by the sweeper.
func (bm *BusinessMetrics) RecordCartsAbandoned(ctx context.Context, count int64) {
	if count <= 0 {
		return
	}
	bm.cartAbandonedTotal.Add(ctx, count)
}

// =============================================================================
// Promotion Metrics
// =============================================================================

// RecordPromotionImpression records a promotion display, labelled by kind
// and trigger so popup and banner volume can be tracked separately.
func (bm *BusinessMetrics) RecordPromotionImpression(ctx context.Context, kind, trigger string) {
	bm.promotionImpressionTotal.Inc(ctx,
		AttrPromotionKind.String(kind),
		AttrPromotionTrigger.String(trigger),
	)
}

// =============================================================================
// Periodic Collection
// =============================================================================

// StartPeriodicCollection starts periodic collection of gauge metrics.
// It refreshes stock and cart gauges every interval (default: 5 minutes).
// This is non-blocking - use Stop() to stop collection.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}

		go bm.runPeriodicCollection(ctx, interval)
	})
}

// runPeriodicCollection runs the periodic collection loop.
func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect immediately on start
	bm.collectStoreMetrics(ctx)

	for {
		select {
		case <-bm.stopChan:
			bm.logger.Info("Stopping periodic business metrics collection")
			return
		case <-ctx.Done():
			bm.logger.Info("Context cancelled, stopping periodic business metrics collection")
			return
		case <-ticker.C:
			bm.collectStoreMetrics(ctx)
		}
	}
}

// collectStoreMetrics refreshes the stock and cart gauges.
func (bm *BusinessMetrics) collectStoreMetrics(ctx context.Context) {
	if bm.storeProvider == nil {
		bm.logger.Debug("No store provider configured, skipping gauge collection")
		return
	}

	outOfStock, err := bm.storeProvider.CountOutOfStockProducts(ctx)
	if err != nil {
		bm.logger.Warn("Failed to count out-of-stock products", zap.Error(err))
	} else {
		bm.outOfStockCount.Record(ctx, outOfStock)
	}

	activeCarts, err := bm.storeProvider.CountActiveCarts(ctx)
	if err != nil {
		bm.logger.Warn("Failed to count active carts", zap.Error(err))
	} else {
		bm.activeCartCount.Record(ctx, activeCarts)
	}
}

// Stop stops the periodic collection.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}

// =============================================================================
// Error Types
// =============================================================================

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
