package cache

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/verdantia/storefront/internal/domain/promotion"
)

// PromotionStoreFactory builds the impression and session stores that back
// promotion frequency capping and per-session deduplication.
// It prefers Redis so throttle state is shared across instances, and can
// fall back to in-memory stores when Redis is unavailable.
type PromotionStoreFactory struct {
	redisConfig           RedisConfig
	impressionTTL         time.Duration
	sessionTTL            time.Duration
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// FactoryOption configures the PromotionStoreFactory
type FactoryOption func(*PromotionStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *PromotionStoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to in-memory stores
// when Redis is unavailable
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *PromotionStoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewPromotionStoreFactory creates a factory for promotion display stores
func NewPromotionStoreFactory(redisConfig RedisConfig, impressionTTL, sessionTTL time.Duration, opts ...FactoryOption) *PromotionStoreFactory {
	f := &PromotionStoreFactory{
		redisConfig:           redisConfig,
		impressionTTL:         impressionTTL,
		sessionTTL:            sessionTTL,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true, // Default to allowing fallback
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisStores creates Redis-backed impression and session stores
// sharing a single Redis client
func (f *PromotionStoreFactory) CreateRedisStores() (promotion.ImpressionStore, promotion.SessionStore, error) {
	impressions, err := NewRedisImpressionStore(f.redisConfig, f.impressionTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Redis impression store: %w", err)
	}

	sessions := NewRedisSessionStoreWithClient(impressions.client, "", f.sessionTTL)
	return impressions, sessions, nil
}

// CreateInMemoryStores creates in-memory impression and session stores
// This is suitable for single-instance deployments and testing
// WARNING: In-memory stores do not share state across process instances,
// which lets clients exceed frequency caps in distributed deployments
func (f *PromotionStoreFactory) CreateInMemoryStores() (promotion.ImpressionStore, promotion.SessionStore) {
	return NewInMemoryImpressionStore(f.impressionTTL), NewInMemorySessionStore(f.sessionTTL)
}

// CreateStores creates the display stores based on whether Redis is available
// It tries Redis first, and falls back to in-memory stores if Redis is not
// available and AllowInMemoryFallback is true
func (f *PromotionStoreFactory) CreateStores() (promotion.ImpressionStore, promotion.SessionStore, error) {
	// Try Redis first
	impressions, sessions, err := f.CreateRedisStores()
	if err == nil {
		f.logger.Info("using Redis promotion display stores")
		return impressions, sessions, nil
	}

	// Check if fallback is allowed
	if !f.allowInMemoryFallback {
		return nil, nil, fmt.Errorf("Redis required for promotion display tracking but unavailable: %w", err)
	}

	// Fall back to in-memory with warning
	f.logger.Warn("Redis unavailable, falling back to in-memory promotion display stores. "+
		"Frequency caps will not hold across instances or restarts.",
		zap.Error(err),
	)
	impressions, sessions = f.CreateInMemoryStores()
	return impressions, sessions, nil
}
