package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/verdantia/storefront/internal/domain/promotion"
)

// RedisImpressionStore implements ImpressionStore using Redis
// Each client gets one hash keyed by token, with one field per promotion
// holding the last display time in unix milliseconds. This is suitable for
// distributed deployments where multiple instances share throttle state.
type RedisImpressionStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisImpressionStore creates a new Redis-based impression store
// The ttl bounds how long a client's impression history is retained after
// its last display.
func NewRedisImpressionStore(cfg RedisConfig, ttl time.Duration) (*RedisImpressionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisImpressionStore{
		client:    client,
		keyPrefix: "promo:impressions:",
		ttl:       ttl,
	}, nil
}

// NewRedisImpressionStoreWithClient creates a store with an existing Redis client
// This is useful for testing or when sharing a client across components
func NewRedisImpressionStoreWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisImpressionStore {
	if keyPrefix == "" {
		keyPrefix = "promo:impressions:"
	}
	return &RedisImpressionStore{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

// LastShown returns the last display time per promotion for a client
func (s *RedisImpressionStore) LastShown(ctx context.Context, clientToken string) (map[uuid.UUID]time.Time, error) {
	fields, err := s.client.HGetAll(ctx, s.key(clientToken)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read impression history: %w", err)
	}

	shown := make(map[uuid.UUID]time.Time, len(fields))
	for field, raw := range fields {
		id, err := uuid.Parse(field)
		if err != nil {
			continue // skip fields written by an older key layout
		}
		millis, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		shown[id] = time.UnixMilli(millis)
	}

	return shown, nil
}

// Record stores a display of a promotion to a client at the given time
// The whole hash's TTL is refreshed so history lives for the retention
// window past the most recent display.
func (s *RedisImpressionStore) Record(ctx context.Context, clientToken string, promotionID uuid.UUID, shownAt time.Time) error {
	key := s.key(clientToken)

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, promotionID.String(), shownAt.UnixMilli())
	pipe.Expire(ctx, key, s.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record impression: %w", err)
	}
	return nil
}

// Clear drops all impression history for a client
func (s *RedisImpressionStore) Clear(ctx context.Context, clientToken string) error {
	if err := s.client.Del(ctx, s.key(clientToken)).Err(); err != nil {
		return fmt.Errorf("failed to clear impression history: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client
func (s *RedisImpressionStore) Close() error {
	return s.client.Close()
}

func (s *RedisImpressionStore) key(clientToken string) string {
	return s.keyPrefix + clientToken
}

// Ensure RedisImpressionStore implements ImpressionStore
var _ promotion.ImpressionStore = (*RedisImpressionStore)(nil)
