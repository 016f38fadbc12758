package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/verdantia/storefront/internal/domain/promotion"
)

// RedisSessionStore implements SessionStore using Redis
// Each session gets one set of promotion ids shown during the session, and
// the set's TTL is refreshed on every write so it expires with the session.
type RedisSessionStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisSessionStore creates a new Redis-based session store
func NewRedisSessionStore(cfg RedisConfig, ttl time.Duration) (*RedisSessionStore, error) {
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

	return &RedisSessionStore{
		client:    client,
		keyPrefix: "promo:session:",
		ttl:       ttl,
	}, nil
}

// NewRedisSessionStoreWithClient creates a store with an existing Redis client
// This is useful for testing or when sharing a client across components
func NewRedisSessionStoreWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisSessionStore {
	if keyPrefix == "" {
		keyPrefix = "promo:session:"
	}
	return &RedisSessionStore{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

// Shown returns the set of promotion ids displayed this session
func (s *RedisSessionStore) Shown(ctx context.Context, sessionID string) (map[uuid.UUID]struct{}, error) {
	members, err := s.client.SMembers(ctx, s.key(sessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read session history: %w", err)
	}

	shown := make(map[uuid.UUID]struct{}, len(members))
	for _, member := range members {
		id, err := uuid.Parse(member)
		if err != nil {
			continue
		}
		shown[id] = struct{}{}
	}

	return shown, nil
}

// MarkShown adds a promotion to the session's shown set
func (s *RedisSessionStore) MarkShown(ctx context.Context, sessionID string, promotionID uuid.UUID) error {
	key := s.key(sessionID)

	pipe := s.client.TxPipeline()
	pipe.SAdd(ctx, key, promotionID.String())
	pipe.Expire(ctx, key, s.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to mark promotion shown: %w", err)
	}
	return nil
}

// Reset drops the session's shown set
func (s *RedisSessionStore) Reset(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to reset session history: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client
func (s *RedisSessionStore) Close() error {
	return s.client.Close()
}

func (s *RedisSessionStore) key(sessionID string) string {
	return s.keyPrefix + sessionID
}

// Ensure RedisSessionStore implements SessionStore
var _ promotion.SessionStore = (*RedisSessionStore)(nil)
