package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/motormarket/backend/internal/domain/cart"
	"github.com/motormarket/backend/internal/infrastructure/config"
	"github.com/motormarket/backend/internal/infrastructure/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cartKeyPrefix = "cart:snapshot:"

// RedisCartStore persists cart snapshots in Redis, one key per user.
// Suitable for distributed deployments where multiple instances share
// cart state.
type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCartStore creates a Redis-backed cart store and verifies the
// connection
func NewRedisCartStore(cfg config.RedisConfig, ttl time.Duration) (*RedisCartStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCartStore{client: client, ttl: ttl}, nil
}

// NewRedisCartStoreWithClient creates a store with an existing Redis client
func NewRedisCartStoreWithClient(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{client: client, ttl: ttl}
}

func cartKey(userID uuid.UUID) string {
	return cartKeyPrefix + userID.String()
}

// Load reads the user's cart snapshot. A missing key returns (nil, nil);
// a corrupt or version-mismatched snapshot is discarded with a warning
// and also returns (nil, nil) so the caller starts from an empty cart.
func (s *RedisCartStore) Load(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	data, err := s.client.Get(ctx, cartKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart snapshot: %w", err)
	}

	c, err := cart.UnmarshalSnapshot(data)
	if err != nil {
		logger.FromContext(ctx).Warn("Discarding unreadable cart snapshot",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		_ = s.client.Del(ctx, cartKey(userID)).Err()
		return nil, nil
	}
	return c, nil
}

// Save writes the cart snapshot under the user's key
func (s *RedisCartStore) Save(ctx context.Context, c *cart.Cart) error {
	data, err := cart.MarshalSnapshot(c)
	if err != nil {
		return fmt.Errorf("failed to serialize cart snapshot: %w", err)
	}
	if err := s.client.Set(ctx, cartKey(c.UserID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart snapshot: %w", err)
	}
	return nil
}

// Delete removes the user's cart snapshot
func (s *RedisCartStore) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := s.client.Del(ctx, cartKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart snapshot: %w", err)
	}
	return nil
}

// Ping checks the Redis connection, for readiness probes
func (s *RedisCartStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis client
func (s *RedisCartStore) Close() error {
	return s.client.Close()
}

// Ensure RedisCartStore implements cart.Store
var _ cart.Store = (*RedisCartStore)(nil)
