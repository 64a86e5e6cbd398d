// Package cache holds Redis-backed shared state: the fixed-window request
// counters behind the throttle gate.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/procurehub/backend/internal/infrastructure/config"
)

// CounterStore counts requests per key within a fixed window. Increment
// returns the count including the current request, so a caller compares it
// against the scope's quota.
type CounterStore interface {
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}

// NewRedisClient creates a Redis client from configuration and verifies the
// connection.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// RedisCounterStore implements CounterStore on Redis. Counters are shared
// across instances, so quotas hold for the whole deployment.
type RedisCounterStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisCounterStore creates a counter store with an existing Redis client
func NewRedisCounterStore(client *redis.Client, keyPrefix string) *RedisCounterStore {
	if keyPrefix == "" {
		keyPrefix = "throttle:"
	}
	return &RedisCounterStore{client: client, keyPrefix: keyPrefix}
}

// Increment bumps the key's counter, setting the window TTL when the key is
// created. INCR and EXPIRE NX run in one pipeline so the window cannot leak.
func (s *RedisCounterStore) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	fullKey := s.keyPrefix + key

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, fullKey)
	pipe.ExpireNX(ctx, fullKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to increment counter: %w", err)
	}
	return incr.Val(), nil
}

// InMemoryCounterStore implements CounterStore with process-local state.
// Suitable for tests and single-instance development setups.
type InMemoryCounterStore struct {
	mu       sync.Mutex
	counters map[string]*windowCounter
}

type windowCounter struct {
	count   int64
	resetAt time.Time
}

// NewInMemoryCounterStore creates an in-memory counter store
func NewInMemoryCounterStore() *InMemoryCounterStore {
	return &InMemoryCounterStore{counters: make(map[string]*windowCounter)}
}

// Increment bumps the key's counter, resetting it when its window elapsed
func (s *InMemoryCounterStore) Increment(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	c, ok := s.counters[key]
	if !ok || now.After(c.resetAt) {
		c = &windowCounter{resetAt: now.Add(window)}
		s.counters[key] = c
	}
	c.count++
	return c.count, nil
}

// Ensure implementations satisfy CounterStore
var _ CounterStore = (*RedisCounterStore)(nil)
var _ CounterStore = (*InMemoryCounterStore)(nil)
