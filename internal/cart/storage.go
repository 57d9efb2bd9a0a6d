package cart

import (
	"context"
	"sync"
	"time"

	"github.com/foodhubhq/storefront-gateway/pkg/redis"
)

// Storage is the persisted key-value primitive the store saves carts into.
// GetItem returns (nil, nil) for an absent key.
type Storage interface {
	GetItem(ctx context.Context, key string) ([]byte, error)
	SetItem(ctx context.Context, key string, value []byte) error
	RemoveItem(ctx context.Context, key string) error
}

// deriveKey scopes the storage key per owner: the bare base key for the
// anonymous scope, base + "_" + owner otherwise. Every read and write of
// owner-scoped data goes through this one function.
func deriveKey(base, owner string) string {
	if owner == "" {
		return base
	}
	return base + "_" + owner
}

// RedisStorage persists cart entries in redis with a sliding TTL.
type RedisStorage struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStorage wraps the shared redis client as cart storage.
func NewRedisStorage(client *redis.Client, ttl time.Duration) *RedisStorage {
	return &RedisStorage{client: client, ttl: ttl}
}

func (s *RedisStorage) GetItem(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, s.client.CartKey(key))
	if err != nil {
		if redis.IsNil(err) {
			return nil, nil
		}
		return nil, err
	}
	return []byte(value), nil
}

func (s *RedisStorage) SetItem(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, s.client.CartKey(key), string(value), s.ttl)
}

func (s *RedisStorage) RemoveItem(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.client.CartKey(key))
}

// MemoryStorage is the in-process fallback used in tests and when no redis
// endpoint is configured. Entries live only as long as the process.
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string][]byte)}
}

func (s *MemoryStorage) GetItem(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	copied := make([]byte, len(value))
	copy(copied, value)
	return copied, nil
}

func (s *MemoryStorage) SetItem(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([]byte, len(value))
	copy(copied, value)
	s.data[key] = copied
	return nil
}

func (s *MemoryStorage) RemoveItem(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
