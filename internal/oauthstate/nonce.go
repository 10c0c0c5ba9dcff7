package oauthstate

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
)

// NonceStore remembers consumed state nonces until they would have expired anyway.
type NonceStore interface {
	// Consume records nonce and reports whether this was its first use.
	Consume(ctx context.Context, nonce string, ttl time.Duration) (bool, error)
}

const nonceKeyPrefix = "portal:oauth:state:"

// RedisNonceStore shares consumed nonces across instances.
type RedisNonceStore struct {
	client *redis.Client
}

func NewRedisNonceStore(client *redis.Client) *RedisNonceStore {
	return &RedisNonceStore{client: client}
}

func (s *RedisNonceStore) Consume(ctx context.Context, nonce string, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, nonceKeyPrefix+nonce, 1, ttl).Result()
}

// MemoryNonceStore is the single-instance fallback used when Redis is not configured.
// Entries are dropped after ttl or when size is exceeded, oldest first.
type MemoryNonceStore struct {
	mu    sync.Mutex
	cache *expirable.LRU[string, struct{}]
}

func NewMemoryNonceStore(size int, ttl time.Duration) *MemoryNonceStore {
	if size <= 0 {
		size = 10_000
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryNonceStore{cache: expirable.NewLRU[string, struct{}](size, nil, ttl)}
}

// Consume ignores ttl; entries live for the store-wide TTL.
func (s *MemoryNonceStore) Consume(_ context.Context, nonce string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cache.Contains(nonce) {
		return false, nil
	}
	s.cache.Add(nonce, struct{}{})
	return true, nil
}
