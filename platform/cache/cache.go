// Package cache provides a small read-through byte cache for external API
// responses. It is Redis-backed when a Redis URL is configured and falls back
// to an in-process TTL map otherwise, so the engine works without any
// infrastructure running.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores opaque payloads under string keys with a TTL.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}

// New returns a Redis-backed cache when redisURL is set, otherwise an
// in-memory cache. An unreachable or malformed Redis URL degrades to the
// in-memory cache rather than failing startup.
func New(redisURL string, ttl time.Duration) Cache {
	if redisURL == "" {
		return NewMemory(ttl)
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return NewMemory(ttl)
	}
	return &redisCache{client: redis.NewClient(opt), ttl: ttl}
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *redisCache) Set(ctx context.Context, key string, value []byte) {
	// A failed write only costs a future cache miss.
	_ = c.client.Set(ctx, key, value, c.ttl).Err()
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is an in-process TTL cache safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

// NewMemory creates an in-memory cache with the given TTL.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.value, true
}

func (m *Memory) Set(_ context.Context, key string, value []byte) {
	m.mu.Lock()
	m.entries[key] = memoryEntry{value: value, expiresAt: time.Now().Add(m.ttl)}
	m.mu.Unlock()
}
