package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key is not present. A miss is an
// expected outcome, not a failure; callers should branch on it with errors.Is.
var ErrCacheMiss = errors.New("cache miss")

// Cache is the caching port. The parcel service uses it to avoid hammering
// carrier APIs with repeat lookups; any backend (Redis, in-memory) can sit
// behind it.
type Cache interface {
	// Get retrieves a value by key. Returns ErrCacheMiss when absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL. A TTL of 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// Ping checks whether the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases the backend connection.
	Close() error
}
