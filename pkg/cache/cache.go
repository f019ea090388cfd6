// Package cache provides byte-oriented caching backends for flowcanvas.
//
// The serve command uses a cache in front of slow upstream calls (model
// listings in particular). Three backends are available:
//   - [FileCache]: directory-backed, for single-host development
//   - [RedisCache]: Redis-backed, for deployments
//   - [NullCache]: no-op, for tests and --no-cache
//
// All backends share the [Cache] interface and store opaque byte values
// with a per-entry TTL.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the interface all caching backends implement.
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. A TTL of 0 on Set means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string. Used to derive filesystem-safe
// cache paths from arbitrary keys.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// NullCache is a no-op cache that never stores anything.
// Useful for testing or when caching should be disabled.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get always returns a cache miss.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set does nothing.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete does nothing.
func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close does nothing.
func (c *NullCache) Close() error {
	return nil
}

var _ Cache = (*NullCache)(nil)
