// Package cache stores rendered conversion results.
//
// Conversions are deterministic, so a result can be keyed by a hash of the
// normalized input and the render options and reused until its TTL expires.
// Three backends are provided:
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared redis instance (server deployments)
//   - [NullCache]: caching disabled
//
// Keys are built by a [Keyer]; [ScopedKeyer] adds a namespace prefix.
package cache

import (
	"context"
	"time"
)

// Default TTLs for cached entries.
const (
	// TTLConversion is how long a rendered conversion stays cached.
	TTLConversion = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiration.
type Cache interface {
	// Get returns the value for key. The bool is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ConversionKeyOpts are the render options that change a conversion's output.
type ConversionKeyOpts struct {
	Format string `json:"format"`
	Raised string `json:"raised"`
	Flat   string `json:"flat"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ConversionKey returns the key for a rendered conversion of input.
	ConversionKey(input string, opts ConversionKeyOpts) string
}

// DefaultKeyer builds unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ConversionKey returns "convert:<sha256>" over the input and options.
func (DefaultKeyer) ConversionKey(input string, opts ConversionKeyOpts) string {
	return hashKey("convert", input, opts)
}

// NullCache never stores anything. It backs --no-cache and is the fallback
// when no cache directory is available.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache {
	return NullCache{}
}

// Get always misses.
func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set discards data.
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete does nothing.
func (NullCache) Delete(context.Context, string) error { return nil }

// Close does nothing.
func (NullCache) Close() error { return nil }
