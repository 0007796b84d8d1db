// Package cache stores computed layouts and rendered artifacts.
//
// Three backends implement [Cache]:
//   - [NullCache] never stores anything (caching disabled, tests)
//   - [FileCache] keeps entries as JSON files, used by the CLI
//   - [RedisCache] shares entries between server instances
//
// Keys are derived by a [Keyer] from a board hash and the options that
// influence the result, so a cached layout is only reused when re-running the
// engine would produce the same output. [ScopedKeyer] adds a namespace prefix.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and true, or false on a miss.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default TTLs.
const (
	// LayoutTTL is how long a computed layout is kept.
	LayoutTTL = 7 * 24 * time.Hour

	// RenderTTL is how long a rendered artifact is kept.
	RenderTTL = 7 * 24 * time.Hour
)
