// Package cache stores generated blueprint strings so repeated generator
// runs with the same parameters and input are served without recomputing.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a cache directory (CLI)
//   - [RedisCache]: entries in Redis with native expiry (server)
//   - [NullCache]: stores nothing (caching disabled)
//
// # Keys
//
// Keys are built by a [Keyer] from the generator name, its parameters and a
// digest of its input. [DefaultKeyer] hashes all three with SHA-256, so any
// change to a parameter produces a different key.
package cache

import (
	"context"
	"time"
)

// TTLGenerated is how long generated blueprints stay cached.
const TTLGenerated = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. The bool reports a hit; a miss is not
	// an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they hold.
type Clearer interface {
	// Clear removes all entries and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}

var (
	_ Clearer = NullCache{}
	_ Clearer = (*FileCache)(nil)
	_ Clearer = (*RedisCache)(nil)
)

// Keyer builds cache keys.
type Keyer interface {
	// GeneratorKey returns the key for the output of generator run with
	// params on input. params must be JSON-serializable.
	GeneratorKey(generator string, params any, input []byte) string
}

// DefaultKeyer builds keys of the form "gen:<generator>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// GeneratorKey implements [Keyer].
func (DefaultKeyer) GeneratorKey(generator string, params any, input []byte) string {
	return generatorKey(generator, params, input)
}
