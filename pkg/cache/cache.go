// Package cache stores computed layouts and rendered artifacts.
//
// A [Cache] is a byte-oriented key/value store with per-entry TTLs. Backends:
//
//   - [NullCache]: stores nothing (caching disabled)
//   - [FileCache]: one file per entry under a directory, for the CLI
//   - [RedisCache]: shared cache for multi-instance servers
//   - [MongoCache]: shared cache backed by a MongoDB collection
//
// Keys are produced by a [Keyer] from content hashes, so identical datasets
// rendered with identical options share entries regardless of where they
// came from.
package cache

import (
	"context"
	"time"
)

// Default time-to-live per entry kind. Layouts and artifacts are pure
// functions of their inputs, so they only expire to bound storage.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a key/value store for serialized pipeline results.
//
// Get reports a miss with (nil, false, nil); errors are reserved for backend
// failures. A ttl of zero means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by backends that can drop all of their entries.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}
