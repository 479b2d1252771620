// Package cache provides byte-level caching for graph snapshots.
//
// Repeated scans of an unchanged workspace are cheap, but callers embedding
// buildplan in CI can avoid them entirely by caching serialized graphs keyed
// by the workspace manifest set. Three backends are provided: a file cache
// for CLI usage, a Redis cache for shared environments, and a null cache
// that disables caching.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with optional expiry.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
