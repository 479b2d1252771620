package cache

import (
	"context"
	"time"
)

// NullCache satisfies [Cache] without retaining anything: every Get is a
// miss and every Set is discarded. It backs the --no-cache path and keeps
// callers free of nil checks when caching is disabled by configuration.
type NullCache struct{}

// NewNullCache returns a cache that never stores entries.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) { return nil, false, nil }

func (NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

func (NullCache) Delete(ctx context.Context, key string) error { return nil }
func (NullCache) Close() error                                 { return nil }
