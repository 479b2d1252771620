package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileCache stores entries as JSON envelopes on disk, one file per key.
// It is the default backend for CLI usage.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-based cache rooted at dir.
// The directory is created if it doesn't exist.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// envelope wraps a cached payload with its expiry.
type envelope struct {
	Payload   []byte    `json:"payload"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Get retrieves a value. Corrupt or expired entries are removed and
// reported as misses rather than errors.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if !env.ExpiresAt.IsZero() && time.Now().After(env.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return env.Payload, true, nil
}

// Set stores a value. A ttl of zero stores the entry without expiry.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	env := envelope{Payload: data}
	if ttl > 0 {
		env.ExpiresAt = time.Now().Add(ttl)
	}

	raw, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path(key), raw, 0644)
}

// Delete removes a value. Missing keys are not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for the file cache.
func (c *FileCache) Close() error { return nil }

// path maps a key to a file under the cache directory. Keys are hashed so
// arbitrary key content cannot escape the directory.
func (c *FileCache) path(key string) string {
	return filepath.Join(c.dir, Hash([]byte(key))+".json")
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
