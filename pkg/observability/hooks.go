// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about workspace scanning, graph
// construction, ordering, and cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach avoids import cycles (hooks are registered by main, not by
// libraries) and keeps the core library free of observability frameworks.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetBuildHooks(&myBuildHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Build Hooks
// =============================================================================

// BuildHooks receives events from workspace scanning and graph analysis.
type BuildHooks interface {
	// Scan events
	OnScanStart(ctx context.Context, root string)
	OnScanComplete(ctx context.Context, root string, manifestCount int, duration time.Duration, err error)

	// Graph construction events
	OnBuildStart(ctx context.Context, manifestCount int)
	OnBuildComplete(ctx context.Context, nodeCount, edgeCount int, duration time.Duration, err error)

	// Ordering events
	OnSortComplete(ctx context.Context, nodeCount int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopBuildHooks is a no-op implementation of BuildHooks.
type NoopBuildHooks struct{}

func (NoopBuildHooks) OnScanStart(context.Context, string)                               {}
func (NoopBuildHooks) OnScanComplete(context.Context, string, int, time.Duration, error) {}
func (NoopBuildHooks) OnBuildStart(context.Context, int)                                 {}
func (NoopBuildHooks) OnBuildComplete(context.Context, int, int, time.Duration, error)   {}
func (NoopBuildHooks) OnSortComplete(context.Context, int, time.Duration, error)         {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Registration
// =============================================================================

var (
	mu         sync.RWMutex
	buildHooks BuildHooks = NoopBuildHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
)

// SetBuildHooks registers the build hooks implementation.
// Pass nil to restore the no-op default.
func SetBuildHooks(h BuildHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		h = NoopBuildHooks{}
	}
	buildHooks = h
}

// Build returns the registered build hooks.
func Build() BuildHooks {
	mu.RLock()
	defer mu.RUnlock()
	return buildHooks
}

// SetCacheHooks registers the cache hooks implementation.
// Pass nil to restore the no-op default.
func SetCacheHooks(h CacheHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		h = NoopCacheHooks{}
	}
	cacheHooks = h
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	mu.RLock()
	defer mu.RUnlock()
	return cacheHooks
}

// Reset restores the no-op defaults. Intended for tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	buildHooks = NoopBuildHooks{}
	cacheHooks = NoopCacheHooks{}
}
