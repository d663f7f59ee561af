// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about board updates, schedule computation, and cache
// operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetUpdateHooks(&myUpdateHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Update().OnUpdateStart(ctx, componentCount)
//	// ... run the update cycle ...
//	observability.Update().OnUpdateComplete(ctx, partCount, dataCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Update Hooks
// =============================================================================

// UpdateHooks receives events from board update cycles.
type UpdateHooks interface {
	// OnUpdateStart records the start of an update cycle.
	OnUpdateStart(ctx context.Context, componentCount int)

	// OnUpdateComplete records the end of an update cycle: how many parts
	// were numbered, how many data providers were transmitted, and the
	// outcome.
	OnUpdateComplete(ctx context.Context, partCount, dataCount int, duration time.Duration, err error)

	// OnMessage records one message handed to the transport.
	OnMessage(ctx context.Context, command string, size int)
}

// =============================================================================
// Schedule Hooks
// =============================================================================

// ScheduleHooks receives events from project constraint scheduling. The
// scheduler is pure computation, so these hooks carry no context.
type ScheduleHooks interface {
	// OnStart records the start of a scheduling run.
	OnStart(activityCount int)

	// OnDone records the end of a scheduling run: how many propagation
	// passes the fixed point took, and the outcome.
	OnDone(passes int, err error)
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

// NoopUpdateHooks is a no-op implementation of UpdateHooks.
type NoopUpdateHooks struct{}

func (NoopUpdateHooks) OnUpdateStart(context.Context, int)                               {}
func (NoopUpdateHooks) OnUpdateComplete(context.Context, int, int, time.Duration, error) {}
func (NoopUpdateHooks) OnMessage(context.Context, string, int)                           {}

// NoopScheduleHooks is a no-op implementation of ScheduleHooks.
type NoopScheduleHooks struct{}

func (NoopScheduleHooks) OnStart(int)       {}
func (NoopScheduleHooks) OnDone(int, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	updateHooks   UpdateHooks   = NoopUpdateHooks{}
	scheduleHooks ScheduleHooks = NoopScheduleHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetUpdateHooks registers custom update hooks.
// This should be called once at application startup before any board updates.
func SetUpdateHooks(h UpdateHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		updateHooks = h
	}
}

// SetScheduleHooks registers custom schedule hooks.
// This should be called once at application startup before any scheduling.
func SetScheduleHooks(h ScheduleHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		scheduleHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Update returns the registered update hooks.
func Update() UpdateHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return updateHooks
}

// Schedule returns the registered schedule hooks.
func Schedule() ScheduleHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return scheduleHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	updateHooks = NoopUpdateHooks{}
	scheduleHooks = NoopScheduleHooks{}
	cacheHooks = NoopCacheHooks{}
}
