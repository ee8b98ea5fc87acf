// Package observability provides hooks for metrics, tracing, and logging.
//
// The story core reports what it does through small hook interfaces instead of
// depending on a logging or metrics backend. Hooks are no-ops until the
// application registers its own implementation at startup:
//
//	func main() {
//	    observability.SetStoryHooks(&logHooks{logger})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	id, err := saver.Save(ctx, ref, delta)
//	observability.Story().OnSave(ctx, ref.Label(), delta.Fields(), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Story Hooks
// =============================================================================

// StoryHooks receives events from passage mutations.
type StoryHooks interface {
	// OnSave records a call to the persistence hook with the attribute names
	// that were written.
	OnSave(ctx context.Context, passage string, fields []string, duration time.Duration, err error)

	// OnLinksRewritten records a rename that rewrote links inside passage.
	OnLinksRewritten(ctx context.Context, passage, oldTarget, newTarget string)

	// OnStartPassageMoved records a start-passage pointer rewritten from a
	// local id to a persisted id.
	OnStartPassageMoved(ctx context.Context, story, from, to string)
}

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from the layout resolver.
type LayoutHooks interface {
	// OnDisplace records a passage pushed away from anchor along axis.
	OnDisplace(ctx context.Context, anchor, passage, axis string, amount float64)
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

// NoopStoryHooks is a no-op implementation of StoryHooks.
type NoopStoryHooks struct{}

func (NoopStoryHooks) OnSave(context.Context, string, []string, time.Duration, error) {}
func (NoopStoryHooks) OnLinksRewritten(context.Context, string, string, string)       {}
func (NoopStoryHooks) OnStartPassageMoved(context.Context, string, string, string)    {}

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnDisplace(context.Context, string, string, string, float64) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	storyHooks  StoryHooks  = NoopStoryHooks{}
	layoutHooks LayoutHooks = NoopLayoutHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetStoryHooks registers custom story hooks.
// This should be called once at application startup.
func SetStoryHooks(h StoryHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storyHooks = h
	}
}

// SetLayoutHooks registers custom layout hooks.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Story returns the registered story hooks.
func Story() StoryHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storyHooks
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
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
	storyHooks = NoopStoryHooks{}
	layoutHooks = NoopLayoutHooks{}
	cacheHooks = NoopCacheHooks{}
}
