// Package cache stores rendered artifacts keyed by a hash of their input.
//
// The CLI caches story map SVGs: the key is derived from the DOT source, so
// any change to passage names, links or layout yields a new key and stale
// entries are simply never read again.
//
//	c, _ := cache.NewFileCache(dir)
//	svg, err := cache.Fetch(ctx, c, cache.MapKey(dot), 0, func() ([]byte, error) {
//	    return nodelink.RenderSVG(ctx, dot)
//	})
package cache

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/passages/pkg/observability"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the data under key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Fetch returns the cached value under key, or calls build and caches its
// result. A failing cache read counts as a miss; a failing write is returned
// together with the built data.
func Fetch(ctx context.Context, c Cache, key string, ttl time.Duration, build func() ([]byte, error)) ([]byte, error) {
	kind := keyType(key)
	if data, ok, err := c.Get(ctx, key); err == nil && ok {
		observability.Cache().OnCacheHit(ctx, kind)
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, kind)

	data, err := build()
	if err != nil {
		return nil, err
	}
	if err := c.Set(ctx, key, data, ttl); err != nil {
		return data, err
	}
	observability.Cache().OnCacheSet(ctx, kind, len(data))
	return data, nil
}

func keyType(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return "unknown"
}
