package referentie

import (
	"context"
	"sync"
)

type requestCacheKey struct{}

type requestCache struct {
	mu      sync.Mutex
	entries map[string]map[string]any
}

// WithRequestCache attaches a per-request memo for resolved remote bodies.
// The cache never outlives one request, so authorisation decisions cannot go
// stale.
func WithRequestCache(ctx context.Context) context.Context {
	return context.WithValue(ctx, requestCacheKey{}, &requestCache{
		entries: make(map[string]map[string]any),
	})
}

func cacheFrom(ctx context.Context) *requestCache {
	cache, _ := ctx.Value(requestCacheKey{}).(*requestCache)
	return cache
}

func (c *requestCache) get(url string) (map[string]any, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	body, ok := c.entries[url]
	return body, ok
}

func (c *requestCache) put(url string, body map[string]any) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[url] = body
}
