package embed

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dbisina/verdescore/internal/cache"
)

// CachingProvider wraps any Provider with an explicit vector cache.
// Entries are keyed by a hash of the full text plus the provider name,
// so swapping providers never serves a stale vector from the other
// source.
type CachingProvider struct {
	inner Provider
	store cache.Cache
	ttl   time.Duration
}

// NewCachingProvider wraps inner with store
func NewCachingProvider(inner Provider, store cache.Cache, ttl time.Duration) *CachingProvider {
	return &CachingProvider{inner: inner, store: store, ttl: ttl}
}

// Name returns the wrapped provider's name
func (c *CachingProvider) Name() string {
	return c.inner.Name()
}

// Vectorize serves from cache when possible. Cache failures are
// ignored; the provider result is always authoritative.
func (c *CachingProvider) Vectorize(ctx context.Context, text string) ([]float64, error) {
	key := cache.Key(c.inner.Name() + ":" + text)

	if data, found := c.store.Get(key); found {
		var vec []float64
		if err := json.Unmarshal(data, &vec); err == nil {
			return vec, nil
		}
		_ = c.store.Delete(key)
	}

	vec, err := c.inner.Vectorize(ctx, text)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(vec); err == nil {
		_ = c.store.Set(key, data, c.ttl)
	}
	return vec, nil
}
