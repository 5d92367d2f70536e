package api

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "listing:merged:"

// ListingCache is a small read-through cache for merged listing views backed
// by Redis. A nil client disables it; every method then degrades to a no-op,
// so callers never have to branch on whether caching is configured.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListingCache wraps a Redis client. client may be nil.
func NewListingCache(client *redis.Client, ttl time.Duration) *ListingCache {
	return &ListingCache{client: client, ttl: ttl}
}

// Get returns the cached merged view for a listing key, if present.
func (lc *ListingCache) Get(ctx context.Context, timestamp string) (map[string]any, bool) {
	if lc == nil || lc.client == nil {
		return nil, false
	}

	raw, err := lc.client.Get(ctx, cacheKeyPrefix+timestamp).Bytes()
	if err != nil {
		return nil, false
	}

	var merged map[string]any
	if err := json.Unmarshal(raw, &merged); err != nil {
		return nil, false
	}
	return merged, true
}

// Set stores a merged view. Failures are ignored; the cache is best-effort.
func (lc *ListingCache) Set(ctx context.Context, timestamp string, merged map[string]any) {
	if lc == nil || lc.client == nil {
		return
	}

	raw, err := json.Marshal(merged)
	if err != nil {
		return
	}
	lc.client.Set(ctx, cacheKeyPrefix+timestamp, raw, lc.ttl)
}

// Invalidate drops the cached view after a mutating operation.
func (lc *ListingCache) Invalidate(ctx context.Context, timestamp string) {
	if lc == nil || lc.client == nil {
		return
	}
	lc.client.Del(ctx, cacheKeyPrefix+timestamp)
}
