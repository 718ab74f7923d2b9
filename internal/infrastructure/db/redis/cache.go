package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/yamacbayin/blog-admin-panel/internal/api/metrics"
)

const cacheTTL = time.Minute

// ListCache holds the JSON-encoded Dto list for each collection.
// Key format: dtos:<collection>
//
// The cache is best-effort: a nil client or a Redis error degrades to a miss
// and the read falls through to the database.
type ListCache struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewListCache creates a ListCache wrapping the given Redis client. A nil
// client yields a cache that always misses, so the server can run without
// Redis.
func NewListCache(client *redis.Client, log zerolog.Logger) *ListCache {
	return &ListCache{client: client, log: log}
}

// Get returns the cached list payload for a collection, if present.
func (c *ListCache) Get(ctx context.Context, collection string) ([]byte, bool) {
	if c.client == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, c.key(collection)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("collection", collection).Msg("list cache read failed")
		}
		metrics.ListCacheTotal.WithLabelValues(collection, "miss").Inc()
		return nil, false
	}
	metrics.ListCacheTotal.WithLabelValues(collection, "hit").Inc()
	return payload, true
}

// Set stores a collection's list payload (expires after cacheTTL).
func (c *ListCache) Set(ctx context.Context, collection string, payload []byte) {
	if c.client == nil {
		return
	}
	if err := c.client.Set(ctx, c.key(collection), payload, cacheTTL).Err(); err != nil {
		c.log.Warn().Err(err).Str("collection", collection).Msg("list cache write failed")
	}
}

// Invalidate drops the cached lists for the given collections. Callers pass
// the same dependency sets the panel's mediator refetches: a post write
// invalidates users, categories, posts, and comments at once.
func (c *ListCache) Invalidate(ctx context.Context, collections ...string) {
	if c.client == nil || len(collections) == 0 {
		return
	}
	keys := make([]string, len(collections))
	for i, collection := range collections {
		keys[i] = c.key(collection)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn().Err(err).Strs("collections", collections).Msg("list cache invalidation failed")
	}
}

func (c *ListCache) key(collection string) string {
	return "dtos:" + collection
}
