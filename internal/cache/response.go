// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// response.go caches encoded public API responses in Valkey so repeated
// reads of an article or restaurant skip the database. Admin writes drop
// the affected keys.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "api:"

	// DefaultTTL is how long a response stays cached.
	DefaultTTL = 5 * time.Minute
)

// ResponseCache stores encoded JSON responses in Valkey. A nil
// *ResponseCache is valid and caches nothing.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResponseCache creates a response cache backed by the given Valkey client.
func NewResponseCache(client *redis.Client, ttl time.Duration) *ResponseCache {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &ResponseCache{client: client, ttl: ttl}
}

// Get returns the cached body for key. Errors count as misses.
func (rc *ResponseCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if rc == nil {
		return nil, false
	}
	val, err := rc.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("response cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("response cache hit", "key", key)
	return val, true
}

// Set stores body under key with the configured TTL.
func (rc *ResponseCache) Set(ctx context.Context, key string, body []byte) {
	if rc == nil {
		return
	}
	if err := rc.client.Set(ctx, keyPrefix+key, body, rc.ttl).Err(); err != nil {
		slog.Warn("response cache set error", "key", key, "error", err)
	}
}

// Invalidate removes the given keys.
func (rc *ResponseCache) Invalidate(ctx context.Context, keys ...string) {
	if rc == nil || len(keys) == 0 {
		return
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = keyPrefix + k
	}
	if err := rc.client.Del(ctx, full...).Err(); err != nil {
		slog.Warn("response cache invalidate error", "keys", keys, "error", err)
		return
	}
	slog.Debug("response cache invalidated", "keys", keys)
}

// InvalidatePrefix removes every key starting with prefix by scanning.
// Used when a change can touch an unknown set of cached responses, such
// as a tag rename showing up on many restaurants.
func (rc *ResponseCache) InvalidatePrefix(ctx context.Context, prefix string) {
	if rc == nil {
		return
	}
	var cursor uint64
	var deleted int
	for {
		keys, next, err := rc.client.Scan(ctx, cursor, keyPrefix+prefix+"*", 100).Result()
		if err != nil {
			slog.Warn("response cache scan error", "prefix", prefix, "error", err)
			return
		}
		if len(keys) > 0 {
			if err := rc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("response cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("response cache cleared", "prefix", prefix, "deleted", deleted)
	}
}

// Key prefixes for the cached public resources.
const (
	ArticlesPrefix    = "articles"
	RestaurantsPrefix = "restaurants:"
)

// ArticleListKey returns the key of the published article list.
func ArticleListKey(indexOnly bool) string {
	if indexOnly {
		return ArticlesPrefix + ":index"
	}
	return ArticlesPrefix + ":all"
}

// ArticleKey returns the key of one published article.
func ArticleKey(slug string) string {
	return ArticlesPrefix + ":slug:" + slug
}

// RestaurantKey returns the key of a restaurant detail response.
func RestaurantKey(id uuid.UUID) string {
	return RestaurantsPrefix + id.String()
}

// RestaurantReviewsKey returns the key of a restaurant's review list.
func RestaurantReviewsKey(id uuid.UUID) string {
	return RestaurantsPrefix + id.String() + ":reviews"
}
