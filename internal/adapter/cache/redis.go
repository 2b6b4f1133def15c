// Package cache provides a Redis-backed cache for video-search results.
// The YouTube search quota is the scarcest upstream resource, so repeated
// queries are served from cache for a short TTL. Caching is best-effort:
// any Redis failure falls through to the upstream.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/studyhub-ai/studyhub-backend/internal/domain"
)

const videoTTL = 15 * time.Minute

// VideoCache caches normalized video-search results keyed by
// (query, maxResults).
type VideoCache struct {
	rdb *redis.Client
}

// NewVideoCache connects to Redis and returns a cache. The connection is
// verified with a ping so a misconfigured address fails at startup.
func NewVideoCache(addr, password string) (*VideoCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &VideoCache{rdb: rdb}, nil
}

// Close releases the Redis connection.
func (c *VideoCache) Close() error {
	return c.rdb.Close()
}

// Get returns the cached result for a query, or (nil, nil) on a miss.
func (c *VideoCache) Get(ctx context.Context, query string, maxResults int) (*domain.VideoSearchResult, error) {
	raw, err := c.rdb.Get(ctx, videoKey(query, maxResults)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var result domain.VideoSearchResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode cached result: %w", err)
	}
	return &result, nil
}

// Set stores a result with the video TTL.
func (c *VideoCache) Set(ctx context.Context, query string, maxResults int, result *domain.VideoSearchResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if err := c.rdb.Set(ctx, videoKey(query, maxResults), raw, videoTTL).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func videoKey(query string, maxResults int) string {
	sum := sha256.Sum256([]byte(query))
	return fmt.Sprintf("videos:%s:%d", hex.EncodeToString(sum[:8]), maxResults)
}
