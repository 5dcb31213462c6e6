package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CatalogCache holds serialized category/genre list responses.
// Ratings and titles are never cached: they must reflect the latest
// review state on every read.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to redis. A failed connection returns an error so the
// caller can decide to run without a cache (pass nil around).
func New(addr, password string, ttl time.Duration) (*CatalogCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &CatalogCache{client: rdb, ttl: ttl}, nil
}

func key(resource, search string) string {
	return fmt.Sprintf("catalog:%s:search:%s", resource, search)
}

// Get returns the cached payload for a list request, if any.
// Nil receiver and redis errors both read as a miss.
func (c *CatalogCache) Get(ctx context.Context, resource, search string) ([]byte, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, key(resource, search)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores a serialized list response (best-effort).
func (c *CatalogCache) Set(ctx context.Context, resource, search string, payload []byte) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Set(ctx, key(resource, search), payload, c.ttl)
}

// Invalidate drops every cached list for a resource. Called on each
// write so reads never serve a stale catalog.
func (c *CatalogCache) Invalidate(ctx context.Context, resource string) {
	if c == nil || c.client == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, key(resource, "*"), 100).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
}
