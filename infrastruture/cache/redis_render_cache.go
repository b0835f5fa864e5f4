// Package cache implements the RenderCache interface over Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gridweave/gridweave-api/service/i"
	"github.com/redis/go-redis/v9"
)

const renderKeyFmt = "grid:render:%s"

// ErrRenderNotCached is returned when no render is stored for the ID.
var ErrRenderNotCached = errors.New("render not cached")

// RedisRenderCache stores rendered grids in Redis with a TTL.
type RedisRenderCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRenderCache initializes a RedisRenderCache with the provided Redis client and TTL.
func NewRedisRenderCache(client *redis.Client, ttlSeconds int) (i.RenderCache, error) {
	if client == nil {
		return nil, errors.New("redis client must not be nil")
	}

	return &RedisRenderCache{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}, nil
}

// SetRender stores the rendered form of a grid record.
func (c *RedisRenderCache) SetRender(ctx context.Context, id uuid.UUID, render string) error {
	return c.client.Set(ctx, c.key(id), render, c.ttl).Err()
}

// Render retrieves the rendered form of a grid record.
func (c *RedisRenderCache) Render(ctx context.Context, id uuid.UUID) (string, error) {
	render, err := c.client.Get(ctx, c.key(id)).Result()
	if err == redis.Nil {
		return "", ErrRenderNotCached
	}
	if err != nil {
		return "", err
	}
	return render, nil
}

func (c *RedisRenderCache) key(id uuid.UUID) string {
	return fmt.Sprintf(renderKeyFmt, id)
}
