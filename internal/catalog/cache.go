package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultCacheTTL = 5 * time.Minute
	categoriesKey   = "trivia:categories"
)

// CategoryCache holds the full category listing between writes.
// Get returns (nil, nil) on a miss.
type CategoryCache interface {
	Get(ctx context.Context) ([]Category, error)
	Set(ctx context.Context, categories []Category) error
	Invalidate(ctx context.Context) error
}

// RedisCategoryCache keeps the category listing in Redis so read-heavy
// category endpoints skip Postgres.
type RedisCategoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ CategoryCache = (*RedisCategoryCache)(nil)

func NewRedisCategoryCache(client *redis.Client, ttl time.Duration) *RedisCategoryCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &RedisCategoryCache{client: client, ttl: ttl}
}

func (c *RedisCategoryCache) Get(ctx context.Context) ([]Category, error) {
	data, err := c.client.Get(ctx, categoriesKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var categories []Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *RedisCategoryCache) Set(ctx context.Context, categories []Category) error {
	if categories == nil {
		categories = []Category{}
	}
	data, err := json.Marshal(categories)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, categoriesKey, data, c.ttl).Err()
}

func (c *RedisCategoryCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, categoriesKey).Err()
}
