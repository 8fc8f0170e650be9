package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/coursemarket/course-api/internal/core/domain"
)

const (
	catalogKey      = "catalog:courses"
	defaultCacheTTL = 30 * time.Second
)

// CatalogCache holds the serialized course listing under a single key.
// Every catalog write deletes the key; readers repopulate it.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CatalogCache{client: client, ttl: ttl}
}

// Get returns the cached listing; ok is false on a miss.
func (c *CatalogCache) Get(ctx context.Context) ([]domain.Course, bool, error) {
	raw, err := c.client.Get(ctx, catalogKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("catalog cache get: %w", err)
	}

	var courses []domain.Course
	if err := json.Unmarshal(raw, &courses); err != nil {
		return nil, false, fmt.Errorf("catalog cache decode: %w", err)
	}
	if courses == nil {
		courses = []domain.Course{}
	}
	return courses, true, nil
}

func (c *CatalogCache) Set(ctx context.Context, courses []domain.Course) error {
	raw, err := json.Marshal(courses)
	if err != nil {
		return fmt.Errorf("catalog cache encode: %w", err)
	}
	return c.client.Set(ctx, catalogKey, raw, c.ttl).Err()
}

func (c *CatalogCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, catalogKey).Err()
}
