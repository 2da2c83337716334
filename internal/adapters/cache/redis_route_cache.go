package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"trucklogix-service/internal/domain"
	"trucklogix-service/internal/platform/obs"
	"trucklogix-service/internal/ports"

	"github.com/redis/go-redis/v9"
)

var _ ports.RouteCache = (*RedisRouteCache)(nil)

const redisRoutePrefix = "trucklogix:route:"

// RedisRouteCache keeps optimized routes in Redis with a per-key TTL.
type RedisRouteCache struct {
	client redis.Cmdable
}

func NewRedisRouteCache(client redis.Cmdable) *RedisRouteCache {
	return &RedisRouteCache{client: client}
}

func (c *RedisRouteCache) Get(ctx context.Context, key string) (_ *domain.Route, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.redis.Get")(&err)

	key = strings.TrimSpace(key)
	if key == "" {
		return nil, false, errors.New("get route cache: key must not be empty")
	}

	b, err := c.client.Get(ctx, redisRoutePrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get route cache: redis get key=%q: %w", key, err)
	}

	var r domain.Route
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, false, fmt.Errorf("get route cache: decode key=%q: %w", key, err)
	}

	return &r, true, nil
}

func (c *RedisRouteCache) Put(ctx context.Context, key string, route *domain.Route, ttl time.Duration) (err error) {
	defer obs.Time(ctx, "route.cache.redis.Put")(&err)

	key = strings.TrimSpace(key)
	if key == "" || route == nil {
		return errors.New("put route cache: key and route are required")
	}
	if ttl <= 0 {
		return fmt.Errorf("put route cache: ttl must be positive, got %s", ttl)
	}

	b, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("put route cache: encode key=%q: %w", key, err)
	}

	if err := c.client.Set(ctx, redisRoutePrefix+key, b, ttl).Err(); err != nil {
		return fmt.Errorf("put route cache: redis set key=%q: %w", key, err)
	}

	return nil
}
