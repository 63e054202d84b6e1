package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisSearchCache struct {
	redis *redis.Client
}

func NewRedisSearchCache(redisClient *redis.Client) *RedisSearchCache {
	return &RedisSearchCache{redis: redisClient}
}

func searchGenKey(userID uint) string {
	return fmt.Sprintf("search:%d:gen", userID)
}

func searchResultKey(userID uint, generation int64, query string) string {
	return fmt.Sprintf("search:%d:%d:%s", userID, generation, query)
}

func (c *RedisSearchCache) Generation(ctx context.Context, userID uint) (int64, error) {
	gen, err := c.redis.Get(ctx, searchGenKey(userID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return gen, err
}

func (c *RedisSearchCache) BumpGeneration(ctx context.Context, userID uint) error {
	return c.redis.Incr(ctx, searchGenKey(userID)).Err()
}

func (c *RedisSearchCache) Get(ctx context.Context, userID uint, generation int64, query string) ([]byte, bool, error) {
	payload, err := c.redis.Get(ctx, searchResultKey(userID, generation, query)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

func (c *RedisSearchCache) Set(ctx context.Context, userID uint, generation int64, query string, payload []byte, ttlSeconds int) error {
	ttl := time.Duration(ttlSeconds) * time.Second
	return c.redis.Set(ctx, searchResultKey(userID, generation, query), payload, ttl).Err()
}
