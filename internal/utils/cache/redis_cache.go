package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

type (
	// Cache stores JSON-encoded values by key.
	Cache interface {
		Get(ctx context.Context, key string, dest any) error
		Set(ctx context.Context, key string, value any) error
		Delete(ctx context.Context, keys ...string) error
	}

	RedisCache struct {
		Client *redis.Client
		TTL    time.Duration
	}

	// NoopCache always misses; used when no redis is configured.
	NoopCache struct{}
)

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

func MustInitRedis(addr, password string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	return client
}

func (c *RedisCache) Get(ctx context.Context, key string, dest any) error {
	data, err := c.Client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return err
	}
	return json.Unmarshal(data, dest)
}

func (c *RedisCache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, key, data, c.TTL).Err()
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.Client.Del(ctx, keys...).Err()
}

func (NoopCache) Get(context.Context, string, any) error { return ErrCacheMiss }

func (NoopCache) Set(context.Context, string, any) error { return nil }

func (NoopCache) Delete(context.Context, ...string) error { return nil }
