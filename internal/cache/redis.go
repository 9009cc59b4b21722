// Package cache keeps short-lived copies of read-mostly data in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const publicConfigKey = "configs:public"

// ConfigCache stores the decrypted public configuration map
type ConfigCache interface {
	GetPublicConfigs(ctx context.Context) (map[string]string, bool)
	SetPublicConfigs(ctx context.Context, configs map[string]string)
	InvalidatePublicConfigs(ctx context.Context)
}

// Connect creates a Redis client and verifies the connection with a ping.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// RedisConfigCache is a ConfigCache backed by Redis. Cache errors are logged
// and treated as misses; the database stays the source of truth.
type RedisConfigCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisConfigCache creates a RedisConfigCache
func NewRedisConfigCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisConfigCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisConfigCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisConfigCache) GetPublicConfigs(ctx context.Context) (map[string]string, bool) {
	raw, err := c.client.Get(ctx, publicConfigKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("config cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var configs map[string]string
	if err := json.Unmarshal(raw, &configs); err != nil {
		c.logger.Warn("config cache entry corrupt", zap.Error(err))
		return nil, false
	}
	return configs, true
}

func (c *RedisConfigCache) SetPublicConfigs(ctx context.Context, configs map[string]string) {
	raw, err := json.Marshal(configs)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, publicConfigKey, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("config cache write failed", zap.Error(err))
	}
}

func (c *RedisConfigCache) InvalidatePublicConfigs(ctx context.Context) {
	if err := c.client.Del(ctx, publicConfigKey).Err(); err != nil {
		c.logger.Warn("config cache invalidation failed", zap.Error(err))
	}
}

// NopConfigCache never stores anything
type NopConfigCache struct{}

func (NopConfigCache) GetPublicConfigs(context.Context) (map[string]string, bool) { return nil, false }
func (NopConfigCache) SetPublicConfigs(context.Context, map[string]string)        {}
func (NopConfigCache) InvalidatePublicConfigs(context.Context)                    {}

var (
	_ ConfigCache = (*RedisConfigCache)(nil)
	_ ConfigCache = NopConfigCache{}
)
