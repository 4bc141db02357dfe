// Package cache provides an optional Redis-backed cache for the coin
// market listing. Price snapshots and historical series are never cached;
// the tracker fetches those fresh on every cycle.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/yourorg/crypto-tracker/internal/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const coinListKey = "crypto-tracker:coin-list"

// CoinListCache caches the serialized coin listing with a TTL
type CoinListCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCoinListCache connects to Redis and returns a coin list cache. The
// connection is verified up front so a misconfigured cache fails at
// startup rather than on the first request.
func NewCoinListCache(cfg config.RedisConfig, logger *zap.Logger) (*CoinListCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &CoinListCache{
		client: client,
		ttl:    cfg.CoinListTTL,
		logger: logger,
	}, nil
}

// Get returns the cached coin listing, or "" on a miss. Redis errors are
// logged and reported as a miss so the caller falls back to a live fetch.
func (c *CoinListCache) Get(ctx context.Context) string {
	val, err := c.client.Get(ctx, coinListKey).Result()
	if err == redis.Nil {
		return ""
	}
	if err != nil {
		c.logger.Warn("Coin list cache read failed", zap.Error(err))
		return ""
	}
	return val
}

// Set stores the serialized coin listing with the configured TTL
func (c *CoinListCache) Set(ctx context.Context, value string) {
	if err := c.client.Set(ctx, coinListKey, value, c.ttl).Err(); err != nil {
		c.logger.Warn("Coin list cache write failed", zap.Error(err))
	}
}

// Close releases the underlying Redis connection
func (c *CoinListCache) Close() error {
	return c.client.Close()
}
