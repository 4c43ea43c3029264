package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/KDISCHOOL/Distance-Learning-Committee-6/config"
)

// Client wraps the Redis connection. It backs the rate limit on the
// per-record secret endpoints and caches the fuzzy-search candidate pool.
// Every caller tolerates a nil *Client and degrades to direct operation.
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient connects to Redis and verifies the connection with a ping.
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	logger.Info("redis connected", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── Rate limiting ──

// CheckRateLimit counts requests under key within a fixed window and reports
// whether this request is still allowed.
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	n, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return n <= int64(limit), nil
}

// ── Search candidate pool cache ──

const namePoolPrefix = "namepool:"

// CacheNamePool stores a candidate name pool under the given pool name.
func (c *Client) CacheNamePool(ctx context.Context, pool string, names []string, ttl time.Duration) error {
	payload, err := json.Marshal(names)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, namePoolPrefix+pool, payload, ttl).Err()
}

// GetNamePool loads a cached candidate pool. ok is false on miss.
func (c *Client) GetNamePool(ctx context.Context, pool string) (names []string, ok bool, err error) {
	payload, err := c.rdb.Get(ctx, namePoolPrefix+pool).Bytes()
	if err == goredis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if err := json.Unmarshal(payload, &names); err != nil {
		return nil, false, err
	}
	return names, true, nil
}

// InvalidateNamePool drops a cached candidate pool, typically after an
// upload changed the record store.
func (c *Client) InvalidateNamePool(ctx context.Context, pool string) error {
	return c.rdb.Del(ctx, namePoolPrefix+pool).Err()
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}
