package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/amyangfei/redlock-go/v3/redlock"
	redis "github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/mvasconcelos/horaculo/pkg/logger"
)

// Client wraps a standard Redis client for caching plus a RedLock manager
// for per-key serialization of reputation updates.
type Client struct {
	cache       *redis.Client
	lockManager *redlock.RedLock
}

// New creates new Redis client from a redis:// URL
func New(url string) (*Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	cache := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := cache.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	lockManager, err := redlock.NewRedLock(ctx, []string{"tcp://" + opts.Addr})
	if err != nil {
		return nil, fmt.Errorf("failed to create redlock manager: %w", err)
	}

	logger.Info("redis client initialized", zap.String("address", opts.Addr))

	return &Client{cache: cache, lockManager: lockManager}, nil
}

// Get retrieves a value. The second return is false on a miss.
func (c *Client) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.cache.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// SetEx stores a value with a TTL
func (c *Client) SetEx(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.cache.Set(ctx, key, value, ttl).Err()
}

// Del deletes keys
func (c *Client) Del(ctx context.Context, keys ...string) error {
	return c.cache.Del(ctx, keys...).Err()
}

// Close closes the underlying connections
func (c *Client) Close() error {
	if c.cache != nil {
		logger.Info("closing redis client")
		return c.cache.Close()
	}
	return nil
}
