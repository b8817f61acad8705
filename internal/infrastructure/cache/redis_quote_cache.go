// Package cache stores quick quotes in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bibbank/refinance-service/internal/domain/model"
	"github.com/bibbank/refinance-service/internal/domain/port"
)

// RedisQuoteCache implements port.QuoteCache with JSON values.
type RedisQuoteCache struct {
	client redis.UniversalClient
	prefix string
}

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient opens a client for opts. The connection is established
// lazily; call Ping to check it.
func NewRedisClient(opts Options) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})
}

func NewRedisQuoteCache(client redis.UniversalClient) *RedisQuoteCache {
	return &RedisQuoteCache{client: client, prefix: "refinance:"}
}

var _ port.QuoteCache = (*RedisQuoteCache)(nil)

func (c *RedisQuoteCache) Get(ctx context.Context, key string) (model.QuickQuote, bool, error) {
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.QuickQuote{}, false, nil
	}
	if err != nil {
		return model.QuickQuote{}, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var q model.QuickQuote
	if err := json.Unmarshal(raw, &q); err != nil {
		return model.QuickQuote{}, false, fmt.Errorf("decode cached quote: %w", err)
	}
	return q, true, nil
}

func (c *RedisQuoteCache) Set(ctx context.Context, key string, quote model.QuickQuote, ttl time.Duration) error {
	raw, err := json.Marshal(quote)
	if err != nil {
		return fmt.Errorf("encode quote: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (c *RedisQuoteCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
