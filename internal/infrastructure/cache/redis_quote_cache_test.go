package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/bibbank/refinance-service/internal/domain/model"
	"github.com/bibbank/refinance-service/internal/infrastructure/cache"
)

// An unreachable server surfaces as an error, not as a miss.
func TestRedisQuoteCache_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	c := cache.NewRedisQuoteCache(client)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "quickquote:SAVE_INTEREST:1:2:3:3.55")
	assert.Error(t, err)
	assert.False(t, ok)

	err = c.Set(ctx, "k", model.QuickQuote{MonthlySavings: 10}, time.Minute)
	assert.ErrorContains(t, err, "redis set k")

	assert.Error(t, c.Ping(ctx))
}
