package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unreachableClient 指向无监听端口的客户端，用于验证错误路径
func unreachableClient() *Client {
	return &Client{rdb: redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})}
}

func TestUsageCounterSurfacesConnectionErrors(t *testing.T) {
	counter := NewUsageCounter(unreachableClient())

	_, err := counter.Get(context.Background(), "acct")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read usage counter")

	_, err = counter.Increment(context.Background(), "acct")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to increment usage counter")
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "usage:free:acct-1", usageKey("acct-1"))
	assert.Equal(t, "ratelimit:acct-1:/v1/ai/generate-image", BuildRateLimitKey("acct-1", "/v1/ai/generate-image"))
}

func TestIsNil(t *testing.T) {
	assert.True(t, IsNil(redis.Nil))
	assert.False(t, IsNil(nil))
	assert.False(t, IsNil(context.Canceled))
}

func TestRateLimiterSurfacesConnectionErrors(t *testing.T) {
	allowed, err := NewRateLimiter(unreachableClient()).Allow(context.Background(), "k", 1, time.Minute)
	require.Error(t, err)
	assert.False(t, allowed)
}

func TestHealthCheckFailsWhenUnreachable(t *testing.T) {
	assert.Error(t, unreachableClient().HealthCheck(context.Background()))
}
