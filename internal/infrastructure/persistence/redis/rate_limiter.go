package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"

	"quickai-api/pkg/tracer"
)

// slidingWindow 原子地清理窗口外记录、计数并在未超限时记录本次请求。
// KEYS[1] 限流键；ARGV: 当前毫秒、窗口毫秒、上限、成员 ID。返回 1 放行，0 拒绝
var slidingWindow = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
redis.call('ZREMRANGEBYSCORE', key, 0, now - window)
if redis.call('ZCARD', key) >= limit then
  return 0
end
redis.call('ZADD', key, now, ARGV[4])
redis.call('PEXPIRE', key, window)
return 1
`)

// RateLimiter 按账号与路由的滑动窗口限流器
type RateLimiter struct {
	client *Client
}

// NewRateLimiter 创建限流器
func NewRateLimiter(client *Client) *RateLimiter {
	return &RateLimiter{client: client}
}

// Allow 判断本次请求是否在窗口上限内
func (l *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	ctx, span := tracer.Start(ctx, "redis.RateLimiter.Allow")
	defer span.End()
	span.SetAttributes(
		attribute.String("ratelimit.key", key),
		attribute.Int("ratelimit.limit", limit),
	)

	res, err := slidingWindow.Run(ctx, l.client.rdb, []string{key},
		time.Now().UnixMilli(), window.Milliseconds(), limit, uuid.NewString(),
	).Int()
	if err != nil {
		tracer.Fail(span, err)
		return false, fmt.Errorf("rate limit script failed: %w", err)
	}

	allowed := res == 1
	span.SetAttributes(attribute.Bool("ratelimit.allowed", allowed))
	return allowed, nil
}

// BuildRateLimitKey 构建限流键
func BuildRateLimitKey(accountID, endpoint string) string {
	return fmt.Sprintf("ratelimit:%s:%s", accountID, endpoint)
}
