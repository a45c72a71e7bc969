package redis

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"quickai-api/pkg/tracer"
)

const usageKeyPrefix = "usage:free:"

// UsageCounter 免费用量计数，实现 repository.UsageCounterRepository；
// 计数不过期，并发请求下允许近似计数
type UsageCounter struct {
	client *Client
}

// NewUsageCounter 创建用量计数器
func NewUsageCounter(client *Client) *UsageCounter {
	return &UsageCounter{client: client}
}

// Get 读取计数，键不存在时为 0
func (u *UsageCounter) Get(ctx context.Context, accountID string) (int64, error) {
	ctx, span := tracer.Start(ctx, "redis.UsageCounter.Get",
		trace.WithAttributes(attribute.String("account.id", accountID)))
	defer span.End()

	n, err := u.client.rdb.Get(ctx, usageKey(accountID)).Int64()
	if IsNil(err) {
		return 0, nil
	}
	if err != nil {
		tracer.Fail(span, err)
		return 0, fmt.Errorf("failed to read usage counter: %w", err)
	}
	return n, nil
}

// Increment 计数加一并返回新值
func (u *UsageCounter) Increment(ctx context.Context, accountID string) (int64, error) {
	ctx, span := tracer.Start(ctx, "redis.UsageCounter.Increment",
		trace.WithAttributes(attribute.String("account.id", accountID)))
	defer span.End()

	n, err := u.client.rdb.Incr(ctx, usageKey(accountID)).Result()
	if err != nil {
		tracer.Fail(span, err)
		return 0, fmt.Errorf("failed to increment usage counter: %w", err)
	}
	span.SetAttributes(attribute.Int64("usage.count", n))
	return n, nil
}

func usageKey(accountID string) string {
	return usageKeyPrefix + accountID
}
