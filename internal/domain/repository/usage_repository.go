package repository

import "context"

// UsageCounterRepository 免费用量计数仓储
type UsageCounterRepository interface {
	// Get 读取当前计数，不存在时为 0
	Get(ctx context.Context, accountID string) (int64, error)

	// Increment 计数加一并返回新值
	Increment(ctx context.Context, accountID string) (int64, error)
}
