// Package quota 提供账号权益与免费用量相关能力
package quota

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"quickai-api/internal/domain/entity"
	"quickai-api/internal/domain/repository"
	"quickai-api/pkg/logger"
)

// Identity 已认证的调用方
type Identity struct {
	AccountID string
	Plan      entity.Plan
}

// counterReadTimeout 合并读取不跟随任一调用方取消，单独限时
const counterReadTimeout = 2 * time.Second

// EntitlementResolver 组合身份与用量计数得到权益快照
type EntitlementResolver struct {
	counter repository.UsageCounterRepository
	group   singleflight.Group
}

// NewEntitlementResolver 创建权益解析器；counter 为空时所有账号按未计量处理
func NewEntitlementResolver(counter repository.UsageCounterRepository) *EntitlementResolver {
	return &EntitlementResolver{counter: counter}
}

// Resolve 解析权益，读取失败时降级为免费默认值，从不返回错误
func (r *EntitlementResolver) Resolve(ctx context.Context, id Identity) entity.Entitlement {
	accountID := strings.TrimSpace(id.AccountID)
	if accountID == "" {
		accountID = entity.DevAccountID
	}

	plan := id.Plan
	if plan != entity.PlanPremium {
		plan = entity.PlanFree
	}

	if r == nil || r.counter == nil {
		ent := entity.DegradedEntitlement(accountID)
		ent.Plan = plan
		return ent
	}

	used, err := r.readUsage(ctx, accountID)
	if err != nil {
		logger.Warn(ctx, "failed to read free usage, degrading entitlement",
			"account_id", accountID,
			"error", err.Error(),
		)
		ent := entity.DegradedEntitlement(accountID)
		ent.Plan = plan
		return ent
	}

	return entity.Entitlement{
		AccountID:      accountID,
		Plan:           plan,
		FreeUsageCount: used,
		Metered:        true,
	}
}

// readUsage 同一账号的并发读取合并为一次；每个调用方只等待自己的 ctx
func (r *EntitlementResolver) readUsage(ctx context.Context, accountID string) (int64, error) {
	ch := r.group.DoChan(accountID, func() (any, error) {
		readCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), counterReadTimeout)
		defer cancel()
		return r.counter.Get(readCtx, accountID)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return 0, res.Err
		}
		return res.Val.(int64), nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}
