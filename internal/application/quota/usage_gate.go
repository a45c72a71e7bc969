package quota

import (
	"context"

	"quickai-api/internal/domain/entity"
	"quickai-api/internal/domain/repository"
	"quickai-api/pkg/logger"
	"quickai-api/pkg/metrics"
)

// UsageGate 免费用量计费，best-effort
type UsageGate struct {
	counter repository.UsageCounterRepository
}

// NewUsageGate 创建计费闸门
func NewUsageGate(counter repository.UsageCounterRepository) *UsageGate {
	return &UsageGate{counter: counter}
}

// Charge 付费账号、未计量或计数器缺失时为空操作；失败只记录日志
func (g *UsageGate) Charge(ctx context.Context, ent entity.Entitlement) {
	if g == nil || g.counter == nil || ent.IsPremium() || !ent.Metered {
		metrics.UsageChargeTotal.WithLabelValues("skipped").Inc()
		return
	}

	used, err := g.counter.Increment(ctx, ent.AccountID)
	metrics.UsageChargeTotal.WithLabelValues(metrics.Status(err)).Inc()
	if err != nil {
		logger.Warn(ctx, "failed to charge free usage",
			"account_id", ent.AccountID,
			"error", err.Error(),
		)
		return
	}
	logger.Debug(ctx, "free usage charged", "account_id", ent.AccountID, "used", used)
}
