package generation

import (
	"context"
	"errors"

	"quickai-api/internal/domain/entity"
	"quickai-api/pkg/logger"
	"quickai-api/pkg/metrics"
)

// Action 层级执行后的去向
type Action int

const (
	// ActionPass 前置检查通过，进入下一层
	ActionPass Action = iota
	// ActionContinue 本层失败，进入下一层
	ActionContinue
	// ActionSuccess 本层产出结果，按层级声明结算副作用
	ActionSuccess
	// ActionTerminal 终止，不结算任何副作用
	ActionTerminal
)

func (a Action) String() string {
	switch a {
	case ActionPass:
		return "pass"
	case ActionContinue:
		return "continue"
	case ActionSuccess:
		return "success"
	case ActionTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// TierOutcome 单层执行结果
type TierOutcome struct {
	Action Action
	Result Result
	Reason string
}

// Pass 前置检查通过
func Pass() TierOutcome {
	return TierOutcome{Action: ActionPass}
}

// Continue 本层失败并携带原因
func Continue(reason string) TierOutcome {
	return TierOutcome{Action: ActionContinue, Reason: reason}
}

// Succeed 本层产出结果
func Succeed(r Result) TierOutcome {
	return TierOutcome{Action: ActionSuccess, Result: r}
}

// Terminate 终止链路
func Terminate(r Result) TierOutcome {
	return TierOutcome{Action: ActionTerminal, Result: r}
}

// TierFailure 已失败层级的记录
type TierFailure struct {
	Tier   string
	Reason string
}

// Tier 降级链中的一层
type Tier[S any] struct {
	Name string
	// Billable 成功时计费
	Billable bool
	// Persist 成功时追加创作记录
	Persist bool
	Run     func(ctx context.Context, state *S, failures []TierFailure) TierOutcome
}

// Settlement 链路最终结果及其结算要求
type Settlement struct {
	Result   Result
	Tier     string
	Billable bool
	Persist  bool
	// Creation 仅在 Persist 时非空
	Creation *entity.Creation
	Failures []TierFailure
}

// RecordFunc 由成功结果构造创作记录
type RecordFunc[S any] func(state *S, r Result) *entity.Creation

// ErrChainExhausted 所有层级都选择继续
var ErrChainExhausted = errors.New("fallback chain exhausted without a result")

// Chain 严格有序的降级链
type Chain[S any] struct {
	capability Capability
	record     RecordFunc[S]
	tiers      []Tier[S]
}

// NewChain 创建降级链；record 为空时不产生创作记录
func NewChain[S any](capability Capability, record RecordFunc[S], tiers ...Tier[S]) Chain[S] {
	return Chain[S]{capability: capability, record: record, tiers: tiers}
}

// Run 顺序执行各层，首个成功或终止的层决定结果
func (c Chain[S]) Run(ctx context.Context, state *S) Settlement {
	var failures []TierFailure
	for _, tier := range c.tiers {
		out := tier.Run(ctx, state, failures)
		metrics.TierOutcomeTotal.WithLabelValues(string(c.capability), tier.Name, out.Action.String()).Inc()

		switch out.Action {
		case ActionPass:
		case ActionContinue:
			logger.Warn(ctx, "generation tier failed, falling through",
				"tier", tier.Name,
				"reason", out.Reason,
			)
			failures = append(failures, TierFailure{Tier: tier.Name, Reason: out.Reason})
		case ActionSuccess:
			st := Settlement{
				Result:   out.Result,
				Tier:     tier.Name,
				Billable: tier.Billable,
				Persist:  tier.Persist && c.record != nil,
				Failures: failures,
			}
			if st.Persist {
				st.Creation = c.record(state, out.Result)
			}
			return st
		default:
			return Settlement{Result: out.Result, Tier: tier.Name, Failures: failures}
		}
	}

	logger.Error(ctx, "generation chain exhausted", ErrChainExhausted, "capability", string(c.capability))
	return Settlement{Result: Unexpected(ErrChainExhausted), Failures: failures}
}

// failureDetails 将失败记录转换为 details 字段
func failureDetails(failures []TierFailure) map[string]string {
	if len(failures) == 0 {
		return nil
	}
	details := make(map[string]string, len(failures))
	for _, f := range failures {
		details[f.Tier] = f.Reason
	}
	return details
}
