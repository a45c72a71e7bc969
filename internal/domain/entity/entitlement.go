package entity

// Plan 套餐
type Plan string

const (
	PlanFree    Plan = "free"
	PlanPremium Plan = "premium"
)

// FreeUsageLimit 免费套餐可用次数
const FreeUsageLimit = 10

// DevAccountID 未配置身份服务时的开发账号
const DevAccountID = "dev-user"

// Entitlement 调用方权益快照
type Entitlement struct {
	AccountID      string `json:"account_id"`
	Plan           Plan   `json:"plan"`
	FreeUsageCount int64  `json:"free_usage"`
	// Metered 为 false 表示用量计数不可用，计费跳过
	Metered bool `json:"-"`
}

// IsPremium 是否付费套餐
func (e Entitlement) IsPremium() bool {
	return e.Plan == PlanPremium
}

// QuotaExceeded 免费额度是否已用尽
func (e Entitlement) QuotaExceeded() bool {
	return !e.IsPremium() && e.FreeUsageCount >= FreeUsageLimit
}

// DegradedEntitlement 权益源不可用时的免费默认值
func DegradedEntitlement(accountID string) Entitlement {
	return Entitlement{AccountID: accountID, Plan: PlanFree}
}
