package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntitlementQuotaExceeded(t *testing.T) {
	cases := []struct {
		name string
		ent  Entitlement
		want bool
	}{
		{"fresh free", Entitlement{Plan: PlanFree}, false},
		{"free below limit", Entitlement{Plan: PlanFree, FreeUsageCount: FreeUsageLimit - 1}, false},
		{"free at limit", Entitlement{Plan: PlanFree, FreeUsageCount: FreeUsageLimit}, true},
		{"free above limit", Entitlement{Plan: PlanFree, FreeUsageCount: FreeUsageLimit + 5}, true},
		{"premium above limit", Entitlement{Plan: PlanPremium, FreeUsageCount: 100}, false},
		{"unknown plan treated as free", Entitlement{Plan: "trial", FreeUsageCount: FreeUsageLimit}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.ent.QuotaExceeded())
		})
	}
}

func TestDegradedEntitlement(t *testing.T) {
	e := DegradedEntitlement("acct")
	assert.Equal(t, "acct", e.AccountID)
	assert.Equal(t, PlanFree, e.Plan)
	assert.Zero(t, e.FreeUsageCount)
	assert.False(t, e.Metered)
	assert.False(t, e.QuotaExceeded())
}
