package generation

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickai-api/internal/domain/entity"
)

type counterState struct {
	visited []string
}

func visit(name string, out TierOutcome) Tier[counterState] {
	return Tier[counterState]{
		Name:     name,
		Billable: true,
		Persist:  true,
		Run: func(_ context.Context, st *counterState, _ []TierFailure) TierOutcome {
			st.visited = append(st.visited, name)
			return out
		},
	}
}

func recordAll(_ *counterState, r Result) *entity.Creation {
	return entity.NewCreation("acct", "p", r.Content, entity.CreationTypeImage, false)
}

func TestChainStopsAtFirstSuccess(t *testing.T) {
	chain := NewChain(CapabilityBgRemove, recordAll,
		visit("gate", Pass()),
		visit("first", Continue("boom")),
		visit("second", Succeed(Real("ok"))),
		visit("third", Succeed(Real("never"))),
	)

	st := &counterState{}
	got := chain.Run(context.Background(), st)

	assert.Equal(t, []string{"gate", "first", "second"}, st.visited)
	assert.Equal(t, "second", got.Tier)
	assert.Equal(t, "ok", got.Result.Content)
	assert.True(t, got.Billable)
	require.NotNil(t, got.Creation)
	assert.Equal(t, "ok", got.Creation.Content)
	assert.Equal(t, []TierFailure{{Tier: "first", Reason: "boom"}}, got.Failures)
}

func TestChainTerminalSkipsSettlement(t *testing.T) {
	chain := NewChain(CapabilityBgRemove, recordAll,
		visit("reject", Terminate(Rejected(http.StatusBadRequest, "bad", ""))),
		visit("after", Succeed(Real("never"))),
	)

	st := &counterState{}
	got := chain.Run(context.Background(), st)

	assert.Equal(t, []string{"reject"}, st.visited)
	assert.False(t, got.Billable)
	assert.False(t, got.Persist)
	assert.Nil(t, got.Creation)
	assert.Equal(t, http.StatusBadRequest, got.Result.Status)
}

func TestChainExhaustedIsUnexpected(t *testing.T) {
	chain := NewChain(CapabilityBgRemove, recordAll,
		visit("a", Continue("x")),
		visit("b", Continue("y")),
	)

	got := chain.Run(context.Background(), &counterState{})

	assert.False(t, got.Result.Success)
	assert.Equal(t, http.StatusInternalServerError, got.Result.Status)
	assert.Len(t, got.Failures, 2)
}

func TestChainPassedTiersPassFailuresForward(t *testing.T) {
	var seen []TierFailure
	chain := NewChain[counterState](CapabilityResumeReview, nil,
		visit("gate", Pass()),
		visit("primary", Continue("timeout")),
		Tier[counterState]{
			Name: "final",
			Run: func(_ context.Context, _ *counterState, failures []TierFailure) TierOutcome {
				seen = failures
				return Succeed(Mock("m", ""))
			},
		},
	)

	got := chain.Run(context.Background(), &counterState{})

	assert.Equal(t, []TierFailure{{Tier: "primary", Reason: "timeout"}}, seen)
	assert.Nil(t, got.Creation, "chain without record func never persists")
}
