package quota

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickai-api/internal/domain/entity"
)

type stubCounter struct {
	mu       sync.Mutex
	counts   map[string]int64
	getErr   error
	incErr   error
	gets     atomic.Int32
	incs     atomic.Int32
	getDelay time.Duration
	// release 非空时 Get 阻塞到其关闭或 ctx 结束
	release chan struct{}
}

func (s *stubCounter) Get(ctx context.Context, accountID string) (int64, error) {
	s.gets.Add(1)
	if s.getDelay > 0 {
		time.Sleep(s.getDelay)
	}
	if s.release != nil {
		select {
		case <-s.release:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	if s.getErr != nil {
		return 0, s.getErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[accountID], nil
}

func (s *stubCounter) Increment(_ context.Context, accountID string) (int64, error) {
	s.incs.Add(1)
	if s.incErr != nil {
		return 0, s.incErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.counts == nil {
		s.counts = map[string]int64{}
	}
	s.counts[accountID]++
	return s.counts[accountID], nil
}

func TestResolveReadsCounter(t *testing.T) {
	counter := &stubCounter{counts: map[string]int64{"acct": 7}}
	r := NewEntitlementResolver(counter)

	ent := r.Resolve(context.Background(), Identity{AccountID: "acct", Plan: entity.PlanFree})

	assert.Equal(t, int64(7), ent.FreeUsageCount)
	assert.True(t, ent.Metered)
	assert.False(t, ent.QuotaExceeded())
}

func TestResolveDegradesOnCounterError(t *testing.T) {
	r := NewEntitlementResolver(&stubCounter{getErr: errors.New("redis down")})

	ent := r.Resolve(context.Background(), Identity{AccountID: "acct", Plan: "gold"})

	assert.Equal(t, entity.PlanFree, ent.Plan)
	assert.Zero(t, ent.FreeUsageCount)
	assert.False(t, ent.Metered)
	assert.False(t, ent.QuotaExceeded())
}

func TestResolveWithoutCounter(t *testing.T) {
	ent := NewEntitlementResolver(nil).Resolve(context.Background(), Identity{})

	assert.Equal(t, entity.DevAccountID, ent.AccountID)
	assert.Equal(t, entity.PlanFree, ent.Plan)
	assert.False(t, ent.Metered)
}

func TestResolveCoalescesConcurrentReads(t *testing.T) {
	counter := &stubCounter{counts: map[string]int64{"acct": 1}, getDelay: 50 * time.Millisecond}
	r := NewEntitlementResolver(counter)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ent := r.Resolve(context.Background(), Identity{AccountID: "acct"})
			assert.Equal(t, int64(1), ent.FreeUsageCount)
		}()
	}
	wg.Wait()

	assert.Less(t, counter.gets.Load(), int32(8))
}

func TestResolveSurvivesCancelledPeer(t *testing.T) {
	counter := &stubCounter{counts: map[string]int64{"acct": 10}, release: make(chan struct{})}
	r := NewEntitlementResolver(counter)

	leaderCtx, cancelLeader := context.WithCancel(context.Background())
	leader := make(chan entity.Entitlement, 1)
	go func() {
		leader <- r.Resolve(leaderCtx, Identity{AccountID: "acct", Plan: entity.PlanFree})
	}()
	require.Eventually(t, func() bool { return counter.gets.Load() == 1 }, time.Second, time.Millisecond)

	follower := make(chan entity.Entitlement, 1)
	go func() {
		follower <- r.Resolve(context.Background(), Identity{AccountID: "acct", Plan: entity.PlanFree})
	}()

	cancelLeader()
	gone := <-leader
	assert.False(t, gone.Metered)

	close(counter.release)
	live := <-follower
	assert.True(t, live.Metered)
	assert.Equal(t, int64(10), live.FreeUsageCount)
	assert.True(t, live.QuotaExceeded())
}

func TestUsageGateCharge(t *testing.T) {
	counter := &stubCounter{}
	gate := NewUsageGate(counter)
	ctx := context.Background()

	gate.Charge(ctx, entity.Entitlement{AccountID: "acct", Plan: entity.PlanFree, Metered: true})
	gate.Charge(ctx, entity.Entitlement{AccountID: "acct", Plan: entity.PlanFree, Metered: true})
	assert.Equal(t, int64(2), counter.counts["acct"])

	gate.Charge(ctx, entity.Entitlement{AccountID: "vip", Plan: entity.PlanPremium, Metered: true})
	gate.Charge(ctx, entity.Entitlement{AccountID: "acct", Plan: entity.PlanFree, Metered: false})
	assert.Equal(t, int32(2), counter.incs.Load())
}

func TestUsageGateSwallowsFailure(t *testing.T) {
	counter := &stubCounter{incErr: errors.New("timeout")}

	assert.NotPanics(t, func() {
		NewUsageGate(counter).Charge(context.Background(), entity.Entitlement{AccountID: "a", Metered: true})
		NewUsageGate(nil).Charge(context.Background(), entity.Entitlement{AccountID: "a", Metered: true})
	})
	assert.Equal(t, int32(1), counter.incs.Load())
}
