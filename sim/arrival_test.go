package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrivalGenerator_Reset_DrawsBudgetsInRange(t *testing.T) {
	// GIVEN the reference budget range [10000, 100000)
	cfg := DefaultEnvConfig(8)
	g := NewArrivalGenerator(cfg, NewRandSource(NewSimulationKey(42)))

	// WHEN the generator is reset
	g.Reset(NewSimulationKey(42))

	// THEN every tenant's budget lies in range
	for tenant := 0; tenant < cfg.Tenants; tenant++ {
		r := g.Remaining(tenant)
		assert.GreaterOrEqual(t, r, 10000, "tenant %d", tenant)
		assert.Less(t, r, 100000, "tenant %d", tenant)
	}
}

func TestArrivalGenerator_SameSeed_SameArrivals(t *testing.T) {
	cfg := DefaultEnvConfig(5)
	g1 := NewArrivalGenerator(cfg, NewRandSource(NewSimulationKey(0)))
	g2 := NewArrivalGenerator(cfg, NewRandSource(NewSimulationKey(0)))
	g1.Reset(NewSimulationKey(99))
	g2.Reset(NewSimulationKey(99))

	for i := 0; i < 500; i++ {
		require.Equal(t, g1.ProduceTick(), g2.ProduceTick(), "tick %d", i)
	}
	assert.Equal(t, g1.RemainingSnapshot(), g2.RemainingSnapshot())
}

func TestArrivalGenerator_Reset_ReplaysAfterReseed(t *testing.T) {
	// GIVEN a generator that already produced an episode's worth of arrivals
	g := NewArrivalGenerator(DefaultEnvConfig(5), NewRandSource(NewSimulationKey(0)))
	g.Reset(NewSimulationKey(5))
	first := make([][]int, 50)
	for i := range first {
		first[i] = g.ProduceTick()
	}

	// WHEN it is reset with the same seed
	g.Reset(NewSimulationKey(5))

	// THEN the same sequence is produced
	for i := range first {
		require.Equal(t, first[i], g.ProduceTick(), "tick %d", i)
	}
}

func TestArrivalGenerator_ProduceTick_IdleTickReturnsZeros(t *testing.T) {
	src := &scriptedSource{ints: []int{500, 500, 500}, uniforms: []float64{0.5}}
	g := NewArrivalGenerator(scenarioConfig(3, ProfileCount), src)
	g.Reset(NewSimulationKey(1))

	assert.Equal(t, []int{0, 0, 0}, g.ProduceTick())
	assert.Equal(t, 1500, g.RemainingTotal())
}

func TestArrivalGenerator_ProduceTick_SubtractsFromBudget(t *testing.T) {
	// GIVEN budgets [100, 100, 100, 100, 100] and a tick picking tenants 3 and 1
	src := &scriptedSource{ints: []int{100, 100, 100, 100, 100}}
	src.arrivalTick([]int{3, 1}, []int{7, 49})
	g := NewArrivalGenerator(scenarioConfig(5, ProfileCount), src)
	g.Reset(NewSimulationKey(1))

	// WHEN a tick is produced
	got := g.ProduceTick()

	// THEN only the chosen tenants receive tasks, and budgets drop accordingly
	assert.Equal(t, []int{0, 49, 0, 7, 0}, got)
	assert.Equal(t, 51, g.Remaining(1))
	assert.Equal(t, 93, g.Remaining(3))
	assert.Equal(t, 500-56, g.RemainingTotal())
}

func TestArrivalGenerator_ProduceTick_ExhaustedTenantReportsZero(t *testing.T) {
	src := &scriptedSource{ints: []int{0, 10}}
	src.arrivalTick([]int{0}, nil)
	g := NewArrivalGenerator(scenarioConfig(2, ProfileCount), src)
	g.Reset(NewSimulationKey(1))

	assert.True(t, g.TenantRemainingIsZero(0))
	assert.Equal(t, []int{0, 0}, g.ProduceTick())
	assert.Equal(t, 10, g.RemainingTotal())
}

func TestArrivalGenerator_ProduceTick_BudgetOfOneDrains(t *testing.T) {
	// GIVEN a tenant with exactly one task left
	src := &scriptedSource{ints: []int{1}}
	src.arrivalTick([]int{0}, []int{1})
	g := NewArrivalGenerator(scenarioConfig(1, ProfileCount), src)
	g.Reset(NewSimulationKey(1))

	// WHEN it is picked
	got := g.ProduceTick()

	// THEN the last task arrives and the budget reaches zero
	assert.Equal(t, []int{1}, got)
	assert.True(t, g.TenantRemainingIsZero(0))
	assert.Equal(t, 0, g.RemainingTotal())
}

func TestArrivalGenerator_SubsetLimit_ClampsSmallTenantCounts(t *testing.T) {
	tests := []struct {
		tenants int
		want    int
	}{
		{1, 2}, {2, 2}, {3, 2}, {4, 2}, {5, 3}, {6, 3}, {9, 5},
	}
	for _, tt := range tests {
		g := NewArrivalGenerator(DefaultEnvConfig(tt.tenants), NewRandSource(0))
		assert.Equal(t, tt.want, g.subsetLimit(), "tenants=%d", tt.tenants)
	}
}

func TestArrivalGenerator_SmallTenantCounts_NeverPanic(t *testing.T) {
	for _, n := range []int{1, 2, 3} {
		g := NewArrivalGenerator(DefaultEnvConfig(n), NewRandSource(0))
		g.Reset(NewSimulationKey(int64(n)))
		assert.NotPanics(t, func() {
			for i := 0; i < 2000; i++ {
				g.ProduceTick()
			}
		}, "tenants=%d", n)
	}
}

func TestArrivalGenerator_Budget_NeverNegativeAndNonIncreasing(t *testing.T) {
	// GIVEN tiny budgets so tenants exhaust quickly
	cfg := DefaultEnvConfig(4)
	cfg.BudgetMin, cfg.BudgetMax = 1, 30
	cfg.IdleProbability = 0.2
	g := NewArrivalGenerator(cfg, NewRandSource(0))
	g.Reset(NewSimulationKey(11))

	prev := g.RemainingSnapshot()
	for i := 0; i < 1000; i++ {
		arrivals := g.ProduceTick()
		cur := g.RemainingSnapshot()
		for tenant := range cur {
			require.GreaterOrEqual(t, cur[tenant], 0)
			require.Equal(t, prev[tenant]-arrivals[tenant], cur[tenant])
			require.LessOrEqual(t, arrivals[tenant], cfg.MaxArrivalsPerTick-1)
		}
		prev = cur
	}
	assert.Equal(t, 0, g.RemainingTotal(), "budgets should be exhausted after 1000 busy ticks")
}
