package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ArrivalGenerator produces per-tick task arrivals bounded by a per-tenant
// budget drawn once per episode. It exclusively owns the remaining budgets;
// callers only observe them through the query methods.
//
// Thread-safety: NOT thread-safe. One generator per Simulator.
type ArrivalGenerator struct {
	tenants         int
	budgetMin       int
	budgetMax       int
	idleProbability float64
	maxPerTick      int
	src             RandomSource
	remaining       []int
}

// NewArrivalGenerator creates a generator for cfg.Tenants tenants drawing from src.
// Budgets stay at zero until Reset is called.
func NewArrivalGenerator(cfg EnvConfig, src RandomSource) *ArrivalGenerator {
	if src == nil {
		panic("NewArrivalGenerator: src must not be nil")
	}
	return &ArrivalGenerator{
		tenants:         cfg.Tenants,
		budgetMin:       cfg.BudgetMin,
		budgetMax:       cfg.BudgetMax,
		idleProbability: cfg.IdleProbability,
		maxPerTick:      cfg.MaxArrivalsPerTick,
		src:             src,
		remaining:       make([]int, cfg.Tenants),
	}
}

// Reset reseeds the random source and draws a fresh budget for every tenant
// uniformly from [budgetMin, budgetMax).
func (g *ArrivalGenerator) Reset(key SimulationKey) {
	g.src.Seed(key)
	for t := range g.remaining {
		g.remaining[t] = g.src.NextIntRange(g.budgetMin, g.budgetMax)
	}
}

// ProduceTick returns the number of tasks arriving for each tenant this tick.
//
// With probability idleProbability nothing arrives. Otherwise a subset of
// tenants is chosen without replacement, of size uniform in [1, subsetLimit()),
// and each chosen tenant with budget left receives uniform [1, countLimit(t))
// tasks.
func (g *ArrivalGenerator) ProduceTick() []int {
	arrivals := make([]int, g.tenants)
	if g.src.NextUniform() < g.idleProbability {
		return arrivals
	}

	size := g.src.NextIntRange(1, g.subsetLimit())
	for _, t := range g.src.ChooseSubset(g.tenants, size) {
		if g.remaining[t] <= 0 {
			continue
		}
		n := g.src.NextIntRange(1, g.countLimit(t))
		g.remaining[t] -= n
		if g.remaining[t] < 0 {
			panic(fmt.Sprintf("ArrivalGenerator: tenant %d budget went negative (%d)", t, g.remaining[t]))
		}
		arrivals[t] = n
	}
	return arrivals
}

// subsetLimit is the exclusive upper bound on the subset size: ceil(N/2),
// clamped to 2 so that N < 3 still samples a single tenant.
func (g *ArrivalGenerator) subsetLimit() int {
	limit := (g.tenants + 1) / 2
	if limit < 2 {
		limit = 2
	}
	return limit
}

// countLimit is the exclusive upper bound on a tenant's arrival count:
// min(maxPerTick, remaining), clamped to 2 so a budget of 1 can still drain.
func (g *ArrivalGenerator) countLimit(t int) int {
	limit := min(g.maxPerTick, g.remaining[t])
	if limit < 2 {
		logrus.Debugf("tenant %d: arrival range clamped (remaining=%d)", t, g.remaining[t])
		limit = 2
	}
	return limit
}

// RemainingTotal returns the sum of all tenants' remaining budgets.
func (g *ArrivalGenerator) RemainingTotal() int {
	total := 0
	for _, r := range g.remaining {
		total += r
	}
	return total
}

// Remaining returns tenant t's remaining budget.
func (g *ArrivalGenerator) Remaining(t int) int {
	return g.remaining[t]
}

// TenantRemainingIsZero reports whether tenant t has exhausted its budget.
func (g *ArrivalGenerator) TenantRemainingIsZero(t int) bool {
	return g.remaining[t] == 0
}

// RemainingSnapshot returns a copy of all remaining budgets.
func (g *ArrivalGenerator) RemainingSnapshot() []int {
	out := make([]int, len(g.remaining))
	copy(out, g.remaining)
	return out
}
