package sim

import "math"

// DispatchOutcome classifies what a single Step did with its action.
type DispatchOutcome string

const (
	OutcomeDispatched  DispatchOutcome = "dispatched"   // one task removed, tasks still pending
	OutcomeDrained     DispatchOutcome = "drained"      // one task removed, system now empty
	OutcomeIdle        DispatchOutcome = "idle"         // no-op while tasks were pending
	OutcomeIdleEmpty   DispatchOutcome = "idle-empty"   // no-op on an empty system
	OutcomeInvalidPick DispatchOutcome = "invalid-pick" // dispatch on an empty tenant
	OutcomeEmptySystem DispatchOutcome = "empty-system" // dispatch while nothing was pending anywhere
)

var allOutcomes = []DispatchOutcome{
	OutcomeDispatched, OutcomeDrained, OutcomeIdle, OutcomeIdleEmpty, OutcomeInvalidPick, OutcomeEmptySystem,
}

// applyAction performs the dispatch (if any) and returns its outcome and
// baseline reward. total is the system-wide depth before the action.
//
// Global emptiness is checked before per-tenant emptiness, so a dispatch on
// an empty system is always OutcomeEmptySystem.
func (sim *Simulator) applyAction(action Action, total int) (DispatchOutcome, float64) {
	r := sim.cfg.Rewards
	switch {
	case action == sim.NoOp():
		if total > 0 {
			return OutcomeIdle, r.Idle
		}
		return OutcomeIdleEmpty, 0
	case total == 0:
		return OutcomeEmptySystem, r.EmptySystem
	case sim.Queues[action].Len() == 0:
		return OutcomeInvalidPick, r.InvalidPick
	}

	if _, ok := sim.Queues[action].Dequeue(); !ok {
		panic("applyAction: dequeue from non-empty queue failed")
	}
	if total-1 == 0 {
		return OutcomeDrained, r.Dispatch + r.DrainBonus
	}
	return OutcomeDispatched, r.Dispatch
}

// shapingReward folds per-tenant latency/depth trends and cross-tenant
// fairness into the reward, then advances the moving averages.
// Only used by ProfileTimestamped; must run after the dispatch and before
// the tick's arrivals are injected.
func (sim *Simulator) shapingReward() float64 {
	r := sim.cfg.Rewards
	n := float64(sim.cfg.Tenants)
	reward := 0.0
	timePerTask := make([]float64, sim.cfg.Tenants)

	for t := range sim.Queues {
		depth := float64(sim.Queues[t].Len())
		duration := 0.0
		if depth >= 1 {
			duration = float64(sim.Queues[t].Span())
			timePerTask[t] = duration / depth
			reward += math.Max(r.ShapingFloor, (sim.maDuration[t].Value-duration)/n)
			reward += math.Max(r.ShapingFloor, (sim.maNumber[t].Value-depth)/n)
		}
		sim.maDuration[t].Update(duration)
		sim.maNumber[t].Update(depth)
	}

	if spread := CalculateStdDev(timePerTask); spread > r.FairnessThreshold {
		reward -= math.Min(r.FairnessCap, spread)
	}
	return reward
}
