package policy

import (
	"fmt"
	"math/rand"

	"github.com/inference-sim/dispatch-sim/sim"
)

// validPolicies maps accepted dispatch policy names.
var validPolicies = map[string]bool{
	"idle":          true,
	"round-robin":   true,
	"longest-queue": true,
	"longest-wait":  true,
	"random":        true,
}

// IsValidDispatchPolicy returns true if name is a recognized dispatch policy.
func IsValidDispatchPolicy(name string) bool {
	return validPolicies[name]
}

// noOp returns the no-op sentinel for obs.
func noOp(obs sim.Observation) sim.Action {
	return sim.Action(len(obs.TasksQueue))
}

// Idle never dispatches. Useful as a lower bound.
type Idle struct{}

// Choose implements sim.DispatchPolicy.
func (Idle) Choose(obs sim.Observation) sim.Action {
	return noOp(obs)
}

// RoundRobin cycles through tenants, skipping empty queues.
// Returns no-op when every queue is empty.
type RoundRobin struct {
	counter int
}

// Choose implements sim.DispatchPolicy.
func (rr *RoundRobin) Choose(obs sim.Observation) sim.Action {
	n := len(obs.TasksQueue)
	for i := 0; i < n; i++ {
		t := (rr.counter + i) % n
		if obs.TasksQueue[t] > 0 {
			rr.counter = t + 1
			return sim.Action(t)
		}
	}
	return noOp(obs)
}

// LongestQueue dispatches from the tenant with the most pending tasks.
// Ties are broken by lowest tenant index.
type LongestQueue struct{}

// Choose implements sim.DispatchPolicy.
func (LongestQueue) Choose(obs sim.Observation) sim.Action {
	best, bestDepth := -1, 0
	for t, d := range obs.TasksQueue {
		if d > bestDepth {
			best, bestDepth = t, d
		}
	}
	if best < 0 {
		return noOp(obs)
	}
	return sim.Action(best)
}

// LongestWait dispatches from the non-empty tenant with the highest moving
// average queue duration. Falls back to LongestQueue when the observation
// carries no moving averages (count profile).
type LongestWait struct{}

// Choose implements sim.DispatchPolicy.
func (LongestWait) Choose(obs sim.Observation) sim.Action {
	if obs.MATasksDuration == nil {
		return LongestQueue{}.Choose(obs)
	}
	best, bestWait := -1, -1.0
	for t, d := range obs.TasksQueue {
		if d > 0 && obs.MATasksDuration[t] > bestWait {
			best, bestWait = t, obs.MATasksDuration[t]
		}
	}
	if best < 0 {
		return noOp(obs)
	}
	return sim.Action(best)
}

// Random picks uniformly among all actions, no-op included.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a Random policy. rng should come from the policy subsystem
// of a sim.PartitionedRNG so it never perturbs the arrival stream.
func NewRandom(rng *rand.Rand) *Random {
	if rng == nil {
		panic("NewRandom: rng must not be nil")
	}
	return &Random{rng: rng}
}

// Choose implements sim.DispatchPolicy.
func (r *Random) Choose(obs sim.Observation) sim.Action {
	return sim.Action(r.rng.Intn(len(obs.TasksQueue) + 1))
}

// NewDispatchPolicy creates a dispatch policy by name.
// Valid names: "idle", "round-robin", "longest-queue", "longest-wait", "random".
// rng is only used by "random".
func NewDispatchPolicy(name string, rng *rand.Rand) sim.DispatchPolicy {
	switch name {
	case "idle":
		return Idle{}
	case "round-robin":
		return &RoundRobin{}
	case "longest-queue":
		return LongestQueue{}
	case "longest-wait":
		return LongestWait{}
	case "random":
		return NewRandom(rng)
	default:
		panic(fmt.Sprintf("unknown dispatch policy %q; valid policies: [idle, round-robin, longest-queue, longest-wait, random]", name))
	}
}
