// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Action is a dispatch decision: a tenant index in [0, N) or the no-op
// sentinel N (see Simulator.NoOp).
type Action int

// SimState is the episode lifecycle state of a Simulator.
type SimState int

const (
	StateUninitialized SimState = iota
	StateReady
	StateTerminated
)

func (s SimState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateTerminated:
		return "terminated"
	}
	return fmt.Sprintf("SimState(%d)", int(s))
}

// Info carries per-tick diagnostics that are not part of the observation.
type Info struct {
	Tick      int64           // logical clock after the step
	Arrivals  []int           // tasks injected this tick, per tenant
	Remaining []int           // arrival budgets left after injection, per tenant
	Outcome   DispatchOutcome // empty after Reset
}

// StepResult is everything Step reports back to the caller.
type StepResult struct {
	Observation Observation
	Reward      float64
	Terminated  bool
	Truncated   bool // always false; step caps belong to the caller
	Info        Info
}

// Simulator is the episodic dispatch environment: it owns the per-tenant
// queues, the moving statistics and the logical clock, and pulls arrivals
// from its ArrivalGenerator once per tick.
//
// Thread-safety: NOT thread-safe. Use one instance per goroutine.
type Simulator struct {
	cfg EnvConfig
	// Clock is the logical tick counter; arrivals are stamped with it.
	Clock    int64
	Queues   []TenantQueue
	Arrivals *ArrivalGenerator
	Metrics  *Metrics
	// StepCount counts successful Step calls since the last Reset.
	StepCount int

	maDuration []MovingAverage
	maNumber   []MovingAverage
	state      SimState
}

// NewSimulator validates cfg and builds a Simulator drawing all randomness from src.
func NewSimulator(cfg EnvConfig, src RandomSource) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, errors.New("NewSimulator: random source must not be nil")
	}
	return &Simulator{
		cfg:        cfg,
		Queues:     make([]TenantQueue, cfg.Tenants),
		Arrivals:   NewArrivalGenerator(cfg, src),
		Metrics:    NewMetrics(),
		maDuration: newMovingAverages(cfg.Tenants, cfg.SmoothingFactor),
		maNumber:   newMovingAverages(cfg.Tenants, cfg.SmoothingFactor),
		state:      StateUninitialized,
	}, nil
}

func newMovingAverages(n int, factor float64) []MovingAverage {
	out := make([]MovingAverage, n)
	for i := range out {
		out[i].Factor = factor
	}
	return out
}

// Config returns the configuration the simulator was built with.
func (sim *Simulator) Config() EnvConfig {
	return sim.cfg
}

// State returns the episode lifecycle state.
func (sim *Simulator) State() SimState {
	return sim.state
}

// NoOp returns the canonical "dispatch nothing" action, Action(N).
func (sim *Simulator) NoOp() Action {
	return Action(sim.cfg.Tenants)
}

// TotalDepth returns the number of pending tasks across all tenants.
func (sim *Simulator) TotalDepth() int {
	total := 0
	for i := range sim.Queues {
		total += sim.Queues[i].Len()
	}
	return total
}

// Reset starts a new episode seeded with key and returns the first observation.
// Legal from any state.
func (sim *Simulator) Reset(key SimulationKey) (Observation, Info) {
	sim.Clock = 0
	sim.StepCount = 0
	for i := range sim.Queues {
		sim.Queues[i].Clear()
		sim.maDuration[i].Value = 0
		sim.maNumber[i].Value = 0
	}
	sim.Metrics.Clear()

	sim.Arrivals.Reset(key)
	arrivals := sim.injectArrivals()
	sim.state = StateReady

	logrus.Infof("[tick %07d] Episode reset: seed=%d tenants=%d profile=%s depth=%d budget=%d",
		sim.Clock, int64(key), sim.cfg.Tenants, sim.cfg.Profile, sim.TotalDepth(), sim.Arrivals.RemainingTotal())
	return sim.observation(), sim.info(arrivals, "")
}

// Step applies action, injects one tick of arrivals and reports the reward.
//
// Errors:
//   - ErrNotReset if Reset was never called or the episode has terminated.
//   - ErrInvalidAction if action is outside [0, N]. No state is mutated.
func (sim *Simulator) Step(action Action) (StepResult, error) {
	switch sim.state {
	case StateUninitialized:
		return StepResult{}, ErrNotReset
	case StateTerminated:
		return StepResult{}, errors.Wrap(ErrNotReset, "episode already terminated")
	}
	if action < 0 || action > sim.NoOp() {
		return StepResult{}, errors.Wrapf(ErrInvalidAction, "action %d outside [0, %d]", action, sim.NoOp())
	}

	outcome, reward := sim.applyAction(action, sim.TotalDepth())
	if sim.cfg.Profile == ProfileTimestamped {
		reward += sim.shapingReward()
	}
	drained := sim.TotalDepth()

	sim.Clock++
	arrivals := sim.injectArrivals()

	terminated := drained == 0 && Sum(arrivals) == 0 && sim.Arrivals.RemainingTotal() == 0
	if terminated {
		reward = sim.cfg.Rewards.TerminalBonus
		sim.state = StateTerminated
	}
	sim.StepCount++
	sim.checkInvariants()
	sim.Metrics.RecordStep(outcome, reward)

	logrus.Debugf("[tick %07d] action=%d outcome=%s reward=%.2f depth=%d budget=%d",
		sim.Clock, action, outcome, reward, sim.TotalDepth(), sim.Arrivals.RemainingTotal())
	if terminated {
		logrus.Infof("[tick %07d] Episode terminated after %d steps", sim.Clock, sim.StepCount)
	}

	return StepResult{
		Observation: sim.observation(),
		Reward:      reward,
		Terminated:  terminated,
		Truncated:   false,
		Info:        sim.info(arrivals, outcome),
	}, nil
}

// injectArrivals pulls one tick from the generator and stamps the new tasks
// with the current clock.
func (sim *Simulator) injectArrivals() []int {
	arrivals := sim.Arrivals.ProduceTick()
	for t, n := range arrivals {
		sim.Queues[t].Enqueue(sim.Clock, n)
	}
	sim.Metrics.RecordArrivals(Sum(arrivals))
	sim.Metrics.RecordDepth(sim.TotalDepth())
	return arrivals
}

// checkInvariants panics on states that only a logic defect can produce.
func (sim *Simulator) checkInvariants() {
	for t := range sim.Queues {
		if r := sim.Arrivals.Remaining(t); r < 0 {
			panic(fmt.Sprintf("invariant violated: tenant %d remaining budget %d < 0", t, r))
		}
	}
	if sim.state == StateTerminated && sim.TotalDepth() != 0 {
		panic(fmt.Sprintf("invariant violated: terminated with %d pending tasks", sim.TotalDepth()))
	}
}

func (sim *Simulator) info(arrivals []int, outcome DispatchOutcome) Info {
	return Info{
		Tick:      sim.Clock,
		Arrivals:  arrivals,
		Remaining: sim.Arrivals.RemainingSnapshot(),
		Outcome:   outcome,
	}
}
