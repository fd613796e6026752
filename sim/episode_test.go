package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drainFirst dispatches from the first non-empty tenant, else no-ops.
type drainFirst struct{}

func (drainFirst) Choose(obs Observation) Action {
	for t, d := range obs.TasksQueue {
		if d > 0 {
			return Action(t)
		}
	}
	return Action(len(obs.TasksQueue))
}

// alwaysAction replays a fixed action, in-domain or not.
type alwaysAction Action

func (a alwaysAction) Choose(Observation) Action { return Action(a) }

func TestRunEpisode_TerminatesWithGreedyPolicy(t *testing.T) {
	// GIVEN small budgets so a greedy dispatcher can drain everything
	cfg := DefaultEnvConfig(3)
	cfg.BudgetMin, cfg.BudgetMax = 1, 20
	s, err := NewSimulator(cfg, NewRandSource(0))
	require.NoError(t, err)

	steps := 0
	res, err := RunEpisode(s, drainFirst{}, NewSimulationKey(8), 100000, func(Action, StepResult) { steps++ })

	require.NoError(t, err)
	assert.True(t, res.Terminated)
	assert.False(t, res.Truncated)
	assert.Equal(t, steps, res.Steps)
	assert.Equal(t, 0, s.TotalDepth())
	assert.Equal(t, 0, s.Arrivals.RemainingTotal())
}

func TestRunEpisode_TruncatesAtDefaultCap(t *testing.T) {
	s, err := NewSimulator(DefaultEnvConfig(5), NewRandSource(0))
	require.NoError(t, err)

	res, err := RunEpisode(s, drainFirst{}, NewSimulationKey(1), 0, nil)

	require.NoError(t, err)
	assert.True(t, res.Truncated)
	assert.False(t, res.Terminated)
	assert.Equal(t, DefaultMaxEpisodeSteps, res.Steps)
}

func TestRunEpisode_AccumulatesReward(t *testing.T) {
	s, err := NewSimulator(DefaultEnvConfig(4), NewRandSource(0))
	require.NoError(t, err)

	total := 0.0
	res, err := RunEpisode(s, drainFirst{}, NewSimulationKey(3), 50, func(_ Action, r StepResult) { total += r.Reward })

	require.NoError(t, err)
	assert.Equal(t, total, res.TotalReward)
}

func TestRunEpisode_InvalidActionStops(t *testing.T) {
	s, err := NewSimulator(DefaultEnvConfig(2), NewRandSource(0))
	require.NoError(t, err)

	_, err = RunEpisode(s, alwaysAction(7), NewSimulationKey(1), 10, nil)

	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestRunEpisode_NilPolicy(t *testing.T) {
	s, err := NewSimulator(DefaultEnvConfig(2), NewRandSource(0))
	require.NoError(t, err)
	_, err = RunEpisode(s, nil, NewSimulationKey(1), 10, nil)
	assert.Error(t, err)
}
