package sim

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultMaxEpisodeSteps is the step cap applied when a caller passes 0.
const DefaultMaxEpisodeSteps = 300

// DispatchPolicy chooses the next action from an observation.
// The no-op sentinel is Action(len(obs.TasksQueue)).
type DispatchPolicy interface {
	Choose(obs Observation) Action
}

// StepObserver is called after every successful step of RunEpisode.
type StepObserver func(action Action, res StepResult)

// EpisodeResult summarizes one RunEpisode call.
type EpisodeResult struct {
	Key         SimulationKey
	Steps       int
	TotalReward float64
	Terminated  bool
	Truncated   bool // step cap reached before termination
}

// RunEpisode resets sim with key and steps it with policy until the episode
// terminates or maxSteps steps have run (0 means DefaultMaxEpisodeSteps).
// observe may be nil.
func RunEpisode(sim *Simulator, policy DispatchPolicy, key SimulationKey, maxSteps int, observe StepObserver) (EpisodeResult, error) {
	if policy == nil {
		return EpisodeResult{}, errors.New("RunEpisode: policy must not be nil")
	}
	if maxSteps <= 0 {
		maxSteps = DefaultMaxEpisodeSteps
	}

	result := EpisodeResult{Key: key}
	obs, _ := sim.Reset(key)
	for result.Steps < maxSteps {
		action := policy.Choose(obs)
		res, err := sim.Step(action)
		if err != nil {
			return result, errors.Wrapf(err, "step %d", result.Steps)
		}
		result.Steps++
		result.TotalReward += res.Reward
		if observe != nil {
			observe(action, res)
		}
		obs = res.Observation
		if res.Terminated {
			result.Terminated = true
			return result, nil
		}
	}
	result.Truncated = true
	logrus.Infof("Episode seed=%d truncated at %d steps (depth=%d, budget=%d)",
		int64(key), result.Steps, sim.TotalDepth(), sim.Arrivals.RemainingTotal())
	return result, nil
}
