package sim

import (
	"bytes"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Profile selects how much per-tenant bookkeeping and reward shaping the simulator does.
type Profile string

const (
	// ProfileCount tracks queue depth only and uses the baseline reward.
	ProfileCount Profile = "count"
	// ProfileTimestamped tracks per-task arrival ticks, moving averages, and
	// folds latency and fairness shaping into the baseline reward.
	ProfileTimestamped Profile = "timestamped"
)

// validProfiles maps accepted profile strings.
var validProfiles = map[Profile]bool{
	ProfileCount:       true,
	ProfileTimestamped: true,
}

// IsValidProfile returns true if the given name is a recognized profile.
func IsValidProfile(name string) bool {
	return validProfiles[Profile(name)]
}

// RewardConfig groups every reward constant used by the simulator.
type RewardConfig struct {
	Idle              float64 `yaml:"idle"`               // no-op while tasks are pending
	InvalidPick       float64 `yaml:"invalid_pick"`       // dispatch on an empty tenant
	EmptySystem       float64 `yaml:"empty_system"`       // dispatch while nothing is pending anywhere
	Dispatch          float64 `yaml:"dispatch"`           // valid dispatch
	DrainBonus        float64 `yaml:"drain_bonus"`        // valid dispatch that empties the system
	TerminalBonus     float64 `yaml:"terminal_bonus"`     // replaces the step reward on termination
	ShapingFloor      float64 `yaml:"shaping_floor" validate:"lte=0"`
	FairnessThreshold float64 `yaml:"fairness_threshold" validate:"gte=0"`
	FairnessCap       float64 `yaml:"fairness_cap" validate:"gte=0"`
}

// EnvConfig configures one Simulator instance. Zero values are not defaults;
// start from DefaultEnvConfig and override.
type EnvConfig struct {
	Tenants            int          `yaml:"tenants" validate:"gte=1"`
	Profile            Profile      `yaml:"profile" validate:"required"`
	BudgetMin          int          `yaml:"budget_min" validate:"gte=0"`
	BudgetMax          int          `yaml:"budget_max" validate:"gtfield=BudgetMin"`
	IdleProbability    float64      `yaml:"idle_probability" validate:"gte=0,lt=1"`
	MaxArrivalsPerTick int          `yaml:"max_arrivals_per_tick" validate:"gte=2"`
	SmoothingFactor    float64      `yaml:"smoothing_factor" validate:"gte=0,lte=1"`
	Rewards            RewardConfig `yaml:"rewards"`
}

// DefaultEnvConfig returns the reference configuration for n tenants.
func DefaultEnvConfig(n int) EnvConfig {
	return EnvConfig{
		Tenants:            n,
		Profile:            ProfileCount,
		BudgetMin:          10000,
		BudgetMax:          100000,
		IdleProbability:    0.8,
		MaxArrivalsPerTick: 50,
		SmoothingFactor:    0.9,
		Rewards: RewardConfig{
			Idle:              -10,
			InvalidPick:       -1,
			EmptySystem:       -5,
			Dispatch:          1,
			DrainBonus:        10,
			TerminalBonus:     100,
			ShapingFloor:      -5,
			FairnessThreshold: 1.0,
			FairnessCap:       5,
		},
	}
}

var validate = validator.New()

// Validate checks field ranges and the profile name.
func (c EnvConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if !validProfiles[c.Profile] {
		return errors.Wrapf(ErrInvalidConfig, "unknown profile %q; valid: count, timestamped", c.Profile)
	}
	return nil
}

// LoadEnvConfig reads a YAML env config layered over DefaultEnvConfig(5).
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadEnvConfig(path string) (EnvConfig, error) {
	cfg := DefaultEnvConfig(5)
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "reading env config")
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, errors.Wrap(err, "parsing env config")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
