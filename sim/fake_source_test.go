package sim

import "fmt"

// scriptedSource is a RandomSource that replays scripted draws.
// Exhausted uniforms return 0 (which reads as "no arrivals" under the
// default idle probability); exhausted int ranges return lo.
type scriptedSource struct {
	uniforms []float64
	ints     []int
	subsets  [][]int
	seeds    []SimulationKey
}

func (s *scriptedSource) Seed(key SimulationKey) {
	s.seeds = append(s.seeds, key)
}

func (s *scriptedSource) NextUniform() float64 {
	if len(s.uniforms) == 0 {
		return 0
	}
	v := s.uniforms[0]
	s.uniforms = s.uniforms[1:]
	return v
}

func (s *scriptedSource) NextIntRange(lo, hi int) int {
	if len(s.ints) == 0 {
		return lo
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v < lo || v >= hi {
		panic(fmt.Sprintf("scripted int %d outside [%d, %d)", v, lo, hi))
	}
	return v
}

func (s *scriptedSource) ChooseSubset(n, k int) []int {
	if len(s.subsets) == 0 {
		out := make([]int, k)
		for i := range out {
			out[i] = i
		}
		return out
	}
	v := s.subsets[0]
	s.subsets = s.subsets[1:]
	if len(v) != k {
		panic(fmt.Sprintf("scripted subset %v has size %d, want %d", v, len(v), k))
	}
	return v
}

// arrivalTick scripts one non-idle tick in which each tenant in order
// receives counts[i] tasks. Assumes the subset size range admits len(order).
func (s *scriptedSource) arrivalTick(order []int, counts []int) {
	s.uniforms = append(s.uniforms, 0.95)
	s.ints = append(s.ints, len(order))
	s.subsets = append(s.subsets, order)
	s.ints = append(s.ints, counts...)
}

// scenarioConfig allows scripted budgets below the reference range.
func scenarioConfig(n int, profile Profile) EnvConfig {
	cfg := DefaultEnvConfig(n)
	cfg.Profile = profile
	cfg.BudgetMin = 0
	return cfg
}
