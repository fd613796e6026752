package sim

import (
	"hash/fnv"
	"math/rand"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible episode.
// Two episodes with the same SimulationKey, configuration and action sequence
// MUST produce bit-for-bit identical observations and rewards.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemArrivals is the RNG subsystem for task arrivals.
	// Uses master seed directly so --seed maps 1:1 onto the arrival stream.
	SubsystemArrivals = "arrivals"

	// SubsystemPolicy is the RNG subsystem for randomized dispatch policies.
	SubsystemPolicy = "policy"
)

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula:
//   - For SubsystemArrivals: uses masterSeed directly
//   - For all other subsystems: masterSeed XOR fnv1a64(subsystemName)
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	var derivedSeed int64
	if name == SubsystemArrivals {
		derivedSeed = int64(p.key)
	} else {
		derivedSeed = int64(p.key) ^ fnv1a64(name)
	}

	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

// === RandomSource ===

// RandomSource is the only source of randomness the ArrivalGenerator draws from.
// Implementations must be deterministic for a given seed.
type RandomSource interface {
	// Seed rewinds the source to the start of the stream for key.
	Seed(key SimulationKey)
	// NextUniform returns a float in [0, 1).
	NextUniform() float64
	// NextIntRange returns an int in [lo, hi). Requires hi > lo.
	NextIntRange(lo, hi int) int
	// ChooseSubset returns k distinct indices from [0, n), k <= n.
	ChooseSubset(n, k int) []int
}

// RandSource adapts the arrivals subsystem of a PartitionedRNG to RandomSource.
// Each Seed call builds a fresh PartitionedRNG so a reseed never inherits state.
type RandSource struct {
	partitioned *PartitionedRNG
	rng         *rand.Rand
}

// NewRandSource creates a RandSource seeded with key.
func NewRandSource(key SimulationKey) *RandSource {
	rs := &RandSource{}
	rs.Seed(key)
	return rs
}

// Seed implements RandomSource.
func (rs *RandSource) Seed(key SimulationKey) {
	rs.partitioned = NewPartitionedRNG(key)
	rs.rng = rs.partitioned.ForSubsystem(SubsystemArrivals)
}

// NextUniform implements RandomSource.
func (rs *RandSource) NextUniform() float64 {
	return rs.rng.Float64()
}

// NextIntRange implements RandomSource.
func (rs *RandSource) NextIntRange(lo, hi int) int {
	if hi <= lo {
		panic("RandSource.NextIntRange: empty range")
	}
	return lo + rs.rng.Intn(hi-lo)
}

// ChooseSubset implements RandomSource.
func (rs *RandSource) ChooseSubset(n, k int) []int {
	if k < 0 || k > n {
		panic("RandSource.ChooseSubset: k out of range")
	}
	return rs.rng.Perm(n)[:k]
}
