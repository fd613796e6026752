// Package sim provides the discrete-time multi-tenant dispatch simulator.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - arrival.go: ArrivalGenerator, the budget-bounded stochastic arrival process
//   - simulator.go: Reset/Step, the episode state machine and termination rule
//   - reward.go: baseline dispatch reward and timestamped-profile shaping
//
// # Tick Order
//
// Each Step applies the action (dispatch or no-op), computes the reward on the
// post-dispatch queues, advances the logical clock, then injects one tick of
// arrivals. Arrivals are visible from the next observation only.
//
// # Profiles
//
// ProfileCount uses queue depth only. ProfileTimestamped stamps every task
// with its arrival tick, keeps per-tenant moving averages of queue duration
// and depth, and adds latency and fairness shaping to the baseline reward.
//
// # Determinism
//
// All randomness flows through the RandomSource injected into the
// ArrivalGenerator. Same SimulationKey and same action sequence produce the
// same observations and rewards. Instances never share a source.
//
// Sub-packages:
//   - sim/policy/: dispatch policies (round-robin, longest-queue, random, ...)
//   - sim/trace/: per-step decision recording
package sim
