// Tracks per-episode dispatch statistics: outcome counts, arrivals, rewards and queue depth.

package sim

import (
	"fmt"

	metrics "github.com/rcrowley/go-metrics"
)

const (
	metricArrivals   = "arrivals.tasks"
	metricReward     = "reward"
	metricDepth      = "queue.depth"
	metricPeakDepth  = "queue.depth.peak"
	metricOutcomePfx = "outcome."
)

// Metrics aggregates statistics about the current episode for final reporting.
// Every Simulator owns its own registry so parallel instances never share counters.
type Metrics struct {
	Registry metrics.Registry

	arrivals  metrics.Counter
	reward    metrics.Histogram
	depth     metrics.Gauge
	peakDepth metrics.Gauge
}

// NewMetrics creates a Metrics backed by a fresh registry.
func NewMetrics() *Metrics {
	r := metrics.NewRegistry()
	return &Metrics{
		Registry:  r,
		arrivals:  metrics.GetOrRegisterCounter(metricArrivals, r),
		reward:    metrics.GetOrRegisterHistogram(metricReward, r, metrics.NewUniformSample(1028)),
		depth:     metrics.GetOrRegisterGauge(metricDepth, r),
		peakDepth: metrics.GetOrRegisterGauge(metricPeakDepth, r),
	}
}

// Clear zeroes every registered metric.
func (m *Metrics) Clear() {
	m.arrivals.Clear()
	m.reward.Clear()
	m.depth.Update(0)
	m.peakDepth.Update(0)
	m.Registry.Each(func(name string, i interface{}) {
		if c, ok := i.(metrics.Counter); ok {
			c.Clear()
		}
	})
}

// RecordArrivals adds the tasks injected this tick.
func (m *Metrics) RecordArrivals(n int) {
	m.arrivals.Inc(int64(n))
}

// RecordStep records the outcome and final reward of one step.
func (m *Metrics) RecordStep(outcome DispatchOutcome, reward float64) {
	metrics.GetOrRegisterCounter(metricOutcomePfx+string(outcome), m.Registry).Inc(1)
	// histogram samples are int64; keep two decimals of shaping
	m.reward.Update(int64(reward * 100))
}

// RecordDepth tracks the current and peak total queue depth.
func (m *Metrics) RecordDepth(depth int) {
	m.depth.Update(int64(depth))
	if int64(depth) > m.peakDepth.Value() {
		m.peakDepth.Update(int64(depth))
	}
}

// OutcomeCount returns how many steps ended with outcome.
func (m *Metrics) OutcomeCount(outcome DispatchOutcome) int64 {
	if c, ok := m.Registry.Get(metricOutcomePfx + string(outcome)).(metrics.Counter); ok {
		return c.Count()
	}
	return 0
}

// TotalArrivals returns the number of tasks injected this episode.
func (m *Metrics) TotalArrivals() int64 {
	return m.arrivals.Count()
}

// PeakDepth returns the largest total queue depth seen this episode.
func (m *Metrics) PeakDepth() int64 {
	return m.peakDepth.Value()
}

// Print displays aggregated metrics at the end of an episode.
func (m *Metrics) Print(steps int) {
	fmt.Println("=== Episode Metrics ===")
	fmt.Printf("Steps                : %d\n", steps)
	fmt.Printf("Arrived Tasks        : %d\n", m.arrivals.Count())
	fmt.Printf("Peak Queue Depth     : %d\n", m.peakDepth.Value())
	for _, o := range allOutcomes {
		fmt.Printf("%-21s: %d\n", "Outcome "+string(o), m.OutcomeCount(o))
	}
	if steps > 0 {
		snap := m.reward.Snapshot()
		fmt.Printf("Mean Step Reward     : %.2f\n", snap.Mean()/100)
		fmt.Printf("Min/Max Step Reward  : %.2f / %.2f\n", float64(snap.Min())/100, float64(snap.Max())/100)
	}
}
