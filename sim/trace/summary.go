package trace

// TraceSummary aggregates statistics from a RunTrace.
type TraceSummary struct {
	TotalEpisodes       int
	TerminatedEpisodes  int
	TruncatedEpisodes   int
	TotalSteps          int
	MeanEpisodeReward   float64
	MaxEpisodeReward    float64
	OutcomeDistribution map[string]int // outcome → count of steps
	TenantDispatches    map[int]int    // tenant index → count of non-no-op actions
}

// Summarize computes aggregate statistics from a RunTrace.
// Safe for nil or empty traces (returns zero-value fields).
// Step-level fields are only populated for TraceLevelSteps traces.
func Summarize(rt *RunTrace) *TraceSummary {
	summary := &TraceSummary{
		OutcomeDistribution: make(map[string]int),
		TenantDispatches:    make(map[int]int),
	}
	if rt == nil {
		return summary
	}

	summary.TotalEpisodes = len(rt.Episodes)
	totalReward := 0.0
	for i, ep := range rt.Episodes {
		if ep.Terminated {
			summary.TerminatedEpisodes++
		}
		if ep.Truncated {
			summary.TruncatedEpisodes++
		}
		epReward := 0.0
		for _, s := range ep.Steps {
			summary.TotalSteps++
			epReward += s.Reward
			summary.OutcomeDistribution[s.Outcome]++
			if !s.NoOp {
				summary.TenantDispatches[s.Action]++
			}
		}
		totalReward += epReward
		if i == 0 || epReward > summary.MaxEpisodeReward {
			summary.MaxEpisodeReward = epReward
		}
	}
	if summary.TotalEpisodes > 0 {
		summary.MeanEpisodeReward = totalReward / float64(summary.TotalEpisodes)
	}
	return summary
}
