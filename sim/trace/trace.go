package trace

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelEpisodes keeps only per-episode outcomes.
	TraceLevelEpisodes TraceLevel = "episodes"
	// TraceLevelSteps captures every dispatch decision.
	TraceLevelSteps TraceLevel = "steps"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:     true,
	TraceLevelEpisodes: true,
	TraceLevelSteps:    true,
	"":                 true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// RunTrace collects episode records during a run of the dispatch simulator.
type RunTrace struct {
	RunID    string          `json:"run_id"`
	Level    TraceLevel      `json:"level"`
	Policy   string          `json:"policy"`
	Profile  string          `json:"profile"`
	Tenants  int             `json:"tenants"`
	Episodes []EpisodeRecord `json:"episodes"`
}

// NewRunTrace creates a RunTrace ready for recording.
func NewRunTrace(runID string, level TraceLevel) *RunTrace {
	return &RunTrace{
		RunID:    runID,
		Level:    level,
		Episodes: make([]EpisodeRecord, 0),
	}
}

// BeginEpisode opens a new episode record.
func (rt *RunTrace) BeginEpisode(seed int64) {
	rt.Episodes = append(rt.Episodes, EpisodeRecord{Seed: seed, Steps: make([]StepRecord, 0)})
}

// RecordStep appends a step to the current episode.
// Dropped unless the level is TraceLevelSteps.
func (rt *RunTrace) RecordStep(record StepRecord) {
	if rt.Level != TraceLevelSteps || len(rt.Episodes) == 0 {
		return
	}
	ep := &rt.Episodes[len(rt.Episodes)-1]
	ep.Steps = append(ep.Steps, record)
}

// EndEpisode closes the current episode with its final status.
func (rt *RunTrace) EndEpisode(terminated, truncated bool) {
	if len(rt.Episodes) == 0 {
		return
	}
	ep := &rt.Episodes[len(rt.Episodes)-1]
	ep.Terminated = terminated
	ep.Truncated = truncated
}

// WriteJSON writes the trace to path, indented.
func (rt *RunTrace) WriteJSON(path string) error {
	data, err := json.MarshalIndent(rt, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling trace")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "writing trace to %s", path)
	}
	return nil
}
