// Package trace provides per-step decision recording for dispatch policy analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// StepRecord captures a single dispatch decision and what the environment did with it.
type StepRecord struct {
	Tick       int64   `json:"tick"`
	Action     int     `json:"action"`
	NoOp       bool    `json:"noop"`
	Outcome    string  `json:"outcome"`
	Reward     float64 `json:"reward"`
	Terminated bool    `json:"terminated"`
	QueueDepth []int   `json:"queue_depth"` // per tenant, after the tick's arrivals
	Arrivals   []int   `json:"arrivals"`    // per tenant, injected this tick
}

// EpisodeRecord groups the steps of one episode.
type EpisodeRecord struct {
	Seed       int64        `json:"seed"`
	Steps      []StepRecord `json:"steps"`
	Terminated bool         `json:"terminated"`
	Truncated  bool         `json:"truncated"`
}
