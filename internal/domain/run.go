package domain

import "time"

// Run trigger constants record which surface started a run.
const (
	TriggerAPI    = "api"
	TriggerWS     = "ws"
	TriggerCLI    = "cli"
	TriggerReport = "report"
)

// SimulationRun is a finished run held in the session registry.
type SimulationRun struct {
	RunID     string            // deterministic ID derived from the config
	CreatedAt time.Time         // registration time
	Trigger   string            // TriggerAPI | TriggerWS | TriggerCLI | TriggerReport
	Config    SimulationConfig  // the exact input that produced the records
	Records   []DailyRecord     // full daily output, day order
	Summary   SimulationSummary // derived statistics
}

// NamedConfig pairs a variation label with a fully resolved config.
type NamedConfig struct {
	Name   string
	Config SimulationConfig
}

// ComparisonEntry is one run inside a comparison.
type ComparisonEntry struct {
	Name    string // variation label, e.g. scenario ID or "base"
	RunID   string
	Config  SimulationConfig
	Summary SimulationSummary
}

// ComparisonResult holds side-by-side summaries for a base config and its
// variations, in request order with the base first.
type ComparisonResult struct {
	CreatedAt time.Time
	Entries   []ComparisonEntry
}
