package reporting

import (
	"time"

	"tokenomics-lab/internal/domain"
)

// Sustainability check thresholds.
const (
	RetentionThresholdPct = 50.0  // minimum share of fixed supply left at horizon end
	UpliftCeilingPct      = 100.0 // maximum tolerated with-burn price premium
)

// Report is the scenario sweep report structure.
type Report struct {
	// Metadata
	GeneratedAt time.Time
	TokenSymbol string

	// Base run
	BaseConfig  domain.SimulationConfig
	BaseSummary domain.SimulationSummary

	// Estimates holds day-one burn previews for the base config.
	Estimates []domain.ServiceBurn

	// ScenarioRows compare outcomes across market scenarios, the
	// configured trajectory first.
	ScenarioRows []ScenarioRow

	// Sustainability checks evaluated on the base run
	Checks          []SustainabilityCheckRow
	AllChecksPassed bool
}

// ScenarioRow represents one row in the scenario outcome table.
type ScenarioRow struct {
	ScenarioID           string
	YearlyPriceChangePct float64
	RunID                string
	FinalPriceNoBurn     float64
	FinalPriceWithBurn   float64
	PriceUpliftPct       float64
	TotalBurned          float64
	FinalSupply          float64
	SupplyDepletedPct    float64
	SupplyFloorDay       int // 0 when the floor is never reached
}

// SustainabilityCheckRow represents one sustainability criterion.
type SustainabilityCheckRow struct {
	Name      string
	Threshold string
	Actual    string
	Pass      bool
}

// ScenarioRun pairs a scenario with its finished run, so callers can emit
// per-scenario artifacts next to the report.
type ScenarioRun struct {
	ScenarioID string
	Run        *domain.SimulationRun
}
