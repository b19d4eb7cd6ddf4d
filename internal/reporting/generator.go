package reporting

import (
	"context"
	"fmt"
	"time"

	"tokenomics-lab/internal/domain"
	"tokenomics-lab/internal/simulation"
)

// Generator produces scenario sweep reports.
type Generator struct {
	runner *simulation.Runner
	now    func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator(runner *simulation.Runner) *Generator {
	return &Generator{
		runner: runner,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate runs the base config and every scenario, then assembles the report.
// Steps:
//  1. Run the base config as configured
//  2. Run each market scenario applied to the base
//  3. Build the scenario outcome table, configured run first
//  4. Evaluate sustainability checks on the base run
func (g *Generator) Generate(ctx context.Context, base domain.SimulationConfig, scenarios []domain.MarketScenario) (*Report, []ScenarioRun, error) {
	// 1. Run the base config as configured
	baseRun, err := g.runner.Run(ctx, base, domain.TriggerReport)
	if err != nil {
		return nil, nil, err
	}

	runs := []ScenarioRun{{ScenarioID: "configured", Run: baseRun}}

	// 2. Run each market scenario applied to the base
	for _, s := range scenarios {
		run, err := g.runner.Run(ctx, s.Apply(base), domain.TriggerReport)
		if err != nil {
			return nil, nil, fmt.Errorf("scenario %s: %w", s.ScenarioID, err)
		}
		runs = append(runs, ScenarioRun{ScenarioID: s.ScenarioID, Run: run})
	}

	// 3. Build the scenario outcome table
	rows := make([]ScenarioRow, len(runs))
	for i, sr := range runs {
		rows[i] = buildScenarioRow(sr)
	}

	// 4. Evaluate sustainability checks on the base run
	checks := buildChecks(baseRun.Config, baseRun.Summary)
	allPassed := true
	for _, c := range checks {
		if !c.Pass {
			allPassed = false
			break
		}
	}

	return &Report{
		GeneratedAt:     g.now(),
		TokenSymbol:     base.TokenSymbol,
		BaseConfig:      baseRun.Config,
		BaseSummary:     baseRun.Summary,
		Estimates:       simulation.FirstDayEstimates(base),
		ScenarioRows:    rows,
		Checks:          checks,
		AllChecksPassed: allPassed,
	}, runs, nil
}

// buildScenarioRow flattens one scenario run into its table row.
func buildScenarioRow(sr ScenarioRun) ScenarioRow {
	summary := sr.Run.Summary
	return ScenarioRow{
		ScenarioID:           sr.ScenarioID,
		YearlyPriceChangePct: sr.Run.Config.YearlyPriceChangePct,
		RunID:                sr.Run.RunID,
		FinalPriceNoBurn:     summary.FinalPriceNoBurn,
		FinalPriceWithBurn:   summary.FinalPriceWithBurn,
		PriceUpliftPct:       summary.PriceUpliftPct,
		TotalBurned:          summary.TotalBurned,
		FinalSupply:          summary.FinalSupply,
		SupplyDepletedPct:    summary.SupplyDepletedPct,
		SupplyFloorDay:       summary.SupplyFloorDay,
	}
}

// buildChecks evaluates whether the configured burn schedule holds up
// over the horizon.
func buildChecks(cfg domain.SimulationConfig, summary domain.SimulationSummary) []SustainabilityCheckRow {
	floorActual := "never reached"
	if summary.SupplyFloorDay > 0 {
		floorActual = fmt.Sprintf("reached on day %d", summary.SupplyFloorDay)
	}

	retained := 0.0
	if cfg.FixedSupply > 0 {
		retained = summary.FinalSupply / cfg.FixedSupply * 100
	}

	return []SustainabilityCheckRow{
		{
			Name:      "Supply floor untouched",
			Threshold: "supply never burns down to 1 token",
			Actual:    floorActual,
			Pass:      summary.SupplyFloorDay == 0,
		},
		{
			Name:      "Supply retention",
			Threshold: fmt.Sprintf(">= %.0f%% of fixed supply remaining", RetentionThresholdPct),
			Actual:    fmt.Sprintf("%.2f%% remaining", retained),
			Pass:      retained >= RetentionThresholdPct,
		},
		{
			Name:      "Price uplift bounded",
			Threshold: fmt.Sprintf("uplift <= %.0f%% at horizon end", UpliftCeilingPct),
			Actual:    fmt.Sprintf("%.2f%%", summary.PriceUpliftPct),
			Pass:      summary.PriceUpliftPct <= UpliftCeilingPct,
		},
	}
}
