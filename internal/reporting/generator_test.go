package reporting

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tokenomics-lab/internal/domain"
	"tokenomics-lab/internal/simulation"
	"tokenomics-lab/internal/storage/memory"
)

func fixedClock() func() time.Time {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return fixed }
}

func setupGenerator() *Generator {
	runner := simulation.NewRunner(simulation.RunnerOptions{
		RunStore: memory.NewRunStore(0),
		Logger:   log.New(os.Stdout, "[reporting-test] ", log.LstdFlags),
	})
	return NewGenerator(runner).WithClock(fixedClock())
}

func TestGenerator_Generate(t *testing.T) {
	ctx := context.Background()
	gen := setupGenerator()

	report, runs, err := gen.Generate(ctx, domain.DefaultConfig(), domain.Scenarios())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !report.GeneratedAt.Equal(fixedClock()()) {
		t.Errorf("GeneratedAt = %v, want injected clock time", report.GeneratedAt)
	}
	if report.TokenSymbol != "AVT" {
		t.Errorf("TokenSymbol = %s, want AVT", report.TokenSymbol)
	}

	// Configured run first, then one row per scenario.
	wantRows := 1 + len(domain.Scenarios())
	if len(report.ScenarioRows) != wantRows {
		t.Fatalf("Expected %d scenario rows, got %d", wantRows, len(report.ScenarioRows))
	}
	if report.ScenarioRows[0].ScenarioID != "configured" {
		t.Errorf("First row = %s, want configured", report.ScenarioRows[0].ScenarioID)
	}
	if report.ScenarioRows[1].ScenarioID != domain.ScenarioBear {
		t.Errorf("Second row = %s, want %s", report.ScenarioRows[1].ScenarioID, domain.ScenarioBear)
	}
	if report.ScenarioRows[1].YearlyPriceChangePct != -50 {
		t.Errorf("Bear row pct = %v, want -50", report.ScenarioRows[1].YearlyPriceChangePct)
	}
	if len(runs) != wantRows {
		t.Fatalf("Expected %d scenario runs, got %d", wantRows, len(runs))
	}

	if len(report.Estimates) != 4 {
		t.Errorf("Expected 4 day-one estimates, got %d", len(report.Estimates))
	}
	if len(report.Checks) != 3 {
		t.Errorf("Expected 3 sustainability checks, got %d", len(report.Checks))
	}
	// Stock parameters barely dent the supply, so every check holds.
	if !report.AllChecksPassed {
		t.Errorf("Default config should pass all checks: %+v", report.Checks)
	}
}

func TestGenerator_Generate_InvalidBase(t *testing.T) {
	ctx := context.Background()
	gen := setupGenerator()

	bad := domain.DefaultConfig()
	bad.InitialPrice = 0

	if _, _, err := gen.Generate(ctx, bad, domain.Scenarios()); err == nil {
		t.Fatal("Expected error for invalid base config")
	}
}

func TestGenerator_Generate_FailingChecks(t *testing.T) {
	ctx := context.Background()
	gen := setupGenerator()

	cfg := domain.SimulationConfig{
		InitialPrice:         0.01,
		YearlyPriceChangePct: 0,
		HorizonDays:          10,
		FixedSupply:          1_000,
		TokenSymbol:          "AVT",
		Services:             []domain.Service{{Name: "Mixer", BurnRate: 1.0, DailyVolume: 1_000_000}},
	}

	report, _, err := gen.Generate(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if report.AllChecksPassed {
		t.Error("Floor-hitting config should fail checks")
	}
	if report.Checks[0].Pass {
		t.Errorf("Supply floor check should fail: %+v", report.Checks[0])
	}
	if !strings.Contains(report.Checks[0].Actual, "day 1") {
		t.Errorf("Floor check actual = %q, want day 1 mention", report.Checks[0].Actual)
	}
}

func TestRenderMarkdown_Sections(t *testing.T) {
	ctx := context.Background()
	gen := setupGenerator()

	report, _, err := gen.Generate(ctx, domain.DefaultConfig(), domain.Scenarios())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	md := RenderMarkdown(report)

	wantParts := []string{
		"# Tokenomics Simulation Report",
		"Generated: 2025-06-01T12:00:00Z",
		"## Parameters",
		"## Services",
		"| Mixer | 2% | 25000 | 500.00 |",
		"| Merch-Shop | 20% | 5000 | 1000.00 |",
		"## Scenario Outcomes",
		"| configured |",
		"## Per-Service Burn (Base Run)",
		"## Sustainability Checks",
		"**All checks passed.**",
	}
	for _, part := range wantParts {
		if !strings.Contains(md, part) {
			t.Errorf("Markdown missing %q", part)
		}
	}
}

func TestWriteFiles(t *testing.T) {
	ctx := context.Background()
	gen := setupGenerator()

	report, runs, err := gen.Generate(ctx, domain.DefaultConfig(), domain.Scenarios())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	dir := t.TempDir()
	if err := WriteFiles(dir, report, runs); err != nil {
		t.Fatalf("WriteFiles failed: %v", err)
	}

	wantFiles := []string{
		"REPORT.md",
		"scenario_outcomes.csv",
		"simulation_configured.csv",
		"simulation_bear.csv",
		"simulation_flat.csv",
		"simulation_base.csv",
		"simulation_bull.csv",
		"simulation_mania.csv",
	}
	for _, f := range wantFiles {
		path := filepath.Join(dir, f)
		if _, err := os.Stat(path); err != nil {
			t.Errorf("Expected file %s: %v", f, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "REPORT.md"))
	if err != nil {
		t.Fatalf("Read report failed: %v", err)
	}
	if !strings.Contains(string(data), "# Tokenomics Simulation Report") {
		t.Error("REPORT.md missing title")
	}

	csvData, err := os.ReadFile(filepath.Join(dir, "simulation_configured.csv"))
	if err != nil {
		t.Fatalf("Read day table failed: %v", err)
	}
	firstLine := strings.SplitN(string(csvData), "\n", 2)[0]
	if !strings.HasPrefix(firstLine, "Day,Market Price (No Burn),Price with Burn") {
		t.Errorf("Day table header wrong: %s", firstLine)
	}
}

func TestBuildSeries(t *testing.T) {
	records, err := simulation.Run(domain.DefaultConfig())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	series := BuildSeries(records)

	if series.Len() != len(records) {
		t.Fatalf("Series length %d, want %d", series.Len(), len(records))
	}
	if series.Days[0] != 1 || series.Days[series.Len()-1] != len(records) {
		t.Errorf("Days column corrupt: first=%d last=%d", series.Days[0], series.Days[series.Len()-1])
	}
	mid := len(records) / 2
	if series.PriceWithBurn[mid] != records[mid].PriceWithBurn {
		t.Errorf("PriceWithBurn[%d] = %v, want %v", mid, series.PriceWithBurn[mid], records[mid].PriceWithBurn)
	}
	if series.RemainingSupply[mid] != records[mid].RemainingSupply {
		t.Errorf("RemainingSupply[%d] = %v, want %v", mid, series.RemainingSupply[mid], records[mid].RemainingSupply)
	}
}
