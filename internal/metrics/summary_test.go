package metrics_test

import (
	"math"
	"testing"

	"tokenomics-lab/internal/domain"
	"tokenomics-lab/internal/metrics"
	"tokenomics-lab/internal/simulation"
)

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func mustRun(t *testing.T, cfg domain.SimulationConfig) []domain.DailyRecord {
	t.Helper()
	records, err := simulation.Run(cfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return records
}

func TestSummarize_EmptyRecords(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.HorizonDays = 0

	summary := metrics.Summarize(cfg, mustRun(t, cfg))

	if summary.HorizonDays != 0 {
		t.Errorf("HorizonDays = %d, want 0", summary.HorizonDays)
	}
	if summary.FinalSupply != cfg.FixedSupply {
		t.Errorf("FinalSupply = %v, want untouched %v", summary.FinalSupply, cfg.FixedSupply)
	}
	if summary.TotalBurned != 0 || summary.AvgDailyBurn != 0 {
		t.Errorf("Expected zero burn stats, got total=%v avg=%v", summary.TotalBurned, summary.AvgDailyBurn)
	}
	if len(summary.Services) != len(cfg.Services) {
		t.Fatalf("Expected %d echoed services, got %d", len(cfg.Services), len(summary.Services))
	}
	if summary.Services[0].Service != "Mixer" || summary.Services[0].BurnRate != 0.02 {
		t.Errorf("Service echo wrong: %+v", summary.Services[0])
	}
}

func TestSummarize_SingleDay(t *testing.T) {
	cfg := domain.SimulationConfig{
		InitialPrice:         1.0,
		YearlyPriceChangePct: 0,
		HorizonDays:          1,
		FixedSupply:          domain.DefaultFixedSupply,
		TokenSymbol:          "AVT",
		Services:             []domain.Service{{Name: "Mixer", BurnRate: 0.02, DailyVolume: 25_000}},
	}

	summary := metrics.Summarize(cfg, mustRun(t, cfg))

	if summary.HorizonDays != 1 {
		t.Errorf("HorizonDays = %d, want 1", summary.HorizonDays)
	}
	if !floatEquals(summary.TotalBurned, 500) {
		t.Errorf("TotalBurned = %v, want 500", summary.TotalBurned)
	}
	if !floatEquals(summary.FinalSupply, 99_999_500) {
		t.Errorf("FinalSupply = %v, want 99999500", summary.FinalSupply)
	}
	if !floatEquals(summary.AvgDailyBurn, 500) {
		t.Errorf("AvgDailyBurn = %v, want 500", summary.AvgDailyBurn)
	}
	if !floatEquals(summary.SupplyDepletedPct, 0.0005) {
		t.Errorf("SupplyDepletedPct = %v, want 0.0005", summary.SupplyDepletedPct)
	}
	if !floatEquals(summary.PriceUpliftPct, 0) {
		t.Errorf("PriceUpliftPct = %v, want 0 on day one", summary.PriceUpliftPct)
	}
	if summary.PeakDailyBurnDay != 1 || !floatEquals(summary.PeakDailyBurn, 500) {
		t.Errorf("Peak = %v on day %d, want 500 on day 1", summary.PeakDailyBurn, summary.PeakDailyBurnDay)
	}
	if summary.SupplyFloorDay != 0 {
		t.Errorf("SupplyFloorDay = %d, want 0 (never)", summary.SupplyFloorDay)
	}
}

func TestSummarize_PerServiceBreakdown(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.HorizonDays = 30

	summary := metrics.Summarize(cfg, mustRun(t, cfg))

	if len(summary.Services) != 4 {
		t.Fatalf("Expected 4 service summaries, got %d", len(summary.Services))
	}

	totalFromServices := 0.0
	shareSum := 0.0
	for _, svc := range summary.Services {
		if svc.TotalBurned <= 0 {
			t.Errorf("Service %s: TotalBurned = %v, want > 0", svc.Service, svc.TotalBurned)
		}
		if !floatEquals(svc.AvgDailyBurn, svc.TotalBurned/30) {
			t.Errorf("Service %s: AvgDailyBurn = %v, want %v", svc.Service, svc.AvgDailyBurn, svc.TotalBurned/30)
		}
		totalFromServices += svc.TotalBurned
		shareSum += svc.ShareOfBurnPct
	}

	if math.Abs(totalFromServices-summary.TotalBurned) > 1e-6 {
		t.Errorf("Per-service totals %v do not add up to TotalBurned %v", totalFromServices, summary.TotalBurned)
	}
	if math.Abs(shareSum-100) > 1e-6 {
		t.Errorf("Shares sum to %v, want 100", shareSum)
	}

	// Merch-Shop burns the most USD (20% of 5,000 = 1,000/day) and should
	// dominate the share table.
	var merch domain.ServiceSummary
	for _, svc := range summary.Services {
		if svc.Service == "Merch-Shop" {
			merch = svc
		}
	}
	for _, svc := range summary.Services {
		if svc.Service != "Merch-Shop" && svc.TotalBurned > merch.TotalBurned {
			t.Errorf("Service %s out-burned Merch-Shop: %v > %v", svc.Service, svc.TotalBurned, merch.TotalBurned)
		}
	}
}

func TestSummarize_SupplyFloorDay(t *testing.T) {
	cfg := domain.SimulationConfig{
		InitialPrice:         0.01,
		YearlyPriceChangePct: 0,
		HorizonDays:          5,
		FixedSupply:          1_000,
		TokenSymbol:          "AVT",
		Services:             []domain.Service{{Name: "Mixer", BurnRate: 1.0, DailyVolume: 1_000_000}},
	}

	summary := metrics.Summarize(cfg, mustRun(t, cfg))

	if summary.SupplyFloorDay != 1 {
		t.Errorf("SupplyFloorDay = %d, want 1", summary.SupplyFloorDay)
	}
	if summary.PeakDailyBurnDay != 1 {
		t.Errorf("PeakDailyBurnDay = %d, want 1 (first burn dwarfs the rest)", summary.PeakDailyBurnDay)
	}
	if summary.FinalSupply != 1 {
		t.Errorf("FinalSupply = %v, want 1", summary.FinalSupply)
	}
}

func TestSummarize_UpliftGrowsWithBurn(t *testing.T) {
	cfg := domain.DefaultConfig()

	summary := metrics.Summarize(cfg, mustRun(t, cfg))

	if summary.PriceUpliftPct <= 0 {
		t.Errorf("PriceUpliftPct = %v, want > 0 after a year of burns", summary.PriceUpliftPct)
	}
	if summary.FinalPriceWithBurn <= summary.FinalPriceNoBurn {
		t.Errorf("FinalPriceWithBurn %v should exceed FinalPriceNoBurn %v",
			summary.FinalPriceWithBurn, summary.FinalPriceNoBurn)
	}
	if summary.TotalBurned <= 0 {
		t.Errorf("TotalBurned = %v, want > 0", summary.TotalBurned)
	}
}
