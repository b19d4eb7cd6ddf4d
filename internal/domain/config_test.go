package domain

import (
	"errors"
	"testing"
)

func TestDefaultConfig_Valid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig should validate, got %v", err)
	}
}

func TestDefaultServices_Order(t *testing.T) {
	services := DefaultServices()

	wantNames := []string{"Mixer", "Merch-Shop", "eSIM", "Gift Card"}
	if len(services) != len(wantNames) {
		t.Fatalf("Expected %d services, got %d", len(wantNames), len(services))
	}
	for i, name := range wantNames {
		if services[i].Name != name {
			t.Errorf("Service %d = %s, want %s", i, services[i].Name, name)
		}
	}
}

func TestValidate_ZeroHorizonAllowed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HorizonDays = 0

	if err := cfg.Validate(); err != nil {
		t.Errorf("Zero horizon should validate, got %v", err)
	}
}

func TestValidate_BoundaryValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.YearlyPriceChangePct = MinYearlyPriceChangePct
	cfg.HorizonDays = MaxHorizonDays
	cfg.Services[0].BurnRate = 1.0
	cfg.Services[1].DailyVolume = MaxDailyVolume
	cfg.Services[2].DailyVolume = 0

	if err := cfg.Validate(); err != nil {
		t.Errorf("Boundary values should validate, got %v", err)
	}

	cfg.YearlyPriceChangePct = MaxYearlyPriceChangePct
	if err := cfg.Validate(); err != nil {
		t.Errorf("Ceiling growth should validate, got %v", err)
	}
}

func TestValidate_RejectsBadConfigs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SimulationConfig)
	}{
		{"zero price", func(c *SimulationConfig) { c.InitialPrice = 0 }},
		{"zero supply", func(c *SimulationConfig) { c.FixedSupply = 0 }},
		{"negative horizon", func(c *SimulationConfig) { c.HorizonDays = -1 }},
		{"no services", func(c *SimulationConfig) { c.Services = nil }},
		{"duplicate names", func(c *SimulationConfig) { c.Services[1].Name = "Mixer" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestClone_Isolated(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()

	clone.Services[0].DailyVolume = 999
	if cfg.Services[0].DailyVolume == 999 {
		t.Error("Clone shares the services slice with the original")
	}
}

func TestScenarioByID(t *testing.T) {
	s, err := ScenarioByID(ScenarioBull)
	if err != nil {
		t.Fatalf("ScenarioByID failed: %v", err)
	}
	if s.YearlyPriceChangePct != 100 {
		t.Errorf("Bull scenario pct = %v, want 100", s.YearlyPriceChangePct)
	}

	if _, err := ScenarioByID("sideways-crab"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Unknown scenario should return ErrInvalidConfig, got %v", err)
	}
}

func TestScenarioApply(t *testing.T) {
	base := DefaultConfig()
	applied := ScenarioConfigBear.Apply(base)

	if applied.YearlyPriceChangePct != -50 {
		t.Errorf("Applied pct = %v, want -50", applied.YearlyPriceChangePct)
	}
	if base.YearlyPriceChangePct != DefaultYearlyPriceChangePct {
		t.Errorf("Apply mutated the base config: %v", base.YearlyPriceChangePct)
	}
	if applied.HorizonDays != base.HorizonDays {
		t.Errorf("Apply should keep other fields, horizon %d != %d", applied.HorizonDays, base.HorizonDays)
	}
}

func TestParameterRanges_CoverTunables(t *testing.T) {
	ranges := ParameterRanges()

	want := map[string]bool{
		"initial_price":           false,
		"yearly_price_change_pct": false,
		"horizon_days":            false,
		"daily_volume":            false,
	}
	for _, pr := range ranges {
		if _, ok := want[pr.Name]; !ok {
			t.Errorf("Unexpected parameter %s", pr.Name)
			continue
		}
		want[pr.Name] = true
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("Missing parameter %s", name)
		}
	}
}
