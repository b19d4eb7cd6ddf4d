package domain

import "fmt"

// MarketScenario is a named yearly price trajectory preset. Scenarios only
// pin YearlyPriceChangePct; everything else comes from the base config.
type MarketScenario struct {
	ScenarioID           string  // "bear" | "flat" | "base" | "bull" | "mania"
	YearlyPriceChangePct float64 // percent per year
	Description          string  // one-line summary for discovery endpoints
}

// Scenario ID constants
const (
	ScenarioBear  = "bear"
	ScenarioFlat  = "flat"
	ScenarioBase  = "base"
	ScenarioBull  = "bull"
	ScenarioMania = "mania"
)

// Predefined market scenarios spanning the supported yearly change range.
var (
	ScenarioConfigBear = MarketScenario{
		ScenarioID:           ScenarioBear,
		YearlyPriceChangePct: -50,
		Description:          "sustained downtrend at the supported floor",
	}

	ScenarioConfigFlat = MarketScenario{
		ScenarioID:           ScenarioFlat,
		YearlyPriceChangePct: 0,
		Description:          "sideways market, burn pressure only",
	}

	ScenarioConfigBase = MarketScenario{
		ScenarioID:           ScenarioBase,
		YearlyPriceChangePct: 20,
		Description:          "default moderate growth assumption",
	}

	ScenarioConfigBull = MarketScenario{
		ScenarioID:           ScenarioBull,
		YearlyPriceChangePct: 100,
		Description:          "strong uptrend, price doubles in a year",
	}

	ScenarioConfigMania = MarketScenario{
		ScenarioID:           ScenarioMania,
		YearlyPriceChangePct: 200,
		Description:          "speculative blow-off at the supported ceiling",
	}
)

// Scenarios returns all predefined scenarios in presentation order.
func Scenarios() []MarketScenario {
	return []MarketScenario{
		ScenarioConfigBear,
		ScenarioConfigFlat,
		ScenarioConfigBase,
		ScenarioConfigBull,
		ScenarioConfigMania,
	}
}

// ScenarioByID looks up a predefined scenario.
func ScenarioByID(id string) (MarketScenario, error) {
	for _, s := range Scenarios() {
		if s.ScenarioID == id {
			return s, nil
		}
	}
	return MarketScenario{}, fmt.Errorf("%w: unknown scenario %q", ErrInvalidConfig, id)
}

// Apply returns a copy of cfg with the scenario's price trajectory.
func (s MarketScenario) Apply(cfg SimulationConfig) SimulationConfig {
	out := cfg.Clone()
	out.YearlyPriceChangePct = s.YearlyPriceChangePct
	return out
}
