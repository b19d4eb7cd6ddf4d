package domain

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is returned when a simulation config fails validation.
// Callers match it with errors.Is; no surface clamps bad input silently.
var ErrInvalidConfig = errors.New("invalid simulation config")

// Supply and horizon constants.
const (
	DefaultFixedSupply = 100_000_000.0 // total token supply at day 0
	DaysPerYear        = 365
	MaxHorizonDays     = 4 * DaysPerYear // 1460
)

// Default simulation parameters.
const (
	DefaultInitialPrice         = 1.0
	DefaultYearlyPriceChangePct = 20.0
	DefaultHorizonDays          = 365
	DefaultTokenSymbol          = "AVT"
)

// Input ranges enforced by Validate and surfaced to UI clients.
const (
	MinInitialPrice         = 0.01 // slider floor only; the engine accepts any price > 0
	MinYearlyPriceChangePct = -50.0
	MaxYearlyPriceChangePct = 200.0
	MinUIHorizonDays        = 30 // slider floor only; the engine accepts any horizon >= 0
	MaxDailyVolume          = 1_000_000.0
	DailyVolumeStep         = 5_000.0
)

// Service is one revenue service that converts a share of its daily USD
// volume into token burns. Service order in a config is significant: it
// fixes both the burn accumulation order and the output column order.
type Service struct {
	Name        string  // unique display name, e.g. "Mixer"
	BurnRate    float64 // fraction of daily volume burned, 0..1
	DailyVolume float64 // projected USD volume per day
}

// SimulationConfig is the complete, explicit input to a simulation run.
// There is no ambient state: two runs with equal configs are identical.
type SimulationConfig struct {
	InitialPrice         float64   // token price in USD at day 0, > 0
	YearlyPriceChangePct float64   // expected market price change per year, percent
	HorizonDays          int       // number of days to simulate
	FixedSupply          float64   // original total supply
	TokenSymbol          string    // display symbol for reports
	Services             []Service // ordered service list
}

// DefaultServices returns the stock service lineup with its standard
// burn rates and volume assumptions, in display order.
func DefaultServices() []Service {
	return []Service{
		{Name: "Mixer", BurnRate: 0.02, DailyVolume: 25_000},
		{Name: "Merch-Shop", BurnRate: 0.20, DailyVolume: 5_000},
		{Name: "eSIM", BurnRate: 0.02, DailyVolume: 10_000},
		{Name: "Gift Card", BurnRate: 0.02, DailyVolume: 20_000},
	}
}

// DefaultConfig returns a fully populated config with stock parameters.
func DefaultConfig() SimulationConfig {
	return SimulationConfig{
		InitialPrice:         DefaultInitialPrice,
		YearlyPriceChangePct: DefaultYearlyPriceChangePct,
		HorizonDays:          DefaultHorizonDays,
		FixedSupply:          DefaultFixedSupply,
		TokenSymbol:          DefaultTokenSymbol,
		Services:             DefaultServices(),
	}
}

// Validate checks every field against its allowed domain. It fails fast:
// the first violation is returned wrapped in ErrInvalidConfig.
// HorizonDays == 0 is valid and yields an empty simulation.
func (c SimulationConfig) Validate() error {
	if !isFinite(c.InitialPrice) || c.InitialPrice <= 0 {
		return fmt.Errorf("%w: initial price must be > 0, got %v", ErrInvalidConfig, c.InitialPrice)
	}
	if !isFinite(c.FixedSupply) || c.FixedSupply <= 0 {
		return fmt.Errorf("%w: fixed supply must be > 0, got %v", ErrInvalidConfig, c.FixedSupply)
	}
	if c.HorizonDays < 0 {
		return fmt.Errorf("%w: horizon days must be >= 0, got %d", ErrInvalidConfig, c.HorizonDays)
	}
	if c.HorizonDays > MaxHorizonDays {
		return fmt.Errorf("%w: horizon days must be <= %d, got %d", ErrInvalidConfig, MaxHorizonDays, c.HorizonDays)
	}
	if !isFinite(c.YearlyPriceChangePct) {
		return fmt.Errorf("%w: yearly price change must be finite", ErrInvalidConfig)
	}
	if c.YearlyPriceChangePct < MinYearlyPriceChangePct || c.YearlyPriceChangePct > MaxYearlyPriceChangePct {
		return fmt.Errorf("%w: yearly price change must be in [%v, %v], got %v",
			ErrInvalidConfig, MinYearlyPriceChangePct, MaxYearlyPriceChangePct, c.YearlyPriceChangePct)
	}
	if len(c.Services) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(c.Services))
	for i, svc := range c.Services {
		if svc.Name == "" {
			return fmt.Errorf("%w: service %d has empty name", ErrInvalidConfig, i)
		}
		if seen[svc.Name] {
			return fmt.Errorf("%w: duplicate service name %q", ErrInvalidConfig, svc.Name)
		}
		seen[svc.Name] = true
		if math.IsNaN(svc.BurnRate) || svc.BurnRate < 0 || svc.BurnRate > 1 {
			return fmt.Errorf("%w: service %q burn rate must be in [0, 1], got %v", ErrInvalidConfig, svc.Name, svc.BurnRate)
		}
		if !isFinite(svc.DailyVolume) || svc.DailyVolume < 0 {
			return fmt.Errorf("%w: service %q daily volume must be >= 0, got %v", ErrInvalidConfig, svc.Name, svc.DailyVolume)
		}
		if svc.DailyVolume > MaxDailyVolume {
			return fmt.Errorf("%w: service %q daily volume must be <= %v, got %v", ErrInvalidConfig, svc.Name, MaxDailyVolume, svc.DailyVolume)
		}
	}
	return nil
}

// ServiceNames returns the configured service names in order.
func (c SimulationConfig) ServiceNames() []string {
	names := make([]string, len(c.Services))
	for i, svc := range c.Services {
		names[i] = svc.Name
	}
	return names
}

// Clone returns a deep copy. The Services slice is the only reference field.
func (c SimulationConfig) Clone() SimulationConfig {
	out := c
	out.Services = make([]Service, len(c.Services))
	copy(out.Services, c.Services)
	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
