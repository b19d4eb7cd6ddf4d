package simulation

import (
	"math"

	"tokenomics-lab/internal/domain"
)

// SupplyFloor is the minimum remaining supply. Burns can never push the
// circulating supply below one token.
const SupplyFloor = 1.0

// DailyGrowthFactor converts a yearly percentage change into the daily
// compounding factor. The year is always 365 days, independent of the
// simulated horizon.
func DailyGrowthFactor(yearlyPct float64) float64 {
	return math.Pow(1+yearlyPct/100, 1.0/domain.DaysPerYear)
}

// Run executes the burn simulation and returns one record per simulated
// day, in day order. It is pure: no clock, no I/O, no randomness, so equal
// configs always produce identical records. The config is validated first
// and rejected with domain.ErrInvalidConfig on the first violation.
// A zero-day horizon returns an empty slice.
func Run(cfg domain.SimulationConfig) ([]domain.DailyRecord, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	growth := DailyGrowthFactor(cfg.YearlyPriceChangePct)
	supply := cfg.FixedSupply
	cumulative := 0.0

	records := make([]domain.DailyRecord, 0, cfg.HorizonDays)
	for day := 1; day <= cfg.HorizonDays; day++ {
		priceNoBurn := cfg.InitialPrice * math.Pow(growth, float64(day))

		// Scarcity adjustment uses the supply before today's burn.
		priceWithBurn := math.Inf(1)
		if supply > 0 {
			priceWithBurn = priceNoBurn * (cfg.FixedSupply / supply)
		}

		burns := make([]domain.ServiceBurn, len(cfg.Services))
		dailyBurned := 0.0
		for i, svc := range cfg.Services {
			tokens := (svc.DailyVolume * svc.BurnRate) / priceWithBurn
			burns[i] = domain.ServiceBurn{Service: svc.Name, Tokens: tokens}
			dailyBurned += tokens
		}

		supply -= dailyBurned
		if supply < SupplyFloor {
			supply = SupplyFloor
		}
		// Cumulative burn accumulates the nominal daily burn even when the
		// floor truncates the actual supply reduction, so at the floor it
		// can exceed FixedSupply - supply.
		cumulative += dailyBurned

		records = append(records, domain.DailyRecord{
			Day:              day,
			PriceNoBurn:      priceNoBurn,
			PriceWithBurn:    priceWithBurn,
			RemainingSupply:  supply,
			DailyBurned:      dailyBurned,
			CumulativeBurned: cumulative,
			ServiceBurns:     burns,
		})
	}

	return records, nil
}
