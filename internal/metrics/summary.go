package metrics

import "tokenomics-lab/internal/domain"

// Summarize derives headline statistics from a finished run. Records must
// be the engine's output for cfg, in day order. An empty record slice
// yields a zero-valued summary that still echoes the configured services
// and the untouched supply.
func Summarize(cfg domain.SimulationConfig, records []domain.DailyRecord) domain.SimulationSummary {
	summary := domain.SimulationSummary{
		HorizonDays: len(records),
		FinalSupply: cfg.FixedSupply,
		Services:    echoServices(cfg),
	}
	if len(records) == 0 {
		return summary
	}

	last := records[len(records)-1]
	summary.FinalPriceNoBurn = last.PriceNoBurn
	summary.FinalPriceWithBurn = last.PriceWithBurn
	summary.TotalBurned = last.CumulativeBurned
	summary.FinalSupply = last.RemainingSupply
	if last.PriceNoBurn > 0 {
		summary.PriceUpliftPct = (last.PriceWithBurn/last.PriceNoBurn - 1) * 100
	}
	if cfg.FixedSupply > 0 {
		summary.SupplyDepletedPct = (cfg.FixedSupply - last.RemainingSupply) / cfg.FixedSupply * 100
	}

	daily := make([]float64, len(records))
	for i, r := range records {
		daily[i] = r.DailyBurned
		if r.DailyBurned > summary.PeakDailyBurn {
			summary.PeakDailyBurn = r.DailyBurned
			summary.PeakDailyBurnDay = r.Day
		}
		if summary.SupplyFloorDay == 0 && r.RemainingSupply <= 1 {
			summary.SupplyFloorDay = r.Day
		}
	}
	summary.AvgDailyBurn = computeMean(daily)

	for i := range summary.Services {
		total := 0.0
		for _, r := range records {
			if i < len(r.ServiceBurns) {
				total += r.ServiceBurns[i].Tokens
			}
		}
		summary.Services[i].TotalBurned = total
		summary.Services[i].AvgDailyBurn = total / float64(len(records))
		if summary.TotalBurned > 0 {
			summary.Services[i].ShareOfBurnPct = total / summary.TotalBurned * 100
		}
	}

	return summary
}

func echoServices(cfg domain.SimulationConfig) []domain.ServiceSummary {
	out := make([]domain.ServiceSummary, len(cfg.Services))
	for i, svc := range cfg.Services {
		out[i] = domain.ServiceSummary{
			Service:     svc.Name,
			BurnRate:    svc.BurnRate,
			DailyVolume: svc.DailyVolume,
		}
	}
	return out
}

// computeMean returns the arithmetic mean, 0 for an empty slice.
func computeMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
