package simulation

import "tokenomics-lab/internal/domain"

// FirstDayEstimates returns each service's estimated day-one burn at the
// configured initial price, before any supply adjustment applies. The
// figures match what the first simulated day would burn in a flat market
// and are meant for parameter previews. Assumes a validated config.
func FirstDayEstimates(cfg domain.SimulationConfig) []domain.ServiceBurn {
	out := make([]domain.ServiceBurn, len(cfg.Services))
	for i, svc := range cfg.Services {
		out[i] = domain.ServiceBurn{
			Service: svc.Name,
			Tokens:  (svc.DailyVolume * svc.BurnRate) / cfg.InitialPrice,
		}
	}
	return out
}
