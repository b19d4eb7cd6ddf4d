package reporting

import "tokenomics-lab/internal/domain"

// BuildSeries converts day records into the columnar layout chart clients
// consume: the price evolution chart reads the two price columns, the
// supply chart reads remaining supply against cumulative burn.
func BuildSeries(records []domain.DailyRecord) domain.ChartSeries {
	series := domain.ChartSeries{
		Days:             make([]int, len(records)),
		PriceNoBurn:      make([]float64, len(records)),
		PriceWithBurn:    make([]float64, len(records)),
		RemainingSupply:  make([]float64, len(records)),
		DailyBurned:      make([]float64, len(records)),
		CumulativeBurned: make([]float64, len(records)),
	}
	for i, r := range records {
		series.Days[i] = r.Day
		series.PriceNoBurn[i] = r.PriceNoBurn
		series.PriceWithBurn[i] = r.PriceWithBurn
		series.RemainingSupply[i] = r.RemainingSupply
		series.DailyBurned[i] = r.DailyBurned
		series.CumulativeBurned[i] = r.CumulativeBurned
	}
	return series
}
