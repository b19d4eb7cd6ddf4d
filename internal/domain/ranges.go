package domain

// ParameterRange describes one tunable input for UI clients: the slider
// bounds, step, and stock default.
type ParameterRange struct {
	Name        string  // parameter identifier, matches API field names
	Min         float64
	Max         float64
	Step        float64
	Default     float64
	Description string
}

// ParameterRanges returns slider metadata for every tunable input.
// Per-service volumes share the single daily_volume range.
func ParameterRanges() []ParameterRange {
	return []ParameterRange{
		{
			Name:        "initial_price",
			Min:         MinInitialPrice,
			Max:         0, // unbounded above
			Step:        0.01,
			Default:     DefaultInitialPrice,
			Description: "token price in USD at day 0",
		},
		{
			Name:        "yearly_price_change_pct",
			Min:         MinYearlyPriceChangePct,
			Max:         MaxYearlyPriceChangePct,
			Step:        1,
			Default:     DefaultYearlyPriceChangePct,
			Description: "expected market price change per year, percent",
		},
		{
			Name:        "horizon_days",
			Min:         MinUIHorizonDays,
			Max:         MaxHorizonDays,
			Step:        1,
			Default:     DefaultHorizonDays,
			Description: "number of days to simulate",
		},
		{
			Name:        "daily_volume",
			Min:         0,
			Max:         MaxDailyVolume,
			Step:        DailyVolumeStep,
			Default:     0,
			Description: "per-service projected USD volume per day",
		},
	}
}
