package domain

// ServiceSummary aggregates one service's burn activity over a run.
type ServiceSummary struct {
	Service        string  // service name
	BurnRate       float64 // configured rate, echoed for reports
	DailyVolume    float64 // configured volume, echoed for reports
	TotalBurned    float64 // tokens burned over the horizon
	AvgDailyBurn   float64 // mean tokens burned per day
	ShareOfBurnPct float64 // share of total burned tokens, percent
}

// SimulationSummary is the derived headline view of a finished run.
// A zero-day run yields a zero-valued summary with echoed supply.
type SimulationSummary struct {
	HorizonDays        int     // days simulated
	FinalPriceNoBurn   float64 // price from growth alone at horizon end
	FinalPriceWithBurn float64 // supply-adjusted price at horizon end
	PriceUpliftPct     float64 // with-burn premium over no-burn, percent
	TotalBurned        float64 // cumulative nominal burn at horizon end
	FinalSupply        float64 // remaining supply at horizon end
	SupplyDepletedPct  float64 // burned share of the original supply, percent
	AvgDailyBurn       float64 // mean total tokens burned per day
	PeakDailyBurn      float64 // largest single-day burn
	PeakDailyBurnDay   int     // day of the largest burn, 0 when empty
	SupplyFloorDay     int     // first day supply hit the floor of 1, 0 when never

	// Services holds per-service aggregates in config order.
	Services []ServiceSummary
}
