package domain

// ChartSeries is the columnar view of a run used by chart clients: the
// price evolution chart reads the two price columns, the supply chart reads
// remaining supply against cumulative burn. All slices share one length
// and index days in order.
type ChartSeries struct {
	Days             []int
	PriceNoBurn      []float64
	PriceWithBurn    []float64
	RemainingSupply  []float64
	DailyBurned      []float64
	CumulativeBurned []float64
}

// Len returns the number of charted days.
func (s ChartSeries) Len() int { return len(s.Days) }
