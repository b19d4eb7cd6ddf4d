package models

// SimulationRequest represents the request body for running a simulation.
// Every field is optional; unset fields fall back to the server defaults.
// Pointer fields distinguish "not set" from a meaningful zero: a flat
// market is yearly_price_change_pct 0 and a zero horizon is an empty run.
type SimulationRequest struct {
	InitialPrice         float64           `json:"initial_price,omitempty"`
	YearlyPriceChangePct *float64          `json:"yearly_price_change_pct,omitempty"`
	HorizonDays          *int              `json:"horizon_days,omitempty"`
	TokenSymbol          string            `json:"token_symbol,omitempty"`
	Scenario             string            `json:"scenario,omitempty"` // overrides yearly_price_change_pct
	Services             []ServiceRequest  `json:"services,omitempty"`
	Options              SimulationOptions `json:"options,omitempty"`
}

// ServiceRequest is one burn service entry. Request order is the order
// burns apply each simulated day.
type ServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	BurnRate    float64 `json:"burn_rate"`
	DailyVolume float64 `json:"daily_volume"`
}

// SimulationOptions contains optional simulation parameters.
type SimulationOptions struct {
	IncludeRecords bool `json:"include_records,omitempty"` // default: false
	IncludeSeries  bool `json:"include_series,omitempty"`  // default: false
}

// CompareRequest represents a request to compare configuration variations.
type CompareRequest struct {
	Base       SimulationRequest  `json:"base,omitempty"`
	Variations []CompareVariation `json:"variations" binding:"required"`
}

// CompareVariation defines one variation overlaid on the base request.
type CompareVariation struct {
	Name   string            `json:"name" binding:"required"`
	Config SimulationRequest `json:"config,omitempty"`
}
