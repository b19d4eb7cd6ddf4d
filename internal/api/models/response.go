package models

import "time"

// SimulationResponse represents the response from a simulation run.
type SimulationResponse struct {
	RunID     string           `json:"run_id"`
	CreatedAt time.Time        `json:"created_at"`
	Trigger   string           `json:"trigger"`
	Config    ConfigResponse   `json:"config"`
	Summary   SummaryResponse  `json:"summary"`
	Records   []DailyRecordRow `json:"records,omitempty"`
	Series    *SeriesResponse  `json:"series,omitempty"`
}

// ConfigResponse echoes the fully resolved configuration a run used.
type ConfigResponse struct {
	InitialPrice         float64           `json:"initial_price"`
	YearlyPriceChangePct float64           `json:"yearly_price_change_pct"`
	HorizonDays          int               `json:"horizon_days"`
	FixedSupply          float64           `json:"fixed_supply"`
	TokenSymbol          string            `json:"token_symbol"`
	Services             []ServiceResponse `json:"services"`
}

// ServiceResponse is one burn service entry.
type ServiceResponse struct {
	Name        string  `json:"name"`
	BurnRate    float64 `json:"burn_rate"`
	DailyVolume float64 `json:"daily_volume"`
}

// SummaryResponse contains aggregated run results.
type SummaryResponse struct {
	HorizonDays        int                      `json:"horizon_days"`
	FinalPriceNoBurn   float64                  `json:"final_price_no_burn"`
	FinalPriceWithBurn float64                  `json:"final_price_with_burn"`
	PriceUpliftPct     float64                  `json:"price_uplift_pct"`
	TotalBurned        float64                  `json:"total_burned"`
	FinalSupply        float64                  `json:"final_supply"`
	SupplyDepletedPct  float64                  `json:"supply_depleted_pct"`
	AvgDailyBurn       float64                  `json:"avg_daily_burn"`
	PeakDailyBurn      float64                  `json:"peak_daily_burn"`
	PeakDailyBurnDay   int                      `json:"peak_daily_burn_day"`
	SupplyFloorDay     int                      `json:"supply_floor_day"` // 0 = floor never reached
	Services           []ServiceSummaryResponse `json:"services"`
}

// ServiceSummaryResponse contains per-service burn totals.
type ServiceSummaryResponse struct {
	Name           string  `json:"name"`
	BurnRate       float64 `json:"burn_rate"`
	DailyVolume    float64 `json:"daily_volume"`
	TotalBurned    float64 `json:"total_burned"`
	AvgDailyBurn   float64 `json:"avg_daily_burn"`
	ShareOfBurnPct float64 `json:"share_of_burn_pct"`
}

// DailyRecordRow represents one simulated day.
type DailyRecordRow struct {
	Day              int              `json:"day"`
	PriceNoBurn      float64          `json:"price_no_burn"`
	PriceWithBurn    float64          `json:"price_with_burn"`
	RemainingSupply  float64          `json:"remaining_supply"`
	DailyBurned      float64          `json:"daily_burned"`
	CumulativeBurned float64          `json:"cumulative_burned"`
	ServiceBurns     []ServiceBurnRow `json:"service_burns"`
}

// ServiceBurnRow is one service's burn on one day.
type ServiceBurnRow struct {
	Service string  `json:"service"`
	Tokens  float64 `json:"tokens"`
}

// RunInfo is the headline view of a stored run for listings.
type RunInfo struct {
	RunID                string    `json:"run_id"`
	CreatedAt            time.Time `json:"created_at"`
	Trigger              string    `json:"trigger"`
	HorizonDays          int       `json:"horizon_days"`
	InitialPrice         float64   `json:"initial_price"`
	YearlyPriceChangePct float64   `json:"yearly_price_change_pct"`
	TotalBurned          float64   `json:"total_burned"`
	FinalPriceWithBurn   float64   `json:"final_price_with_burn"`
}

// ListRunsResponse represents the response from listing stored runs.
type ListRunsResponse struct {
	Runs  []RunInfo `json:"runs"`
	Count int       `json:"count"`
}

// SeriesResponse carries chart-ready columnar series for one run.
type SeriesResponse struct {
	RunID            string    `json:"run_id"`
	Days             []int     `json:"days"`
	PriceNoBurn      []float64 `json:"price_no_burn"`
	PriceWithBurn    []float64 `json:"price_with_burn"`
	RemainingSupply  []float64 `json:"remaining_supply"`
	DailyBurned      []float64 `json:"daily_burned"`
	CumulativeBurned []float64 `json:"cumulative_burned"`
}

// VerifyResponse represents the result of replay-verifying a stored run.
type VerifyResponse struct {
	RunID       string          `json:"run_id"`
	Match       bool            `json:"match"`
	DaysChecked int             `json:"days_checked"`
	Divergences []DivergenceRow `json:"divergences,omitempty"`
}

// DivergenceRow is one stored-vs-replayed mismatch.
type DivergenceRow struct {
	Day      int         `json:"day,omitempty"`
	Field    string      `json:"field"`
	Expected interface{} `json:"expected"`
	Actual   interface{} `json:"actual"`
}

// CompareResponse represents the response from a comparison.
type CompareResponse struct {
	CreatedAt time.Time         `json:"created_at"`
	Entries   []ComparisonEntry `json:"entries"`
}

// ComparisonEntry contains results for one variation.
type ComparisonEntry struct {
	Name    string          `json:"name"`
	RunID   string          `json:"run_id"`
	Config  ConfigResponse  `json:"config"`
	Summary SummaryResponse `json:"summary"`
}

// ServiceInfo represents one configured burn service for discovery.
type ServiceInfo struct {
	Name            string  `json:"name"`
	BurnRate        float64 `json:"burn_rate"`
	DailyVolume     float64 `json:"daily_volume"`
	FirstDayBurnEst float64 `json:"first_day_burn_estimate"`
}

// ScenarioInfo represents one predefined market scenario.
type ScenarioInfo struct {
	ScenarioID           string  `json:"scenario_id"`
	YearlyPriceChangePct float64 `json:"yearly_price_change_pct"`
	Description          string  `json:"description"`
}

// DefaultsResponse carries the server's default configuration and the
// tunable parameter ranges.
type DefaultsResponse struct {
	Config ConfigResponse       `json:"config"`
	Ranges []ParameterRangeInfo `json:"ranges"`
}

// ParameterRangeInfo describes one tunable parameter.
type ParameterRangeInfo struct {
	Name        string  `json:"name"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"` // 0 = unbounded
	Step        float64 `json:"step"`
	Default     float64 `json:"default"`
	Description string  `json:"description"`
}

// StatusResponse is the JSON response for the /status endpoint.
type StatusResponse struct {
	Status     string    `json:"status"`
	Uptime     string    `json:"uptime"`
	StartedAt  time.Time `json:"started_at"`
	RunsStored int       `json:"runs_stored"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
