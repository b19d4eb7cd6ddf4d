package models

import "tokenomics-lab/internal/domain"

// NewConfigResponse echoes a resolved domain configuration.
func NewConfigResponse(cfg domain.SimulationConfig) ConfigResponse {
	services := make([]ServiceResponse, 0, len(cfg.Services))
	for _, svc := range cfg.Services {
		services = append(services, ServiceResponse{
			Name:        svc.Name,
			BurnRate:    svc.BurnRate,
			DailyVolume: svc.DailyVolume,
		})
	}
	return ConfigResponse{
		InitialPrice:         cfg.InitialPrice,
		YearlyPriceChangePct: cfg.YearlyPriceChangePct,
		HorizonDays:          cfg.HorizonDays,
		FixedSupply:          cfg.FixedSupply,
		TokenSymbol:          cfg.TokenSymbol,
		Services:             services,
	}
}

// NewSummaryResponse converts a run summary.
func NewSummaryResponse(s domain.SimulationSummary) SummaryResponse {
	services := make([]ServiceSummaryResponse, 0, len(s.Services))
	for _, svc := range s.Services {
		services = append(services, ServiceSummaryResponse{
			Name:           svc.Service,
			BurnRate:       svc.BurnRate,
			DailyVolume:    svc.DailyVolume,
			TotalBurned:    svc.TotalBurned,
			AvgDailyBurn:   svc.AvgDailyBurn,
			ShareOfBurnPct: svc.ShareOfBurnPct,
		})
	}
	return SummaryResponse{
		HorizonDays:        s.HorizonDays,
		FinalPriceNoBurn:   s.FinalPriceNoBurn,
		FinalPriceWithBurn: s.FinalPriceWithBurn,
		PriceUpliftPct:     s.PriceUpliftPct,
		TotalBurned:        s.TotalBurned,
		FinalSupply:        s.FinalSupply,
		SupplyDepletedPct:  s.SupplyDepletedPct,
		AvgDailyBurn:       s.AvgDailyBurn,
		PeakDailyBurn:      s.PeakDailyBurn,
		PeakDailyBurnDay:   s.PeakDailyBurnDay,
		SupplyFloorDay:     s.SupplyFloorDay,
		Services:           services,
	}
}

// NewRecordRows converts day records.
func NewRecordRows(records []domain.DailyRecord) []DailyRecordRow {
	rows := make([]DailyRecordRow, len(records))
	for i, r := range records {
		burns := make([]ServiceBurnRow, 0, len(r.ServiceBurns))
		for _, sb := range r.ServiceBurns {
			burns = append(burns, ServiceBurnRow{
				Service: sb.Service,
				Tokens:  sb.Tokens,
			})
		}
		rows[i] = DailyRecordRow{
			Day:              r.Day,
			PriceNoBurn:      r.PriceNoBurn,
			PriceWithBurn:    r.PriceWithBurn,
			RemainingSupply:  r.RemainingSupply,
			DailyBurned:      r.DailyBurned,
			CumulativeBurned: r.CumulativeBurned,
			ServiceBurns:     burns,
		}
	}
	return rows
}

// NewSeriesResponse converts a chart series into its wire shape.
func NewSeriesResponse(runID string, s domain.ChartSeries) SeriesResponse {
	return SeriesResponse{
		RunID:            runID,
		Days:             s.Days,
		PriceNoBurn:      s.PriceNoBurn,
		PriceWithBurn:    s.PriceWithBurn,
		RemainingSupply:  s.RemainingSupply,
		DailyBurned:      s.DailyBurned,
		CumulativeBurned: s.CumulativeBurned,
	}
}

// NewRunResponse converts a registered run. Day records are included
// only when requested; they dominate the payload on long horizons.
func NewRunResponse(run *domain.SimulationRun, includeRecords bool) SimulationResponse {
	resp := SimulationResponse{
		RunID:     run.RunID,
		CreatedAt: run.CreatedAt,
		Trigger:   run.Trigger,
		Config:    NewConfigResponse(run.Config),
		Summary:   NewSummaryResponse(run.Summary),
	}
	if includeRecords {
		resp.Records = NewRecordRows(run.Records)
	}
	return resp
}

// NewRunInfo builds the headline listing view of a run.
func NewRunInfo(run *domain.SimulationRun) RunInfo {
	return RunInfo{
		RunID:                run.RunID,
		CreatedAt:            run.CreatedAt,
		Trigger:              run.Trigger,
		HorizonDays:          run.Config.HorizonDays,
		InitialPrice:         run.Config.InitialPrice,
		YearlyPriceChangePct: run.Config.YearlyPriceChangePct,
		TotalBurned:          run.Summary.TotalBurned,
		FinalPriceWithBurn:   run.Summary.FinalPriceWithBurn,
	}
}

// ApplyTo overlays set request fields onto base. Pointer fields apply
// even when zero; scalar fields apply only when non-zero, matching
// their invalid-at-zero domain ranges.
func (r SimulationRequest) ApplyTo(base domain.SimulationConfig) (domain.SimulationConfig, error) {
	cfg := base.Clone()

	if r.InitialPrice != 0 {
		cfg.InitialPrice = r.InitialPrice
	}
	if r.YearlyPriceChangePct != nil {
		cfg.YearlyPriceChangePct = *r.YearlyPriceChangePct
	}
	if r.HorizonDays != nil {
		cfg.HorizonDays = *r.HorizonDays
	}
	if r.TokenSymbol != "" {
		cfg.TokenSymbol = r.TokenSymbol
	}
	if len(r.Services) > 0 {
		services := make([]domain.Service, 0, len(r.Services))
		for _, svc := range r.Services {
			services = append(services, domain.Service{
				Name:        svc.Name,
				BurnRate:    svc.BurnRate,
				DailyVolume: svc.DailyVolume,
			})
		}
		cfg.Services = services
	}

	// Scenario wins over an explicit yearly_price_change_pct.
	if r.Scenario != "" {
		scenario, err := domain.ScenarioByID(r.Scenario)
		if err != nil {
			return domain.SimulationConfig{}, err
		}
		cfg = scenario.Apply(cfg)
	}

	return cfg, nil
}
