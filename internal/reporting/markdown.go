package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Tokenomics Simulation Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Token: %s | Horizon: %d days | Fixed Supply: %.0f\n\n",
		r.TokenSymbol, r.BaseConfig.HorizonDays, r.BaseConfig.FixedSupply))

	// Parameters
	sb.WriteString("## Parameters\n\n")
	sb.WriteString("| Parameter | Value |\n")
	sb.WriteString("|-----------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Initial Price (USD) | %.4f |\n", r.BaseConfig.InitialPrice))
	sb.WriteString(fmt.Sprintf("| Yearly Price Change | %.1f%% |\n", r.BaseConfig.YearlyPriceChangePct))
	sb.WriteString(fmt.Sprintf("| Horizon | %d days |\n", r.BaseConfig.HorizonDays))
	sb.WriteString(fmt.Sprintf("| Fixed Supply | %.0f |\n", r.BaseConfig.FixedSupply))
	sb.WriteString("\n")

	// Services
	sb.WriteString("## Services\n\n")
	if len(r.BaseConfig.Services) > 0 {
		sb.WriteString(fmt.Sprintf("| Service | Burn Rate | Daily Volume (USD) | Est. Day 1 Burn (%s) |\n", r.TokenSymbol))
		sb.WriteString("|---------|-----------|--------------------|-----------------------|\n")
		for i, svc := range r.BaseConfig.Services {
			estimate := 0.0
			if i < len(r.Estimates) {
				estimate = r.Estimates[i].Tokens
			}
			sb.WriteString(fmt.Sprintf("| %s | %.0f%% | %.0f | %.2f |\n",
				svc.Name, svc.BurnRate*100, svc.DailyVolume, estimate))
		}
	} else {
		sb.WriteString("No services configured.\n")
	}
	sb.WriteString("\n")

	// Scenario Outcomes
	sb.WriteString("## Scenario Outcomes\n\n")
	if len(r.ScenarioRows) > 0 {
		sb.WriteString("| Scenario | Yearly Change | Final Price (No Burn) | Final Price (With Burn) | Uplift | Total Burned | Final Supply | Depleted | Floor Day |\n")
		sb.WriteString("|----------|---------------|-----------------------|-------------------------|--------|--------------|--------------|----------|----------|\n")
		for _, row := range r.ScenarioRows {
			floorDay := "never"
			if row.SupplyFloorDay > 0 {
				floorDay = fmt.Sprintf("%d", row.SupplyFloorDay)
			}
			sb.WriteString(fmt.Sprintf("| %s | %.1f%% | %.4f | %.4f | %.2f%% | %.2f | %.2f | %.4f%% | %s |\n",
				row.ScenarioID, row.YearlyPriceChangePct,
				row.FinalPriceNoBurn, row.FinalPriceWithBurn, row.PriceUpliftPct,
				row.TotalBurned, row.FinalSupply, row.SupplyDepletedPct, floorDay))
		}
	} else {
		sb.WriteString("No scenario outcomes available.\n")
	}
	sb.WriteString("\n")

	// Per-Service Burn
	sb.WriteString("## Per-Service Burn (Base Run)\n\n")
	if len(r.BaseSummary.Services) > 0 {
		sb.WriteString(fmt.Sprintf("| Service | Total Burned (%s) | Avg Daily Burn | Share |\n", r.TokenSymbol))
		sb.WriteString("|---------|--------------------|----------------|-------|\n")
		for _, svc := range r.BaseSummary.Services {
			sb.WriteString(fmt.Sprintf("| %s | %.2f | %.2f | %.2f%% |\n",
				svc.Service, svc.TotalBurned, svc.AvgDailyBurn, svc.ShareOfBurnPct))
		}
	} else {
		sb.WriteString("No per-service data available.\n")
	}
	sb.WriteString("\n")

	// Sustainability Checks
	sb.WriteString("## Sustainability Checks\n\n")
	if len(r.Checks) > 0 {
		sb.WriteString("| Check | Threshold | Actual | Status |\n")
		sb.WriteString("|-------|-----------|--------|--------|\n")
		for _, check := range r.Checks {
			status := "FAIL"
			if check.Pass {
				status = "PASS"
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
				check.Name, check.Threshold, check.Actual, status))
		}
		sb.WriteString("\n")

		if r.AllChecksPassed {
			sb.WriteString("**All checks passed.** The configured burn schedule is sustainable over the horizon.\n\n")
		} else {
			sb.WriteString("**Some checks failed.** Revisit volumes, burn rates, or the horizon.\n\n")
		}
	} else {
		sb.WriteString("No sustainability checks performed.\n\n")
	}

	return sb.String()
}
