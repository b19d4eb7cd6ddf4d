package reporting

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"tokenomics-lab/internal/domain"
)

// ExportFilename is the default name for a day-table CSV download.
const ExportFilename = "tokenomics_simulation.csv"

// WriteRecordsCSV writes the day table as CSV: one fixed column block,
// then one burned-tokens column per configured service, in service order.
func WriteRecordsCSV(w io.Writer, cfg domain.SimulationConfig, records []domain.DailyRecord) error {
	cw := csv.NewWriter(w)

	header := []string{
		"Day",
		"Market Price (No Burn)",
		"Price with Burn",
		"Remaining Supply",
		"Daily Burned Tokens",
		"Cumulative Burned",
	}
	for _, svc := range cfg.Services {
		header = append(header, "Burned - "+svc.Name)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Day),
			fmtFloat(r.PriceNoBurn),
			fmtFloat(r.PriceWithBurn),
			fmtFloat(r.RemainingSupply),
			fmtFloat(r.DailyBurned),
			fmtFloat(r.CumulativeBurned),
		}
		for _, sb := range r.ServiceBurns {
			row = append(row, fmtFloat(sb.Tokens))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// RenderRecordsCSV renders the day table as a CSV string.
func RenderRecordsCSV(cfg domain.SimulationConfig, records []domain.DailyRecord) (string, error) {
	var sb strings.Builder
	if err := WriteRecordsCSV(&sb, cfg, records); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// RenderScenarioCSV renders the scenario outcome table as a CSV string.
func RenderScenarioCSV(rows []ScenarioRow) string {
	var sb strings.Builder

	sb.WriteString("scenario_id,yearly_price_change_pct,run_id,final_price_no_burn,final_price_with_burn,")
	sb.WriteString("price_uplift_pct,total_burned,final_supply,supply_depleted_pct,supply_floor_day\n")

	for _, r := range rows {
		sb.WriteString(r.ScenarioID)
		sb.WriteByte(',')
		sb.WriteString(fmtFloat(r.YearlyPriceChangePct))
		sb.WriteByte(',')
		sb.WriteString(r.RunID)
		sb.WriteByte(',')
		sb.WriteString(fmtFloat(r.FinalPriceNoBurn))
		sb.WriteByte(',')
		sb.WriteString(fmtFloat(r.FinalPriceWithBurn))
		sb.WriteByte(',')
		sb.WriteString(fmtFloat(r.PriceUpliftPct))
		sb.WriteByte(',')
		sb.WriteString(fmtFloat(r.TotalBurned))
		sb.WriteByte(',')
		sb.WriteString(fmtFloat(r.FinalSupply))
		sb.WriteByte(',')
		sb.WriteString(fmtFloat(r.SupplyDepletedPct))
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(r.SupplyFloorDay))
		sb.WriteByte('\n')
	}

	return sb.String()
}

// fmtFloat renders the full-precision decimal form. Cells never use
// scientific notation, so spreadsheet imports keep their values.
func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
