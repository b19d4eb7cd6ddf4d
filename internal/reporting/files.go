package reporting

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFiles writes REPORT.md, the scenario outcome CSV, and one day-table
// CSV per scenario run into outputDir, creating the directory when missing.
func WriteFiles(outputDir string, report *Report, runs []ScenarioRun) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	reportPath := filepath.Join(outputDir, "REPORT.md")
	if err := os.WriteFile(reportPath, []byte(RenderMarkdown(report)), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	scenarioPath := filepath.Join(outputDir, "scenario_outcomes.csv")
	if err := os.WriteFile(scenarioPath, []byte(RenderScenarioCSV(report.ScenarioRows)), 0644); err != nil {
		return fmt.Errorf("write scenario outcomes: %w", err)
	}

	for _, sr := range runs {
		dayCSV, err := RenderRecordsCSV(sr.Run.Config, sr.Run.Records)
		if err != nil {
			return fmt.Errorf("render %s day table: %w", sr.ScenarioID, err)
		}
		name := fmt.Sprintf("simulation_%s.csv", sr.ScenarioID)
		if err := os.WriteFile(filepath.Join(outputDir, name), []byte(dayCSV), 0644); err != nil {
			return fmt.Errorf("write %s day table: %w", sr.ScenarioID, err)
		}
	}

	return nil
}
