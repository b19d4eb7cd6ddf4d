// Package handlers implements the HTTP handlers behind /api/v1.
package handlers

import (
	"tokenomics-lab/internal/api/models"
	"tokenomics-lab/internal/verification"
)

func toDivergenceRows(divergences []verification.FieldDivergence) []models.DivergenceRow {
	if len(divergences) == 0 {
		return nil
	}
	rows := make([]models.DivergenceRow, len(divergences))
	for i, d := range divergences {
		rows[i] = models.DivergenceRow{
			Day:      d.Day,
			Field:    d.Field,
			Expected: d.Expected,
			Actual:   d.Actual,
		}
	}
	return rows
}
