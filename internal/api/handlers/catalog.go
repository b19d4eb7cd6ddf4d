package handlers

import (
	"net/http"

	"tokenomics-lab/internal/api/models"
	"tokenomics-lab/internal/domain"
	"tokenomics-lab/internal/simulation"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the discovery endpoints: configured services,
// predefined scenarios and the server's default parameters.
type CatalogHandler struct {
	defaults domain.SimulationConfig
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(defaults domain.SimulationConfig) *CatalogHandler {
	return &CatalogHandler{defaults: defaults}
}

// ListServices handles GET /api/v1/services. Estimates use the default
// initial price; the actual burn on day one also reflects the scarcity
// adjustment and market drift.
func (h *CatalogHandler) ListServices(c *gin.Context) {
	estimates := simulation.FirstDayEstimates(h.defaults)

	infos := make([]models.ServiceInfo, 0, len(h.defaults.Services))
	for i, svc := range h.defaults.Services {
		info := models.ServiceInfo{
			Name:        svc.Name,
			BurnRate:    svc.BurnRate,
			DailyVolume: svc.DailyVolume,
		}
		if i < len(estimates) {
			info.FirstDayBurnEst = estimates[i].Tokens
		}
		infos = append(infos, info)
	}

	c.JSON(http.StatusOK, gin.H{"services": infos})
}

// ListScenarios handles GET /api/v1/scenarios.
func (h *CatalogHandler) ListScenarios(c *gin.Context) {
	scenarios := domain.Scenarios()

	infos := make([]models.ScenarioInfo, 0, len(scenarios))
	for _, s := range scenarios {
		infos = append(infos, models.ScenarioInfo{
			ScenarioID:           s.ScenarioID,
			YearlyPriceChangePct: s.YearlyPriceChangePct,
			Description:          s.Description,
		})
	}

	c.JSON(http.StatusOK, gin.H{"scenarios": infos})
}

// GetDefaults handles GET /api/v1/defaults.
func (h *CatalogHandler) GetDefaults(c *gin.Context) {
	ranges := domain.ParameterRanges()

	rangeInfos := make([]models.ParameterRangeInfo, 0, len(ranges))
	for _, r := range ranges {
		rangeInfos = append(rangeInfos, models.ParameterRangeInfo{
			Name:        r.Name,
			Min:         r.Min,
			Max:         r.Max,
			Step:        r.Step,
			Default:     r.Default,
			Description: r.Description,
		})
	}

	c.JSON(http.StatusOK, models.DefaultsResponse{
		Config: models.NewConfigResponse(h.defaults),
		Ranges: rangeInfos,
	})
}
