package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"tokenomics-lab/internal/api/models"
	"tokenomics-lab/internal/domain"
	"tokenomics-lab/internal/observability"
	"tokenomics-lab/internal/reporting"
	"tokenomics-lab/internal/simulation"
	"tokenomics-lab/internal/storage"
	"tokenomics-lab/internal/verification"

	"github.com/gin-gonic/gin"
)

// SimulationHandler handles simulation run requests.
type SimulationHandler struct {
	runner   *simulation.Runner
	runStore storage.RunStore
	verifier verification.Verifier
	defaults domain.SimulationConfig
}

// NewSimulationHandler creates a new simulation handler. defaults is the
// fully resolved server configuration that request fields overlay.
func NewSimulationHandler(runner *simulation.Runner, runStore storage.RunStore, verifier verification.Verifier, defaults domain.SimulationConfig) *SimulationHandler {
	return &SimulationHandler{
		runner:   runner,
		runStore: runStore,
		verifier: verifier,
		defaults: defaults,
	}
}

// RunSimulation handles POST /api/v1/simulations.
func (h *SimulationHandler) RunSimulation(c *gin.Context) {
	var req models.SimulationRequest
	// An empty body runs the server defaults.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	cfg, err := req.ApplyTo(h.defaults)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_CONFIG",
				Message: err.Error(),
			},
		})
		return
	}

	run, err := h.runner.Run(c.Request.Context(), cfg, domain.TriggerAPI)
	if err != nil {
		status := http.StatusInternalServerError
		code := "SIMULATION_ERROR"
		if errors.Is(err, domain.ErrInvalidConfig) {
			status = http.StatusBadRequest
			code = "INVALID_CONFIG"
		}
		c.JSON(status, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    code,
				Message: err.Error(),
			},
		})
		return
	}

	resp := models.NewRunResponse(run, req.Options.IncludeRecords)
	if req.Options.IncludeSeries {
		series := models.NewSeriesResponse(run.RunID, reporting.BuildSeries(run.Records))
		resp.Series = &series
	}

	c.JSON(http.StatusOK, resp)
}

// ListRuns handles GET /api/v1/simulations.
func (h *SimulationHandler) ListRuns(c *gin.Context) {
	runs, err := h.runStore.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "STORE_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	infos := make([]models.RunInfo, 0, len(runs))
	for _, run := range runs {
		infos = append(infos, models.NewRunInfo(run))
	}

	c.JSON(http.StatusOK, models.ListRunsResponse{
		Runs:  infos,
		Count: len(infos),
	})
}

// GetRun handles GET /api/v1/simulations/:id.
func (h *SimulationHandler) GetRun(c *gin.Context) {
	run, ok := h.loadRun(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.NewRunResponse(run, true))
}

// DeleteRun handles DELETE /api/v1/simulations/:id.
func (h *SimulationHandler) DeleteRun(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.runStore.Delete(ctx, c.Param("id")); err != nil {
		h.storeError(c, err)
		return
	}

	if count, err := h.runStore.Count(ctx); err == nil {
		observability.UpdateRunsStored(count)
	}

	c.Status(http.StatusNoContent)
}

// ExportRun handles GET /api/v1/simulations/:id/export. It streams the
// run's day table as a CSV attachment.
func (h *SimulationHandler) ExportRun(c *gin.Context) {
	run, ok := h.loadRun(c)
	if !ok {
		return
	}

	out, err := reporting.RenderRecordsCSV(run.Config, run.Records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "EXPORT_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	observability.RecordExport("csv")

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", reporting.ExportFilename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(out))
}

// GetSeries handles GET /api/v1/simulations/:id/series. It returns
// chart-ready columnar series for the stored run.
func (h *SimulationHandler) GetSeries(c *gin.Context) {
	run, ok := h.loadRun(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, models.NewSeriesResponse(run.RunID, reporting.BuildSeries(run.Records)))
}

// VerifyRun handles POST /api/v1/simulations/:id/verify. It replays the
// stored run's configuration and reports any divergence.
func (h *SimulationHandler) VerifyRun(c *gin.Context) {
	result, err := h.verifier.VerifyRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, verification.ErrRunNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "NOT_FOUND",
					Message: err.Error(),
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "VERIFY_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.VerifyResponse{
		RunID:       result.RunID,
		Match:       result.Match,
		DaysChecked: result.DaysChecked,
		Divergences: toDivergenceRows(result.Divergences),
	})
}

// CompareSimulations handles POST /api/v1/compare.
func (h *SimulationHandler) CompareSimulations(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	base, err := req.Base.ApplyTo(h.defaults)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_CONFIG",
				Message: err.Error(),
			},
		})
		return
	}

	variations := make([]domain.NamedConfig, 0, len(req.Variations))
	for _, v := range req.Variations {
		cfg, err := v.Config.ApplyTo(base)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "INVALID_CONFIG",
					Message: fmt.Sprintf("variation %q: %v", v.Name, err),
				},
			})
			return
		}
		variations = append(variations, domain.NamedConfig{Name: v.Name, Config: cfg})
	}

	result, err := h.runner.Compare(c.Request.Context(), base, variations)
	if err != nil {
		status := http.StatusInternalServerError
		code := "SIMULATION_ERROR"
		if errors.Is(err, domain.ErrInvalidConfig) {
			status = http.StatusBadRequest
			code = "INVALID_CONFIG"
		}
		c.JSON(status, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    code,
				Message: err.Error(),
			},
		})
		return
	}

	entries := make([]models.ComparisonEntry, 0, len(result.Entries))
	for _, e := range result.Entries {
		entries = append(entries, models.ComparisonEntry{
			Name:    e.Name,
			RunID:   e.RunID,
			Config:  models.NewConfigResponse(e.Config),
			Summary: models.NewSummaryResponse(e.Summary),
		})
	}

	c.JSON(http.StatusOK, models.CompareResponse{
		CreatedAt: result.CreatedAt,
		Entries:   entries,
	})
}

// loadRun fetches the run named by the :id parameter, writing the error
// response itself when the run cannot be served.
func (h *SimulationHandler) loadRun(c *gin.Context) (*domain.SimulationRun, bool) {
	run, err := h.runStore.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.storeError(c, err)
		return nil, false
	}
	return run, true
}

// storeError maps storage errors onto API error responses.
func (h *SimulationHandler) storeError(c *gin.Context, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "NOT_FOUND",
				Message: fmt.Sprintf("run %q not found", c.Param("id")),
			},
		})
		return
	}
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "STORE_ERROR",
			Message: err.Error(),
		},
	})
}
