// Package api assembles the gin router serving the lab's HTTP surface.
package api

import (
	"net/http"
	"time"

	"tokenomics-lab/internal/api/handlers"
	"tokenomics-lab/internal/api/middleware"
	"tokenomics-lab/internal/api/models"
	"tokenomics-lab/internal/domain"
	"tokenomics-lab/internal/observability"
	"tokenomics-lab/internal/simulation"
	"tokenomics-lab/internal/storage"
	"tokenomics-lab/internal/verification"

	"github.com/gin-gonic/gin"
)

// Options contains the components the router serves.
type Options struct {
	Runner   *simulation.Runner
	RunStore storage.RunStore
	Verifier verification.Verifier
	Defaults domain.SimulationConfig

	// Live is the websocket session endpoint, mounted at /ws when set.
	Live http.Handler

	// Release switches gin to release mode and silences route logging.
	Release bool
}

// NewRouter builds the gin engine with all routes attached.
func NewRouter(opts Options) *gin.Engine {
	if opts.Release {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.ErrorHandler())

	simHandler := handlers.NewSimulationHandler(opts.Runner, opts.RunStore, opts.Verifier, opts.Defaults)
	catalogHandler := handlers.NewCatalogHandler(opts.Defaults)

	startedAt := time.Now()

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(observability.Handler()))

	// Status endpoint
	router.GET("/status", func(c *gin.Context) {
		count, err := opts.RunStore.Count(c.Request.Context())
		if err != nil {
			count = 0
		}
		c.JSON(http.StatusOK, models.StatusResponse{
			Status:     "running",
			Uptime:     time.Since(startedAt).String(),
			StartedAt:  startedAt,
			RunsStored: count,
		})
	})

	// Live websocket sessions
	if opts.Live != nil {
		router.GET("/ws", gin.WrapH(opts.Live))
	}

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/simulations", simHandler.RunSimulation)
		api.GET("/simulations", simHandler.ListRuns)
		api.GET("/simulations/:id", simHandler.GetRun)
		api.DELETE("/simulations/:id", simHandler.DeleteRun)
		api.GET("/simulations/:id/export", simHandler.ExportRun)
		api.GET("/simulations/:id/series", simHandler.GetSeries)
		api.POST("/simulations/:id/verify", simHandler.VerifyRun)

		api.POST("/compare", simHandler.CompareSimulations)

		api.GET("/services", catalogHandler.ListServices)
		api.GET("/scenarios", catalogHandler.ListScenarios)
		api.GET("/defaults", catalogHandler.GetDefaults)
	}

	return router
}
