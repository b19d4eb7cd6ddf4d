package simulation

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"tokenomics-lab/internal/domain"
	"tokenomics-lab/internal/idhash"
	"tokenomics-lab/internal/metrics"
	"tokenomics-lab/internal/observability"
	"tokenomics-lab/internal/storage"
)

// Runner executes simulations and registers the results. Every surface
// (API, live sessions, CLIs) runs through it so registration, metrics,
// and logging behave the same everywhere.
type Runner struct {
	runStore storage.RunStore
	log      *log.Logger
	now      func() time.Time
}

// RunnerOptions contains configuration for creating a Runner.
type RunnerOptions struct {
	RunStore storage.RunStore // optional; runs are not registered when nil
	Logger   *log.Logger      // optional; defaults to a stdout logger
}

// NewRunner creates a simulation runner.
func NewRunner(opts RunnerOptions) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stdout, "[simulation] ", log.LstdFlags|log.Lshortfile)
	}
	return &Runner{
		runStore: opts.RunStore,
		log:      logger,
		now:      time.Now,
	}
}

// WithClock overrides the registration time source. Used by tests.
func (r *Runner) WithClock(now func() time.Time) *Runner {
	r.now = now
	return r
}

// Run executes one simulation and registers the result.
// Steps:
//  1. Run the engine (validates the config)
//  2. Summarize the records
//  3. Compute the deterministic run ID
//  4. Register the run; a repeated identical config gets a unique suffix
//  5. Record observability counters
func (r *Runner) Run(ctx context.Context, cfg domain.SimulationConfig, trigger string) (*domain.SimulationRun, error) {
	started := time.Now()

	// 1. Run the engine
	records, err := Run(cfg)
	if err != nil {
		observability.RecordSimulationError(errorReason(err))
		return nil, err
	}

	// 2. Summarize the records
	summary := metrics.Summarize(cfg, records)

	// 3. Compute the deterministic run ID
	run := &domain.SimulationRun{
		RunID:     idhash.ComputeRunID(cfg),
		CreatedAt: r.now(),
		Trigger:   trigger,
		Config:    cfg.Clone(),
		Records:   records,
		Summary:   summary,
	}

	// 4. Register the run
	if r.runStore != nil {
		if err := r.runStore.Insert(ctx, run); err != nil {
			if !errors.Is(err, storage.ErrDuplicateKey) {
				observability.RecordSimulationError("store")
				return nil, err
			}
			// Same config ran before; keep the content hash visible and
			// disambiguate with a random suffix.
			run.RunID = run.RunID + "_" + uuid.NewString()[:8]
			if err := r.runStore.Insert(ctx, run); err != nil {
				observability.RecordSimulationError("store")
				return nil, err
			}
		}
		if count, err := r.runStore.Count(ctx); err == nil {
			observability.UpdateRunsStored(count)
		}
	}

	// 5. Record observability counters
	observability.RecordSimulation(trigger, len(records), time.Since(started).Seconds())

	r.log.Printf("run %s registered: trigger=%s days=%d burned=%.2f final_supply=%.2f",
		run.RunID, trigger, summary.HorizonDays, summary.TotalBurned, summary.FinalSupply)

	return run, nil
}

// Compare runs a base config and each named variation, returning their
// summaries side by side with the base first. Comparison runs are not
// registered; entries carry the deterministic ID of their config so any
// variation can be re-run and registered individually.
func (r *Runner) Compare(_ context.Context, base domain.SimulationConfig, variations []domain.NamedConfig) (*domain.ComparisonResult, error) {
	result := &domain.ComparisonResult{
		CreatedAt: r.now(),
		Entries:   make([]domain.ComparisonEntry, 0, len(variations)+1),
	}

	all := append([]domain.NamedConfig{{Name: "base", Config: base}}, variations...)
	for _, nc := range all {
		records, err := Run(nc.Config)
		if err != nil {
			observability.RecordSimulationError(errorReason(err))
			return nil, err
		}
		result.Entries = append(result.Entries, domain.ComparisonEntry{
			Name:    nc.Name,
			RunID:   idhash.ComputeRunID(nc.Config),
			Config:  nc.Config.Clone(),
			Summary: metrics.Summarize(nc.Config, records),
		})
	}

	observability.RecordComparison()
	r.log.Printf("comparison finished: %d entries, base + %d variations", len(result.Entries), len(variations))

	return result, nil
}

func errorReason(err error) string {
	if errors.Is(err, domain.ErrInvalidConfig) {
		return "invalid_config"
	}
	return "engine"
}
