package storage

import (
	"context"

	"tokenomics-lab/internal/domain"
)

// RunStore is the session-scoped run registry. Implementations hold runs
// for the life of the process only; nothing survives a restart.
type RunStore interface {
	// Insert registers a finished run. Returns ErrDuplicateKey if run_id exists.
	Insert(ctx context.Context, run *domain.SimulationRun) error

	// GetByID retrieves a run by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, runID string) (*domain.SimulationRun, error)

	// List retrieves all registered runs, newest first.
	List(ctx context.Context) ([]*domain.SimulationRun, error)

	// Delete removes a run. Returns ErrNotFound if not exists.
	Delete(ctx context.Context, runID string) error

	// Count returns the number of registered runs.
	Count(ctx context.Context) (int, error)
}
