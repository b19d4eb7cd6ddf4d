package memory

import (
	"context"
	"sync"

	"tokenomics-lab/internal/domain"
	"tokenomics-lab/internal/storage"
)

// DefaultCapacity bounds the run registry when no capacity is given.
const DefaultCapacity = 256

// RunStore is an in-memory implementation of storage.RunStore. The store
// is bounded: once full, inserting a new run evicts the oldest one.
type RunStore struct {
	mu       sync.RWMutex
	capacity int
	data     map[string]*domain.SimulationRun // keyed by run_id
	order    []string                         // run_ids in insertion order
}

// NewRunStore creates a new in-memory run store. A capacity <= 0 selects
// DefaultCapacity.
func NewRunStore(capacity int) *RunStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &RunStore{
		capacity: capacity,
		data:     make(map[string]*domain.SimulationRun),
	}
}

// Insert registers a finished run. Returns ErrDuplicateKey if run_id exists.
func (s *RunStore) Insert(_ context.Context, run *domain.SimulationRun) error {
	if run == nil || run.RunID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[run.RunID]; exists {
		return storage.ErrDuplicateKey
	}

	if len(s.order) >= s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.data, oldest)
	}

	// Store a copy to prevent external mutation
	s.data[run.RunID] = cloneRun(run)
	s.order = append(s.order, run.RunID)
	return nil
}

// GetByID retrieves a run by its ID. Returns ErrNotFound if not exists.
func (s *RunStore) GetByID(_ context.Context, runID string) (*domain.SimulationRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, exists := s.data[runID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	// Return a copy
	return cloneRun(run), nil
}

// List retrieves all registered runs, newest first.
func (s *RunStore) List(_ context.Context) ([]*domain.SimulationRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.SimulationRun, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		result = append(result, cloneRun(s.data[s.order[i]]))
	}
	return result, nil
}

// Delete removes a run. Returns ErrNotFound if not exists.
func (s *RunStore) Delete(_ context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[runID]; !exists {
		return storage.ErrNotFound
	}

	delete(s.data, runID)
	for i, id := range s.order {
		if id == runID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Count returns the number of registered runs.
func (s *RunStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.data), nil
}

// cloneRun deep-copies a run so callers and the store never share slices.
func cloneRun(run *domain.SimulationRun) *domain.SimulationRun {
	out := *run
	out.Config = run.Config.Clone()

	out.Records = make([]domain.DailyRecord, len(run.Records))
	for i, r := range run.Records {
		rec := r
		rec.ServiceBurns = make([]domain.ServiceBurn, len(r.ServiceBurns))
		copy(rec.ServiceBurns, r.ServiceBurns)
		out.Records[i] = rec
	}

	out.Summary.Services = make([]domain.ServiceSummary, len(run.Summary.Services))
	copy(out.Summary.Services, run.Summary.Services)

	return &out
}

// Verify interface compliance at compile time.
var _ storage.RunStore = (*RunStore)(nil)
