package verification

import (
	"context"
	"errors"

	"tokenomics-lab/internal/simulation"
	"tokenomics-lab/internal/storage"
)

// ErrRunNotFound is returned when the run ID doesn't exist.
var ErrRunNotFound = errors.New("run not found")

// ReplayVerifier implements the Verifier interface against a run store.
type ReplayVerifier struct {
	runStore storage.RunStore
}

// ReplayVerifierOptions contains configuration for creating a ReplayVerifier.
type ReplayVerifierOptions struct {
	RunStore storage.RunStore
}

// NewReplayVerifier creates a new ReplayVerifier.
func NewReplayVerifier(opts ReplayVerifierOptions) *ReplayVerifier {
	return &ReplayVerifier{
		runStore: opts.RunStore,
	}
}

// VerifyRun verifies a single run by replaying its configuration.
func (v *ReplayVerifier) VerifyRun(ctx context.Context, runID string) (*RunVerification, error) {
	// 1. Load stored run
	stored, err := v.runStore.GetByID(ctx, runID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrRunNotFound
		}
		return nil, err
	}

	// 2. Re-execute the engine with the stored configuration
	replayed, err := simulation.Run(stored.Config)
	if err != nil {
		return nil, err
	}

	// 3. Compare the day records
	divergences := CompareRecords(stored.Records, replayed)

	daysChecked := len(stored.Records)
	if len(replayed) < daysChecked {
		daysChecked = len(replayed)
	}

	return &RunVerification{
		RunID:       runID,
		Match:       len(divergences) == 0,
		DaysChecked: daysChecked,
		Divergences: divergences,
	}, nil
}

// VerifyAll verifies all stored runs.
func (v *ReplayVerifier) VerifyAll(ctx context.Context) (*VerificationReport, error) {
	runs, err := v.runStore.List(ctx)
	if err != nil {
		return nil, err
	}

	report := &VerificationReport{
		TotalRuns: len(runs),
		Results:   make([]RunVerification, 0, len(runs)),
	}

	for _, run := range runs {
		result, err := v.VerifyRun(ctx, run.RunID)
		if err != nil {
			// Record the error as a divergence
			report.Results = append(report.Results, RunVerification{
				RunID: run.RunID,
				Match: false,
				Divergences: []FieldDivergence{
					{Field: "Error", Expected: nil, Actual: err.Error()},
				},
			})
			report.DivergentRuns++
			continue
		}

		report.Results = append(report.Results, *result)
		if result.Match {
			report.MatchedRuns++
		} else {
			report.DivergentRuns++
		}
	}

	return report, nil
}
