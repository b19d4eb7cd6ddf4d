// Package verification replays stored simulation runs and checks that the
// persisted day records match a fresh execution of the same configuration.
// The engine is deterministic, so any divergence means the stored run was
// tampered with or produced by a different engine build.
package verification

import (
	"context"
	"math"

	"tokenomics-lab/internal/domain"
)

// FloatTolerance is the tolerance for float64 comparisons. Replays execute
// the exact same floating-point operations, so the tolerance only has to
// absorb cross-platform math library differences.
const FloatTolerance = 1e-9

// FieldDivergence represents a mismatch between a stored and replayed value.
type FieldDivergence struct {
	Day      int         // simulation day (0 for run-level fields)
	Field    string      // field name
	Expected interface{} // stored value
	Actual   interface{} // replayed value
}

// RunVerification contains the result of verifying a single run.
type RunVerification struct {
	RunID       string            // verified run ID
	Match       bool              // true if all fields match
	DaysChecked int               // day records compared
	Divergences []FieldDivergence // list of divergent fields
}

// VerificationReport contains results for batch verification.
type VerificationReport struct {
	TotalRuns     int               // total runs verified
	MatchedRuns   int               // runs that matched exactly
	DivergentRuns int               // runs with divergences
	Results       []RunVerification // individual results
}

// Verifier interface for simulation replay verification.
type Verifier interface {
	// VerifyRun verifies a single run by ID.
	// It loads the stored run, re-executes the engine with the same
	// configuration, and compares every day record.
	VerifyRun(ctx context.Context, runID string) (*RunVerification, error)

	// VerifyAll verifies all stored runs.
	// Returns a report with individual results.
	VerifyAll(ctx context.Context) (*VerificationReport, error)
}

// CompareRecords compares stored and replayed day records and returns
// divergences. Uses FloatTolerance for float64 comparisons.
func CompareRecords(stored, replayed []domain.DailyRecord) []FieldDivergence {
	var divergences []FieldDivergence

	if len(stored) != len(replayed) {
		divergences = append(divergences, FieldDivergence{
			Field:    "RecordCount",
			Expected: len(stored),
			Actual:   len(replayed),
		})
	}

	n := len(stored)
	if len(replayed) < n {
		n = len(replayed)
	}

	for i := 0; i < n; i++ {
		s := stored[i]
		r := replayed[i]

		if s.Day != r.Day {
			divergences = append(divergences, FieldDivergence{
				Day:      s.Day,
				Field:    "Day",
				Expected: s.Day,
				Actual:   r.Day,
			})
		}

		if !floatEquals(s.PriceNoBurn, r.PriceNoBurn) {
			divergences = append(divergences, FieldDivergence{
				Day:      s.Day,
				Field:    "PriceNoBurn",
				Expected: s.PriceNoBurn,
				Actual:   r.PriceNoBurn,
			})
		}

		if !floatEquals(s.PriceWithBurn, r.PriceWithBurn) {
			divergences = append(divergences, FieldDivergence{
				Day:      s.Day,
				Field:    "PriceWithBurn",
				Expected: s.PriceWithBurn,
				Actual:   r.PriceWithBurn,
			})
		}

		if !floatEquals(s.RemainingSupply, r.RemainingSupply) {
			divergences = append(divergences, FieldDivergence{
				Day:      s.Day,
				Field:    "RemainingSupply",
				Expected: s.RemainingSupply,
				Actual:   r.RemainingSupply,
			})
		}

		if !floatEquals(s.DailyBurned, r.DailyBurned) {
			divergences = append(divergences, FieldDivergence{
				Day:      s.Day,
				Field:    "DailyBurned",
				Expected: s.DailyBurned,
				Actual:   r.DailyBurned,
			})
		}

		if !floatEquals(s.CumulativeBurned, r.CumulativeBurned) {
			divergences = append(divergences, FieldDivergence{
				Day:      s.Day,
				Field:    "CumulativeBurned",
				Expected: s.CumulativeBurned,
				Actual:   r.CumulativeBurned,
			})
		}

		divergences = append(divergences, compareServiceBurns(s.Day, s.ServiceBurns, r.ServiceBurns)...)
	}

	return divergences
}

// compareServiceBurns compares the per-service burn breakdown for one day.
func compareServiceBurns(day int, stored, replayed []domain.ServiceBurn) []FieldDivergence {
	var divergences []FieldDivergence

	if len(stored) != len(replayed) {
		divergences = append(divergences, FieldDivergence{
			Day:      day,
			Field:    "ServiceBurnCount",
			Expected: len(stored),
			Actual:   len(replayed),
		})
		return divergences
	}

	for i := range stored {
		if stored[i].Service != replayed[i].Service {
			divergences = append(divergences, FieldDivergence{
				Day:      day,
				Field:    "ServiceBurns[" + stored[i].Service + "].Service",
				Expected: stored[i].Service,
				Actual:   replayed[i].Service,
			})
			continue
		}

		if !floatEquals(stored[i].Tokens, replayed[i].Tokens) {
			divergences = append(divergences, FieldDivergence{
				Day:      day,
				Field:    "ServiceBurns[" + stored[i].Service + "].Tokens",
				Expected: stored[i].Tokens,
				Actual:   replayed[i].Tokens,
			})
		}
	}

	return divergences
}

// floatEquals compares two float64 values within FloatTolerance.
// Infinities compare by sign: a zero-supply run stores +Inf prices and a
// faithful replay must reproduce them.
func floatEquals(a, b float64) bool {
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return a == b
	}
	return math.Abs(a-b) <= FloatTolerance
}
