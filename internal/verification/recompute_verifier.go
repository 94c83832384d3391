package verification

import (
	"context"
	"errors"
	"fmt"

	"kundali-engine/internal/domain"
	"kundali-engine/internal/storage"
)

var (
	// ErrChartNotFound is returned when the chart ID doesn't exist in the store.
	ErrChartNotFound = errors.New("chart not found")
)

// Recomputer produces a fresh Kundali from a birth input. The engine
// satisfies this. Verification should be given an engine without a cache:
// replaying a stored result through a warm cache proves nothing.
type Recomputer interface {
	Compute(ctx context.Context, input domain.BirthInput) (*domain.Kundali, error)
}

// RecomputeVerifier implements Verifier by recomputing stored charts from
// their embedded birth inputs and diffing the result field by field.
type RecomputeVerifier struct {
	store  storage.KundaliStore
	engine Recomputer
}

// RecomputeVerifierOptions contains configuration for creating a RecomputeVerifier.
type RecomputeVerifierOptions struct {
	Store  storage.KundaliStore
	Engine Recomputer
}

// NewRecomputeVerifier creates a new RecomputeVerifier.
func NewRecomputeVerifier(opts RecomputeVerifierOptions) *RecomputeVerifier {
	return &RecomputeVerifier{
		store:  opts.Store,
		engine: opts.Engine,
	}
}

// VerifyChart verifies a single chart by recomputing it.
func (v *RecomputeVerifier) VerifyChart(ctx context.Context, chartID string) (*Result, error) {
	// 1. Load stored chart
	stored, err := v.store.GetByChartID(ctx, chartID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrChartNotFound
		}
		return nil, err
	}

	// 2. Recompute from the stored birth input
	recomputed, err := v.engine.Compute(ctx, stored.Input)
	if err != nil {
		return nil, fmt.Errorf("recompute chart %s: %w", chartID, err)
	}

	// 3. Compare results
	divergences := CompareKundalis(stored, recomputed)

	return &Result{
		ChartID:     chartID,
		Match:       len(divergences) == 0,
		Divergences: divergences,
	}, nil
}

// VerifyAll verifies all stored charts.
func (v *RecomputeVerifier) VerifyAll(ctx context.Context) (*Report, error) {
	ids, err := v.store.List(ctx)
	if err != nil {
		return nil, err
	}

	report := &Report{
		TotalCharts: len(ids),
		Results:     make([]Result, 0, len(ids)),
	}

	for _, id := range ids {
		result, err := v.VerifyChart(ctx, id)
		if err != nil {
			// Record error as divergence
			report.Results = append(report.Results, Result{
				ChartID: id,
				Match:   false,
				Divergences: []FieldDivergence{
					{Field: "Error", Expected: nil, Actual: err.Error()},
				},
			})
			report.DivergentCharts++
			continue
		}

		report.Results = append(report.Results, *result)
		if result.Match {
			report.MatchedCharts++
		} else {
			report.DivergentCharts++
		}
	}

	return report, nil
}

// Verify interface compliance at compile time.
var _ Verifier = (*RecomputeVerifier)(nil)
