package storage

import (
	"context"
	"time"
)

// VerificationRecord captures one chart's recompute-verification outcome.
type VerificationRecord struct {
	ChartID     string
	Clean       bool // no divergent fields
	Divergences int  // count of divergent fields
	VerifiedAt  time.Time
}

// VerificationLedger persists verification progress so a verify pass can
// resume after restarts without rechecking charts it has already covered.
// Unlike the chart and feature stores the ledger is not append-only:
// re-verifying after an engine fix overwrites the earlier record.
type VerificationLedger interface {
	// MarkVerified records the outcome for a chart, replacing any earlier record.
	MarkVerified(ctx context.Context, rec *VerificationRecord) error

	// IsVerified reports whether a chart already has a verification record.
	IsVerified(ctx context.Context, chartID string) (bool, error)

	// LoadVerified returns all verified chart IDs (for warming the skip set).
	LoadVerified(ctx context.Context) ([]string, error)
}
