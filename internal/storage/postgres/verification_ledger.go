package postgres

import (
	"context"
	"fmt"

	"kundali-engine/internal/storage"
)

// VerificationLedger implements storage.VerificationLedger using PostgreSQL.
type VerificationLedger struct {
	pool *Pool
}

// NewVerificationLedger creates a new VerificationLedger.
func NewVerificationLedger(pool *Pool) *VerificationLedger {
	return &VerificationLedger{pool: pool}
}

// Compile-time interface check.
var _ storage.VerificationLedger = (*VerificationLedger)(nil)

// MarkVerified records the outcome for a chart, replacing any earlier record.
func (l *VerificationLedger) MarkVerified(ctx context.Context, rec *storage.VerificationRecord) error {
	if rec == nil || rec.ChartID == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO verified_charts (chart_id, clean, divergences, verified_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (chart_id) DO UPDATE SET
			clean = EXCLUDED.clean,
			divergences = EXCLUDED.divergences,
			verified_at = EXCLUDED.verified_at
	`

	_, err := l.pool.Exec(ctx, query, rec.ChartID, rec.Clean, rec.Divergences, rec.VerifiedAt)
	if err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}
	return nil
}

// IsVerified reports whether a chart already has a verification record.
func (l *VerificationLedger) IsVerified(ctx context.Context, chartID string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM verified_charts WHERE chart_id = $1)
	`

	var exists bool
	if err := l.pool.QueryRow(ctx, query, chartID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check verified: %w", err)
	}
	return exists, nil
}

// LoadVerified returns all verified chart IDs (for warming the skip set).
func (l *VerificationLedger) LoadVerified(ctx context.Context) ([]string, error) {
	query := `
		SELECT chart_id
		FROM verified_charts
		ORDER BY chart_id ASC
	`

	rows, err := l.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load verified: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan verified chart id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verified chart ids: %w", err)
	}

	return ids, nil
}
