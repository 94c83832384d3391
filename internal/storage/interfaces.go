package storage

import (
	"context"
	"time"

	"kundali-engine/internal/domain"
)

// KundaliStore provides access to computed chart storage. The Kundali is
// persisted as an opaque JSON document keyed by its content-derived chart ID.
type KundaliStore interface {
	// Insert adds a new chart. Returns ErrDuplicateKey if chart_id exists.
	Insert(ctx context.Context, k *domain.Kundali) error

	// GetByChartID retrieves a chart by its ID. Returns ErrNotFound if not exists.
	GetByChartID(ctx context.Context, chartID string) (*domain.Kundali, error)

	// GetByTimeRange retrieves charts whose birth instant falls within
	// [start, end] (inclusive), ordered by birth instant ASC.
	GetByTimeRange(ctx context.Context, start, end time.Time) ([]*domain.Kundali, error)

	// List returns all stored chart IDs in insertion order.
	List(ctx context.Context) ([]string, error)
}

// FeatureStore provides access to extracted feature vector storage. Rows are
// flat: one numeric column per feature slot, keyed by (chart_id, version).
type FeatureStore interface {
	// InsertBulk adds multiple vectors. Fails the entire batch on any
	// duplicate (chart_id, version).
	InsertBulk(ctx context.Context, vectors []*domain.FeatureVector) error

	// GetByChartID retrieves all vectors for a chart, ordered by version ASC.
	GetByChartID(ctx context.Context, chartID string) ([]*domain.FeatureVector, error)

	// GetByVersion retrieves all vectors of one layout version, ordered by
	// computed_at ASC then chart_id ASC.
	GetByVersion(ctx context.Context, version int32) ([]*domain.FeatureVector, error)
}
