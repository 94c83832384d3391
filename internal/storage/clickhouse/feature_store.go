package clickhouse

import (
	"context"
	"fmt"
	"strings"

	"kundali-engine/internal/domain"
	"kundali-engine/internal/features"
	"kundali-engine/internal/storage"
)

// featureColumns holds one column name per feature slot, in the frozen
// vector order. The chart_features DDL lists the same names; a layout
// change means a new Version plus a new table, never a reorder here.
var featureColumns = features.Names()

// FeatureStore implements storage.FeatureStore using ClickHouse.
type FeatureStore struct {
	conn *Conn
}

// NewFeatureStore creates a new FeatureStore.
func NewFeatureStore(conn *Conn) *FeatureStore {
	return &FeatureStore{conn: conn}
}

// Compile-time interface check.
var _ storage.FeatureStore = (*FeatureStore)(nil)

// InsertBulk adds multiple vectors. Fails the entire batch on any
// duplicate (chart_id, version).
func (s *FeatureStore) InsertBulk(ctx context.Context, vectors []*domain.FeatureVector) error {
	if len(vectors) == 0 {
		return nil
	}

	for _, v := range vectors {
		if v == nil || v.ChartID == "" || len(v.Values) != domain.FeatureVectorLen {
			return storage.ErrInvalidInput
		}
	}

	// Check for intra-batch duplicates
	type key struct {
		chartID string
		version int32
	}
	seen := make(map[key]struct{}, len(vectors))
	for _, v := range vectors {
		k := key{v.ChartID, v.Version}
		if _, exists := seen[k]; exists {
			return storage.ErrDuplicateKey
		}
		seen[k] = struct{}{}
	}

	// MergeTree does not enforce uniqueness, so check against existing rows
	for _, v := range vectors {
		exists, err := s.exists(ctx, v.ChartID, v.Version)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, fmt.Sprintf(
		"INSERT INTO chart_features (%s)", selectColumns(),
	))
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, v := range vectors {
		args := make([]interface{}, 0, 3+len(v.Values))
		args = append(args, v.ChartID, v.Version, uint64(v.ComputedAt))
		for _, val := range v.Values {
			args = append(args, val)
		}
		if err := batch.Append(args...); err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByChartID retrieves all vectors for a chart, ordered by version ASC.
func (s *FeatureStore) GetByChartID(ctx context.Context, chartID string) ([]*domain.FeatureVector, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM chart_features
		WHERE chart_id = ?
		ORDER BY version ASC
	`, selectColumns())

	rows, err := s.conn.Query(ctx, query, chartID)
	if err != nil {
		return nil, fmt.Errorf("query by chart id: %w", err)
	}
	defer rows.Close()

	return scanFeatureVectors(rows)
}

// GetByVersion retrieves all vectors of one layout version, ordered by
// computed_at ASC then chart_id ASC.
func (s *FeatureStore) GetByVersion(ctx context.Context, version int32) ([]*domain.FeatureVector, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM chart_features
		WHERE version = ?
		ORDER BY computed_at_ms ASC, chart_id ASC
	`, selectColumns())

	rows, err := s.conn.Query(ctx, query, version)
	if err != nil {
		return nil, fmt.Errorf("query by version: %w", err)
	}
	defer rows.Close()

	return scanFeatureVectors(rows)
}

// exists checks if a vector with the given key exists.
func (s *FeatureStore) exists(ctx context.Context, chartID string, version int32) (bool, error) {
	query := `
		SELECT count(*) FROM chart_features
		WHERE chart_id = ? AND version = ?
	`

	var count uint64
	err := s.conn.QueryRow(ctx, query, chartID, version).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// selectColumns returns the full column list: key columns first, then
// one column per feature slot.
func selectColumns() string {
	cols := make([]string, 0, 3+len(featureColumns))
	cols = append(cols, "chart_id", "version", "computed_at_ms")
	cols = append(cols, featureColumns...)
	return strings.Join(cols, ", ")
}

// chRows abstracts driver rows for scanning.
type chRows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// scanFeatureVectors scans multiple rows back into vectors.
func scanFeatureVectors(rows chRows) ([]*domain.FeatureVector, error) {
	var vectors []*domain.FeatureVector

	for rows.Next() {
		v := domain.FeatureVector{
			Values: make([]float64, len(featureColumns)),
		}
		var computedMs uint64

		dest := make([]interface{}, 0, 3+len(v.Values))
		dest = append(dest, &v.ChartID, &v.Version, &computedMs)
		for i := range v.Values {
			dest = append(dest, &v.Values[i])
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan feature row: %w", err)
		}

		v.ComputedAt = int64(computedMs)
		vectors = append(vectors, &v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feature rows: %w", err)
	}

	return vectors, nil
}
