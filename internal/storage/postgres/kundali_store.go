package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"kundali-engine/internal/domain"
	"kundali-engine/internal/storage"
)

// KundaliStore implements storage.KundaliStore using PostgreSQL. The
// whole chart is stored as one JSONB document; the birth instant is
// lifted into its own column so range scans never parse documents.
type KundaliStore struct {
	pool *Pool
}

// NewKundaliStore creates a new KundaliStore.
func NewKundaliStore(pool *Pool) *KundaliStore {
	return &KundaliStore{pool: pool}
}

// Compile-time interface check.
var _ storage.KundaliStore = (*KundaliStore)(nil)

// Insert adds a new chart. Returns ErrDuplicateKey if chart_id exists.
func (s *KundaliStore) Insert(ctx context.Context, k *domain.Kundali) error {
	if k == nil || k.ChartID == "" {
		return storage.ErrInvalidInput
	}

	doc, err := json.Marshal(k)
	if err != nil {
		return fmt.Errorf("encode kundali %s: %w", k.ChartID, err)
	}

	query := `
		INSERT INTO kundalis (chart_id, birth_utc, time_known, document)
		VALUES ($1, $2, $3, $4)
	`

	_, err = s.pool.Exec(ctx, query, k.ChartID, k.BirthUTC, k.TimeKnown, doc)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert kundali: %w", err)
	}
	return nil
}

// GetByChartID retrieves a chart by its ID. Returns ErrNotFound if not exists.
func (s *KundaliStore) GetByChartID(ctx context.Context, chartID string) (*domain.Kundali, error) {
	query := `
		SELECT document
		FROM kundalis
		WHERE chart_id = $1
	`

	row := s.pool.QueryRow(ctx, query, chartID)
	k, err := scanKundali(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get kundali by chart id: %w", err)
	}
	return k, nil
}

// GetByTimeRange retrieves charts whose birth instant falls within
// [start, end] (inclusive), ordered by birth instant ASC.
func (s *KundaliStore) GetByTimeRange(ctx context.Context, start, end time.Time) ([]*domain.Kundali, error) {
	query := `
		SELECT document
		FROM kundalis
		WHERE birth_utc >= $1 AND birth_utc <= $2
		ORDER BY birth_utc ASC, chart_id ASC
	`

	rows, err := s.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("get kundalis by time range: %w", err)
	}
	defer rows.Close()

	return scanKundalis(rows)
}

// List returns all stored chart IDs in insertion order.
func (s *KundaliStore) List(ctx context.Context) ([]string, error) {
	query := `
		SELECT chart_id
		FROM kundalis
		ORDER BY created_at ASC, chart_id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list kundalis: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan chart id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chart ids: %w", err)
	}

	return ids, nil
}

// scanKundali scans a single document row into a Kundali.
func scanKundali(row pgx.Row) (*domain.Kundali, error) {
	var doc []byte
	if err := row.Scan(&doc); err != nil {
		return nil, err
	}

	var k domain.Kundali
	if err := json.Unmarshal(doc, &k); err != nil {
		return nil, fmt.Errorf("decode kundali document: %w", err)
	}
	return &k, nil
}

// scanKundalis scans multiple document rows into a slice of Kundali.
func scanKundalis(rows pgx.Rows) ([]*domain.Kundali, error) {
	var charts []*domain.Kundali

	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan kundali row: %w", err)
		}

		var k domain.Kundali
		if err := json.Unmarshal(doc, &k); err != nil {
			return nil, fmt.Errorf("decode kundali document: %w", err)
		}
		charts = append(charts, &k)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate kundali rows: %w", err)
	}

	return charts, nil
}
