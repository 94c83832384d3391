package memory

import (
	"context"
	"sort"
	"sync"

	"kundali-engine/internal/domain"
	"kundali-engine/internal/storage"
)

// featureKey identifies one stored vector.
type featureKey struct {
	chartID string
	version int32
}

// FeatureStore is an in-memory implementation of storage.FeatureStore.
type FeatureStore struct {
	mu   sync.RWMutex
	data map[featureKey]*domain.FeatureVector
}

// NewFeatureStore creates a new in-memory feature store.
func NewFeatureStore() *FeatureStore {
	return &FeatureStore{
		data: make(map[featureKey]*domain.FeatureVector),
	}
}

// InsertBulk adds multiple vectors. Fails the entire batch on any duplicate
// (chart_id, version), leaving the store untouched.
func (s *FeatureStore) InsertBulk(_ context.Context, vectors []*domain.FeatureVector) error {
	if len(vectors) == 0 {
		return nil
	}

	for _, v := range vectors {
		if v == nil || v.ChartID == "" || len(v.Values) != domain.FeatureVectorLen {
			return storage.ErrInvalidInput
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Reject intra-batch and against-store duplicates before writing anything
	seen := make(map[featureKey]struct{}, len(vectors))
	for _, v := range vectors {
		k := featureKey{v.ChartID, v.Version}
		if _, dup := seen[k]; dup {
			return storage.ErrDuplicateKey
		}
		if _, dup := s.data[k]; dup {
			return storage.ErrDuplicateKey
		}
		seen[k] = struct{}{}
	}

	for _, v := range vectors {
		s.data[featureKey{v.ChartID, v.Version}] = copyVector(v)
	}
	return nil
}

// GetByChartID retrieves all vectors for a chart, ordered by version ASC.
func (s *FeatureStore) GetByChartID(_ context.Context, chartID string) ([]*domain.FeatureVector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.FeatureVector
	for k, v := range s.data {
		if k.chartID == chartID {
			result = append(result, copyVector(v))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Version < result[j].Version
	})

	return result, nil
}

// GetByVersion retrieves all vectors of one layout version, ordered by
// computed_at ASC then chart_id ASC.
func (s *FeatureStore) GetByVersion(_ context.Context, version int32) ([]*domain.FeatureVector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.FeatureVector
	for k, v := range s.data {
		if k.version == version {
			result = append(result, copyVector(v))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].ComputedAt != result[j].ComputedAt {
			return result[i].ComputedAt < result[j].ComputedAt
		}
		return result[i].ChartID < result[j].ChartID
	})

	return result, nil
}

// copyVector clones a vector including its values slice.
func copyVector(v *domain.FeatureVector) *domain.FeatureVector {
	c := *v
	c.Values = make([]float64, len(v.Values))
	copy(c.Values, v.Values)
	return &c
}

// Verify interface compliance at compile time.
var _ storage.FeatureStore = (*FeatureStore)(nil)
