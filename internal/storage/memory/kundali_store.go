package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"kundali-engine/internal/domain"
	"kundali-engine/internal/storage"
)

// KundaliStore is an in-memory implementation of storage.KundaliStore.
// Documents are held as encoded JSON so every read hands back a deep
// copy, mirroring the JSONB round-trip of the Postgres backend.
type KundaliStore struct {
	mu     sync.RWMutex
	docs   map[string][]byte    // keyed by chart_id
	births map[string]time.Time // birth instant per chart_id
	order  []string             // chart IDs in insertion order
}

// NewKundaliStore creates a new in-memory kundali store.
func NewKundaliStore() *KundaliStore {
	return &KundaliStore{
		docs:   make(map[string][]byte),
		births: make(map[string]time.Time),
	}
}

// Insert adds a new chart. Returns ErrDuplicateKey if chart_id exists.
func (s *KundaliStore) Insert(_ context.Context, k *domain.Kundali) error {
	if k == nil || k.ChartID == "" {
		return storage.ErrInvalidInput
	}

	doc, err := json.Marshal(k)
	if err != nil {
		return fmt.Errorf("encode kundali %s: %w", k.ChartID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.docs[k.ChartID]; exists {
		return storage.ErrDuplicateKey
	}

	s.docs[k.ChartID] = doc
	s.births[k.ChartID] = k.BirthUTC
	s.order = append(s.order, k.ChartID)
	return nil
}

// GetByChartID retrieves a chart by its ID. Returns ErrNotFound if not exists.
func (s *KundaliStore) GetByChartID(_ context.Context, chartID string) (*domain.Kundali, error) {
	s.mu.RLock()
	doc, exists := s.docs[chartID]
	s.mu.RUnlock()

	if !exists {
		return nil, storage.ErrNotFound
	}
	return decodeKundali(chartID, doc)
}

// GetByTimeRange retrieves charts whose birth instant falls within
// [start, end] (inclusive), ordered by birth instant ASC.
func (s *KundaliStore) GetByTimeRange(_ context.Context, start, end time.Time) ([]*domain.Kundali, error) {
	s.mu.RLock()
	var ids []string
	for id, birth := range s.births {
		if !birth.Before(start) && !birth.After(end) {
			ids = append(ids, id)
		}
	}
	docs := make(map[string][]byte, len(ids))
	for _, id := range ids {
		docs[id] = s.docs[id]
	}
	s.mu.RUnlock()

	var result []*domain.Kundali
	for _, id := range ids {
		k, err := decodeKundali(id, docs[id])
		if err != nil {
			return nil, err
		}
		result = append(result, k)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].BirthUTC.Equal(result[j].BirthUTC) {
			return result[i].BirthUTC.Before(result[j].BirthUTC)
		}
		return result[i].ChartID < result[j].ChartID
	})

	return result, nil
}

// List returns all stored chart IDs in insertion order.
func (s *KundaliStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, len(s.order))
	copy(ids, s.order)
	return ids, nil
}

func decodeKundali(chartID string, doc []byte) (*domain.Kundali, error) {
	var k domain.Kundali
	if err := json.Unmarshal(doc, &k); err != nil {
		return nil, fmt.Errorf("decode kundali %s: %w", chartID, err)
	}
	return &k, nil
}

// Verify interface compliance at compile time.
var _ storage.KundaliStore = (*KundaliStore)(nil)
