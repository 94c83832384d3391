package cache

import (
	"context"
	"sync"

	"kundali-engine/internal/domain"
)

// Memory is an in-process cache for tests and single-node use.
// Kundalis are immutable once assembled, so entries are shared by
// pointer without copying.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]*domain.Kundali
}

var _ Cache = (*Memory)(nil)

// NewMemory creates an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]*domain.Kundali)}
}

// Get returns the cached kundali for a chart ID.
func (m *Memory) Get(_ context.Context, chartID string) (*domain.Kundali, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	k, ok := m.entries[chartID]
	return k, ok, nil
}

// Put stores a kundali under its chart ID.
func (m *Memory) Put(_ context.Context, k *domain.Kundali) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[k.ChartID] = k
	return nil
}

// Len reports the number of cached charts.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
