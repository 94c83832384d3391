package memory

import (
	"context"
	"sort"
	"sync"

	"kundali-engine/internal/storage"
)

// VerificationLedger is an in-memory implementation of storage.VerificationLedger.
type VerificationLedger struct {
	mu   sync.RWMutex
	data map[string]*storage.VerificationRecord // keyed by chart_id
}

// NewVerificationLedger creates a new in-memory verification ledger.
func NewVerificationLedger() *VerificationLedger {
	return &VerificationLedger{
		data: make(map[string]*storage.VerificationRecord),
	}
}

// MarkVerified records the outcome for a chart, replacing any earlier record.
func (l *VerificationLedger) MarkVerified(_ context.Context, rec *storage.VerificationRecord) error {
	if rec == nil || rec.ChartID == "" {
		return storage.ErrInvalidInput
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	recCopy := *rec
	l.data[rec.ChartID] = &recCopy
	return nil
}

// IsVerified reports whether a chart already has a verification record.
func (l *VerificationLedger) IsVerified(_ context.Context, chartID string) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_, exists := l.data[chartID]
	return exists, nil
}

// LoadVerified returns all verified chart IDs (for warming the skip set).
func (l *VerificationLedger) LoadVerified(_ context.Context) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ids := make([]string, 0, len(l.data))
	for id := range l.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Verify interface compliance at compile time.
var _ storage.VerificationLedger = (*VerificationLedger)(nil)
