// Package cache memoizes computed kundalis by chart ID. Identical
// birth inputs always produce identical kundalis, so entries never
// need invalidation; a TTL on the redis backend only bounds memory.
package cache

import (
	"context"

	"kundali-engine/internal/domain"
)

// Cache is consulted by the engine before computing a chart and
// written through after. A miss is (nil, false, nil); an error means
// the backend itself failed.
type Cache interface {
	Get(ctx context.Context, chartID string) (*domain.Kundali, bool, error)
	Put(ctx context.Context, k *domain.Kundali) error
}
