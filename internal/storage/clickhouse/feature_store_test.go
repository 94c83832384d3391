package clickhouse_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kundali-engine/internal/domain"
	"kundali-engine/internal/storage"
	chstore "kundali-engine/internal/storage/clickhouse"
)

func TestFeatureStore_InsertBulkAndGetByChartID(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := chstore.NewFeatureStore(conn)
	ctx := context.Background()

	vectors := []*domain.FeatureVector{
		vectorFixture("chart-ch-001", 2, 2000),
		vectorFixture("chart-ch-001", 1, 1000),
		vectorFixture("chart-ch-002", 1, 1500),
	}
	require.NoError(t, store.InsertBulk(ctx, vectors))

	got, err := store.GetByChartID(ctx, "chart-ch-001")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, int32(1), got[0].Version)
	assert.Equal(t, int32(2), got[1].Version)
	assert.Equal(t, int64(1000), got[0].ComputedAt)
	assert.Len(t, got[0].Values, domain.FeatureVectorLen)
	assert.Equal(t, vectors[1].Values, got[0].Values, "values should survive the round trip bit-exact")
}

func TestFeatureStore_DuplicateRejected(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := chstore.NewFeatureStore(conn)
	ctx := context.Background()

	require.NoError(t, store.InsertBulk(ctx, []*domain.FeatureVector{vectorFixture("chart-ch-001", 1, 1000)}))

	err := store.InsertBulk(ctx, []*domain.FeatureVector{vectorFixture("chart-ch-001", 1, 2000)})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	// same chart, new layout version is fine
	assert.NoError(t, store.InsertBulk(ctx, []*domain.FeatureVector{vectorFixture("chart-ch-001", 2, 2000)}))
}

func TestFeatureStore_IntraBatchDuplicate(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := chstore.NewFeatureStore(conn)
	ctx := context.Background()

	batch := []*domain.FeatureVector{
		vectorFixture("chart-ch-001", 1, 1000),
		vectorFixture("chart-ch-001", 1, 2000),
	}
	err := store.InsertBulk(ctx, batch)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestFeatureStore_GetByVersion(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := chstore.NewFeatureStore(conn)
	ctx := context.Background()

	vectors := []*domain.FeatureVector{
		vectorFixture("chart-b", 1, 2000),
		vectorFixture("chart-a", 1, 2000),
		vectorFixture("chart-c", 1, 1000),
		vectorFixture("chart-d", 2, 500),
	}
	require.NoError(t, store.InsertBulk(ctx, vectors))

	got, err := store.GetByVersion(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 3)

	wantOrder := []string{"chart-c", "chart-a", "chart-b"}
	for i, id := range wantOrder {
		assert.Equal(t, id, got[i].ChartID, "computed_at ASC then chart_id ASC")
	}
}

func TestFeatureStore_GetByChartIDEmpty(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := chstore.NewFeatureStore(conn)
	ctx := context.Background()

	got, err := store.GetByChartID(ctx, "nonexistent")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFeatureStore_InvalidInput(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := chstore.NewFeatureStore(conn)
	ctx := context.Background()

	short := vectorFixture("chart-ch-001", 1, 1000)
	short.Values = short.Values[:domain.FeatureVectorLen-1]
	err := store.InsertBulk(ctx, []*domain.FeatureVector{short})
	assert.ErrorIs(t, err, storage.ErrInvalidInput)
}
