package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kundali-engine/internal/storage"
	pgstore "kundali-engine/internal/storage/postgres"
)

func TestVerificationLedger_MarkAndCheck(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ledger := pgstore.NewVerificationLedger(pool)
	ctx := context.Background()

	verified, err := ledger.IsVerified(ctx, "chart-001")
	require.NoError(t, err)
	assert.False(t, verified)

	rec := &storage.VerificationRecord{
		ChartID:    "chart-001",
		Clean:      true,
		VerifiedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, ledger.MarkVerified(ctx, rec))

	verified, err = ledger.IsVerified(ctx, "chart-001")
	require.NoError(t, err)
	assert.True(t, verified)
}

func TestVerificationLedger_ReverifyOverwrites(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ledger := pgstore.NewVerificationLedger(pool)
	ctx := context.Background()

	rec := &storage.VerificationRecord{
		ChartID:     "chart-001",
		Clean:       false,
		Divergences: 3,
		VerifiedAt:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, ledger.MarkVerified(ctx, rec))

	rec.Clean = true
	rec.Divergences = 0
	rec.VerifiedAt = rec.VerifiedAt.Add(time.Hour)
	assert.NoError(t, ledger.MarkVerified(ctx, rec), "re-verification replaces the earlier record")

	ids, err := ledger.LoadVerified(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"chart-001"}, ids)
}

func TestVerificationLedger_LoadVerified(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ledger := pgstore.NewVerificationLedger(pool)
	ctx := context.Background()

	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, id := range []string{"chart-c", "chart-a", "chart-b"} {
		require.NoError(t, ledger.MarkVerified(ctx, &storage.VerificationRecord{ChartID: id, Clean: true, VerifiedAt: at}))
	}

	ids, err := ledger.LoadVerified(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"chart-a", "chart-b", "chart-c"}, ids)
}
