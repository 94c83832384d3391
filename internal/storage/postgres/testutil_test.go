package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"kundali-engine/internal/domain"
	"kundali-engine/internal/storage/migrations"
	pgstore "kundali-engine/internal/storage/postgres"
)

// setupTestDB starts a PostgreSQL container and applies the embedded
// migrations. Returns a cleanup function that must be called after
// tests complete.
func setupTestDB(t *testing.T) (*pgstore.Pool, func()) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("kundali_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	pool, err := pgstore.NewPool(ctx, dsn)
	require.NoError(t, err, "failed to create pool")

	err = migrations.RunPostgresMigrations(ctx, pool)
	require.NoError(t, err, "failed to apply migrations")

	cleanup := func() {
		pool.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return pool, cleanup
}

// chartFixture builds a minimal chart document for store tests.
func chartFixture(id string, birth time.Time) *domain.Kundali {
	return &domain.Kundali{
		ChartID:   id,
		BirthUTC:  birth,
		JulianDay: 2448026.875,
		Ayanamsa:  23.726757,
		TimeKnown: true,
		Ascendant: domain.Ascendant{
			Longitude: 151.81, Sign: domain.SignVirgo, Degree: 1.81,
			Nakshatra: 12, Pada: 2, Ruler: domain.BodyMercury,
			Confidence: domain.ConfidenceFull,
		},
		Planets: []domain.Planet{
			{Body: domain.BodySun, Longitude: 30.55, Sign: domain.SignTaurus, Degree: 0.55,
				Nakshatra: 2, Pada: 4, House: 9, Speed: 0.96, Dignity: domain.DignityEnemy},
		},
		Houses: []domain.House{
			{Number: 1, Sign: domain.SignVirgo, Confidence: domain.ConfidenceFull},
		},
		Dasha: domain.Dasha{RootLord: domain.BodySun, BalanceYears: 3.65},
		ShadBala: map[domain.Body]domain.ShadBalaScore{
			domain.BodySun: {Total: 57},
		},
	}
}
