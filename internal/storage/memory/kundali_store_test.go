package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"kundali-engine/internal/domain"
	"kundali-engine/internal/storage"
)

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
			{Body: domain.BodyMoon, Longitude: 271.89, Sign: domain.SignCapricorn, Degree: 1.89,
				Nakshatra: 21, Pada: 1, House: 5, Speed: 12.32, Dignity: domain.DignityNeutral},
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

func TestKundaliStore_InsertAndGet(t *testing.T) {
	store := NewKundaliStore()
	ctx := context.Background()

	birth := time.Date(1990, 5, 15, 9, 0, 0, 0, time.UTC)
	k := chartFixture("chart-001", birth)

	if err := store.Insert(ctx, k); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.GetByChartID(ctx, "chart-001")
	if err != nil {
		t.Fatalf("GetByChartID failed: %v", err)
	}

	if got.ChartID != k.ChartID {
		t.Errorf("ChartID mismatch: got %s, want %s", got.ChartID, k.ChartID)
	}
	if !got.BirthUTC.Equal(birth) {
		t.Errorf("BirthUTC mismatch: got %v, want %v", got.BirthUTC, birth)
	}
	if got.Ascendant.Sign != domain.SignVirgo {
		t.Errorf("Ascendant sign mismatch: got %s", got.Ascendant.Sign)
	}
	if len(got.Planets) != 2 {
		t.Fatalf("Planets length = %d, want 2", len(got.Planets))
	}
	if got.ShadBala[domain.BodySun].Total != 57 {
		t.Errorf("ShadBala total = %v, want 57", got.ShadBala[domain.BodySun].Total)
	}
}

func TestKundaliStore_GetReturnsDeepCopy(t *testing.T) {
	store := NewKundaliStore()
	ctx := context.Background()

	k := chartFixture("chart-001", time.Date(1990, 5, 15, 9, 0, 0, 0, time.UTC))
	if err := store.Insert(ctx, k); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	first, err := store.GetByChartID(ctx, "chart-001")
	if err != nil {
		t.Fatalf("GetByChartID failed: %v", err)
	}
	first.Planets[0].Sign = domain.SignAries

	second, err := store.GetByChartID(ctx, "chart-001")
	if err != nil {
		t.Fatalf("GetByChartID failed: %v", err)
	}
	if second.Planets[0].Sign != domain.SignTaurus {
		t.Errorf("stored chart mutated through a returned copy: %s", second.Planets[0].Sign)
	}
}

func TestKundaliStore_DuplicateKey(t *testing.T) {
	store := NewKundaliStore()
	ctx := context.Background()

	k := chartFixture("chart-001", time.Date(1990, 5, 15, 9, 0, 0, 0, time.UTC))
	if err := store.Insert(ctx, k); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}

	err := store.Insert(ctx, k)
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}
}

func TestKundaliStore_InvalidInput(t *testing.T) {
	store := NewKundaliStore()
	ctx := context.Background()

	if err := store.Insert(ctx, nil); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("nil chart: expected ErrInvalidInput, got %v", err)
	}

	k := chartFixture("", time.Date(1990, 5, 15, 9, 0, 0, 0, time.UTC))
	if err := store.Insert(ctx, k); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("empty chart ID: expected ErrInvalidInput, got %v", err)
	}
}

func TestKundaliStore_NotFound(t *testing.T) {
	store := NewKundaliStore()
	ctx := context.Background()

	_, err := store.GetByChartID(ctx, "nonexistent")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestKundaliStore_GetByTimeRange(t *testing.T) {
	store := NewKundaliStore()
	ctx := context.Background()

	base := time.Date(1990, 5, 15, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"chart-a", "chart-b", "chart-c"} {
		k := chartFixture(id, base.Add(time.Duration(i)*time.Hour))
		if err := store.Insert(ctx, k); err != nil {
			t.Fatalf("Insert %s failed: %v", id, err)
		}
	}

	// middle hour only
	got, err := store.GetByTimeRange(ctx, base.Add(30*time.Minute), base.Add(90*time.Minute))
	if err != nil {
		t.Fatalf("GetByTimeRange failed: %v", err)
	}
	if len(got) != 1 || got[0].ChartID != "chart-b" {
		t.Fatalf("got %d charts, want exactly chart-b", len(got))
	}

	// bounds are inclusive
	got, err = store.GetByTimeRange(ctx, base, base.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("GetByTimeRange failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("inclusive range returned %d charts, want 3", len(got))
	}
	for i, id := range []string{"chart-a", "chart-b", "chart-c"} {
		if got[i].ChartID != id {
			t.Errorf("result[%d] = %s, want %s (birth ASC order)", i, got[i].ChartID, id)
		}
	}
}

func TestKundaliStore_ListInsertionOrder(t *testing.T) {
	store := NewKundaliStore()
	ctx := context.Background()

	birth := time.Date(1990, 5, 15, 9, 0, 0, 0, time.UTC)
	ids := []string{"chart-z", "chart-a", "chart-m"}
	for _, id := range ids {
		if err := store.Insert(ctx, chartFixture(id, birth)); err != nil {
			t.Fatalf("Insert %s failed: %v", id, err)
		}
	}

	got, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != len(ids) {
		t.Fatalf("List returned %d IDs, want %d", len(got), len(ids))
	}
	for i, id := range ids {
		if got[i] != id {
			t.Errorf("List[%d] = %s, want %s", i, got[i], id)
		}
	}
}

func TestKundaliStore_ConcurrentInsert(t *testing.T) {
	store := NewKundaliStore()
	ctx := context.Background()
	birth := time.Date(1990, 5, 15, 9, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("chart-%03d", n)
			if err := store.Insert(ctx, chartFixture(id, birth)); err != nil {
				t.Errorf("Insert %s failed: %v", id, err)
			}
			if _, err := store.GetByChartID(ctx, id); err != nil {
				t.Errorf("GetByChartID %s failed: %v", id, err)
			}
		}(i)
	}
	wg.Wait()

	ids, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(ids) != 16 {
		t.Errorf("List returned %d IDs, want 16", len(ids))
	}
}
