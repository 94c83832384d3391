package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"kundali-engine/internal/storage"
)

func TestVerificationLedger_MarkAndCheck(t *testing.T) {
	ledger := NewVerificationLedger()
	ctx := context.Background()

	verified, err := ledger.IsVerified(ctx, "chart-001")
	if err != nil {
		t.Fatalf("IsVerified failed: %v", err)
	}
	if verified {
		t.Error("empty ledger reports chart as verified")
	}

	rec := &storage.VerificationRecord{
		ChartID:    "chart-001",
		Clean:      true,
		VerifiedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := ledger.MarkVerified(ctx, rec); err != nil {
		t.Fatalf("MarkVerified failed: %v", err)
	}

	verified, err = ledger.IsVerified(ctx, "chart-001")
	if err != nil {
		t.Fatalf("IsVerified failed: %v", err)
	}
	if !verified {
		t.Error("marked chart not reported as verified")
	}
}

func TestVerificationLedger_OverwriteAllowed(t *testing.T) {
	ledger := NewVerificationLedger()
	ctx := context.Background()

	rec := &storage.VerificationRecord{ChartID: "chart-001", Clean: false, Divergences: 3}
	if err := ledger.MarkVerified(ctx, rec); err != nil {
		t.Fatalf("first MarkVerified failed: %v", err)
	}

	rec.Clean = true
	rec.Divergences = 0
	if err := ledger.MarkVerified(ctx, rec); err != nil {
		t.Errorf("re-verification should overwrite, got %v", err)
	}
}

func TestVerificationLedger_InvalidRecord(t *testing.T) {
	ledger := NewVerificationLedger()
	ctx := context.Background()

	if err := ledger.MarkVerified(ctx, nil); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("nil record: expected ErrInvalidInput, got %v", err)
	}
	if err := ledger.MarkVerified(ctx, &storage.VerificationRecord{}); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("empty chart ID: expected ErrInvalidInput, got %v", err)
	}
}

func TestVerificationLedger_LoadVerified(t *testing.T) {
	ledger := NewVerificationLedger()
	ctx := context.Background()

	for _, id := range []string{"chart-c", "chart-a", "chart-b"} {
		if err := ledger.MarkVerified(ctx, &storage.VerificationRecord{ChartID: id}); err != nil {
			t.Fatalf("MarkVerified %s failed: %v", id, err)
		}
	}

	ids, err := ledger.LoadVerified(ctx)
	if err != nil {
		t.Fatalf("LoadVerified failed: %v", err)
	}
	want := []string{"chart-a", "chart-b", "chart-c"}
	if len(ids) != len(want) {
		t.Fatalf("got %d IDs, want %d", len(ids), len(want))
	}
	for i, id := range want {
		if ids[i] != id {
			t.Errorf("ids[%d] = %s, want %s", i, ids[i], id)
		}
	}
}
