package memory

import (
	"context"
	"testing"
	"time"

	"github.com/quentinrf/greenhouse-controller/internal/domain"
)

func TestSaveAndGetSnapshot(t *testing.T) {
	repo := NewHistoryRepository()
	ctx := context.Background()

	snapshot := domain.NewSnapshot("run-1", 1, domain.Readings{Temperature: 25.0, Humidity: 60, Light: 550})
	if err := repo.SaveSnapshot(ctx, snapshot); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if snapshot.ID == 0 {
		t.Fatal("expected ID to be set after save")
	}

	got, err := repo.GetSnapshot(ctx, snapshot.ID)
	if err != nil {
		t.Fatalf("GetSnapshot failed: %v", err)
	}
	if got.Readings != snapshot.Readings {
		t.Errorf("got readings %+v, want %+v", got.Readings, snapshot.Readings)
	}

	if _, err := repo.GetSnapshot(ctx, 99); err != domain.ErrSnapshotNotFound {
		t.Errorf("expected ErrSnapshotNotFound, got %v", err)
	}
}

func TestGetLatestSnapshot(t *testing.T) {
	repo := NewHistoryRepository()
	ctx := context.Background()

	if _, err := repo.GetLatestSnapshot(ctx); err != domain.ErrSnapshotNotFound {
		t.Errorf("expected ErrSnapshotNotFound, got %v", err)
	}

	base := time.Now()
	for i := 1; i <= 3; i++ {
		s := domain.NewSnapshot("run-1", i, domain.Readings{Temperature: float64(20 + i), Humidity: 60, Light: 550})
		s.Timestamp = base.Add(time.Duration(i) * time.Second)
		if err := repo.SaveSnapshot(ctx, s); err != nil {
			t.Fatalf("SaveSnapshot failed: %v", err)
		}
	}

	latest, err := repo.GetLatestSnapshot(ctx)
	if err != nil {
		t.Fatalf("GetLatestSnapshot failed: %v", err)
	}
	if latest.Tick != 3 {
		t.Errorf("expected tick 3, got %d", latest.Tick)
	}
}

func TestGetSnapshotsInRangeAndRun(t *testing.T) {
	repo := NewHistoryRepository()
	ctx := context.Background()

	base := time.Now()
	for i := 0; i < 5; i++ {
		runID := "a"
		if i%2 == 1 {
			runID = "b"
		}
		s := domain.NewSnapshot(runID, i, domain.Readings{Temperature: 25, Humidity: 60, Light: 550})
		s.Timestamp = base.Add(time.Duration(i) * time.Minute)
		if err := repo.SaveSnapshot(ctx, s); err != nil {
			t.Fatalf("SaveSnapshot failed: %v", err)
		}
	}

	inRange, err := repo.GetSnapshotsInRange(ctx, base.Add(time.Minute), base.Add(3*time.Minute))
	if err != nil {
		t.Fatalf("GetSnapshotsInRange failed: %v", err)
	}
	if len(inRange) != 2 {
		t.Fatalf("expected 2 snapshots in [1m, 3m), got %d", len(inRange))
	}
	if inRange[0].Tick != 1 || inRange[1].Tick != 2 {
		t.Errorf("unexpected order: ticks %d, %d", inRange[0].Tick, inRange[1].Tick)
	}

	run, err := repo.GetRun(ctx, "a")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if len(run) != 3 {
		t.Fatalf("expected 3 snapshots in run a, got %d", len(run))
	}
	for i, s := range run {
		if s.Tick != i*2 {
			t.Errorf("run[%d] tick %d, want %d", i, s.Tick, i*2)
		}
	}
}
