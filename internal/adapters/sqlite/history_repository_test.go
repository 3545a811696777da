package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/quentinrf/greenhouse-controller/internal/domain"
)

func newTestRepo(t *testing.T) *HistoryRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	repo, err := NewHistoryRepository(dbPath)
	if err != nil {
		t.Fatalf("failed to create SQLite repo: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSaveAndGetSnapshot(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	snapshot := domain.NewSnapshot("run-1", 4, domain.Readings{Temperature: 27.0, Humidity: 65, Light: 600})
	snapshot.Warnings[domain.Temperature] = domain.WarningHigh
	snapshot.Warnings[domain.Light] = domain.WarningGood
	snapshot.Actuated = []domain.Variable{domain.Temperature}
	snapshot.Missing = []domain.Variable{domain.Humidity}

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
	if got.RunID != "run-1" || got.Tick != 4 {
		t.Errorf("got run %q tick %d", got.RunID, got.Tick)
	}
	if got.Warnings[domain.Temperature] != domain.WarningHigh {
		t.Errorf("expected temperature warning high, got %q", got.Warnings[domain.Temperature])
	}
	if len(got.Actuated) != 1 || got.Actuated[0] != domain.Temperature {
		t.Errorf("unexpected actuated list %v", got.Actuated)
	}
	if got.WasRead(domain.Humidity) || !got.WasRead(domain.Light) {
		t.Errorf("unexpected missing list %v", got.Missing)
	}
	if !got.Timestamp.Equal(snapshot.Timestamp) {
		t.Errorf("timestamp %v, want %v", got.Timestamp, snapshot.Timestamp)
	}
}

func TestGetSnapshot_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	if _, err := repo.GetSnapshot(context.Background(), 42); err != domain.ErrSnapshotNotFound {
		t.Errorf("expected ErrSnapshotNotFound, got %v", err)
	}
	if _, err := repo.GetLatestSnapshot(context.Background()); err != domain.ErrSnapshotNotFound {
		t.Errorf("expected ErrSnapshotNotFound, got %v", err)
	}
}

func TestGetSnapshotsInRange(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	base := time.Now()
	for i := 0; i < 4; i++ {
		s := domain.NewSnapshot("run", i, domain.Readings{Temperature: 25, Humidity: 60, Light: 550})
		s.Timestamp = base.Add(time.Duration(i) * time.Hour)
		if err := repo.SaveSnapshot(ctx, s); err != nil {
			t.Fatalf("SaveSnapshot failed: %v", err)
		}
	}

	got, err := repo.GetSnapshotsInRange(ctx, base.Add(time.Hour), base.Add(3*time.Hour))
	if err != nil {
		t.Fatalf("GetSnapshotsInRange failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(got))
	}
	if got[0].Tick != 1 || got[1].Tick != 2 {
		t.Errorf("unexpected ticks %d, %d", got[0].Tick, got[1].Tick)
	}

	latest, err := repo.GetLatestSnapshot(ctx)
	if err != nil {
		t.Fatalf("GetLatestSnapshot failed: %v", err)
	}
	if latest.Tick != 3 {
		t.Errorf("expected latest tick 3, got %d", latest.Tick)
	}
}

func TestInMemoryDSN(t *testing.T) {
	repo, err := NewHistoryRepository("")
	if err != nil {
		t.Fatalf("failed to open in-memory repo: %v", err)
	}
	defer repo.Close()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		if err := repo.SaveSnapshot(ctx, domain.NewSnapshot("mem", i, domain.Readings{Temperature: 25, Humidity: 60, Light: 550})); err != nil {
			t.Fatalf("SaveSnapshot failed: %v", err)
		}
	}

	run, err := repo.GetRun(ctx, "mem")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if len(run) != 3 {
		t.Errorf("expected 3 snapshots, got %d", len(run))
	}
}
