package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/quentinrf/greenhouse-controller/internal/domain"
)

// HistoryRepository implements domain.HistoryRepository with in-memory storage
type HistoryRepository struct {
	mu        sync.RWMutex
	snapshots map[int64]*domain.Snapshot
	nextID    int64
}

// NewHistoryRepository creates an empty in-memory repository
func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{
		snapshots: make(map[int64]*domain.Snapshot),
		nextID:    1,
	}
}

// SaveSnapshot stores a snapshot in memory
func (r *HistoryRepository) SaveSnapshot(ctx context.Context, snapshot *domain.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Assign ID if not set
	if snapshot.ID == 0 {
		snapshot.ID = r.nextID
		r.nextID++
	}

	r.snapshots[snapshot.ID] = snapshot
	return nil
}

// GetSnapshot retrieves a snapshot by ID
func (r *HistoryRepository) GetSnapshot(ctx context.Context, id int64) (*domain.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot, exists := r.snapshots[id]
	if !exists {
		return nil, domain.ErrSnapshotNotFound
	}

	return snapshot, nil
}

// GetSnapshotsInRange returns all snapshots within [start, end)
func (r *HistoryRepository) GetSnapshotsInRange(ctx context.Context, start, end time.Time) ([]*domain.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var results []*domain.Snapshot
	for _, snapshot := range r.snapshots {
		if !snapshot.Timestamp.Before(start) && snapshot.Timestamp.Before(end) {
			results = append(results, snapshot)
		}
	}

	sortSnapshots(results)
	return results, nil
}

// GetRun returns every snapshot of one run ordered by tick
func (r *HistoryRepository) GetRun(ctx context.Context, runID string) ([]*domain.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var results []*domain.Snapshot
	for _, snapshot := range r.snapshots {
		if snapshot.RunID == runID {
			results = append(results, snapshot)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Tick < results[j].Tick
	})
	return results, nil
}

// GetLatestSnapshot returns the most recent snapshot
func (r *HistoryRepository) GetLatestSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.snapshots) == 0 {
		return nil, domain.ErrSnapshotNotFound
	}

	var latest *domain.Snapshot
	for _, snapshot := range r.snapshots {
		if latest == nil || snapshot.Timestamp.After(latest.Timestamp) ||
			(snapshot.Timestamp.Equal(latest.Timestamp) && snapshot.ID > latest.ID) {
			latest = snapshot
		}
	}

	return latest, nil
}

func sortSnapshots(snapshots []*domain.Snapshot) {
	sort.Slice(snapshots, func(i, j int) bool {
		if snapshots[i].Timestamp.Equal(snapshots[j].Timestamp) {
			return snapshots[i].ID < snapshots[j].ID
		}
		return snapshots[i].Timestamp.Before(snapshots[j].Timestamp)
	})
}
