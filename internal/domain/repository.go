package domain

import (
	"context"
	"time"
)

// HistoryRepository defines operations for storing/retrieving tick snapshots
// This is a PORT - adapters (SQLite, Memory) will implement it
type HistoryRepository interface {
	// SaveSnapshot stores a snapshot and assigns its ID
	SaveSnapshot(ctx context.Context, snapshot *Snapshot) error

	// GetSnapshot retrieves a specific snapshot by ID
	GetSnapshot(ctx context.Context, id int64) (*Snapshot, error)

	// GetSnapshotsInRange retrieves all snapshots within time range.
	// Uses a half-open interval: inclusive start, exclusive end [start, end).
	GetSnapshotsInRange(ctx context.Context, start, end time.Time) ([]*Snapshot, error)

	// GetRun retrieves every snapshot of a run ordered by tick
	GetRun(ctx context.Context, runID string) ([]*Snapshot, error)

	// GetLatestSnapshot retrieves the most recent snapshot
	GetLatestSnapshot(ctx context.Context) (*Snapshot, error)
}
