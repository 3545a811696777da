package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/quentinrf/greenhouse-controller/internal/domain"
)

// MemoryDSN keeps the journal inside the process
const MemoryDSN = ":memory:"

// HistoryRepository implements domain.HistoryRepository with SQLite
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a SQLite-backed repository
func NewHistoryRepository(dsn string) (*HistoryRepository, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		tick INTEGER NOT NULL,
		temperature REAL NOT NULL,
		humidity INTEGER NOT NULL,
		light INTEGER NOT NULL,
		warnings TEXT NOT NULL,
		actuated TEXT NOT NULL,
		missing TEXT NOT NULL,
		timestamp INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_snapshots_timestamp ON snapshots(timestamp);
	CREATE INDEX IF NOT EXISTS idx_snapshots_run ON snapshots(run_id, tick);
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &HistoryRepository{db: db}, nil
}

const selectColumns = `SELECT id, run_id, tick, temperature, humidity, light, warnings, actuated, missing, timestamp FROM snapshots`

// SaveSnapshot stores a snapshot in SQLite
func (r *HistoryRepository) SaveSnapshot(ctx context.Context, snapshot *domain.Snapshot) error {
	warnings, err := json.Marshal(snapshot.Warnings)
	if err != nil {
		return fmt.Errorf("failed to encode warnings: %w", err)
	}
	query := `INSERT INTO snapshots (run_id, tick, temperature, humidity, light, warnings, actuated, missing, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		snapshot.RunID,
		snapshot.Tick,
		snapshot.Readings.Temperature,
		snapshot.Readings.Humidity,
		snapshot.Readings.Light,
		string(warnings),
		joinVariables(snapshot.Actuated),
		joinVariables(snapshot.Missing),
		snapshot.Timestamp.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get insert id: %w", err)
	}

	snapshot.ID = id
	return nil
}

// GetSnapshot retrieves a snapshot by ID
func (r *HistoryRepository) GetSnapshot(ctx context.Context, id int64) (*domain.Snapshot, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)

	snapshot, err := scanSnapshot(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}
	return snapshot, nil
}

// GetSnapshotsInRange returns all snapshots within [start, end)
func (r *HistoryRepository) GetSnapshotsInRange(ctx context.Context, start, end time.Time) ([]*domain.Snapshot, error) {
	query := selectColumns + ` WHERE timestamp >= ? AND timestamp < ? ORDER BY timestamp ASC, id ASC`
	return r.query(ctx, query, start.UnixNano(), end.UnixNano())
}

// GetRun returns every snapshot of one run ordered by tick
func (r *HistoryRepository) GetRun(ctx context.Context, runID string) ([]*domain.Snapshot, error) {
	return r.query(ctx, selectColumns+` WHERE run_id = ? ORDER BY tick ASC`, runID)
}

// GetLatestSnapshot returns the most recent snapshot
func (r *HistoryRepository) GetLatestSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+` ORDER BY timestamp DESC, id DESC LIMIT 1`)

	snapshot, err := scanSnapshot(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest snapshot: %w", err)
	}
	return snapshot, nil
}

// Close closes the database connection
func (r *HistoryRepository) Close() error {
	return r.db.Close()
}

func (r *HistoryRepository) query(ctx context.Context, query string, args ...any) ([]*domain.Snapshot, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*domain.Snapshot
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshots: %w", err)
	}

	return snapshots, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (*domain.Snapshot, error) {
	var (
		s         domain.Snapshot
		warnings  string
		actuated  string
		missing   string
		timestamp int64
	)
	err := row.Scan(&s.ID, &s.RunID, &s.Tick,
		&s.Readings.Temperature, &s.Readings.Humidity, &s.Readings.Light,
		&warnings, &actuated, &missing, &timestamp)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(warnings), &s.Warnings); err != nil {
		return nil, fmt.Errorf("failed to decode warnings: %w", err)
	}
	if s.Warnings == nil {
		s.Warnings = make(map[domain.Variable]domain.Warning)
	}
	s.Actuated = splitVariables(actuated)
	s.Missing = splitVariables(missing)
	s.Timestamp = time.Unix(0, timestamp)

	return &s, nil
}

// variable lists are stored comma separated
func joinVariables(vars []domain.Variable) string {
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = string(v)
	}
	return strings.Join(names, ",")
}

func splitVariables(column string) []domain.Variable {
	if column == "" {
		return nil
	}
	var vars []domain.Variable
	for _, name := range strings.Split(column, ",") {
		vars = append(vars, domain.Variable(name))
	}
	return vars
}
