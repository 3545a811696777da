package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/quentinrf/greenhouse-controller/internal/adapters/console"
	"github.com/quentinrf/greenhouse-controller/internal/adapters/sqlite"
	"github.com/quentinrf/greenhouse-controller/internal/domain"
	"github.com/quentinrf/greenhouse-controller/internal/ports"
)

// historyQuery selects snapshots from a journal. The first non-empty of
// ID, Latest, RunID wins; otherwise [Since, Until) is listed.
type historyQuery struct {
	ID     int64
	Latest bool
	RunID  string
	Since  time.Time
	Until  time.Time
}

func newHistoryCmd() *cobra.Command {
	var (
		dsn          string
		q            historyQuery
		since, until string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print ticks recorded in a SQLite journal",
		Long: `history reads a journal written with --history sqlite --history-dsn <file>.

Without selectors it lists every snapshot, oldest first, followed by a summary.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if q.Since, err = parseTime(since, time.Unix(0, 0)); err != nil {
				return fmt.Errorf("--since: %w", err)
			}
			if q.Until, err = parseTime(until, time.Now()); err != nil {
				return fmt.Errorf("--until: %w", err)
			}

			repo, err := sqlite.NewHistoryRepository(dsn)
			if err != nil {
				return fmt.Errorf("failed to open SQLite journal: %w", err)
			}
			defer repo.Close()

			snapshots, err := queryHistory(cmd.Context(), repo, q)
			if err != nil {
				return err
			}
			printHistory(cmd.OutOrStdout(), snapshots, q.ID == 0 && !q.Latest)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&dsn, "dsn", "", "SQLite DSN of the journal")
	flags.Int64Var(&q.ID, "id", 0, "print one snapshot by ID")
	flags.BoolVar(&q.Latest, "latest", false, "print the most recent snapshot")
	flags.StringVar(&q.RunID, "run", "", "print every tick of one run")
	flags.StringVar(&since, "since", "", "list snapshots at or after this RFC 3339 time")
	flags.StringVar(&until, "until", "", "list snapshots before this RFC 3339 time (default now)")
	cmd.MarkFlagRequired("dsn")
	cmd.MarkFlagsMutuallyExclusive("id", "latest", "run")

	return cmd
}

func queryHistory(ctx context.Context, repo domain.HistoryRepository, q historyQuery) ([]*domain.Snapshot, error) {
	switch {
	case q.ID != 0:
		s, err := repo.GetSnapshot(ctx, q.ID)
		if err != nil {
			return nil, fmt.Errorf("snapshot %d: %w", q.ID, err)
		}
		return []*domain.Snapshot{s}, nil
	case q.Latest:
		s, err := repo.GetLatestSnapshot(ctx)
		if err != nil {
			return nil, fmt.Errorf("latest snapshot: %w", err)
		}
		return []*domain.Snapshot{s}, nil
	case q.RunID != "":
		return repo.GetRun(ctx, q.RunID)
	}
	if !q.Since.Before(q.Until) {
		return nil, fmt.Errorf("empty time range [%s, %s)", q.Since.Format(time.RFC3339), q.Until.Format(time.RFC3339))
	}
	return repo.GetSnapshotsInRange(ctx, q.Since, q.Until)
}

func printHistory(w io.Writer, snapshots []*domain.Snapshot, summary bool) {
	if len(snapshots) == 0 {
		fmt.Fprintln(w, "no snapshots")
		return
	}
	for _, s := range snapshots {
		frame := ports.Frame{RunID: s.RunID, Tick: s.Tick, Readings: s.Readings, Missing: s.Missing}
		fmt.Fprintf(w, "%d %s %s %s\n", s.ID, s.Timestamp.Format(time.RFC3339), s.RunID,
			console.FormatFrame(frame, s.Warnings))
	}
	if summary {
		printSummary(w, snapshots)
	}
}

func parseTime(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	return time.Parse(time.RFC3339, value)
}
