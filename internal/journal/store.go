package journal

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mboeker/gammonsync/internal/league"
	"github.com/vmihailenco/msgpack/v5"
)

// New creates a new Journal backed by the given database.
func New(db *sql.DB) Journal {
	return &store{
		db: db,
	}
}

// Record persists a finished run. The summary columns make runs queryable
// with plain SQL; the blob carries the full report, warnings included.
func (s *store) Record(ctx context.Context, report *league.RunReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := msgpack.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode run report: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, league, season, started_at, finished_at, dry_run, known_ids, discovered, scores_written, finals_written, warnings, completed, saved, report_blob)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.RunID,
		report.League,
		report.Season,
		report.StartedAt.Unix(),
		report.FinishedAt.Unix(),
		report.DryRun,
		report.KnownIDs,
		len(report.DiscoveredIDs),
		report.ScoresWritten,
		report.FinalsWritten,
		len(report.Warnings),
		report.Completed,
		report.Saved,
		blob,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// History returns past runs, newest first, optionally restricted to one
// league. A non-positive limit returns the full journal.
func (s *store) History(ctx context.Context, leagueCode string, limit int) ([]*league.RunReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT report_blob FROM runs`
	var args []any
	if leagueCode != "" {
		query += ` WHERE league = ?`
		args = append(args, leagueCode)
	}
	query += ` ORDER BY started_at DESC, id`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*league.RunReport
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			log.Error("Failed to decode journal row", "error", err)
			continue
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

// Close releases the underlying database handle.
func (s *store) Close() error {
	return s.db.Close()
}

// scanReport is a helper function to decode a single journal row.
func scanReport(scanner interface{ Scan(...any) error }) (*league.RunReport, error) {
	var blob []byte
	if err := scanner.Scan(&blob); err != nil {
		return nil, err
	}
	var report league.RunReport
	if err := msgpack.Unmarshal(blob, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
