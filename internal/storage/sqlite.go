package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates or opens a SQLite journal.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at INTEGER NOT NULL,
			finished_at INTEGER,
			forced INTEGER NOT NULL DEFAULT 0,
			generated INTEGER NOT NULL DEFAULT 0,
			skipped INTEGER NOT NULL DEFAULT 0,
			failed INTEGER NOT NULL DEFAULT 0,
			error TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			source TEXT NOT NULL,
			target TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			message TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE INDEX IF NOT EXISTS idx_results_run ON results(run_id);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) BeginRun(ctx context.Context, force bool) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (started_at, forced) VALUES (?, ?)`,
		time.Now().UnixNano(), boolToInt(force))
	if err != nil {
		return 0, fmt.Errorf("failed to begin run: %w", err)
	}
	return res.LastInsertId()
}

func (s *SQLiteStore) RecordResult(ctx context.Context, runID int64, r FileResult) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO results (run_id, source, target, status, message) VALUES (?, ?, ?, ?, ?)`,
		runID, r.Source, r.Target, string(r.Status), r.Message)
	if err != nil {
		return fmt.Errorf("failed to record result for %s: %w", r.Source, err)
	}
	return nil
}

func (s *SQLiteStore) FinishRun(ctx context.Context, run Run) error {
	finished := run.FinishedAt
	if finished.IsZero() {
		finished = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, generated = ?, skipped = ?, failed = ?, error = ? WHERE id = ?`,
		finished.UnixNano(), run.Generated, run.Skipped, run.Failed, run.Error, run.ID)
	if err != nil {
		return fmt.Errorf("failed to finish run %d: %w", run.ID, err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *SQLiteStore) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, forced, generated, skipped, failed, error
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r        Run
			started  int64
			finished sql.NullInt64
			force    int
		)
		if err := rows.Scan(&r.ID, &started, &finished, &force, &r.Generated, &r.Skipped, &r.Failed, &r.Error); err != nil {
			return nil, err
		}
		r.StartedAt = time.Unix(0, started)
		if finished.Valid {
			r.FinishedAt = time.Unix(0, finished.Int64)
		}
		r.Force = force != 0
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunResults returns the per-file results of a run in processing order.
func (s *SQLiteStore) RunResults(ctx context.Context, runID int64) ([]FileResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source, target, status, message FROM results WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []FileResult
	for rows.Next() {
		var (
			r      FileResult
			status string
		)
		if err := rows.Scan(&r.Source, &r.Target, &status, &r.Message); err != nil {
			return nil, err
		}
		r.Status = Status(status)
		results = append(results, r)
	}
	return results, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
