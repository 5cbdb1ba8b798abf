// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists extraction runs in a SQLite database so past
// runs can be listed and audited. The store is observational only: nothing
// in the pipeline reads it to decide what to extract.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/hwextract/internal/extract"
	"github.com/pdiddy/hwextract/pkg/types"
)

const dbFile = "hwextract.db"

// Store manages the run history SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the history database at stateDir/hwextract.db,
// creating the schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.StateDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	dbPath := filepath.Join(cfg.StateDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			archive TEXT NOT NULL,
			output_dir TEXT NOT NULL,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			extracted INTEGER NOT NULL,
			ambiguous INTEGER NOT NULL,
			unmatched INTEGER NOT NULL,
			failed INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS files (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			entry TEXT NOT NULL,
			student TEXT,
			dest TEXT,
			status TEXT NOT NULL,
			error TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_files_run_id ON files(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_files_student ON files(student)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Run is one recorded extraction run.
type Run struct {
	ID         int64     `yaml:"id"`
	Archive    string    `yaml:"archive"`
	OutputDir  string    `yaml:"output_dir"`
	StartedAt  time.Time `yaml:"started_at"`
	FinishedAt time.Time `yaml:"finished_at"`
	Extracted  int       `yaml:"extracted"`
	Ambiguous  int       `yaml:"ambiguous"`
	Unmatched  int       `yaml:"unmatched"`
	Failed     int       `yaml:"failed"`
}

// Record inserts one extraction run and its per-file outcomes in a single
// transaction, returning the new run ID.
func (s *Store) Record(ctx context.Context, cfg types.ExtractionConfig, result extract.BatchResult) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (archive, output_dir, started_at, finished_at, extracted, ambiguous, unmatched, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		cfg.ZipPath, cfg.OutputDir,
		result.StartedAt.Format(time.RFC3339Nano), result.FinishedAt.Format(time.RFC3339Nano),
		result.Extracted, result.Ambiguous, result.Unmatched, result.Failed,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO files (run_id, entry, student, dest, status, error) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range result.Files {
		if _, err := stmt.ExecContext(ctx, runID, f.Entry, f.Student, f.Dest, f.Outcome, f.Error); err != nil {
			return 0, fmt.Errorf("inserting file %s: %w", f.Entry, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// RunFilter narrows Runs results.
type RunFilter struct {
	// Archive, when non-empty, matches the archive path exactly.
	Archive string

	// Limit caps the number of runs returned. Zero means no cap.
	Limit int
}

// Runs lists recorded runs, newest first.
func (s *Store) Runs(ctx context.Context, filter RunFilter) ([]Run, error) {
	query := `SELECT id, archive, output_dir, started_at, finished_at,
		extracted, ambiguous, unmatched, failed FROM runs`
	var args []any
	if filter.Archive != "" {
		query += ` WHERE archive = ?`
		args = append(args, filter.Archive)
	}
	query += ` ORDER BY id DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedAt, finishedAt string
		if err := rows.Scan(&r.ID, &r.Archive, &r.OutputDir, &startedAt, &finishedAt,
			&r.Extracted, &r.Ambiguous, &r.Unmatched, &r.Failed); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, startedAt)
		r.FinishedAt, _ = time.Parse(time.RFC3339Nano, finishedAt)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// File is one recorded per-entry outcome.
type File struct {
	RunID   int64  `yaml:"run_id"`
	Entry   string `yaml:"entry"`
	Student string `yaml:"student,omitempty"`
	Dest    string `yaml:"dest,omitempty"`
	Status  string `yaml:"status"`
	Error   string `yaml:"error,omitempty"`
}

// Files lists the per-entry outcomes of one run, optionally filtered to a
// single student ("Last, First" form).
func (s *Store) Files(ctx context.Context, runID int64, student string) ([]File, error) {
	query := `SELECT run_id, entry, student, dest, status, error FROM files WHERE run_id = ?`
	args := []any{runID}
	if student != "" {
		query += ` AND student = ?`
		args = append(args, student)
	}
	query += ` ORDER BY rowid`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying files: %w", err)
	}
	defer rows.Close()

	var files []File
	for rows.Next() {
		var f File
		if err := rows.Scan(&f.RunID, &f.Entry, &f.Student, &f.Dest, &f.Status, &f.Error); err != nil {
			return nil, fmt.Errorf("scanning file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}
