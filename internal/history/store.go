// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records shift runs in a local SQLite database so past
// invocations can be listed and inspected.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/bindshift/pkg/types"
)

const (
	dbFile = "history.db"

	// defaultLimit is used by Recent when limit is not positive.
	defaultLimit = 20

	// timeFormat has fixed width so started_at sorts as text.
	timeFormat = "2006-01-02T15:04:05.000000000Z07:00"
)

// ErrNotFound is returned by Get for an unknown run ID.
var ErrNotFound = errors.New("run not found")

// Recorder stores runs. Store implements it; hosts accept the interface so
// recording can be switched off.
type Recorder interface {
	Record(ctx context.Context, run types.Run) (types.Run, error)
}

// Store manages the history SQLite database.
type Store struct {
	db *sql.DB
}

// DefaultDir returns ~/.local/share/bindshift, or "." when the home
// directory is unknown.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "bindshift")
}

// NewStore opens or creates cfg.Dir/history.db and its schema.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = DefaultDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, dbFile)+"?_journal_mode=WAL&_busy_timeout=5000")
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
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			started_at TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			input TEXT NOT NULL,
			output TEXT NOT NULL,
			shift_cm REAL NOT NULL,
			start_page INTEGER NOT NULL,
			end_page INTEGER,
			first_right INTEGER NOT NULL,
			pages INTEGER NOT NULL,
			shifted INTEGER NOT NULL,
			status TEXT NOT NULL,
			message TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores run, assigning an ID and start time when they are empty,
// and returns the stored run.
func (s *Store) Record(ctx context.Context, run types.Run) (types.Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	var end sql.NullInt64
	if run.Spec.EndPage != nil {
		end = sql.NullInt64{Int64: int64(*run.Spec.EndPage), Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, source, started_at, duration_ms, input, output,
			shift_cm, start_page, end_page, first_right, pages, shifted, status, message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.StartedAt.UTC().Format(timeFormat), run.Duration.Milliseconds(),
		run.Input, run.Output, run.Spec.ShiftCM, run.Spec.StartPage, end, run.Spec.FirstRight,
		run.Pages, run.Shifted, string(run.Status), run.Message,
	)
	if err != nil {
		return types.Run{}, fmt.Errorf("inserting run: %w", err)
	}
	return run, nil
}

const selectRuns = `SELECT id, source, started_at, duration_ms, input, output,
	shift_cm, start_page, end_page, first_right, pages, shifted, status, message
	FROM runs`

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]types.Run, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	rows, err := s.db.QueryContext(ctx, selectRuns+` ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []types.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

// Get returns the run with the given ID.
func (s *Store) Get(ctx context.Context, id string) (types.Run, error) {
	row := s.db.QueryRowContext(ctx, selectRuns+` WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return run, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (types.Run, error) {
	var (
		run        types.Run
		startedAt  string
		durationMS int64
		end        sql.NullInt64
		status     string
		message    sql.NullString
	)
	err := sc.Scan(&run.ID, &run.Source, &startedAt, &durationMS, &run.Input, &run.Output,
		&run.Spec.ShiftCM, &run.Spec.StartPage, &end, &run.Spec.FirstRight,
		&run.Pages, &run.Shifted, &status, &message)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Run{}, err
		}
		return types.Run{}, fmt.Errorf("scanning run: %w", err)
	}

	if t, err := time.Parse(timeFormat, startedAt); err == nil {
		run.StartedAt = t
	}
	run.Duration = time.Duration(durationMS) * time.Millisecond
	if end.Valid {
		n := int(end.Int64)
		run.Spec.EndPage = &n
	}
	run.Status = types.RunStatus(status)
	run.Message = message.String
	return run, nil
}
