// SPDX-License-Identifier: MIT

package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/katalvlaran/isotherm/plate"
)

// defaultPragmas enable foreign keys (frames cascade with their run) and
// wait on a locked database instead of failing immediately.
const defaultPragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// timeLayout is fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Run is one stored solve.
type Run struct {
	ID        string
	CreatedAt time.Time
	Config    plate.Config
	Sweeps    int
	Converged bool
}

// Frame is one stored snapshot of a run.
type Frame struct {
	Sweep     int
	MaxDelta  float64
	Converged bool
	Values    [][]float64
}

// Store is a SQLite-backed run history. It is safe for concurrent use to the
// extent *sql.DB is.
type Store struct {
	db  *sql.DB
	log logrus.FieldLogger
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger routes store and migration logs to l. Defaults to logrus.StandardLogger().
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides time.Now for run timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open opens (creating if needed) the database at path and applies pending
// migrations. Pragmas are appended to path unless it already has a query string.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	dsn := path
	if !strings.Contains(path, "?") {
		dsn = path + "?" + defaultPragmas
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: ping %s: %w", path, err)
	}

	s := &Store{db: db, log: logrus.StandardLogger(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.migrateUp(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: %w", err)
	}
	s.log.WithField("path", path).Debug("history store ready")

	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun stores cfg and every snapshot in frames, in one transaction, under
// a new run id. Sweeps and Converged are taken from the last frame.
//
// Errors: ErrNoFrames, database errors (wrapped).
func (s *Store) SaveRun(ctx context.Context, cfg plate.Config, frames []plate.Snapshot) (Run, error) {
	if len(frames) == 0 {
		return Run{}, ErrNoFrames
	}
	last := frames[len(frames)-1]
	run := Run{
		ID:        uuid.NewString(),
		CreatedAt: s.now().UTC(),
		Config:    cfg,
		Sweeps:    last.Sweep,
		Converged: last.Converged,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("history: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, grid_rows, grid_cols, top_temp, bottom_temp,
			left_temp, right_temp, interior_start, tolerance, sweeps, converged)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt.Format(timeLayout), cfg.Rows, cfg.Cols, cfg.Top, cfg.Bottom,
		cfg.Left, cfg.Right, cfg.InteriorStart, cfg.Tolerance, run.Sweeps, run.Converged)
	if err != nil {
		return Run{}, fmt.Errorf("history: insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO frames (run_id, sweep, max_delta, converged, grid_json)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return Run{}, fmt.Errorf("history: prepare frames: %w", err)
	}
	defer stmt.Close()

	for _, f := range frames {
		grid, err := json.Marshal(f.Values())
		if err != nil {
			return Run{}, fmt.Errorf("history: encode sweep %d: %w", f.Sweep, err)
		}
		if _, err := stmt.ExecContext(ctx, run.ID, f.Sweep, f.MaxDelta, f.Converged, string(grid)); err != nil {
			return Run{}, fmt.Errorf("history: insert sweep %d: %w", f.Sweep, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("history: commit: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"run_id":    run.ID,
		"sweeps":    run.Sweeps,
		"converged": run.Converged,
		"frames":    len(frames),
	}).Info("run saved")

	return run, nil
}

const runColumns = `id, created_at, grid_rows, grid_cols, top_temp, bottom_temp,
	left_temp, right_temp, interior_start, tolerance, sweeps, converged`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(sc rowScanner) (Run, error) {
	var (
		r       Run
		created string
	)
	err := sc.Scan(&r.ID, &created, &r.Config.Rows, &r.Config.Cols, &r.Config.Top, &r.Config.Bottom,
		&r.Config.Left, &r.Config.Right, &r.Config.InteriorStart, &r.Config.Tolerance, &r.Sweeps, &r.Converged)
	if err != nil {
		return Run{}, err
	}
	if r.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return Run{}, fmt.Errorf("history: run %s created_at %q: %w", r.ID, created, err)
	}

	return r, nil
}

// GetRun returns the run with the given id.
// Errors: ErrRunNotFound, database errors (wrapped).
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("history: get run %s: %w", id, err)
	}

	return r, nil
}

// ListRuns returns the most recent runs first. limit <= 0 returns all runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: list runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("history: list runs: %w", err)
		}
		out = append(out, r)
	}

	return out, rows.Err()
}

// Frames returns the stored snapshots of a run ordered by sweep.
// Errors: ErrRunNotFound, database or decoding errors (wrapped).
func (s *Store) Frames(ctx context.Context, id string) ([]Frame, error) {
	if _, err := s.GetRun(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT sweep, max_delta, converged, grid_json FROM frames WHERE run_id = ? ORDER BY sweep`, id)
	if err != nil {
		return nil, fmt.Errorf("history: frames %s: %w", id, err)
	}
	defer rows.Close()

	var out []Frame
	for rows.Next() {
		var (
			f    Frame
			grid string
		)
		if err := rows.Scan(&f.Sweep, &f.MaxDelta, &f.Converged, &grid); err != nil {
			return nil, fmt.Errorf("history: frames %s: %w", id, err)
		}
		if err := json.Unmarshal([]byte(grid), &f.Values); err != nil {
			return nil, fmt.Errorf("history: decode sweep %d of %s: %w", f.Sweep, id, err)
		}
		out = append(out, f)
	}

	return out, rows.Err()
}

// DeleteRun removes a run and, through the foreign key, its frames.
// Errors: ErrRunNotFound, database errors (wrapped).
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("history: delete run %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("history: delete run %s: rows affected: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", id, ErrRunNotFound)
	}

	return nil
}
