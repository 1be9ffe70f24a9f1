// Package storage provides the SQLite-backed run journal.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

var (
	// ErrRunNotFound is returned when no run matches an ID or prefix.
	ErrRunNotFound = errors.New("storage: run not found")
	// ErrAmbiguousRun is returned when an ID prefix matches several runs.
	ErrAmbiguousRun = errors.New("storage: ambiguous run id")
)

// Store manages the SQLite database connection for the run journal.
type Store struct {
	db *sql.DB
}

// Run is one journaled run: everything needed to replay it.
type Run struct {
	ID        string
	Seed      int64
	StartY    int
	Ticks     int    // Update ticks played; 0 until the run ends
	Finished  bool   // The run reached game over
	Config    string // YAML snapshot of the game configuration
	JumpCount int
	Jumps     []int // Tick indices; filled by Store.Run only
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;

		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			start_y INTEGER NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			finished INTEGER NOT NULL DEFAULT 0,
			config TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS jumps (
			run_id TEXT NOT NULL,
			tick INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_jumps_run_id ON jumps(run_id, tick);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// BeginRun journals the start of a run and returns its new ID.
func (s *Store) BeginRun(seed int64, startY int, config string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		"INSERT INTO runs (id, seed, start_y, config) VALUES (?, ?, ?, ?)",
		id, seed, startY, config,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin run: %w", err)
	}
	return id, nil
}

// RecordJump appends a jump to a run.
func (s *Store) RecordJump(runID string, tick int) error {
	_, err := s.db.Exec("INSERT INTO jumps (run_id, tick) VALUES (?, ?)", runID, tick)
	if err != nil {
		return fmt.Errorf("storage: cannot record jump: %w", err)
	}
	return nil
}

// EndRun marks a run finished after the given number of ticks.
func (s *Store) EndRun(runID string, ticks int) error {
	res, err := s.db.Exec("UPDATE runs SET ticks = ?, finished = 1 WHERE id = ?", ticks, runID)
	if err != nil {
		return fmt.Errorf("storage: cannot end run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot end run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return nil
}

const runColumns = `r.id, r.seed, r.start_y, r.ticks, r.finished, r.config, r.created_at,
		(SELECT COUNT(*) FROM jumps j WHERE j.run_id = r.id)`

// Runs retrieves the most recent runs, newest first.
func (s *Store) Runs(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs r
		 ORDER BY r.rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// Run retrieves a run and its jumps. id may be a unique prefix of the full ID.
func (s *Store) Run(id string) (*Run, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", ErrRunNotFound)
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs r
		 WHERE substr(r.id, 1, ?) = ?
		 LIMIT 2`,
		len(id), id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	defer rows.Close()

	var matches []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case 1:
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousRun, id)
	}

	run := matches[0]
	jumps, err := s.jumps(run.ID)
	if err != nil {
		return nil, err
	}
	run.Jumps = jumps
	return &run, nil
}

// jumps returns a run's jump ticks in order.
func (s *Store) jumps(runID string) ([]int, error) {
	rows, err := s.db.Query(
		"SELECT tick FROM jumps WHERE run_id = ? ORDER BY tick, rowid",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query jumps: %w", err)
	}
	defer rows.Close()

	var ticks []int
	for rows.Next() {
		var tick int
		if err := rows.Scan(&tick); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ticks = append(ticks, tick)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return ticks, nil
}

// DeleteRun removes a run and its jumps.
func (s *Store) DeleteRun(id string) error {
	run, err := s.Run(id)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM jumps WHERE run_id = ?", run.ID); err != nil {
		return fmt.Errorf("storage: cannot delete jumps: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM runs WHERE id = ?", run.ID); err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	return nil
}

// scanRun reads one row selected with runColumns.
func scanRun(rows *sql.Rows) (Run, error) {
	var r Run
	var createdAt any
	if err := rows.Scan(&r.ID, &r.Seed, &r.StartY, &r.Ticks, &r.Finished, &r.Config, &createdAt, &r.JumpCount); err != nil {
		return Run{}, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
