package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"telescope-hq/callisto/pkg/registry/diag"
)

// SQLiteConfig contains configuration for the SQLite history backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections. Default: 10.
	MaxOpenConns int

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds.
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/callisto.db",
		MaxOpenConns: 10,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	config *SQLiteConfig
}

// NewSQLiteStore opens (creating if needed) the history database and
// initializes its schema.
func NewSQLiteStore(config *SQLiteConfig) (*SQLiteStore, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, fmt.Errorf("history: open %q: %w", config.Path, err)
	}
	db.SetMaxOpenConns(config.MaxOpenConns)

	s := &SQLiteStore{db: db, config: config}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initialize() error {
	if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("history: enable WAL: %w", err)
	}
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", s.config.BusyTimeout.Milliseconds())); err != nil {
		return fmt.Errorf("history: set busy timeout: %w", err)
	}
	if _, err := s.db.Exec(Schema); err != nil {
		return fmt.Errorf("history: create schema: %w", err)
	}
	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return fmt.Errorf("history: record schema version: %w", err)
	}

	var version int
	if err := s.db.QueryRow(GetSchemaVersion).Scan(&version); err != nil {
		return fmt.Errorf("history: read schema version: %w", err)
	}
	if version != SchemaVersion {
		return fmt.Errorf("history: schema version mismatch: expected %d, got %d", SchemaVersion, version)
	}
	return nil
}

// Record stores one run.
func (s *SQLiteStore) Record(ctx context.Context, run *Run) error {
	files, err := json.Marshal(run.Files)
	if err != nil {
		return fmt.Errorf("history: marshal files: %w", err)
	}
	diags, err := json.Marshal(run.Diagnostics)
	if err != nil {
		return fmt.Errorf("history: marshal diagnostics: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, duration_ms, trigger_kind, files, errors, warnings, diagnostics)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC(), run.Duration.Milliseconds(), run.Trigger,
		string(files), run.Errors, run.Warnings, string(diags),
	)
	if err != nil {
		return fmt.Errorf("history: record run: %w", err)
	}
	return nil
}

// Get returns the run with the given ID, or ErrNotFound.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, duration_ms, trigger_kind, files, errors, warnings, diagnostics
		FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return run, err
}

// Recent returns the most recent runs, newest first, at most limit.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, duration_ms, trigger_kind, files, errors, warnings, diagnostics
		FROM runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Prune deletes runs older than the cutoff.
func (s *SQLiteStore) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE started_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("history: prune: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var (
		run        Run
		durationMs int64
		files      string
		diags      string
	)
	err := row.Scan(&run.ID, &run.StartedAt, &durationMs, &run.Trigger,
		&files, &run.Errors, &run.Warnings, &diags)
	if err != nil {
		return nil, err
	}
	run.Duration = time.Duration(durationMs) * time.Millisecond
	if err := json.Unmarshal([]byte(files), &run.Files); err != nil {
		return nil, fmt.Errorf("history: decode files: %w", err)
	}
	if err := json.Unmarshal([]byte(diags), &run.Diagnostics); err != nil {
		return nil, fmt.Errorf("history: decode diagnostics: %w", err)
	}
	if run.Diagnostics == nil {
		run.Diagnostics = []diag.Diagnostic{}
	}
	return &run, nil
}
