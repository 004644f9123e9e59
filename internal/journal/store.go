package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"splice/internal/srtfix"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; old databases must be deleted after a bump.
const schemaVersion = 1

// ErrNotFound indicates no journal entry matched the query.
var ErrNotFound = errors.New("journal entry not found")

// ErrSchemaMismatch indicates the database was created by an incompatible
// version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Entry records the correction outcome for one subtitle track.
type Entry struct {
	ID         int64
	JobID      string
	Source     string
	TrackFile  string
	Language   string
	Changed    bool
	TotalFixes int
	Stats      srtfix.Stats
	CreatedAt  time.Time
}

// Store manages journal persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the journal database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin schema tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
		return tx.Commit()
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to reset)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

// Record inserts an entry and returns it with its assigned ID and
// timestamp filled in.
func (s *Store) Record(ctx context.Context, entry Entry) (*Entry, error) {
	stats := entry.Stats
	if stats == nil {
		stats = srtfix.Stats{}
	}
	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return nil, fmt.Errorf("marshal stats: %w", err)
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO corrections (
            job_id, source, track_file, language,
            changed, total_fixes, stats_json, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.JobID,
		entry.Source,
		entry.TrackFile,
		entry.Language,
		boolToInt(entry.Changed),
		entry.TotalFixes,
		string(statsJSON),
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID returns the entry with the given ID or ErrNotFound.
func (s *Store) GetByID(ctx context.Context, id int64) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" FROM corrections WHERE id = ?", id)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("entry %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		selectColumns+" FROM corrections ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("query recent entries: %w", err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

// ByJob returns every entry recorded for a job, oldest first.
func (s *Store) ByJob(ctx context.Context, jobID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		selectColumns+" FROM corrections WHERE job_id = ? ORDER BY id ASC", jobID)
	if err != nil {
		return nil, fmt.Errorf("query job %s: %w", jobID, err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

const selectColumns = `SELECT id, job_id, source, track_file, language,
    changed, total_fixes, stats_json, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*Entry, error) {
	var (
		entry     Entry
		changed   int
		statsJSON string
		createdAt string
	)
	err := row.Scan(
		&entry.ID,
		&entry.JobID,
		&entry.Source,
		&entry.TrackFile,
		&entry.Language,
		&changed,
		&entry.TotalFixes,
		&statsJSON,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	entry.Changed = changed != 0
	entry.Stats = srtfix.Stats{}
	if statsJSON != "" {
		if err := json.Unmarshal([]byte(statsJSON), &entry.Stats); err != nil {
			return nil, fmt.Errorf("unmarshal stats for entry %d: %w", entry.ID, err)
		}
	}
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse timestamp for entry %d: %w", entry.ID, err)
	}
	entry.CreatedAt = ts
	return &entry, nil
}

func collectEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
