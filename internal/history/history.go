// Package history keeps a local SQLite log of reconciliation runs so
// `addteam history` can show what changed and when.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store wraps the run-history database.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the per-user history database location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".addteam", "history.db"), nil
}

// Open creates or opens the history database at the given path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// OpenMemory creates an in-memory history store (useful for testing).
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id                 TEXT PRIMARY KEY,
			repo               TEXT NOT NULL,
			mode               TEXT NOT NULL,
			ran_at             TIMESTAMP NOT NULL,
			missing            INTEGER NOT NULL DEFAULT 0,
			extra              INTEGER NOT NULL DEFAULT 0,
			permission_changes INTEGER NOT NULL DEFAULT 0,
			expired            INTEGER NOT NULL DEFAULT 0,
			invited            INTEGER NOT NULL DEFAULT 0,
			removed            INTEGER NOT NULL DEFAULT 0,
			updated            INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_runs_repo ON runs(repo, ran_at);
	`)
	return err
}

// Record is one reconciliation run: the drift that was found and the
// actions that were executed.
type Record struct {
	ID                string
	Repo              string
	Mode              string
	RanAt             time.Time
	Missing           int
	Extra             int
	PermissionChanges int
	Expired           int
	Invited           int
	Removed           int
	Updated           int
}

// Append stores a run record, filling in the ID and timestamp when unset.
func (s *Store) Append(rec Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.RanAt.IsZero() {
		rec.RanAt = time.Now().UTC()
	}
	_, err := s.db.Exec(`
		INSERT INTO runs (id, repo, mode, ran_at, missing, extra, permission_changes, expired, invited, removed, updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Repo, rec.Mode, rec.RanAt, rec.Missing, rec.Extra,
		rec.PermissionChanges, rec.Expired, rec.Invited, rec.Removed, rec.Updated,
	)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// Recent returns the most recent runs, newest first, optionally filtered
// to one repo.
func (s *Store) Recent(repo string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, repo, mode, ran_at, missing, extra, permission_changes, expired, invited, removed, updated
		FROM runs`
	args := []any{}
	if repo != "" {
		query += ` WHERE repo = ?`
		args = append(args, repo)
	}
	query += ` ORDER BY ran_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Repo, &rec.Mode, &rec.RanAt, &rec.Missing, &rec.Extra,
			&rec.PermissionChanges, &rec.Expired, &rec.Invited, &rec.Removed, &rec.Updated); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
