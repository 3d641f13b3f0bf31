package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/formpilot/formpilot/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/formpilot/formpilot/internal/core/domain"
	"github.com/formpilot/formpilot/internal/core/ports/driven"
)

// Store is a SQLite-based storage for field memory.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.formpilot/data/memory.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".formpilot", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "memory.db")

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// FieldMemoryStore returns a FieldMemoryStore interface backed by this store.
func (s *Store) FieldMemoryStore() driven.FieldMemoryStore {
	return &fieldMemoryStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version,
		); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Field Memory Store ====================

// fieldMemoryStore implements driven.FieldMemoryStore.
type fieldMemoryStore struct {
	store *Store
}

var _ driven.FieldMemoryStore = (*fieldMemoryStore)(nil)

// IsRejected reports whether a field on a page is rejected.
func (s *fieldMemoryStore) IsRejected(ctx context.Context, fieldID, pageURL string) (bool, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT 1 FROM rejections WHERE field_id = ? AND page_url = ?
	`, fieldID, pageURL)

	var one int
	if err := row.Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("checking rejection: %w", err)
	}
	return true, nil
}

// AddRejection idempotently records a rejection.
func (s *fieldMemoryStore) AddRejection(ctx context.Context, fieldID, pageURL string) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO rejections (field_id, page_url, rejected_at)
		VALUES (?, ?, ?)
		ON CONFLICT(field_id, page_url) DO NOTHING
	`, fieldID, pageURL, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving rejection: %w", err)
	}
	return nil
}

// ClearRejections removes all rejections for a page.
func (s *fieldMemoryStore) ClearRejections(ctx context.Context, pageURL string) error {
	_, err := s.store.db.ExecContext(ctx,
		"DELETE FROM rejections WHERE page_url = ?", pageURL)
	if err != nil {
		return fmt.Errorf("clearing rejections: %w", err)
	}
	return nil
}

// ClearAllRejections removes every rejection.
func (s *fieldMemoryStore) ClearAllRejections(ctx context.Context) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM rejections")
	if err != nil {
		return fmt.Errorf("clearing rejections: %w", err)
	}
	return nil
}

// SaveAccepted upserts an accepted answer by its field key.
func (s *fieldMemoryStore) SaveAccepted(ctx context.Context, accepted domain.AcceptedAnswer) error {
	if accepted.UpdatedAt.IsZero() {
		accepted.UpdatedAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO accepted_answers (field_key, answer, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(field_key) DO UPDATE SET
			answer = excluded.answer,
			updated_at = excluded.updated_at
	`, accepted.FieldKey, accepted.Answer, accepted.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving accepted answer: %w", err)
	}
	return nil
}

// GetAccepted returns the accepted answer for a field key.
func (s *fieldMemoryStore) GetAccepted(ctx context.Context, fieldKey string) (*domain.AcceptedAnswer, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT field_key, answer, updated_at
		FROM accepted_answers WHERE field_key = ?
	`, fieldKey)

	var accepted domain.AcceptedAnswer
	var updatedAt sql.NullTime
	if err := row.Scan(&accepted.FieldKey, &accepted.Answer, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning accepted answer: %w", err)
	}
	if updatedAt.Valid {
		accepted.UpdatedAt = updatedAt.Time
	}

	return &accepted, nil
}
