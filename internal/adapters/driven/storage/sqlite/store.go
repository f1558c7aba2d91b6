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

	"github.com/tabtrace-labs/tabtrace-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to the
// annotation and modification stores through wrapper types. It is the
// local half of the local-first persistence model and the only
// persistence in offline mode.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.tabtrace/data/tabtrace.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".tabtrace", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "tabtrace.db")

	// WAL mode so a hung upload never blocks local appends.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
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

// AnnotationStore returns an AnnotationStore interface backed by this store.
func (s *Store) AnnotationStore() driven.AnnotationStore {
	return &annotationStore{store: s}
}

// ModificationStore returns a ModificationStore interface backed by this store.
func (s *Store) ModificationStore() driven.ModificationStore {
	return &modificationStore{store: s}
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
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Annotation Store ====================

// annotationStore implements driven.AnnotationStore.
type annotationStore struct {
	store *Store
}

var _ driven.AnnotationStore = (*annotationStore)(nil)

// ListByFile returns all annotations for a file, ordered by position.
func (s *annotationStore) ListByFile(ctx context.Context, fileID string) ([]domain.Annotation, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, file_id, row, column_name, explanation,
		       author_id, author_name, author_email, color, created_at
		FROM annotations WHERE file_id = ?
		ORDER BY row, column_name
	`, fileID)
	if err != nil {
		return nil, fmt.Errorf("querying annotations: %w", err)
	}
	defer rows.Close()

	var annotations []domain.Annotation //nolint:prealloc // size unknown from query
	for rows.Next() {
		var a domain.Annotation
		var createdAt sql.NullTime
		if err := rows.Scan(&a.ID, &a.FileID, &a.Row, &a.Column, &a.Explanation,
			&a.Author.ID, &a.Author.DisplayName, &a.Author.Email, &a.Color, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning annotation: %w", err)
		}
		if createdAt.Valid {
			a.CreatedAt = createdAt.Time
		}
		annotations = append(annotations, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating annotations: %w", err)
	}

	return annotations, nil
}

// Upsert stores or overwrites a single annotation. The cell address is
// the conflict key: re-annotating a cell replaces its explanation and
// author while keeping the original ID and colour, which the ledger
// carries over on the incoming record.
func (s *annotationStore) Upsert(ctx context.Context, annotation *domain.Annotation) error {
	if annotation == nil {
		return errors.New("nil annotation")
	}

	createdAt := annotation.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO annotations (id, file_id, row, column_name, explanation,
			author_id, author_name, author_email, color, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(file_id, row, column_name) DO UPDATE SET
			explanation = excluded.explanation,
			author_id = excluded.author_id,
			author_name = excluded.author_name,
			author_email = excluded.author_email,
			created_at = excluded.created_at
	`, annotation.ID, annotation.FileID, annotation.Row, annotation.Column,
		annotation.Explanation, annotation.Author.ID, annotation.Author.DisplayName,
		annotation.Author.Email, annotation.Color, createdAt)

	if err != nil {
		return fmt.Errorf("upserting annotation: %w", err)
	}
	return nil
}

// ==================== Modification Store ====================

// modificationStore implements driven.ModificationStore. The log is
// append-only: there is no update or delete path.
type modificationStore struct {
	store *Store
}

var _ driven.ModificationStore = (*modificationStore)(nil)

// Append writes a single modification record.
func (s *modificationStore) Append(ctx context.Context, record *domain.ModificationRecord) error {
	if record == nil {
		return errors.New("nil record")
	}

	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO modifications (id, file_id, reason, details,
			fingerprint_before, fingerprint_after,
			author_id, author_name, author_email, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, record.ID, record.FileID, string(record.Reason), record.Details,
		record.FingerprintBefore, record.FingerprintAfter,
		record.Author.ID, record.Author.DisplayName, record.Author.Email, createdAt)

	if err != nil {
		return fmt.Errorf("appending modification: %w", err)
	}
	return nil
}

// ListByFile returns a file's modification records, newest first.
func (s *modificationStore) ListByFile(ctx context.Context, fileID string) ([]domain.ModificationRecord, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, file_id, reason, details,
		       fingerprint_before, fingerprint_after,
		       author_id, author_name, author_email, created_at
		FROM modifications WHERE file_id = ?
		ORDER BY created_at DESC, rowid DESC
	`, fileID)
	if err != nil {
		return nil, fmt.Errorf("querying modifications: %w", err)
	}
	defer rows.Close()

	var records []domain.ModificationRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		record, err := scanModification(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating modifications: %w", err)
	}

	return records, nil
}

// Latest returns the most recent record for a file.
func (s *modificationStore) Latest(ctx context.Context, fileID string) (*domain.ModificationRecord, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, file_id, reason, details,
		       fingerprint_before, fingerprint_after,
		       author_id, author_name, author_email, created_at
		FROM modifications WHERE file_id = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`, fileID)

	var record domain.ModificationRecord
	var reason string
	var createdAt sql.NullTime
	if err := row.Scan(&record.ID, &record.FileID, &reason, &record.Details,
		&record.FingerprintBefore, &record.FingerprintAfter,
		&record.Author.ID, &record.Author.DisplayName, &record.Author.Email, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning modification: %w", err)
	}
	record.Reason = domain.ReasonCode(reason)
	if createdAt.Valid {
		record.CreatedAt = createdAt.Time
	}

	return &record, nil
}

// scanModification scans a modification record from *sql.Rows.
func scanModification(rows *sql.Rows) (*domain.ModificationRecord, error) {
	var record domain.ModificationRecord
	var reason string
	var createdAt sql.NullTime

	if err := rows.Scan(&record.ID, &record.FileID, &reason, &record.Details,
		&record.FingerprintBefore, &record.FingerprintAfter,
		&record.Author.ID, &record.Author.DisplayName, &record.Author.Email, &createdAt); err != nil {
		return nil, fmt.Errorf("scanning modification: %w", err)
	}

	record.Reason = domain.ReasonCode(reason)
	if createdAt.Valid {
		record.CreatedAt = createdAt.Time
	}

	return &record, nil
}
