package library

import (
	"context"
	"database/sql"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps entries in a SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// DefaultPath returns the library file under the user config directory,
// which honours XDG_CONFIG_HOME.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "fbp", "library.db"), nil
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection keeps ":memory:" databases alive and serialises writers.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS blueprints (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			blueprint TEXT NOT NULL,
			entity_count INTEGER NOT NULL,
			created_at TEXT NOT NULL
		)
	`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Insert implements [Store].
func (s *SQLiteStore) Insert(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO blueprints (id, name, blueprint, entity_count, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, e.ID, e.Name, e.Blueprint, e.Entities, e.CreatedAt.Format(time.RFC3339Nano))
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: blueprints.name") {
		return nameTaken(e.Name)
	}
	return err
}

// Find implements [Store].
func (s *SQLiteStore) Find(ctx context.Context, key string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, blueprint, entity_count, created_at
		FROM blueprints WHERE id = ? OR name = ?
		ORDER BY id = ? DESC LIMIT 1
	`, key, key, key)
	e, err := scanEntry(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, notFound(key)
	}
	return e, err
}

// List implements [Store].
func (s *SQLiteStore) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, blueprint, entity_count, created_at
		FROM blueprints ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// Delete implements [Store].
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM blueprints WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return notFound(id)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*Entry, error) {
	var (
		e       Entry
		created string
	)
	if err := row.Scan(&e.ID, &e.Name, &e.Blueprint, &e.Entities, &created); err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return nil, err
	}
	e.CreatedAt = t
	return &e, nil
}

var _ Store = (*SQLiteStore)(nil)
