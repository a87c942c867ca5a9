// Package sqlstore keeps a catalog in a SQLite database. The schema is
// managed with goose migrations embedded in the binary.
package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/rshade/ecofocus/internal/catalog"
	"github.com/rshade/ecofocus/internal/logging"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store is a catalog database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the database at path and applies pending
// migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("sqlstore: database path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// A single connection keeps :memory: databases and pragmas consistent.
	db.SetMaxOpenConns(1)

	if _, err = db.ExecContext(ctx, `
		PRAGMA journal_mode = WAL;
		PRAGMA foreign_keys = ON;
		PRAGMA busy_timeout = 5000;
	`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set sqlite pragmas: %w", err)
	}

	s := &Store{db: db, path: path}
	if err = s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return err
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, s.db, fsys)
	if err != nil {
		return fmt.Errorf("create migration provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("run goose up migrations: %w", err)
	}
	log := logging.FromContext(ctx)
	for _, r := range results {
		log.Debug().Ctx(ctx).
			Str("component", "sqlstore").
			Str("migration", r.Source.Path).
			Dur("duration", r.Duration).
			Msg("migration applied")
	}
	return nil
}

// SchemaVersion returns the version of the last applied migration.
func (s *Store) SchemaVersion(ctx context.Context) (int64, error) {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return 0, err
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, s.db, fsys)
	if err != nil {
		return 0, err
	}
	return provider.GetDBVersion(ctx)
}

// Path returns the database file.
func (s *Store) Path() string { return s.path }

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Snapshot loads the catalog and validates it.
func (s *Store) Snapshot(ctx context.Context, opts ...catalog.Option) (*catalog.Snapshot, error) {
	data, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.New(data, opts...)
}
