// Package migrations embeds the goose migrations of the two SQLite databases:
// the client local scope (top level) and the reference backend directory
// (backend/).
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedMigrations embed.FS

//go:embed backend/*.sql
var embedBackendMigrations embed.FS

// Migrate brings the local scope db up to the latest schema.
func Migrate(db *sql.DB) error {
	return up(db, embedMigrations, ".")
}

// MigrateBackend brings the backend directory db up to the latest schema.
func MigrateBackend(db *sql.DB) error {
	return up(db, embedBackendMigrations, "backend")
}

func up(db *sql.DB, fsys fs.FS, dir string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	goose.SetBaseFS(fsys)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
