package store

import (
	"database/sql"

	"github.com/MKhiriev/go-device-trust/internal/logger"
	"github.com/MKhiriev/go-device-trust/migrations"
)

// DB wraps the SQLite handle of the local scope together with its file path,
// which the storage watcher needs.
type DB struct {
	*sql.DB
	path   string
	logger *logger.Logger
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Migrate applies the embedded local scope migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// MigrateBackend applies the embedded backend directory migrations.
func (db *DB) MigrateBackend() error {
	return migrations.MigrateBackend(db.DB)
}
