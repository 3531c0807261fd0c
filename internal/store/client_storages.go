package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-device-trust/internal/config"
	"github.com/MKhiriev/go-device-trust/internal/logger"
)

// MemoryDSN selects the in-process local scope.
const MemoryDSN = ":memory:"

// ClientStorages holds the process-wide local scope. Every tab opened by the
// process builds its [Storages] on top of Local with its own session scope.
type ClientStorages struct {
	// Local is the shared local scope.
	Local KV

	// ChangeLog is set when Local is SQLite-backed and other processes may
	// write to it.
	ChangeLog ChangeLog

	// DB is the SQLite handle, nil for the in-process store.
	DB *DB
}

// NewClientStorages initialises the local scope described by cfg:
//  1. ":memory:" returns an in-process map shared by the tabs of this
//     process only.
//  2. Any other DSN opens the SQLite file (creating it if needed), runs the
//     embedded migrations and returns the SQLite repository.
func NewClientStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*ClientStorages, error) {
	if cfg.DB.DSN == MemoryDSN {
		log.Info().Str("func", "NewClientStorages").Msg("using in-process local storage")
		return &ClientStorages{Local: NewMemoryKV()}, nil
	}

	log.Info().Str("func", "NewClientStorages").Str("dsn", cfg.DB.DSN).Msg("opening local storage")

	db, err := NewConnectSQLite(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	kv, err := NewSQLiteKV(db, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &ClientStorages{Local: kv, ChangeLog: kv, DB: db}, nil
}

// Shared reports whether the local scope can be written by other processes.
func (c *ClientStorages) Shared() bool {
	return c.ChangeLog != nil
}

// Close releases the database handle, if any.
func (c *ClientStorages) Close() error {
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
