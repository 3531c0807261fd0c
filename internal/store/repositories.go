package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-device-trust/internal/config"
	"github.com/MKhiriev/go-device-trust/internal/logger"
	"github.com/MKhiriev/go-device-trust/models"
)

//go:generate mockgen -source=repositories.go -destination=../mock/repository_mock.go -package=mock

// UserRepository persists backend accounts and their passkeys. Handle
// lookups are case-insensitive.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByGUID(ctx context.Context, guid string) (models.User, error)
	FindUserByHandle(ctx context.Context, handle string) (models.User, error)
	FindUserByPhone(ctx context.Context, phone string) (models.User, error)

	// TakenHandles returns the candidates that already belong to someone.
	TakenHandles(ctx context.Context, candidates []string) ([]string, error)

	SaveCredential(ctx context.Context, cred models.PasskeyCredential) error
	Credentials(ctx context.Context, guid string) ([]models.PasskeyCredential, error)
}

// DeviceRepository persists the trust record of every device key.
type DeviceRepository interface {
	FindDevice(ctx context.Context, key string) (models.Device, error)
	SaveDevice(ctx context.Context, device models.Device) error
}

// Repositories is the persistence of the reference backend.
type Repositories struct {
	UserRepository   UserRepository
	DeviceRepository DeviceRepository

	db *DB
}

// NewRepositories opens the backend SQLite file, applies its migrations and
// builds the repositories over it.
func NewRepositories(ctx context.Context, cfg config.Server, log *logger.Logger) (*Repositories, error) {
	log.Info().Str("func", "NewRepositories").Str("dsn", cfg.DSN).Msg("opening backend directory")

	db, err := NewConnectSQLite(ctx, config.DB{DSN: cfg.DSN}, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.MigrateBackend(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	users, err := NewUserRepository(db, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	devices, err := NewDeviceRepository(db, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repositories{UserRepository: users, DeviceRepository: devices, db: db}, nil
}

// Close releases the database handle.
func (r *Repositories) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}
