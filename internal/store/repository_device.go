package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-device-trust/internal/logger"
	"github.com/MKhiriev/go-device-trust/models"
)

const devicesTable = "devices"

// deviceRepository is the SQLite-backed [DeviceRepository].
type deviceRepository struct {
	db      *DB
	builder sq.StatementBuilderType
	logger  *logger.Logger
	now     func() time.Time
}

// NewDeviceRepository constructs a [DeviceRepository] over db.
func NewDeviceRepository(db *DB, log *logger.Logger) (DeviceRepository, error) {
	if db == nil || db.DB == nil {
		return nil, ErrNilDB
	}
	return &deviceRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
		logger:  log,
		now:     time.Now,
	}, nil
}

func (r *deviceRepository) FindDevice(ctx context.Context, key string) (models.Device, error) {
	query, args, err := r.builder.
		Select("device_key", "user_guid", "confidence", "session_alive", "user_agent", "updated_at").
		From(devicesTable).
		Where(sq.Eq{"device_key": key}).
		ToSql()
	if err != nil {
		return models.Device{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		d          models.Device
		confidence string
	)
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&d.Key, &d.UserGUID, &confidence, &d.SessionAlive, &d.UserAgent, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Device{}, ErrDeviceNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*deviceRepository.FindDevice").Msg("error searching device")
		return models.Device{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	d.Confidence = models.DeviceConfidence(confidence)

	return d, nil
}

// SaveDevice inserts device or overwrites every field of the stored record.
func (r *deviceRepository) SaveDevice(ctx context.Context, device models.Device) error {
	query, args, err := r.builder.
		Insert(devicesTable).
		Columns("device_key", "user_guid", "confidence", "session_alive", "user_agent", "updated_at").
		Values(device.Key, device.UserGUID, string(device.Confidence), device.SessionAlive, device.UserAgent, r.now().UTC()).
		Suffix("ON CONFLICT(device_key) DO UPDATE SET " +
			"user_guid = excluded.user_guid, confidence = excluded.confidence, " +
			"session_alive = excluded.session_alive, user_agent = excluded.user_agent, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = retryBusy(ctx, func() error {
		_, execErr := r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		r.logger.Err(err).Str("func", "*deviceRepository.SaveDevice").Str("device_key", device.Key).Msg("error saving device")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
