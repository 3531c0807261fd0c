package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-device-trust/internal/config"
	"github.com/MKhiriev/go-device-trust/internal/logger"
	"github.com/MKhiriev/go-device-trust/models"
)

func openRepositories(t *testing.T) *Repositories {
	t.Helper()
	repos, err := NewRepositories(context.Background(), config.Server{DSN: filepath.Join(t.TempDir(), "backend.db")}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })
	return repos
}

// ── users ───────────────────────────────────────────────────────────────────

func TestUserRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	users := openRepositories(t).UserRepository

	created, err := users.CreateUser(ctx, models.User{GUID: "g1", Handle: "Alice", Phone: "+15550100001", PINHash: "h"})
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())

	byHandle, err := users.FindUserByHandle(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "g1", byHandle.GUID)
	assert.Equal(t, "h", byHandle.PINHash)

	byPhone, err := users.FindUserByPhone(ctx, "+15550100001")
	require.NoError(t, err)
	assert.Equal(t, "Alice", byPhone.Handle)

	byGUID, err := users.FindUserByGUID(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, "+15550100001", byGUID.Phone)

	_, err = users.FindUserByHandle(ctx, "bob")
	assert.ErrorIs(t, err, ErrNoUserWasFound)
}

func TestUserRepository_UniqueViolations(t *testing.T) {
	ctx := context.Background()
	users := openRepositories(t).UserRepository

	_, err := users.CreateUser(ctx, models.User{GUID: "g1", Handle: "alice", Phone: "+15550100001"})
	require.NoError(t, err)

	_, err = users.CreateUser(ctx, models.User{GUID: "g2", Handle: "ALICE", Phone: "+15550100002"})
	assert.ErrorIs(t, err, ErrHandleAlreadyExists)

	_, err = users.CreateUser(ctx, models.User{GUID: "g3", Handle: "carol", Phone: "+15550100001"})
	assert.ErrorIs(t, err, ErrPhoneAlreadyExists)
}

func TestUserRepository_TakenHandles(t *testing.T) {
	ctx := context.Background()
	users := openRepositories(t).UserRepository

	for i, h := range []string{"alice", "Alice1"} {
		_, err := users.CreateUser(ctx, models.User{GUID: h, Handle: h, Phone: "+1555010000" + string(rune('1'+i))})
		require.NoError(t, err)
	}

	taken, err := users.TakenHandles(ctx, []string{"alice", "alice1", "alice2"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "alice1"}, taken)

	taken, err = users.TakenHandles(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, taken)
}

func TestUserRepository_Credentials(t *testing.T) {
	ctx := context.Background()
	users := openRepositories(t).UserRepository

	_, err := users.CreateUser(ctx, models.User{GUID: "g1", Handle: "alice", Phone: "+15550100001"})
	require.NoError(t, err)

	require.NoError(t, users.SaveCredential(ctx, models.PasskeyCredential{ID: "c1", UserGUID: "g1", Data: []byte(`{"n":1}`)}))
	require.NoError(t, users.SaveCredential(ctx, models.PasskeyCredential{ID: "c1", UserGUID: "g1", Data: []byte(`{"n":2}`)}))

	creds, err := users.Credentials(ctx, "g1")
	require.NoError(t, err)
	require.Len(t, creds, 1)
	assert.JSONEq(t, `{"n":2}`, string(creds[0].Data))

	creds, err = users.Credentials(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, creds)
}

func TestUserRepository_DBErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	users, err := NewUserRepository(&DB{DB: db, logger: logger.Nop()}, logger.Nop())
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO users").WillReturnError(errors.New("disk I/O error"))
	_, err = users.CreateUser(context.Background(), models.User{GUID: "g", Handle: "h", Phone: "+15550100001"})
	assert.ErrorIs(t, err, ErrExecutingStatement)

	mock.ExpectQuery("SELECT guid, handle, phone, pin_hash, created_at FROM users").
		WithArgs("g").
		WillReturnError(errors.New("disk I/O error"))
	_, err = users.FindUserByGUID(context.Background(), "g")
	assert.ErrorIs(t, err, ErrExecutingQuery)

	mock.ExpectQuery("SELECT handle FROM users WHERE handle IN").
		WithArgs("a", "b").
		WillReturnRows(sqlmock.NewRows([]string{"handle"}).AddRow(nil))
	_, err = users.TakenHandles(context.Background(), []string{"a", "b"})
	assert.ErrorIs(t, err, ErrScanningRows)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewUserRepository_NilDB(t *testing.T) {
	_, err := NewUserRepository(nil, logger.Nop())
	assert.ErrorIs(t, err, ErrNilDB)
}

// ── devices ─────────────────────────────────────────────────────────────────

func TestDeviceRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	devices := openRepositories(t).DeviceRepository

	_, err := devices.FindDevice(ctx, "k1")
	assert.ErrorIs(t, err, ErrDeviceNotFound)

	require.NoError(t, devices.SaveDevice(ctx, models.Device{Key: "k1", UserAgent: "test"}))
	require.NoError(t, devices.SaveDevice(ctx, models.Device{Key: "k1", UserGUID: "g1", Confidence: models.ConfidenceHigh, SessionAlive: true, UserAgent: "test"}))

	d, err := devices.FindDevice(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "g1", d.UserGUID)
	assert.Equal(t, models.ConfidenceHigh, d.Confidence)
	assert.True(t, d.SessionAlive)
	assert.True(t, d.Bound("g1"))
	assert.False(t, d.UpdatedAt.IsZero())
}

func TestDeviceRepository_SaveRetriesWhileBusy(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	devices, err := NewDeviceRepository(&DB{DB: db, logger: logger.Nop()}, logger.Nop())
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO devices").WillReturnError(busyError())
	mock.ExpectExec("INSERT INTO devices").WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, devices.SaveDevice(context.Background(), models.Device{Key: "k1"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeviceRepository_SaveGivesUpOnOtherErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	devices, err := NewDeviceRepository(&DB{DB: db, logger: logger.Nop()}, logger.Nop())
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO devices").WillReturnError(errors.New("readonly database"))

	assert.ErrorIs(t, devices.SaveDevice(context.Background(), models.Device{Key: "k1"}), ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}
