// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package device remembers the device a tab runs on.
//
// A random device key identifies the device. After the first successful
// sign-in it is bound to the user in a signed [models.DeviceHeader] persisted
// in the local scope, which lets the backend recognise the device on later
// visits. Headers that are incomplete, tampered with or expired are purged on
// read and the device is treated as unknown.
package device

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-device-trust/internal/crypto"
	"github.com/MKhiriev/go-device-trust/internal/logger"
	"github.com/MKhiriev/go-device-trust/internal/store"
	"github.com/MKhiriev/go-device-trust/models"
)

// deviceKeyBytes is the size of the raw device key.
const deviceKeyBytes = 32

// maxClockSkew tolerates headers written by a tab whose clock runs ahead.
const maxClockSkew = 5 * time.Minute

// Identity implements device key, fingerprint and header management for one
// tab.
type Identity struct {
	storage store.StorageAdapter
	signer  crypto.Signer
	env     Environment
	maxAge  time.Duration
	now     func() time.Time
	logger  *logger.Logger
}

// NewIdentity returns an Identity persisting through storage.
func NewIdentity(storage store.StorageAdapter, signer crypto.Signer, env Environment, maxAge time.Duration, log *logger.Logger) *Identity {
	return &Identity{
		storage: storage,
		signer:  signer,
		env:     env,
		maxAge:  maxAge,
		now:     time.Now,
		logger:  log,
	}
}

// GenerateDeviceKey draws a fresh 32-byte key, hex encoded.
func (i *Identity) GenerateDeviceKey() (string, error) {
	key, err := crypto.RandomHex(deviceKeyBytes)
	if err != nil {
		i.logger.Err(err).Str("func", "Identity.GenerateDeviceKey").Msg("platform RNG unavailable")
		return "", fmt.Errorf("%w: %w", ErrNoDeviceKey, err)
	}
	return key, nil
}

// StoredDeviceKey resolves the device key in order: the deviceId of a
// complete persisted header, the session cached key, a freshly generated key
// which is then cached. An empty string means no key could be produced.
func (i *Identity) StoredDeviceKey(ctx context.Context) string {
	if header, ok := i.CompleteDeviceHeader(ctx); ok {
		return header.DeviceID
	}

	if key, err := i.storage.Get(ctx, models.ScopeSession, models.KeyDeviceKey); err == nil && key != "" {
		return key
	}

	key, err := i.GenerateDeviceKey()
	if err != nil {
		return ""
	}
	if err = i.storage.Set(ctx, models.ScopeSession, models.KeyDeviceKey, key); err != nil {
		i.logger.Err(err).Str("func", "Identity.StoredDeviceKey").Msg("failed to cache device key")
	}
	return key
}

// Fingerprint describes the current device.
func (i *Identity) Fingerprint() models.DeviceFingerprint {
	return Fingerprint(i.env)
}

func (i *Identity) buildHeader(deviceID, userGUID, userHandle string) models.DeviceHeader {
	ts := i.now().UnixMilli()
	return models.DeviceHeader{
		DeviceID:              deviceID,
		UserGUID:              userGUID,
		UserHandle:            userHandle,
		Timestamp:             ts,
		DeviceCharacteristics: i.Fingerprint().Characteristics(),
		Signature:             i.signer.Sign(deviceID, userGUID, ts),
	}
}

// GenerateDeviceHeader builds, signs and persists a header binding deviceID
// to the user, then reads it back to confirm the write. It returns the
// serialized header.
func (i *Identity) GenerateDeviceHeader(ctx context.Context, deviceID, userGUID, userHandle string) (string, error) {
	header := i.buildHeader(deviceID, userGUID, userHandle)
	if missing := header.MissingField(); missing != "" {
		i.logger.Warn().
			Str("func", "Identity.GenerateDeviceHeader").
			Str("missing", missing).
			Msg("refusing to build device header")
		return "", fmt.Errorf("%w: %s is empty", ErrIncompleteIdentity, missing)
	}

	raw, err := json.Marshal(header)
	if err != nil {
		return "", fmt.Errorf("encode device header: %w", err)
	}

	if err = i.storage.Set(ctx, models.ScopeLocal, models.KeyDeviceHeader, string(raw)); err != nil {
		return "", fmt.Errorf("persist device header: %w", err)
	}

	stored, err := i.storage.Get(ctx, models.ScopeLocal, models.KeyDeviceHeader)
	if err != nil || stored != string(raw) {
		i.logger.Error().
			Err(err).
			Str("func", "Identity.GenerateDeviceHeader").
			Msg("device header did not read back")
		return "", ErrHeaderWriteVerification
	}

	i.logger.Debug().
		Str("func", "Identity.GenerateDeviceHeader").
		Str("user_guid", userGUID).
		Str("scheme", i.signer.Scheme()).
		Msg("device header stored")
	return stored, nil
}

// DeviceHeader returns the persisted header exactly as stored, provided it
// passes validation.
func (i *Identity) DeviceHeader(ctx context.Context) (string, bool) {
	raw, _, err := i.loadHeader(ctx)
	if err != nil {
		return "", false
	}
	return raw, true
}

// CompleteDeviceHeader returns the parsed persisted header if it is complete,
// correctly signed and not expired. Any failure purges it.
func (i *Identity) CompleteDeviceHeader(ctx context.Context) (*models.DeviceHeader, bool) {
	_, header, err := i.loadHeader(ctx)
	if err != nil {
		return nil, false
	}
	return header, true
}

func (i *Identity) loadHeader(ctx context.Context) (string, *models.DeviceHeader, error) {
	raw, err := i.storage.Get(ctx, models.ScopeLocal, models.KeyDeviceHeader)
	if err != nil || raw == "" {
		return "", nil, ErrHeaderNotFound
	}

	header, err := i.validate(raw)
	if err != nil {
		i.logger.Warn().
			Err(err).
			Str("func", "Identity.loadHeader").
			Msg("purging invalid device header")
		if rmErr := i.storage.Remove(ctx, models.ScopeLocal, models.KeyDeviceHeader); rmErr != nil {
			i.logger.Err(rmErr).Str("func", "Identity.loadHeader").Msg("failed to purge device header")
		}
		return "", nil, err
	}

	return raw, header, nil
}

func (i *Identity) validate(raw string) (*models.DeviceHeader, error) {
	var header models.DeviceHeader
	if err := json.Unmarshal([]byte(raw), &header); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHeaderCorrupt, err)
	}

	if missing := header.MissingField(); missing != "" {
		return nil, fmt.Errorf("%w: %s is empty", ErrHeaderIncomplete, missing)
	}

	if !i.signer.Verify(header.DeviceID, header.UserGUID, header.Timestamp, header.Signature) {
		return nil, ErrHeaderSignature
	}

	age := i.now().Sub(time.UnixMilli(header.Timestamp))
	if age > i.maxAge || age < -maxClockSkew {
		return nil, fmt.Errorf("%w: age %s", ErrHeaderExpired, age.Round(time.Second))
	}

	return &header, nil
}

// MinimalHeader returns the fingerprint-only header used when no complete
// header exists. It carries the device key but no user binding.
func (i *Identity) MinimalHeader(ctx context.Context) (string, error) {
	key := i.StoredDeviceKey(ctx)
	if key == "" {
		return "", ErrNoDeviceKey
	}

	raw, err := json.Marshal(models.MinimalDeviceHeader{
		DeviceID:              key,
		Timestamp:             i.now().UnixMilli(),
		DeviceCharacteristics: i.Fingerprint().Characteristics(),
		FingerprintOnly:       true,
	})
	if err != nil {
		return "", fmt.Errorf("encode minimal header: %w", err)
	}
	return string(raw), nil
}

// StoreDeviceSessionData persists the trust material of an authentication
// response: the device key and authenticated marker in the session scope and,
// when the identity triple is known, a fresh device header. The triple comes
// from device_header_data or from the discrete device_key, guid and handle
// fields. When the regular header path fails with a complete triple, the
// header is written directly without read-back verification.
func (i *Identity) StoreDeviceSessionData(ctx context.Context, resp models.AuthResponse) error {
	if resp.DeviceKey != "" {
		if err := i.storage.Set(ctx, models.ScopeSession, models.KeyDeviceKey, resp.DeviceKey); err != nil {
			return fmt.Errorf("cache device key: %w", err)
		}
	}

	if err := i.storage.Set(ctx, models.ScopeSession, models.KeyDeviceSession, models.SessionAuthenticated); err != nil {
		return fmt.Errorf("mark device session: %w", err)
	}

	deviceID, userGUID, userHandle := resp.DeviceKey, resp.GUID, resp.Handle
	if data := resp.DeviceHeaderData; data != nil {
		deviceID, userGUID, userHandle = data.DeviceID, data.UserGUID, data.UserHandle
	}
	if deviceID == "" {
		deviceID = i.StoredDeviceKey(ctx)
	}

	if deviceID == "" || userGUID == "" || userHandle == "" {
		i.logger.Debug().
			Str("func", "Identity.StoreDeviceSessionData").
			Msg("response carries no complete identity, header left untouched")
		return nil
	}

	if _, err := i.GenerateDeviceHeader(ctx, deviceID, userGUID, userHandle); err != nil {
		i.logger.Warn().
			Err(err).
			Str("func", "Identity.StoreDeviceSessionData").
			Msg("header generation failed, writing directly")
		return i.writeHeaderDirect(ctx, deviceID, userGUID, userHandle)
	}

	return nil
}

func (i *Identity) writeHeaderDirect(ctx context.Context, deviceID, userGUID, userHandle string) error {
	raw, err := json.Marshal(i.buildHeader(deviceID, userGUID, userHandle))
	if err != nil {
		return fmt.Errorf("encode device header: %w", err)
	}
	if err = i.storage.Set(ctx, models.ScopeLocal, models.KeyDeviceHeader, string(raw)); err != nil {
		return fmt.Errorf("write device header directly: %w", err)
	}
	return nil
}

// ClearDeviceSession forgets the user binding: the session scope is wiped,
// the device key is put back unchanged and the persisted header is deleted.
func (i *Identity) ClearDeviceSession(ctx context.Context) error {
	key, err := i.storage.Get(ctx, models.ScopeSession, models.KeyDeviceKey)
	if err != nil || key == "" {
		if header, ok := i.CompleteDeviceHeader(ctx); ok {
			key = header.DeviceID
		}
	}

	var errs []error
	if err = i.storage.Clear(ctx, models.ScopeSession); err != nil {
		errs = append(errs, fmt.Errorf("clear session: %w", err))
	}

	if key != "" {
		if err = i.storage.Set(ctx, models.ScopeSession, models.KeyDeviceKey, key); err != nil {
			errs = append(errs, fmt.Errorf("re-seed device key: %w", err))
		}
	}

	if err = i.storage.Remove(ctx, models.ScopeLocal, models.KeyDeviceHeader); err != nil {
		errs = append(errs, fmt.Errorf("remove device header: %w", err))
	}

	return errors.Join(errs...)
}
