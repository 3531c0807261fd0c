// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the client-side authentication use cases. It sits
// between the flow controller and the server adapter: requests are validated,
// session bookkeeping is written to storage and transport failures are
// translated into business errors.
package service

import (
	"context"

	"github.com/MKhiriev/go-device-trust/internal/validators"
	"github.com/MKhiriev/go-device-trust/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// ClientAuthService defines the client-side contract of the progressive
// authentication flow.
type ClientAuthService interface {
	// CheckDevice opens the flow: it sends the device key and fingerprint and
	// returns the backend verdict about the device and any live session. The
	// time of the check and any handle the backend recognised are written to
	// the session scope.
	//
	// Returns [ErrTimeout] or [ErrNetwork] (wrapped) when the backend cannot
	// be reached, and [ErrBackend] (wrapped) for any other failure.
	CheckDevice(ctx context.Context) (models.AuthResponse, error)

	// LookupIdentifier checks whether a normalized handle or phone exists and
	// how much the backend trusts this device for it. A medium-confidence
	// answer without PIN information is completed with a PIN availability
	// lookup; a failed availability lookup reads as "no PIN".
	//
	// Parameters:
	//   - kind: the classification made by the identifier screen.
	//   - value: the raw input. It is normalized before it is sent.
	//
	// Returns the validators error for input that cannot be normalized, and
	// [ErrIdentifierNotFound] (wrapped) when the backend rejects the lookup.
	LookupIdentifier(ctx context.Context, kind validators.IdentifierKind, value string) (models.AuthResponse, error)

	// FastAuthenticate signs in a high-confidence device without a challenge.
	// Returns [ErrDeviceNotTrusted] (wrapped) when the backend no longer
	// trusts the device, in which case the flow falls back to SMS.
	FastAuthenticate(ctx context.Context, identifier string) (models.AuthResponse, error)

	// SendCode starts or restarts an SMS challenge. The verification marker
	// and the entry order are written to the session scope before the call.
	//
	// Returns [ErrHandleExists] or [ErrPhoneExists] (wrapped) when a
	// registration picks a taken identifier; the response then carries the
	// handle suggestions.
	SendCode(ctx context.Context, req models.VerifyLoginRequest) (models.AuthResponse, error)

	// VerifyCode submits the SMS code. The device key is filled in from the
	// device identity. On success the verification marker is dropped and the
	// returned GUID is remembered.
	//
	// Returns [ErrInvalidCode] (wrapped) for a wrong or expired code.
	VerifyCode(ctx context.Context, req models.VerifyCodeRequest) (models.AuthResponse, error)

	// VerifyPIN submits the PIN of identifier together with the device key.
	// Returns [ErrInvalidPIN] (wrapped) for a wrong PIN; attempts are counted
	// by the caller.
	VerifyPIN(ctx context.Context, identifier, pin string) (models.AuthResponse, error)

	// CreateHandle finishes a phone-first registration by attaching a handle
	// to the account created during SMS verification.
	// Returns [ErrHandleExists] (wrapped) with suggestions when it is taken.
	CreateHandle(ctx context.Context, req models.CreateHandleRequest) (models.AuthResponse, error)

	// PasskeyLogin signs in with the passkey stored for handle. It runs the
	// begin, sign and finish round trips in one call.
	//
	// Returns [ErrPasskeysDisabled] when passkeys are off for this client and
	// [ErrPasskeyUnavailable] when the authenticator holds no credential for
	// handle.
	PasskeyLogin(ctx context.Context, handle string) (models.AuthResponse, error)

	// CompleteAuthentication records a successful sign-in: the current user,
	// the previous handle, the authenticated_user broadcast and, after SMS
	// verification, a background passkey enrolment.
	CompleteAuthentication(ctx context.Context, resp models.AuthResponse, method models.AuthMethod) error

	// Logout ends the backend session on a best-effort basis, clears the
	// session scope and the persisted device header, and broadcasts
	// logout_state to the other tabs. The device key survives, so the
	// backend still recognises the device. A failed backend call is logged
	// and never returned; only local storage failures are.
	Logout(ctx context.Context) error

	// BoundHandle returns the handle of the complete device header, or an
	// empty string when the device is not bound to anyone.
	BoundHandle(ctx context.Context) string

	// PreviousHandle returns the handle of the last user signed in on this
	// device, or an empty string.
	PreviousHandle(ctx context.Context) string
}

// DeviceManager is the part of the device identity the service needs.
type DeviceManager interface {
	StoredDeviceKey(ctx context.Context) string
	Fingerprint() models.DeviceFingerprint
	CompleteDeviceHeader(ctx context.Context) (*models.DeviceHeader, bool)
	ClearDeviceSession(ctx context.Context) error
}
