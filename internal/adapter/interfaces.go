// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the trusted HTTP client of the auth backend.
//
// Every request passes one interceptor that normalises the endpoint path under
// auth/, throttles, and attaches the CSRF token, the device header (complete
// or fingerprint-only), the device key, a request ID and the bearer token.
// Every response passes one interceptor that harvests trust data back into
// storage: the device key, the device header of authenticated responses and
// the bearer token.
//
// HTTP status codes are mapped to the sentinel values in errors.go by
// mapHTTPError. The decoded body is returned even alongside an error, since
// business errors such as handle_exists arrive with non-2xx codes.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-device-trust/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter is the client side of the auth backend contract. Each method
// maps to one endpoint under auth/.
type ServerAdapter interface {
	// CheckDevice asks whether the current device is known and whether a
	// session is still alive for it. The device key and fingerprint go in the
	// body; the complete or fingerprint-only header goes in X-Device-Header.
	// A live session comes back as an authenticated response that the
	// response interceptor harvests like a fresh sign-in.
	CheckDevice(ctx context.Context, req models.CheckDeviceRequest) (models.AuthResponse, error)

	// CheckHandle looks up a handle. Exists is set in the response.
	CheckHandle(ctx context.Context, handle string) (models.AuthResponse, error)

	// CheckPhone looks up a phone number. Exists is set in the response.
	CheckPhone(ctx context.Context, phone string) (models.AuthResponse, error)

	// CheckPINAvailability reports whether identifier has a PIN enrolled.
	CheckPINAvailability(ctx context.Context, identifier string) (models.AuthResponse, error)

	// VerifyLogin sends an SMS code for sign-in or registration. The response
	// carries the masked phone shown on the verification screen.
	//
	// Returns [ErrConflict] (wrapped) when a registration picks a taken handle
	// or phone; the returned response still holds the suggestions.
	VerifyLogin(ctx context.Context, req models.VerifyLoginRequest) (models.AuthResponse, error)

	// FastAuthenticate signs in a high-confidence device without a challenge.
	// Returns [ErrForbidden] (wrapped) when the backend downgraded the device
	// since the lookup.
	FastAuthenticate(ctx context.Context, req models.FastAuthenticateRequest) (models.AuthResponse, error)

	// VerifyCode submits the SMS code. For a registration it also creates the
	// account, so req repeats the handle, the phone and their order.
	// Returns [ErrUnauthorized] (wrapped) for a wrong or expired code.
	VerifyCode(ctx context.Context, req models.VerifyCodeRequest) (models.AuthResponse, error)

	// VerifyPIN submits the PIN. Returns [ErrUnauthorized] (wrapped) for a
	// wrong one; the caller counts attempts and falls back to SMS.
	VerifyPIN(ctx context.Context, req models.VerifyPINRequest) (models.AuthResponse, error)

	// CreateHandle attaches a handle to a phone-first registration.
	// Returns [ErrConflict] (wrapped) when the handle is taken; the response
	// then carries the suggestions.
	CreateHandle(ctx context.Context, req models.CreateHandleRequest) (models.AuthResponse, error)

	// Logout ends the backend session of this device. The bearer token is
	// attached by the interceptor; the device binding on the backend is kept.
	Logout(ctx context.Context, req models.LogoutRequest) (models.AuthResponse, error)

	// PasskeyRegisterOptions fetches WebAuthn creation options.
	PasskeyRegisterOptions(ctx context.Context, req models.PasskeyOptionsRequest) (models.PasskeyOptions, error)

	// PasskeyRegisterVerify submits an attestation.
	PasskeyRegisterVerify(ctx context.Context, req models.PasskeyVerifyRequest) (models.AuthResponse, error)

	// PasskeyLoginOptions fetches WebAuthn request options.
	PasskeyLoginOptions(ctx context.Context, req models.PasskeyOptionsRequest) (models.PasskeyOptions, error)

	// PasskeyLoginVerify submits an assertion. An authenticated response is
	// harvested like any other sign-in.
	PasskeyLoginVerify(ctx context.Context, req models.PasskeyVerifyRequest) (models.AuthResponse, error)
}

// DeviceIdentity is the part of [device.Identity] the interceptors rely on.
type DeviceIdentity interface {
	StoredDeviceKey(ctx context.Context) string
	DeviceHeader(ctx context.Context) (string, bool)
	MinimalHeader(ctx context.Context) (string, error)
	StoreDeviceSessionData(ctx context.Context, resp models.AuthResponse) error
}
