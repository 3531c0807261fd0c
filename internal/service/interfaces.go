package service

import (
	"context"

	"github.com/MKhiriev/go-device-trust/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService is the backend side of progressive authentication.
//
// deviceKey is the caller's X-Device-Key. Only CheckDevice accepts an empty
// key; it issues a new one in the response. Failed calls may still return a
// response carrying details such as handle suggestions.
type AuthService interface {
	// CheckDevice looks the device up and reports any session still alive
	// for it. An unknown or empty key is answered with a freshly issued one.
	CheckDevice(ctx context.Context, deviceKey, userAgent string) (models.AuthResponse, error)

	// CheckHandle and CheckPhone report whether an account exists for the
	// identifier and how much deviceKey is trusted for it. Malformed input
	// returns [ErrInvalidDataProvided] (wrapped).
	CheckHandle(ctx context.Context, deviceKey, handle string) (models.AuthResponse, error)
	CheckPhone(ctx context.Context, deviceKey, phone string) (models.AuthResponse, error)

	// CheckPINAvailability reports whether the account behind identifier has
	// a PIN. Returns [ErrUnknownIdentifier] when there is no such account.
	CheckPINAvailability(ctx context.Context, identifier string) (models.AuthResponse, error)

	// VerifyLogin starts an SMS challenge for sign-in or registration.
	//
	// Returns [ErrMissingDeviceKey] without a device key, [ErrPhoneTaken] when
	// a registration reuses a phone, [ErrUnknownIdentifier] when a sign-in
	// names no account, and [ErrCodeDelivery] (wrapped) when the code could
	// not be sent.
	VerifyLogin(ctx context.Context, deviceKey string, req models.VerifyLoginRequest) (models.AuthResponse, error)

	// FastAuthenticate signs in without a challenge. Returns
	// [ErrUntrustedDevice] unless deviceKey has high confidence for the
	// account.
	FastAuthenticate(ctx context.Context, deviceKey string, req models.FastAuthenticateRequest) (models.AuthResponse, error)

	// VerifyCode checks the SMS code and trusts deviceKey for the account. For
	// a registration it creates the account, or answers "needs handle" when
	// the phone came first and no handle was given yet.
	// Returns [ErrWrongCode] for a wrong or expired code.
	VerifyCode(ctx context.Context, deviceKey string, req models.VerifyCodeRequest) (models.AuthResponse, error)

	// VerifyPIN checks the PIN of a medium-confidence device. Returns
	// [ErrUntrustedDevice] for any other device and [ErrWrongPIN] for a wrong
	// PIN.
	VerifyPIN(ctx context.Context, deviceKey string, req models.VerifyPINRequest) (models.AuthResponse, error)

	// CreateHandle completes a registration verified by SMS.
	// Returns [ErrNoPendingRegistration] when no verified registration exists
	// for the phone, and [ErrHandleTaken] with suggestions in the response.
	CreateHandle(ctx context.Context, deviceKey string, req models.CreateHandleRequest) (models.AuthResponse, error)

	// Logout ends the session of deviceKey. The device stays trusted.
	Logout(ctx context.Context, deviceKey, guid string) (models.AuthResponse, error)

	// Seed creates an account and trusts the listed devices for it.
	Seed(ctx context.Context, user models.SeedUser) (models.User, error)

	// CreateToken issues the bearer token of guid. Returns
	// [ErrTokenCreationFailed] (wrapped) when it cannot be signed.
	CreateToken(ctx context.Context, guid string) (string, error)

	// ParseToken returns the GUID carried by token. Returns
	// [ErrTokenIsExpiredOrInvalid] (wrapped) for a bad or stale token.
	ParseToken(ctx context.Context, token string) (string, error)
}

// PasskeyService runs the WebAuthn ceremonies of the backend. Each Options
// call opens a ceremony that the matching Verify call closes; an unknown or
// expired session returns [ErrUnknownPasskeySession].
type PasskeyService interface {
	RegisterOptions(ctx context.Context, req models.PasskeyOptionsRequest) (models.PasskeyOptions, error)

	// RegisterVerify stores the new credential. Returns [ErrUntrustedDevice]
	// unless deviceKey holds a live session of the account, and
	// [ErrPasskeyRejected] (wrapped) when the attestation does not verify.
	RegisterVerify(ctx context.Context, deviceKey string, req models.PasskeyVerifyRequest) (models.AuthResponse, error)

	// LoginOptions returns [ErrNoPasskeyCredential] for an account without a
	// passkey.
	LoginOptions(ctx context.Context, req models.PasskeyOptionsRequest) (models.PasskeyOptions, error)

	// LoginVerify signs in with an assertion and trusts deviceKey for the
	// account. Returns [ErrPasskeyRejected] (wrapped) when the assertion does
	// not verify.
	LoginVerify(ctx context.Context, deviceKey string, req models.PasskeyVerifyRequest) (models.AuthResponse, error)
}

// CodeSender delivers SMS verification codes.
type CodeSender interface {
	SendCode(ctx context.Context, phone, code string) error
}
