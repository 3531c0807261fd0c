package service

import "errors"

// Business errors returned by [ClientAuthService]. Transport details stay
// wrapped behind them.
var (
	ErrHandleExists       = errors.New("handle already taken")
	ErrPhoneExists        = errors.New("phone already registered")
	ErrInvalidCode        = errors.New("invalid verification code")
	ErrInvalidPIN         = errors.New("invalid PIN")
	ErrIdentifierNotFound = errors.New("identifier not found")
	ErrDeviceNotTrusted   = errors.New("device not trusted")
	ErrBackend            = errors.New("backend error")
	ErrNetwork            = errors.New("network error")
	ErrTimeout            = errors.New("request timed out")

	ErrPasskeyUnavailable = errors.New("no passkey for this account on this device")
	ErrPasskeysDisabled   = errors.New("passkeys are disabled")
)

// Errors of the reference backend services. The HTTP layer maps each of them
// to a status and an error code.
var (
	ErrInvalidDataProvided   = errors.New("invalid data provided")
	ErrMissingDeviceKey      = errors.New("missing device key")
	ErrHandleTaken           = errors.New("handle is taken")
	ErrPhoneTaken            = errors.New("phone is registered")
	ErrUnknownIdentifier     = errors.New("unknown identifier")
	ErrUntrustedDevice       = errors.New("device is not trusted for this account")
	ErrWrongCode             = errors.New("wrong or expired verification code")
	ErrWrongPIN              = errors.New("wrong PIN")
	ErrNoPendingRegistration = errors.New("no verified registration is pending")
	ErrCodeDelivery          = errors.New("verification code could not be delivered")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrUnknownPasskeySession = errors.New("unknown or expired passkey session")
	ErrPasskeyRejected       = errors.New("passkey rejected")
	ErrNoPasskeyCredential   = errors.New("account has no passkey")
)
