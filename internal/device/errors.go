package device

import "errors"

// Errors returned by [Identity]. Header validation errors are never surfaced
// to users: the header is purged and the device is treated as unknown.
var (
	// ErrIncompleteIdentity is returned when deviceId, userGuid or
	// userHandle is empty. The wrapped message names the missing field.
	ErrIncompleteIdentity = errors.New("device identity incomplete")

	// ErrHeaderWriteVerification is returned when a freshly written header
	// does not read back identically.
	ErrHeaderWriteVerification = errors.New("device header write could not be verified")

	// ErrHeaderNotFound is returned when no header is persisted.
	ErrHeaderNotFound = errors.New("device header not found")

	// ErrHeaderCorrupt is returned when the persisted header is not valid JSON.
	ErrHeaderCorrupt = errors.New("device header corrupt")

	// ErrHeaderIncomplete is returned when a persisted header lacks an
	// identity field.
	ErrHeaderIncomplete = errors.New("device header incomplete")

	// ErrHeaderSignature is returned when the stored signature does not match
	// the recomputed one.
	ErrHeaderSignature = errors.New("device header signature mismatch")

	// ErrHeaderExpired is returned when the header timestamp is outside the
	// validity window.
	ErrHeaderExpired = errors.New("device header expired")

	// ErrNoDeviceKey is returned when no device key could be produced.
	ErrNoDeviceKey = errors.New("device key unavailable")
)
