package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates a missing backend address, a
	// non-positive request timeout or rate limit.
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates an empty local scope DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates a relative dashboard path or a
	// non-positive header max age.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidFlowConfigs indicates a missing flow timeout or PIN limit.
	ErrInvalidFlowConfigs = errors.New("invalid flow configuration")
	// ErrInvalidWebAuthnConfigs indicates passkeys are enabled without a
	// relying party id or origin.
	ErrInvalidWebAuthnConfigs = errors.New("invalid webauthn configuration")
	// ErrInvalidWorkerConfigs indicates a zero event buffer.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrInvalidServerConfigs indicates a missing listen address, database,
	// token setting or code limit, or an unknown verified trust level.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrNegativeLimit indicates a negative counter anywhere in the config.
	ErrNegativeLimit = errors.New("configuration limits must not be negative")
)
