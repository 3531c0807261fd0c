// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container for the
// device-trust client. It is populated by merging built-in defaults,
// environment variables, command-line flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds the device-identity and navigation settings.
	App App `envPrefix:"APP_"`

	// Storage holds the location of the shared (local scope) database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds the backend address and transport tuning.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Flow holds the authentication flow timers and limits.
	Flow Flow `envPrefix:"FLOW_"`

	// WebAuthn holds the relying-party settings for passkey ceremonies.
	WebAuthn WebAuthn `envPrefix:"WEBAUTHN_"`

	// Workers holds settings of the background storage watcher.
	Workers Workers `envPrefix:"WORKERS_"`

	// Server holds settings of the reference auth backend.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// DeviceSigningKey is the secret from which per-device header signing
	// keys are derived. When empty, headers carry the legacy checksum.
	// Env: APP_DEVICE_SIGNING_KEY
	DeviceSigningKey string `env:"DEVICE_SIGNING_KEY"`

	// DashboardPath is where a tab navigates after sign-in.
	// Env: APP_DASHBOARD_PATH
	DashboardPath string `env:"DASHBOARD_PATH"`

	// HeaderMaxAge is how long a persisted device header stays valid.
	// Env: APP_HEADER_MAX_AGE
	HeaderMaxAge time.Duration `env:"HEADER_MAX_AGE"`

	// Language overrides the detected UI language used in the fingerprint.
	// Env: APP_LANGUAGE
	Language string `env:"LANGUAGE"`
}

// Storage groups the storage backend settings.
type Storage struct {
	// DB holds the SQLite settings of the local scope.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local scope database.
type DB struct {
	// DSN is the SQLite file path. ":memory:" selects the in-process store
	// which is only shared between tabs of one process.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Adapter holds settings of the outbound HTTP client.
type Adapter struct {
	// HTTPAddress is the backend base URL (e.g. "https://id.example.com/api/v1").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every outbound request at the transport level.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// RateLimit is the sustained request rate in requests per second.
	// Env: ADAPTER_RATE_LIMIT
	RateLimit float64 `env:"RATE_LIMIT"`

	// RateBurst is the burst size allowed above RateLimit.
	// Env: ADAPTER_RATE_BURST
	RateBurst int `env:"RATE_BURST"`

	// CSRFToken is a fixed anti-forgery token.
	// Env: ADAPTER_CSRF_TOKEN
	CSRFToken string `env:"CSRF_TOKEN"`

	// CSRFPage is a path or URL of an HTML page whose csrf-token meta tag is
	// scraped when CSRFToken is empty.
	// Env: ADAPTER_CSRF_PAGE
	CSRFPage string `env:"CSRF_PAGE"`

	// UserAgent is sent with every request and drives fingerprint heuristics.
	// Env: ADAPTER_USER_AGENT
	UserAgent string `env:"USER_AGENT"`
}

// Flow holds timers of the authentication state machine.
type Flow struct {
	// CheckTimeout guards the initial check_device call.
	// Env: FLOW_CHECK_TIMEOUT
	CheckTimeout time.Duration `env:"CHECK_TIMEOUT"`

	// RequestTimeout guards every other network-bound transition.
	// Env: FLOW_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// CreateTimeout guards create_handle.
	// Env: FLOW_CREATE_TIMEOUT
	CreateTimeout time.Duration `env:"CREATE_TIMEOUT"`

	// RedirectDwell is the pause on the success screen before redirecting.
	// Env: FLOW_REDIRECT_DWELL
	RedirectDwell time.Duration `env:"REDIRECT_DWELL"`

	// PINMaxAttempts is the number of wrong PINs before falling back to SMS.
	// Env: FLOW_PIN_MAX_ATTEMPTS
	PINMaxAttempts int `env:"PIN_MAX_ATTEMPTS"`
}

// WebAuthn holds the relying party identity used by the local authenticator.
type WebAuthn struct {
	// Enabled turns on passkey registration after SMS verification.
	// Env: WEBAUTHN_ENABLED
	Enabled bool `env:"ENABLED"`

	// RPID is the relying party identifier (a registrable domain).
	// Env: WEBAUTHN_RP_ID
	RPID string `env:"RP_ID"`

	// RPName is the display name of the relying party.
	// Env: WEBAUTHN_RP_NAME
	RPName string `env:"RP_NAME"`

	// Origin is the origin presented in client data.
	// Env: WEBAUTHN_ORIGIN
	Origin string `env:"ORIGIN"`
}

// Workers holds background watcher settings.
type Workers struct {
	// EventBuffer is the per-subscriber channel capacity of the storage bus.
	// Env: WORKERS_EVENT_BUFFER
	EventBuffer int `env:"EVENT_BUFFER"`

	// WatchDebounce coalesces bursts of file system notifications.
	// Env: WORKERS_WATCH_DEBOUNCE
	WatchDebounce time.Duration `env:"WATCH_DEBOUNCE"`
}

// Server holds settings of the reference auth backend (cmd/server).
type Server struct {
	// HTTPAddress is the TCP address the backend listens on.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// DSN is the SQLite file holding accounts, devices and passkeys.
	// Env: SERVER_DSN
	DSN string `env:"DSN"`

	// TokenSignKey signs bearer tokens. A random key is generated at startup
	// when empty, so tokens do not survive a restart.
	// Env: SERVER_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the iss claim of issued tokens.
	// Env: SERVER_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the lifetime of issued tokens.
	// Env: SERVER_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// CSRFToken is rendered into the login page and required on every
	// state-changing request. Empty disables the check.
	// Env: SERVER_CSRF_TOKEN
	CSRFToken string `env:"CSRF_TOKEN"`

	// CodeTTL is how long an SMS code stays valid.
	// Env: SERVER_CODE_TTL
	CodeTTL time.Duration `env:"CODE_TTL"`

	// CodeAttempts is the number of wrong codes that burn a challenge.
	// Env: SERVER_CODE_ATTEMPTS
	CodeAttempts int `env:"CODE_ATTEMPTS"`

	// VerifiedTrust is the confidence a device earns after an SMS
	// verification: "high", "medium" or "low".
	// Env: SERVER_VERIFIED_TRUST
	VerifiedTrust string `env:"VERIFIED_TRUST"`

	// ShutdownTimeout bounds graceful shutdown.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`

	// SeedFile is an optional JSON file with accounts created at startup.
	// Env: SERVER_SEED_FILE
	SeedFile string `env:"SEED_FILE"`
}

// GetStructuredConfig loads, merges, and validates the configuration from all
// available sources in the following priority order (later sources override
// non-zero fields of earlier ones):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags
//  4. JSON file (path resolved from sources 2 and 3)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder(os.Args[1:]).
		withDefaults().
		withEnv().
		withFlags().
		withJSON().
		build()
}
