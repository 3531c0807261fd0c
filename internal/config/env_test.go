// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestParseEnv_AllFields(t *testing.T) {
	setEnvVars(t, map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_DEVICE_SIGNING_KEY": "signing-secret",
		"APP_DASHBOARD_PATH":     "/home",
		"APP_HEADER_MAX_AGE":     "720h",
		"APP_LANGUAGE":           "en-GB",

		"STORAGE_DB_DSN": "/tmp/trust.db",

		"ADAPTER_ADDRESS":         "https://id.example.com/api/v1",
		"ADAPTER_REQUEST_TIMEOUT": "5s",
		"ADAPTER_RATE_LIMIT":      "2.5",
		"ADAPTER_RATE_BURST":      "4",
		"ADAPTER_CSRF_TOKEN":      "csrf",
		"ADAPTER_CSRF_PAGE":       "/login",
		"ADAPTER_USER_AGENT":      "agent/1",

		"FLOW_CHECK_TIMEOUT":    "10s",
		"FLOW_REQUEST_TIMEOUT":  "15s",
		"FLOW_CREATE_TIMEOUT":   "20s",
		"FLOW_REDIRECT_DWELL":   "1500ms",
		"FLOW_PIN_MAX_ATTEMPTS": "3",

		"WEBAUTHN_ENABLED": "true",
		"WEBAUTHN_RP_ID":   "example.com",
		"WEBAUTHN_RP_NAME": "Example",
		"WEBAUTHN_ORIGIN":  "https://example.com",

		"WORKERS_EVENT_BUFFER":   "8",
		"WORKERS_WATCH_DEBOUNCE": "25ms",
	})

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, "signing-secret", cfg.App.DeviceSigningKey)
	assert.Equal(t, "/home", cfg.App.DashboardPath)
	assert.Equal(t, 720*time.Hour, cfg.App.HeaderMaxAge)
	assert.Equal(t, "en-GB", cfg.App.Language)

	assert.Equal(t, "/tmp/trust.db", cfg.Storage.DB.DSN)

	assert.Equal(t, "https://id.example.com/api/v1", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 5*time.Second, cfg.Adapter.RequestTimeout)
	assert.InDelta(t, 2.5, cfg.Adapter.RateLimit, 0.0001)
	assert.Equal(t, 4, cfg.Adapter.RateBurst)
	assert.Equal(t, "csrf", cfg.Adapter.CSRFToken)
	assert.Equal(t, "/login", cfg.Adapter.CSRFPage)
	assert.Equal(t, "agent/1", cfg.Adapter.UserAgent)

	assert.Equal(t, 10*time.Second, cfg.Flow.CheckTimeout)
	assert.Equal(t, 15*time.Second, cfg.Flow.RequestTimeout)
	assert.Equal(t, 20*time.Second, cfg.Flow.CreateTimeout)
	assert.Equal(t, 1500*time.Millisecond, cfg.Flow.RedirectDwell)
	assert.Equal(t, 3, cfg.Flow.PINMaxAttempts)

	assert.True(t, cfg.WebAuthn.Enabled)
	assert.Equal(t, "example.com", cfg.WebAuthn.RPID)
	assert.Equal(t, "Example", cfg.WebAuthn.RPName)
	assert.Equal(t, "https://example.com", cfg.WebAuthn.Origin)

	assert.Equal(t, 8, cfg.Workers.EventBuffer)
	assert.Equal(t, 25*time.Millisecond, cfg.Workers.WatchDebounce)
}

func TestParseEnv_PartialFields(t *testing.T) {
	setEnvVars(t, map[string]string{
		"ADAPTER_ADDRESS": "localhost:8080",
	})

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "localhost:8080", cfg.Adapter.HTTPAddress)
	assert.Empty(t, cfg.App.DeviceSigningKey)
	assert.Zero(t, cfg.Flow.CheckTimeout)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	setEnvVars(t, map[string]string{
		"FLOW_CHECK_TIMEOUT": "soon",
	})

	err := parseEnv(&StructuredConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}

func TestParseEnvFrom_IgnoresProcessEnvironment(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9999")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnvFrom(cfg, map[string]string{
		"SERVER_CODE_ATTEMPTS": "5",
		"WEBAUTHN_ENABLED":     "true",
	}))

	assert.Empty(t, cfg.Server.HTTPAddress)
	assert.Equal(t, 5, cfg.Server.CodeAttempts)
	assert.True(t, cfg.WebAuthn.Enabled)
}
