package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags_AllFlags(t *testing.T) {
	cfg, err := parseFlags([]string{
		"-a", "https://id.example.com",
		"-d", "/tmp/trust.db",
		"-c", "/etc/trust.json",
		"-request-timeout", "3s",
		"-csrf-token", "token",
		"-csrf-page", "/login",
		"-user-agent", "agent",
		"-signing-key", "secret",
		"-dashboard", "/home",
		"-passkeys",
		"-rp-id", "example.com",
		"-rp-origin", "https://example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://id.example.com", cfg.Adapter.HTTPAddress)
	assert.Equal(t, "/tmp/trust.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "/etc/trust.json", cfg.JSONFilePath)
	assert.Equal(t, 3*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "token", cfg.Adapter.CSRFToken)
	assert.Equal(t, "/login", cfg.Adapter.CSRFPage)
	assert.Equal(t, "agent", cfg.Adapter.UserAgent)
	assert.Equal(t, "secret", cfg.App.DeviceSigningKey)
	assert.Equal(t, "/home", cfg.App.DashboardPath)
	assert.True(t, cfg.WebAuthn.Enabled)
	assert.Equal(t, "example.com", cfg.WebAuthn.RPID)
	assert.Equal(t, "https://example.com", cfg.WebAuthn.Origin)
}

func TestParseFlags_ConfigAlias(t *testing.T) {
	cfg, err := parseFlags([]string{"-config", "alias.json"})
	require.NoError(t, err)
	assert.Equal(t, "alias.json", cfg.JSONFilePath)
}

func TestParseFlags_NoFlags(t *testing.T) {
	cfg, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseFlags_UnknownFlag(t *testing.T) {
	_, err := parseFlags([]string{"-nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error parsing flags")
}
