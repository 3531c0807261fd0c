package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validClientConfig(t *testing.T) *ClientConfig {
	t.Helper()
	b := newConfigBuilder([]string{"-a", "https://id.example.com"}).withDefaults().withFlags()
	cfg, err := b.build()
	require.NoError(t, err)
	return cfg.Client()
}

func TestClientConfig_ValidDefaults(t *testing.T) {
	cfg := validClientConfig(t)
	require.NoError(t, cfg.validate())
	assert.Equal(t, 10*time.Second, cfg.Flow.CheckTimeout)
	assert.Equal(t, 1500*time.Millisecond, cfg.Flow.RedirectDwell)
	assert.Equal(t, 3, cfg.Flow.PINMaxAttempts)
}

func TestClientConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *ClientConfig)
		want   error
	}{
		{"empty dsn", func(c *ClientConfig) { c.Storage.DB.DSN = " " }, ErrInvalidStorageConfigs},
		{"no address", func(c *ClientConfig) { c.Adapter.HTTPAddress = "" }, ErrInvalidAdapterConfigs},
		{"no rate", func(c *ClientConfig) { c.Adapter.RateLimit = 0 }, ErrInvalidAdapterConfigs},
		{"no check timeout", func(c *ClientConfig) { c.Flow.CheckTimeout = 0 }, ErrInvalidFlowConfigs},
		{"no pin attempts", func(c *ClientConfig) { c.Flow.PINMaxAttempts = 0 }, ErrInvalidFlowConfigs},
		{"relative dashboard", func(c *ClientConfig) { c.App.DashboardPath = "dashboard" }, ErrInvalidAppConfigs},
		{"passkeys without rp", func(c *ClientConfig) { c.WebAuthn.Enabled = true }, ErrInvalidWebAuthnConfigs},
		{"no event buffer", func(c *ClientConfig) { c.Workers.EventBuffer = 0 }, ErrInvalidWorkerConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validClientConfig(t)
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.validate(), tt.want)
		})
	}
}

func TestFlow_TimeoutFor(t *testing.T) {
	f := Flow{CheckTimeout: time.Second, RequestTimeout: 2 * time.Second, CreateTimeout: 3 * time.Second}

	assert.Equal(t, time.Second, f.TimeoutFor("check_device"))
	assert.Equal(t, 3*time.Second, f.TimeoutFor("create_handle"))
	assert.Equal(t, 2*time.Second, f.TimeoutFor("verify_code"))
}
