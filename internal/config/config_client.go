package config

import (
	"fmt"
	"time"
)

// ClientConfig is the runtime configuration of one client process, assembled
// from [StructuredConfig].
type ClientConfig struct {
	// App contains device-identity and navigation settings.
	App App
	// Adapter contains the backend address and transport tuning.
	Adapter Adapter
	// Storage contains the local scope database location.
	Storage Storage
	// Flow contains state machine timers.
	Flow Flow
	// WebAuthn contains relying party settings.
	WebAuthn WebAuthn
	// Workers contains storage watcher settings.
	Workers Workers
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := cfg.Client()
	return clientCfg, clientCfg.validate()
}

// Client maps the structured config onto a [ClientConfig].
func (cfg *StructuredConfig) Client() *ClientConfig {
	return &ClientConfig{
		App:      cfg.App,
		Adapter:  cfg.Adapter,
		Storage:  cfg.Storage,
		Flow:     cfg.Flow,
		WebAuthn: cfg.WebAuthn,
		Workers:  cfg.Workers,
	}
}

// TimeoutFor returns the safety timeout of a named flow operation.
// check_device and create_handle have their own limits, everything else uses
// the default request timeout.
func (f Flow) TimeoutFor(operation string) time.Duration {
	switch operation {
	case "check_device":
		return f.CheckTimeout
	case "create_handle":
		return f.CreateTimeout
	default:
		return f.RequestTimeout
	}
}
