package config

import "fmt"

// ServerConfig is the runtime configuration of the reference auth backend.
type ServerConfig struct {
	Server   Server
	WebAuthn WebAuthn
}

// GetServerConfig builds and validates a server-specific config view from
// the merged structured configuration.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := cfg.ServerView()
	return serverCfg, serverCfg.validate()
}

// ServerView maps the structured config onto a [ServerConfig].
func (cfg *StructuredConfig) ServerView() *ServerConfig {
	return &ServerConfig{
		Server:   cfg.Server,
		WebAuthn: cfg.WebAuthn,
	}
}

// PasskeysEnabled reports whether the backend serves the webauthn endpoints.
func (cfg *ServerConfig) PasskeysEnabled() bool {
	return cfg.WebAuthn.RPID != "" && cfg.WebAuthn.Origin != ""
}
