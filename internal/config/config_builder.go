package config

import (
	"errors"
	"fmt"
	"time"

	"dario.cat/mergo"
)

// Defaults applied before any other source.
const (
	defaultDashboardPath  = "/dashboard"
	defaultHeaderMaxAge   = 30 * 24 * time.Hour
	defaultDSN            = "device-trust.db"
	defaultRequestTimeout = 30 * time.Second
	defaultRateLimit      = 5
	defaultRateBurst      = 10
	defaultUserAgent      = "go-device-trust/1.0"
	defaultCheckTimeout   = 10 * time.Second
	defaultFlowTimeout    = 15 * time.Second
	defaultCreateTimeout  = 20 * time.Second
	defaultRedirectDwell  = 1500 * time.Millisecond
	defaultPINMaxAttempts = 3
	defaultEventBuffer    = 16
	defaultWatchDebounce  = 50 * time.Millisecond

	defaultServerAddress   = ":8080"
	defaultServerDSN       = "device-trust-backend.db"
	defaultTokenIssuer     = "go-device-trust"
	defaultTokenDuration   = 24 * time.Hour
	defaultCodeTTL         = 5 * time.Minute
	defaultCodeAttempts    = 5
	defaultVerifiedTrust   = "high"
	defaultShutdownTimeout = 5 * time.Second
	defaultRPName          = "Device Trust"
)

type configBuilder struct {
	args    []string
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder(args []string) *configBuilder {
	return &configBuilder{
		args:    args,
		configs: make([]*StructuredConfig, 0, 4),
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occurred during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return config, config.validate()
}

func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, &StructuredConfig{
		App: App{
			DashboardPath: defaultDashboardPath,
			HeaderMaxAge:  defaultHeaderMaxAge,
		},
		Storage: Storage{DB: DB{DSN: defaultDSN}},
		Adapter: Adapter{
			RequestTimeout: defaultRequestTimeout,
			RateLimit:      defaultRateLimit,
			RateBurst:      defaultRateBurst,
			UserAgent:      defaultUserAgent,
		},
		Flow: Flow{
			CheckTimeout:   defaultCheckTimeout,
			RequestTimeout: defaultFlowTimeout,
			CreateTimeout:  defaultCreateTimeout,
			RedirectDwell:  defaultRedirectDwell,
			PINMaxAttempts: defaultPINMaxAttempts,
		},
		Workers: Workers{
			EventBuffer:   defaultEventBuffer,
			WatchDebounce: defaultWatchDebounce,
		},
		WebAuthn: WebAuthn{RPName: defaultRPName},
		Server: Server{
			HTTPAddress:     defaultServerAddress,
			DSN:             defaultServerDSN,
			TokenIssuer:     defaultTokenIssuer,
			TokenDuration:   defaultTokenDuration,
			CodeTTL:         defaultCodeTTL,
			CodeAttempts:    defaultCodeAttempts,
			VerifiedTrust:   defaultVerifiedTrust,
			ShutdownTimeout: defaultShutdownTimeout,
		},
	})
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags() *configBuilder {
	flagsCfg, err := parseFlags(b.args)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, flagsCfg)
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string
	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
		}
	}

	if jsonPath == "" {
		return b
	}

	jsonCfg, err := parseJSON(jsonPath)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.configs = append(b.configs, jsonCfg)

	return b
}
