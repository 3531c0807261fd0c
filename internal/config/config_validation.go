// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// validate checks the merged [StructuredConfig] before use. Only invariants
// that hold for every consumer are checked here, the client view adds its
// own in [ClientConfig.validate].
func (cfg *StructuredConfig) validate() error {
	if cfg.Flow.PINMaxAttempts < 0 || cfg.Adapter.RateBurst < 0 || cfg.Workers.EventBuffer < 0 ||
		cfg.Server.CodeAttempts < 0 {
		return ErrNegativeLimit
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if strings.TrimSpace(cfg.Storage.DB.DSN) == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 || cfg.Adapter.RateLimit <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Flow.CheckTimeout <= 0 || cfg.Flow.RequestTimeout <= 0 || cfg.Flow.CreateTimeout <= 0 ||
		cfg.Flow.PINMaxAttempts == 0 {
		return ErrInvalidFlowConfigs
	}

	if !strings.HasPrefix(cfg.App.DashboardPath, "/") || cfg.App.HeaderMaxAge <= 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.WebAuthn.Enabled && (cfg.WebAuthn.RPID == "" || cfg.WebAuthn.Origin == "") {
		return ErrInvalidWebAuthnConfigs
	}

	if cfg.Workers.EventBuffer == 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.Server.HTTPAddress == "" || strings.TrimSpace(cfg.Server.DSN) == "" || cfg.Server.ShutdownTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Server.TokenIssuer == "" || cfg.Server.TokenDuration <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Server.CodeTTL <= 0 || cfg.Server.CodeAttempts == 0 {
		return ErrInvalidServerConfigs
	}

	switch cfg.Server.VerifiedTrust {
	case "high", "medium", "low":
	default:
		return ErrInvalidServerConfigs
	}

	if (cfg.WebAuthn.RPID == "") != (cfg.WebAuthn.Origin == "") {
		return ErrInvalidWebAuthnConfigs
	}

	return nil
}
