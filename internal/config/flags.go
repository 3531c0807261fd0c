package config

import (
	"flag"
	"fmt"
)

// parseFlags parses command-line flags from args.
//
// Flags:
//
//	-a backend base URL
//	-d local scope database DSN
//	-c/-config json file path with configs
//	-request-timeout outbound request timeout (e.g. "30s")
//	-csrf-token fixed CSRF token
//	-csrf-page page to scrape the CSRF meta tag from
//	-user-agent user agent to present
//	-signing-key device header signing secret
//	-dashboard dashboard path to navigate to after sign-in
//	-passkeys enable passkey registration
//	-rp-id / -rp-origin WebAuthn relying party id and origin
//	-listen backend listen address
//	-server-db backend database DSN
//	-seed backend seed file
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("go-device-trust", flag.ContinueOnError)

	cfg := &StructuredConfig{}
	fs.StringVar(&cfg.Adapter.HTTPAddress, "a", "", "Backend base URL")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Local scope database DSN")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	fs.DurationVar(&cfg.Adapter.RequestTimeout, "request-timeout", 0, "Request timeout (e.g. 30s)")
	fs.StringVar(&cfg.Adapter.CSRFToken, "csrf-token", "", "Fixed CSRF token")
	fs.StringVar(&cfg.Adapter.CSRFPage, "csrf-page", "", "Page carrying the csrf-token meta tag")
	fs.StringVar(&cfg.Adapter.UserAgent, "user-agent", "", "User agent")
	fs.StringVar(&cfg.App.DeviceSigningKey, "signing-key", "", "Device header signing secret")
	fs.StringVar(&cfg.App.DashboardPath, "dashboard", "", "Dashboard path")
	fs.BoolVar(&cfg.WebAuthn.Enabled, "passkeys", false, "Register a passkey after SMS verification")
	fs.StringVar(&cfg.WebAuthn.RPID, "rp-id", "", "WebAuthn relying party id")
	fs.StringVar(&cfg.WebAuthn.Origin, "rp-origin", "", "WebAuthn origin")
	fs.StringVar(&cfg.Server.HTTPAddress, "listen", "", "Backend listen address")
	fs.StringVar(&cfg.Server.DSN, "server-db", "", "Backend database DSN")
	fs.StringVar(&cfg.Server.SeedFile, "seed", "", "Backend seed file")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return cfg, nil
}
