package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for JSON files. Durations
// accept either Go duration strings ("15s") or integer nanoseconds.
type StructuredJSONConfig struct {
	App struct {
		DeviceSigningKey string   `json:"device_signing_key"`
		DashboardPath    string   `json:"dashboard_path"`
		HeaderMaxAge     Duration `json:"header_max_age"`
		Language         string   `json:"language"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		RateLimit      float64  `json:"rate_limit"`
		RateBurst      int      `json:"rate_burst"`
		CSRFToken      string   `json:"csrf_token"`
		CSRFPage       string   `json:"csrf_page"`
		UserAgent      string   `json:"user_agent"`
	} `json:"adapter,omitempty"`

	Flow struct {
		CheckTimeout   Duration `json:"check_timeout"`
		RequestTimeout Duration `json:"request_timeout"`
		CreateTimeout  Duration `json:"create_timeout"`
		RedirectDwell  Duration `json:"redirect_dwell"`
		PINMaxAttempts int      `json:"pin_max_attempts"`
	} `json:"flow,omitempty"`

	WebAuthn struct {
		Enabled bool   `json:"enabled"`
		RPID    string `json:"rp_id"`
		RPName  string `json:"rp_name"`
		Origin  string `json:"origin"`
	} `json:"webauthn,omitempty"`

	Workers struct {
		EventBuffer   int      `json:"event_buffer"`
		WatchDebounce Duration `json:"watch_debounce"`
	} `json:"workers,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		DSN             string   `json:"dsn"`
		TokenSignKey    string   `json:"token_sign_key"`
		TokenIssuer     string   `json:"token_issuer"`
		TokenDuration   Duration `json:"token_duration"`
		CSRFToken       string   `json:"csrf_token"`
		CodeTTL         Duration `json:"code_ttl"`
		CodeAttempts    int      `json:"code_attempts"`
		VerifiedTrust   string   `json:"verified_trust"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
		SeedFile        string   `json:"seed_file"`
	} `json:"server,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			DeviceSigningKey: jsonCfg.App.DeviceSigningKey,
			DashboardPath:    jsonCfg.App.DashboardPath,
			HeaderMaxAge:     time.Duration(jsonCfg.App.HeaderMaxAge),
			Language:         jsonCfg.App.Language,
		},
		Storage: Storage{
			DB: DB{DSN: jsonCfg.Storage.DB.DSN},
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			RateLimit:      jsonCfg.Adapter.RateLimit,
			RateBurst:      jsonCfg.Adapter.RateBurst,
			CSRFToken:      jsonCfg.Adapter.CSRFToken,
			CSRFPage:       jsonCfg.Adapter.CSRFPage,
			UserAgent:      jsonCfg.Adapter.UserAgent,
		},
		Flow: Flow{
			CheckTimeout:   time.Duration(jsonCfg.Flow.CheckTimeout),
			RequestTimeout: time.Duration(jsonCfg.Flow.RequestTimeout),
			CreateTimeout:  time.Duration(jsonCfg.Flow.CreateTimeout),
			RedirectDwell:  time.Duration(jsonCfg.Flow.RedirectDwell),
			PINMaxAttempts: jsonCfg.Flow.PINMaxAttempts,
		},
		WebAuthn: WebAuthn{
			Enabled: jsonCfg.WebAuthn.Enabled,
			RPID:    jsonCfg.WebAuthn.RPID,
			RPName:  jsonCfg.WebAuthn.RPName,
			Origin:  jsonCfg.WebAuthn.Origin,
		},
		Workers: Workers{
			EventBuffer:   jsonCfg.Workers.EventBuffer,
			WatchDebounce: time.Duration(jsonCfg.Workers.WatchDebounce),
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			DSN:             jsonCfg.Server.DSN,
			TokenSignKey:    jsonCfg.Server.TokenSignKey,
			TokenIssuer:     jsonCfg.Server.TokenIssuer,
			TokenDuration:   time.Duration(jsonCfg.Server.TokenDuration),
			CSRFToken:       jsonCfg.Server.CSRFToken,
			CodeTTL:         time.Duration(jsonCfg.Server.CodeTTL),
			CodeAttempts:    jsonCfg.Server.CodeAttempts,
			VerifiedTrust:   jsonCfg.Server.VerifiedTrust,
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
			SeedFile:        jsonCfg.Server.SeedFile,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
