package service

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-device-trust/internal/config"
	"github.com/MKhiriev/go-device-trust/internal/crypto"
	"github.com/MKhiriev/go-device-trust/internal/logger"
	"github.com/MKhiriev/go-device-trust/internal/store"
)

const sweepInterval = time.Minute

// Services are the use cases of the auth backend.
type Services struct {
	AuthService AuthService
	// PasskeyService is nil when no relying party is configured.
	PasskeyService PasskeyService
	// Sweeper frees expired challenges; run it with the other workers.
	Sweeper *Sweeper
}

func NewServices(repos *store.Repositories, sender CodeSender, cfg *config.ServerConfig, log *logger.Logger) (*Services, error) {
	serverCfg := cfg.Server
	if serverCfg.TokenSignKey == "" {
		key, err := crypto.RandomHex(32)
		if err != nil {
			return nil, fmt.Errorf("generate token sign key: %w", err)
		}
		serverCfg.TokenSignKey = key
		log.Warn().Str("func", "NewServices").Msg("no token sign key configured; tokens will not survive a restart")
	}

	auth := newAuthService(repos, sender, serverCfg, log)
	services := &Services{AuthService: auth}
	sweeps := []func() int{auth.challenges.Sweep, auth.pending.Sweep}

	if cfg.PasskeysEnabled() {
		passkeys, err := newPasskeyService(cfg.WebAuthn, repos.UserRepository, auth, log)
		if err != nil {
			return nil, err
		}
		services.PasskeyService = passkeys
		sweeps = append(sweeps, passkeys.sessions.Sweep)
	}

	services.Sweeper = NewSweeper(sweepInterval, log, sweeps...)
	return services, nil
}
