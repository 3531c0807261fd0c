package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-device-trust/internal/adapter"
	"github.com/MKhiriev/go-device-trust/internal/config"
	"github.com/MKhiriev/go-device-trust/internal/crypto"
	"github.com/MKhiriev/go-device-trust/internal/device"
	"github.com/MKhiriev/go-device-trust/internal/flow"
	"github.com/MKhiriev/go-device-trust/internal/logger"
	"github.com/MKhiriev/go-device-trust/internal/passkey"
	"github.com/MKhiriev/go-device-trust/internal/service"
	"github.com/MKhiriev/go-device-trust/internal/store"
	"github.com/MKhiriev/go-device-trust/internal/tabsync"
	"github.com/MKhiriev/go-device-trust/internal/tui"
	"github.com/MKhiriev/go-device-trust/internal/utils"
	"github.com/MKhiriev/go-device-trust/internal/workers"
	"github.com/MKhiriev/go-device-trust/models"
)

// App is one tab wired to its background workers.
type App struct {
	origin   string
	bus      *tabsync.Bus
	flow     *flow.Controller
	ui       UI
	listener *tabsync.Listener
	watcher  *tabsync.FileWatcher
	logger   *logger.Logger
}

// NewApp builds a tab on top of the process-wide storages.
func NewApp(cfg *config.ClientConfig, storages *store.ClientStorages, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	if cfg == nil || storages == nil {
		return nil, errors.New("client config and storages are required")
	}

	origin := uuid.NewString()
	log = log.WithTab(origin)

	bus := tabsync.NewBus(cfg.Workers.EventBuffer, log)
	tabStorages := store.NewStorages(storages.Local, store.NewMemoryKV(), origin, bus, log)

	identity := device.NewIdentity(
		tabStorages,
		crypto.NewSigner(cfg.App.DeviceSigningKey),
		device.HostEnvironment(cfg.Adapter.UserAgent, cfg.App.Language),
		cfg.App.HeaderMaxAge,
		log,
	)

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, identity, tabStorages, log)
	if err != nil {
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	var authenticator passkey.Authenticator
	if cfg.WebAuthn.Enabled {
		authenticator = passkey.NewAuthenticator(cfg.WebAuthn)
	}
	services := service.NewClientServices(serverAdapter, identity, tabStorages, authenticator, cfg.WebAuthn, log)

	nav := flow.NewLocation(flow.LoginPath, func(path string) {
		log.Info().Str("func", "App.navigate").Str("path", path).Msg("navigated")
	})
	ctrl := flow.NewController(flow.NewMachine(cfg.Flow, cfg.App.DashboardPath), services.AuthService, cfg.Flow, nav, 0, log)

	app := &App{
		origin:   origin,
		bus:      bus,
		flow:     ctrl,
		listener: tabsync.NewListener(origin, bus, identity, ctrl, nav, cfg.App.DashboardPath, log),
		logger:   log,
		ui: tui.New(ctrl, nav, tui.Options{
			DashboardPath: cfg.App.DashboardPath,
			Passkeys:      cfg.WebAuthn.Enabled,
			BuildInfo:     buildInfo,
		}, log),
	}
	if storages.Shared() {
		app.watcher = tabsync.NewFileWatcher(cfg.Storage.DB.DSN, storages.ChangeLog, bus, cfg.Workers.WatchDebounce, log)
	}
	return app, nil
}

// Run starts the flow, the cross-tab workers and the UI. It returns when the
// UI exits; quitting by the user is not an error.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(utils.WithTabID(ctx, a.origin))
	defer cancel()
	defer a.bus.Close()

	ws := workers.NewWorkers(a.logger, a.listener)
	if a.watcher != nil {
		ws.Add(a.watcher)
	}
	ws.Add(workers.WorkerFunc(func(ctx context.Context) error {
		defer cancel()
		if err := a.flow.Start(ctx); err != nil {
			return fmt.Errorf("start auth flow: %w", err)
		}
		return a.ui.Run(ctx)
	}))

	err := ws.Run(ctx)
	if errors.Is(err, tui.ErrUserQuit) {
		a.logger.Info().Str("func", "App.Run").Msg("tab closed")
		return nil
	}
	return err
}
