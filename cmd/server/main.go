package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-device-trust/internal/config"
	"github.com/MKhiriev/go-device-trust/internal/handler"
	"github.com/MKhiriev/go-device-trust/internal/logger"
	"github.com/MKhiriev/go-device-trust/internal/server"
	"github.com/MKhiriev/go-device-trust/internal/service"
	"github.com/MKhiriev/go-device-trust/internal/store"
	"github.com/MKhiriev/go-device-trust/internal/workers"
	"github.com/MKhiriev/go-device-trust/models"
)

// Set with -ldflags "-X main.buildVersion=...".
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(buildInfo)

	log := logger.NewLogger("device-trust-server")
	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().
		Str("version", buildInfo.BuildVersion()).
		Str("address", cfg.Server.HTTPAddress).
		Str("dsn", cfg.Server.DSN).
		Bool("passkeys", cfg.PasskeysEnabled()).
		Msg("received configs")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	repos, err := store.NewRepositories(ctx, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating repositories")
	}
	defer repos.Close()

	services, err := service.NewServices(repos, service.NewLogCodeSender(log), cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	if cfg.Server.SeedFile != "" {
		if _, err = service.SeedFromFile(ctx, services.AuthService, cfg.Server.SeedFile, log); err != nil {
			log.Fatal().Err(err).Msg("error applying seed file")
		}
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = workers.NewWorkers(log, srv, services.Sweeper).Run(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		return
	}
	log.Info().Msg("server Shutdown gracefully")
}
