package server

import (
	"time"

	"github.com/MKhiriev/go-device-trust/internal/config"
	"github.com/MKhiriev/go-device-trust/internal/handler"
	"github.com/MKhiriev/go-device-trust/internal/logger"
)

const defaultShutdownTimeout = 10 * time.Second

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	return newHTTPServer(handlers.HTTP.Init(), cfg.HTTPAddress, timeout, logger), nil
}
