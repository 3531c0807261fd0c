package http

import (
	"github.com/MKhiriev/go-device-trust/internal/logger"
	"github.com/MKhiriev/go-device-trust/internal/service"
)

type Handler struct {
	services  *service.Services
	csrfToken string

	logger *logger.Logger
}

// NewHandler returns the backend handler. An empty csrfToken turns the CSRF
// check off.
func NewHandler(services *service.Services, csrfToken string, logger *logger.Logger) *Handler {
	logger.Info().Bool("csrf", csrfToken != "").Bool("passkeys", services.PasskeyService != nil).Msg("http handler created")
	return &Handler{
		services:  services,
		csrfToken: csrfToken,
		logger:    logger,
	}
}
