package service

import (
	"github.com/MKhiriev/go-device-trust/internal/adapter"
	"github.com/MKhiriev/go-device-trust/internal/config"
	"github.com/MKhiriev/go-device-trust/internal/logger"
	"github.com/MKhiriev/go-device-trust/internal/passkey"
	"github.com/MKhiriev/go-device-trust/internal/store"
	"github.com/MKhiriev/go-device-trust/internal/validators"
)

type ClientServices struct {
	AuthService ClientAuthService
}

// NewClientServices wires the services of one tab. authenticator may be nil
// when passkeys are disabled.
func NewClientServices(
	serverAdapter adapter.ServerAdapter,
	identity DeviceManager,
	storage store.StorageAdapter,
	authenticator passkey.Authenticator,
	cfg config.WebAuthn,
	log *logger.Logger,
) *ClientServices {
	return &ClientServices{
		AuthService: NewClientAuthService(serverAdapter, identity, storage, validators.NewAuthRequestValidator(), authenticator, cfg.Enabled, log),
	}
}
