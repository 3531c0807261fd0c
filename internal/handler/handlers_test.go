package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-device-trust/internal/config"
	"github.com/MKhiriev/go-device-trust/internal/logger"
	"github.com/MKhiriev/go-device-trust/internal/mock"
	"github.com/MKhiriev/go-device-trust/internal/service"
)

func newTestServices(t *testing.T) *service.Services {
	return &service.Services{AuthService: mock.NewMockAuthService(gomock.NewController(t))}
}

// TestNewHandlers_HTTP verifies that a configured address yields the HTTP
// handler.
func TestNewHandlers_HTTP(t *testing.T) {
	cfg := config.Server{HTTPAddress: ":8080", CSRFToken: "tok"}

	h, err := NewHandlers(newTestServices(t), cfg, logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, h)
	assert.NotNil(t, h.HTTP, "expected HTTP handler to be initialised")
	assert.NotNil(t, h.HTTP.Init())
}

func TestNewHandlers_Misconfigured(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Server
		services *service.Services
	}{
		{name: "no address", cfg: config.Server{}, services: newTestServices(t)},
		{name: "no services", cfg: config.Server{HTTPAddress: ":8080"}},
		{name: "no auth service", cfg: config.Server{HTTPAddress: ":8080"}, services: &service.Services{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewHandlers(tt.services, tt.cfg, logger.Nop())

			require.ErrorIs(t, err, errNoHandlersAreCreated)
			assert.Nil(t, h)
		})
	}
}

// TestNewHandlers_IndependentInstances verifies that two calls to NewHandlers
// produce independent *Handlers instances.
func TestNewHandlers_IndependentInstances(t *testing.T) {
	cfg := config.Server{HTTPAddress: ":8080"}
	services := newTestServices(t)

	h1, err1 := NewHandlers(services, cfg, logger.Nop())
	h2, err2 := NewHandlers(services, cfg, logger.Nop())

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.NotSame(t, h1, h2)
	assert.NotSame(t, h1.HTTP, h2.HTTP)
}
