package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-device-trust/internal/logger"
	"github.com/MKhiriev/go-device-trust/internal/mock"
	"github.com/MKhiriev/go-device-trust/internal/service"
	"github.com/MKhiriev/go-device-trust/models"
)

type testBackend struct {
	router   http.Handler
	auth     *mock.MockAuthService
	passkeys *mock.MockPasskeyService
}

func newTestBackend(t *testing.T, csrfToken string, passkeys bool) testBackend {
	t.Helper()
	ctrl := gomock.NewController(t)

	b := testBackend{
		auth:     mock.NewMockAuthService(ctrl),
		passkeys: mock.NewMockPasskeyService(ctrl),
	}

	services := &service.Services{AuthService: b.auth}
	if passkeys {
		services.PasskeyService = b.passkeys
	}
	b.router = NewHandler(services, csrfToken, logger.Nop()).Init()
	return b
}

func (b testBackend) do(method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	b.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) models.AuthResponse {
	t.Helper()
	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}
