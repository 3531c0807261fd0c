package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-device-trust/internal/adapter"
	"github.com/MKhiriev/go-device-trust/internal/crypto"
	"github.com/MKhiriev/go-device-trust/internal/device"
	"github.com/MKhiriev/go-device-trust/internal/logger"
	"github.com/MKhiriev/go-device-trust/internal/mock"
	"github.com/MKhiriev/go-device-trust/internal/store"
	"github.com/MKhiriev/go-device-trust/internal/validators"
	"github.com/MKhiriev/go-device-trust/models"
)

type testEnv struct {
	svc           *clientAuthService
	adapter       *mock.MockServerAdapter
	authenticator *mock.MockAuthenticator
	identity      *device.Identity
	storage       *store.Storages
}

// newTestAuthSvc builds the service over a mocked adapter and authenticator
// and a real in-memory device identity. Background tasks run inline.
func newTestAuthSvc(t *testing.T, ctrl *gomock.Controller, passkeys bool) testEnv {
	t.Helper()

	storage := store.NewStorages(store.NewMemoryKV(), store.NewMemoryKV(), "tab-1", nil, logger.Nop())
	identity := device.NewIdentity(storage, crypto.NewSigner("secret"), device.Environment{
		UserAgent:      "Mozilla/5.0 (X11; Linux x86_64) Firefox/120.0",
		ViewportWidth:  1280,
		ViewportHeight: 800,
		Timezone:       "UTC",
		Language:       "en-US",
	}, time.Hour, logger.Nop())

	mockAdapter := mock.NewMockServerAdapter(ctrl)
	mockAuth := mock.NewMockAuthenticator(ctrl)

	svc := NewClientAuthService(mockAdapter, identity, storage, validators.NewAuthRequestValidator(), mockAuth, passkeys, logger.Nop()).(*clientAuthService)
	svc.spawn = func(ctx context.Context, _ string, fn func(ctx context.Context) error) <-chan struct{} {
		done := make(chan struct{})
		_ = fn(ctx)
		close(done)
		return done
	}

	return testEnv{svc: svc, adapter: mockAdapter, authenticator: mockAuth, identity: identity, storage: storage}
}

func sessionValue(t *testing.T, s store.StorageAdapter, scope models.Scope, key string) (string, bool) {
	t.Helper()
	v, err := s.Get(context.Background(), scope, key)
	if err != nil {
		return "", false
	}
	return v, true
}

func boolPtr(v bool) *bool { return &v }

// ── CheckDevice ─────────────────────────────────────────────────────────────

func TestClientAuthService_CheckDevice_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	env := newTestAuthSvc(t, ctrl, false)
	ctx := context.Background()

	key := env.identity.StoredDeviceKey(ctx)
	env.adapter.EXPECT().
		CheckDevice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req models.CheckDeviceRequest) (models.AuthResponse, error) {
			assert.Equal(t, key, req.DeviceKey)
			assert.Equal(t, "Firefox", req.Fingerprint.Browser)
			assert.Equal(t, "1280x800", req.Fingerprint.Viewport)
			return models.AuthResponse{Status: models.StatusShowOptions}, nil
		})

	resp, err := env.svc.CheckDevice(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.StatusShowOptions, resp.Status)

	last, ok := sessionValue(t, env.storage, models.ScopeSession, models.KeyLastDeviceCheck)
	require.True(t, ok)
	_, err = time.Parse(time.RFC3339, last)
	assert.NoError(t, err)
}

func TestClientAuthService_CheckDevice_NetworkError(t *testing.T) {
	ctrl := gomock.NewController(t)
	env := newTestAuthSvc(t, ctrl, false)

	env.adapter.EXPECT().
		CheckDevice(gomock.Any(), gomock.Any()).
		Return(models.AuthResponse{}, errors.New("dial tcp: connection refused"))

	_, err := env.svc.CheckDevice(context.Background())
	assert.ErrorIs(t, err, ErrNetwork)

	_, ok := sessionValue(t, env.storage, models.ScopeSession, models.KeyLastDeviceCheck)
	assert.False(t, ok)
}

// ── LookupIdentifier ────────────────────────────────────────────────────────

func TestClientAuthService_LookupIdentifier_Handle(t *testing.T) {
	ctrl := gomock.NewController(t)
	env := newTestAuthSvc(t, ctrl, false)

	env.adapter.EXPECT().
		CheckHandle(gomock.Any(), "alice").
		Return(models.AuthResponse{Exists: true, GUID: "g-1", IsYourDevice: true, DeviceConfidence: models.ConfidenceHigh}, nil)

	resp, err := env.svc.LookupIdentifier(context.Background(), validators.KindHandle, "@alice")
	require.NoError(t, err)
	assert.True(t, resp.Exists)

	handle, _ := sessionValue(t, env.storage, models.ScopeSession, models.KeyCurrentHandle)
	guid, _ := sessionValue(t, env.storage, models.ScopeSession, models.KeyCurrentGUID)
	assert.Equal(t, "alice", handle)
	assert.Equal(t, "g-1", guid)
}

func TestClientAuthService_LookupIdentifier_PhoneNormalized(t *testing.T) {
	ctrl := gomock.NewController(t)
	env := newTestAuthSvc(t, ctrl, false)

	env.adapter.EXPECT().
		CheckPhone(gomock.Any(), "+15550100200").
		Return(models.AuthResponse{Exists: false}, nil)

	resp, err := env.svc.LookupIdentifier(context.Background(), validators.KindPhone, "1 (555) 010-0200")
	require.NoError(t, err)
	assert.False(t, resp.Exists)

	phone, _ := sessionValue(t, env.storage, models.ScopeSession, models.KeyCurrentPhone)
	assert.Equal(t, "+15550100200", phone)
}

func TestClientAuthService_LookupIdentifier_MediumConfidenceAsksForPIN(t *testing.T) {
	tests := []struct {
		name    string
		pinResp models.AuthResponse
		pinErr  error
		want    bool
	}{
		{name: "enrolled", pinResp: models.AuthResponse{PINAvailable: boolPtr(true)}, want: true},
		{name: "not enrolled", pinResp: models.AuthResponse{PINAvailable: boolPtr(false)}, want: false},
		{name: "field missing", pinResp: models.AuthResponse{}, want: false},
		{name: "lookup failed", pinErr: adapter.ErrInternalServerError, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			env := newTestAuthSvc(t, ctrl, false)

			gomock.InOrder(
				env.adapter.EXPECT().
					CheckHandle(gomock.Any(), "alice").
					Return(models.AuthResponse{Exists: true, IsYourDevice: true, DeviceConfidence: models.ConfidenceMedium}, nil),
				env.adapter.EXPECT().
					CheckPINAvailability(gomock.Any(), "alice").
					Return(tt.pinResp, tt.pinErr),
			)

			resp, err := env.svc.LookupIdentifier(context.Background(), validators.KindHandle, "alice")
			require.NoError(t, err)
			require.NotNil(t, resp.PINAvailable)
			assert.Equal(t, tt.want, resp.PINEnrolled())
		})
	}
}

func TestClientAuthService_LookupIdentifier_KnownPINSkipsFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	env := newTestAuthSvc(t, ctrl, false)

	env.adapter.EXPECT().
		CheckHandle(gomock.Any(), "alice").
		Return(models.AuthResponse{Exists: true, IsYourDevice: true, DeviceConfidence: models.ConfidenceMedium, PINAvailable: boolPtr(true)}, nil)

	resp, err := env.svc.LookupIdentifier(context.Background(), validators.KindHandle, "alice")
	require.NoError(t, err)
	assert.True(t, resp.PINEnrolled())
}

func TestClientAuthService_LookupIdentifier_InvalidInputNeverSent(t *testing.T) {
	ctrl := gomock.NewController(t)
	env := newTestAuthSvc(t, ctrl, false)

	_, err := env.svc.LookupIdentifier(context.Background(), validators.KindHandle, "a!")
	assert.ErrorIs(t, err, validators.ErrInvalidHandle)

	_, err = env.svc.LookupIdentifier(context.Background(), validators.KindPhone, "12")
	assert.ErrorIs(t, err, validators.ErrInvalidPhone)

	_, err = env.svc.LookupIdentifier(context.Background(), validators.KindUnknown, "x")
	assert.ErrorIs(t, err, validators.ErrEmptyIdentifier)
}

// ── SendCode / VerifyCode / VerifyPIN ───────────────────────────────────────

func TestClientAuthService_SendCode_SetsSessionFlags(t *testing.T) {
	ctrl := gomock.NewController(t)
	env := newTestAuthSvc(t, ctrl, false)

	req := models.VerifyLoginRequest{Handle: "alice", Phone: "+15550100200", HandleFirst: true, DeviceFlow: true}
	env.adapter.EXPECT().
		VerifyLogin(gomock.Any(), req).
		Return(models.AuthResponse{Status: models.StatusCodeSent, MaskedPhone: "***0200"}, nil)

	resp, err := env.svc.SendCode(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "***0200", resp.MaskedPhone)

	inProgress, _ := sessionValue(t, env.storage, models.ScopeSession, models.KeyVerificationInProgress)
	handleFirst, _ := sessionValue(t, env.storage, models.ScopeSession, models.KeyHandleFirst)
	deviceFlow, _ := sessionValue(t, env.storage, models.ScopeSession, models.KeyDeviceRegistrationFlow)
	assert.Equal(t, "true", inProgress)
	assert.Equal(t, "true", handleFirst)
	assert.Equal(t, "true", deviceFlow)
}

func TestClientAuthService_SendCode_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	env := newTestAuthSvc(t, ctrl, false)

	_, err := env.svc.SendCode(context.Background(), models.VerifyLoginRequest{})
	assert.ErrorIs(t, err, validators.ErrEmptyIdentifier)
}

func TestClientAuthService_SendCode_HandleTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	env := newTestAuthSvc(t, ctrl, false)

	env.adapter.EXPECT().
		VerifyLogin(gomock.Any(), gomock.Any()).
		Return(models.AuthResponse{Status: models.StatusError, Error: "handle_exists", Suggestions: []string{"alice1"}}, adapter.ErrConflict)

	resp, err := env.svc.SendCode(context.Background(), models.VerifyLoginRequest{Handle: "alice", Phone: "+15550100200", Registration: true})
	assert.ErrorIs(t, err, ErrHandleExists)
	assert.Equal(t, []string{"alice1"}, resp.Suggestions)
}

func TestClientAuthService_VerifyCode_FillsDeviceKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	env := newTestAuthSvc(t, ctrl, false)
	ctx := context.Background()

	require.NoError(t, env.storage.Set(ctx, models.ScopeSession, models.KeyVerificationInProgress, "true"))
	key := env.identity.StoredDeviceKey(ctx)

	env.adapter.EXPECT().
		VerifyCode(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req models.VerifyCodeRequest) (models.AuthResponse, error) {
			assert.Equal(t, key, req.DeviceKey)
			assert.Equal(t, "123456", req.Code)
			return models.AuthResponse{Status: models.StatusAuthenticated, GUID: "g-1", Handle: "alice"}, nil
		})

	resp, err := env.svc.VerifyCode(ctx, models.VerifyCodeRequest{Handle: "alice", Code: "123456"})
	require.NoError(t, err)
	assert.True(t, resp.Authenticated())

	_, ok := sessionValue(t, env.storage, models.ScopeSession, models.KeyVerificationInProgress)
	assert.False(t, ok)
}

func TestClientAuthService_VerifyCode_WrongCodeInSuccessBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	env := newTestAuthSvc(t, ctrl, false)

	env.adapter.EXPECT().
		VerifyCode(gomock.Any(), gomock.Any()).
		Return(models.AuthResponse{Status: models.StatusError, Error: "invalid_code"}, nil)

	_, err := env.svc.VerifyCode(context.Background(), models.VerifyCodeRequest{Handle: "alice", Code: "000000"})
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestClientAuthService_VerifyPIN(t *testing.T) {
	t.Run("malformed PIN is never sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		env := newTestAuthSvc(t, ctrl, false)

		_, err := env.svc.VerifyPIN(context.Background(), "alice", "12a4")
		assert.ErrorIs(t, err, validators.ErrInvalidPIN)
	})

	t.Run("wrong PIN", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		env := newTestAuthSvc(t, ctrl, false)

		env.adapter.EXPECT().
			VerifyPIN(gomock.Any(), gomock.Any()).
			Return(models.AuthResponse{Status: models.StatusError, Error: "invalid_pin"}, adapter.ErrUnauthorized)

		_, err := env.svc.VerifyPIN(context.Background(), "alice", "1234")
		assert.ErrorIs(t, err, ErrInvalidPIN)
		assert.ErrorIs(t, err, adapter.ErrUnauthorized)
	})

	t.Run("timeout", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		env := newTestAuthSvc(t, ctrl, false)

		env.adapter.EXPECT().
			VerifyPIN(gomock.Any(), gomock.Any()).
			Return(models.AuthResponse{}, context.DeadlineExceeded)

		_, err := env.svc.VerifyPIN(context.Background(), "alice", "1234")
		assert.ErrorIs(t, err, ErrTimeout)
	})
}

// ── CompleteAuthentication ──────────────────────────────────────────────────

func TestClientAuthService_CompleteAuthentication_SMSRegistersPasskey(t *testing.T) {
	ctrl := gomock.NewController(t)
	env := newTestAuthSvc(t, ctrl, true)
	ctx := context.Background()

	require.NoError(t, env.storage.Set(ctx, models.ScopeLocal, models.KeyLogoutState, "true"))
	require.NoError(t, env.storage.Set(ctx, models.ScopeSession, models.KeyHandleFirst, "true"))

	opts := models.PasskeyOptions{SessionID: "s-1", Options: json.RawMessage(`{}`)}
	credential := json.RawMessage(`{"id":"c"}`)
	gomock.InOrder(
		env.authenticator.EXPECT().Has("alice").Return(false),
		env.adapter.EXPECT().
			PasskeyRegisterOptions(gomock.Any(), models.PasskeyOptionsRequest{Handle: "alice", GUID: "g-1"}).
			Return(opts, nil),
		env.authenticator.EXPECT().Register(gomock.Any(), "alice", opts).Return(credential, nil),
		env.adapter.EXPECT().
			PasskeyRegisterVerify(gomock.Any(), models.PasskeyVerifyRequest{SessionID: "s-1", Credential: credential}).
			Return(models.AuthResponse{Status: models.StatusAuthenticated}, nil),
	)

	err := env.svc.CompleteAuthentication(ctx, models.AuthResponse{Status: models.StatusAuthenticated, GUID: "g-1", Handle: "alice"}, models.MethodSMS)
	require.NoError(t, err)

	authUser, _ := sessionValue(t, env.storage, models.ScopeLocal, models.KeyAuthenticatedUser)
	previous, _ := sessionValue(t, env.storage, models.ScopeLocal, models.KeyPreviousHandle)
	assert.Equal(t, "true", authUser)
	assert.Equal(t, "alice", previous)
	assert.Equal(t, "alice", env.svc.PreviousHandle(ctx))

	_, ok := sessionValue(t, env.storage, models.ScopeLocal, models.KeyLogoutState)
	assert.False(t, ok)
	_, ok = sessionValue(t, env.storage, models.ScopeSession, models.KeyHandleFirst)
	assert.False(t, ok)
}

func TestClientAuthService_CompleteAuthentication_RejectedPasskeyForgotten(t *testing.T) {
	ctrl := gomock.NewController(t)
	env := newTestAuthSvc(t, ctrl, true)

	opts := models.PasskeyOptions{SessionID: "s-1"}
	env.authenticator.EXPECT().Has("alice").Return(false)
	env.adapter.EXPECT().PasskeyRegisterOptions(gomock.Any(), gomock.Any()).Return(opts, nil)
	env.authenticator.EXPECT().Register(gomock.Any(), "alice", opts).Return(json.RawMessage(`{}`), nil)
	env.adapter.EXPECT().PasskeyRegisterVerify(gomock.Any(), gomock.Any()).Return(models.AuthResponse{}, adapter.ErrBadRequest)
	env.authenticator.EXPECT().Forget("alice")

	err := env.svc.CompleteAuthentication(context.Background(), models.AuthResponse{GUID: "g-1", Handle: "alice"}, models.MethodSMS)
	require.NoError(t, err)
}

func TestClientAuthService_CompleteAuthentication_NoPasskeyOutsideSMS(t *testing.T) {
	for _, method := range []models.AuthMethod{models.MethodPIN, models.MethodFast, models.MethodPasskey, models.MethodSession} {
		t.Run(string(method), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			env := newTestAuthSvc(t, ctrl, true)

			err := env.svc.CompleteAuthentication(context.Background(), models.AuthResponse{GUID: "g-1", Handle: "alice"}, method)
			require.NoError(t, err)

			authUser, _ := sessionValue(t, env.storage, models.ScopeLocal, models.KeyAuthenticatedUser)
			assert.Equal(t, "true", authUser)
		})
	}
}

func TestClientAuthService_CompleteAuthentication_HandleFromHeaderData(t *testing.T) {
	ctrl := gomock.NewController(t)
	env := newTestAuthSvc(t, ctrl, false)
	ctx := context.Background()

	resp := models.AuthResponse{DeviceHeaderData: &models.DeviceHeaderData{DeviceID: "d", UserGUID: "g-2", UserHandle: "bob"}}
	require.NoError(t, env.svc.CompleteAuthentication(ctx, resp, models.MethodSMS))

	guid, _ := sessionValue(t, env.storage, models.ScopeSession, models.KeyCurrentGUID)
	assert.Equal(t, "g-2", guid)
	assert.Equal(t, "bob", env.svc.PreviousHandle(ctx))
}

// ── PasskeyLogin ────────────────────────────────────────────────────────────

func TestClientAuthService_PasskeyLogin(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		env := newTestAuthSvc(t, ctrl, false)

		_, err := env.svc.PasskeyLogin(context.Background(), "alice")
		assert.ErrorIs(t, err, ErrPasskeysDisabled)
	})

	t.Run("no credential on this device", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		env := newTestAuthSvc(t, ctrl, true)

		env.authenticator.EXPECT().Has("alice").Return(false)

		_, err := env.svc.PasskeyLogin(context.Background(), "@alice")
		assert.ErrorIs(t, err, ErrPasskeyUnavailable)
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		env := newTestAuthSvc(t, ctrl, true)

		opts := models.PasskeyOptions{SessionID: "s-2"}
		assertion := json.RawMessage(`{"id":"c"}`)
		gomock.InOrder(
			env.authenticator.EXPECT().Has("alice").Return(true),
			env.adapter.EXPECT().PasskeyLoginOptions(gomock.Any(), models.PasskeyOptionsRequest{Handle: "alice"}).Return(opts, nil),
			env.authenticator.EXPECT().Assert(gomock.Any(), "alice", opts).Return(assertion, nil),
			env.adapter.EXPECT().
				PasskeyLoginVerify(gomock.Any(), models.PasskeyVerifyRequest{SessionID: "s-2", Credential: assertion}).
				Return(models.AuthResponse{Status: models.StatusAuthenticated, Handle: "alice"}, nil),
		)

		resp, err := env.svc.PasskeyLogin(context.Background(), "alice")
		require.NoError(t, err)
		assert.True(t, resp.Authenticated())
	})
}

// ── Logout ──────────────────────────────────────────────────────────────────

func TestClientAuthService_Logout_ClearsEvenWhenBackendFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	env := newTestAuthSvc(t, ctrl, false)
	ctx := context.Background()

	key := env.identity.StoredDeviceKey(ctx)
	_, err := env.identity.GenerateDeviceHeader(ctx, key, "g-1", "alice")
	require.NoError(t, err)
	require.NoError(t, env.storage.Set(ctx, models.ScopeLocal, models.KeyAuthenticatedUser, "true"))
	require.NoError(t, env.storage.Set(ctx, models.ScopeSession, models.KeyAuthToken, "tok"))

	env.adapter.EXPECT().
		Logout(gomock.Any(), models.LogoutRequest{GUID: "g-1", DeviceKey: key}).
		Return(models.AuthResponse{}, adapter.ErrServiceUnavailable)

	require.NoError(t, env.svc.Logout(ctx))

	_, ok := sessionValue(t, env.storage, models.ScopeLocal, models.KeyDeviceHeader)
	assert.False(t, ok)
	_, ok = sessionValue(t, env.storage, models.ScopeLocal, models.KeyAuthenticatedUser)
	assert.False(t, ok)
	_, ok = sessionValue(t, env.storage, models.ScopeSession, models.KeyAuthToken)
	assert.False(t, ok)

	state, _ := sessionValue(t, env.storage, models.ScopeLocal, models.KeyLogoutState)
	assert.Equal(t, "true", state)
	assert.Equal(t, key, env.identity.StoredDeviceKey(ctx))
}

func TestClientAuthService_BoundHandle(t *testing.T) {
	ctrl := gomock.NewController(t)
	env := newTestAuthSvc(t, ctrl, false)
	ctx := context.Background()

	assert.Empty(t, env.svc.BoundHandle(ctx))

	_, err := env.identity.GenerateDeviceHeader(ctx, env.identity.StoredDeviceKey(ctx), "g-1", "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", env.svc.BoundHandle(ctx))
}
