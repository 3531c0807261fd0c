package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-device-trust/internal/config"
	"github.com/MKhiriev/go-device-trust/internal/logger"
	"github.com/MKhiriev/go-device-trust/internal/mock"
	"github.com/MKhiriev/go-device-trust/internal/store"
	"github.com/MKhiriev/go-device-trust/models"
)

const (
	alicePhone = "+15550100001"
	bobPhone   = "+15550100002"
	fixedCode  = "123456"
)

var backendCfg = config.Server{
	TokenSignKey:  "secret",
	TokenIssuer:   "test",
	TokenDuration: time.Hour,
	CodeTTL:       time.Minute,
	CodeAttempts:  3,
	VerifiedTrust: "high",
}

type backendEnv struct {
	auth   *authService
	repos  *store.Repositories
	outbox *Outbox
}

// newBackend runs the auth service over a throwaway SQLite directory. Every
// code it sends is fixedCode.
func newBackend(t *testing.T) backendEnv {
	t.Helper()
	repos, err := store.NewRepositories(context.Background(), config.Server{DSN: filepath.Join(t.TempDir(), "backend.db")}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	outbox := NewOutbox()
	auth := newAuthService(repos, outbox, backendCfg, logger.Nop())
	auth.newCode = func() (string, error) { return fixedCode, nil }

	return backendEnv{auth: auth, repos: repos, outbox: outbox}
}

func (e backendEnv) seed(t *testing.T, handle, phone, pin string, devices map[string]models.DeviceConfidence) models.User {
	t.Helper()
	user, err := e.auth.Seed(context.Background(), models.SeedUser{Handle: handle, Phone: phone, PIN: pin, Devices: devices})
	require.NoError(t, err)
	return user
}

// ── CheckDevice ─────────────────────────────────────────────────────────────

func TestAuthService_CheckDeviceIssuesKey(t *testing.T) {
	ctx := context.Background()
	env := newBackend(t)

	resp, err := env.auth.CheckDevice(ctx, "", "Firefox")
	require.NoError(t, err)
	assert.Equal(t, models.StatusShowOptions, resp.Status)
	assert.Len(t, resp.DeviceKey, 64)

	d, err := env.repos.DeviceRepository.FindDevice(ctx, resp.DeviceKey)
	require.NoError(t, err)
	assert.Equal(t, "Firefox", d.UserAgent)
	assert.Empty(t, d.UserGUID)
}

func TestAuthService_CheckDeviceUnknownKeyIsRecorded(t *testing.T) {
	ctx := context.Background()
	env := newBackend(t)

	resp, err := env.auth.CheckDevice(ctx, "dev-new", "Chrome")
	require.NoError(t, err)
	assert.Equal(t, models.StatusShowOptions, resp.Status)
	assert.False(t, resp.IsYourDevice)
	assert.Empty(t, resp.DeviceKey)

	_, err = env.repos.DeviceRepository.FindDevice(ctx, "dev-new")
	assert.NoError(t, err)
}

func TestAuthService_CheckDeviceBoundWithoutSession(t *testing.T) {
	env := newBackend(t)
	env.seed(t, "alice", alicePhone, "", map[string]models.DeviceConfidence{"dev-1": models.ConfidenceHigh})

	resp, err := env.auth.CheckDevice(context.Background(), "dev-1", "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusShowOptions, resp.Status)
	assert.Equal(t, "alice", resp.Handle)
	assert.True(t, resp.IsYourDevice)
	assert.Equal(t, models.ConfidenceHigh, resp.DeviceConfidence)
}

func TestAuthService_CheckDeviceLiveSession(t *testing.T) {
	ctx := context.Background()
	env := newBackend(t)
	env.seed(t, "alice", alicePhone, "1234", map[string]models.DeviceConfidence{
		"dev-high": models.ConfidenceHigh,
		"dev-low":  models.ConfidenceLow,
	})

	_, err := env.auth.FastAuthenticate(ctx, "dev-high", models.FastAuthenticateRequest{Identifier: "alice"})
	require.NoError(t, err)
	_, err = env.auth.VerifyPIN(ctx, "dev-low", models.VerifyPINRequest{Identifier: "alice", PIN: "1234"})
	require.NoError(t, err)

	high, err := env.auth.CheckDevice(ctx, "dev-high", "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusAuthenticated, high.Status)
	require.NotNil(t, high.DeviceHeaderData)
	assert.Equal(t, "alice", high.DeviceHeaderData.UserHandle)

	low, err := env.auth.CheckDevice(ctx, "dev-low", "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusNeedsVerification, low.Status)
	assert.Equal(t, MaskPhone(alicePhone), low.MaskedPhone)
}

// ── lookups ─────────────────────────────────────────────────────────────────

func TestAuthService_CheckHandle(t *testing.T) {
	ctx := context.Background()
	env := newBackend(t)
	alice := env.seed(t, "alice", alicePhone, "", map[string]models.DeviceConfidence{"dev-1": models.ConfidenceMedium})
	env.seed(t, "alice1", bobPhone, "", nil)

	resp, err := env.auth.CheckHandle(ctx, "dev-1", "@Alice")
	require.NoError(t, err)
	assert.True(t, resp.Exists)
	assert.Equal(t, alice.GUID, resp.GUID)
	assert.True(t, resp.IsYourDevice)
	assert.Equal(t, models.ConfidenceMedium, resp.DeviceConfidence)
	assert.Nil(t, resp.PINAvailable)
	assert.Equal(t, []string{"Alice2", "Alice3", "Alice_1"}, resp.Suggestions)

	other, err := env.auth.CheckHandle(ctx, "dev-2", "alice")
	require.NoError(t, err)
	assert.True(t, other.Exists)
	assert.False(t, other.IsYourDevice)

	missing, err := env.auth.CheckHandle(ctx, "dev-1", "carol")
	require.NoError(t, err)
	assert.False(t, missing.Exists)

	_, err = env.auth.CheckHandle(ctx, "dev-1", "a!")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_CheckPhone(t *testing.T) {
	ctx := context.Background()
	env := newBackend(t)
	env.seed(t, "alice", alicePhone, "", nil)

	resp, err := env.auth.CheckPhone(ctx, "dev-1", "+1 (555) 010-0001")
	require.NoError(t, err)
	assert.True(t, resp.Exists)
	assert.Equal(t, "alice", resp.Handle)

	missing, err := env.auth.CheckPhone(ctx, "dev-1", bobPhone)
	require.NoError(t, err)
	assert.False(t, missing.Exists)
}

func TestAuthService_CheckPINAvailability(t *testing.T) {
	ctx := context.Background()
	env := newBackend(t)
	env.seed(t, "alice", alicePhone, "1234", nil)
	env.seed(t, "bob", bobPhone, "", nil)

	resp, err := env.auth.CheckPINAvailability(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, resp.PINEnrolled())

	resp, err = env.auth.CheckPINAvailability(ctx, bobPhone)
	require.NoError(t, err)
	require.NotNil(t, resp.PINAvailable)
	assert.False(t, *resp.PINAvailable)

	_, err = env.auth.CheckPINAvailability(ctx, "carol")
	assert.ErrorIs(t, err, ErrUnknownIdentifier)
}

// ── registration ────────────────────────────────────────────────────────────

func TestAuthService_HandleFirstRegistration(t *testing.T) {
	ctx := context.Background()
	env := newBackend(t)

	sent, err := env.auth.VerifyLogin(ctx, "dev-1", models.VerifyLoginRequest{
		Handle: "alice", Phone: alicePhone, HandleFirst: true, Registration: true,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCodeSent, sent.Status)
	assert.Equal(t, MaskPhone(alicePhone), sent.MaskedPhone)

	code, ok := env.outbox.Last(alicePhone)
	require.True(t, ok)

	resp, err := env.auth.VerifyCode(ctx, "dev-1", models.VerifyCodeRequest{Code: code, HandleFirst: true})
	require.NoError(t, err)
	assert.Equal(t, models.StatusAuthenticated, resp.Status)
	assert.Equal(t, "alice", resp.Handle)
	assert.NotEmpty(t, resp.GUID)
	assert.Equal(t, "dev-1", resp.DeviceKey)
	assert.Equal(t, models.ConfidenceHigh, resp.DeviceConfidence)

	user, err := env.repos.UserRepository.FindUserByPhone(ctx, alicePhone)
	require.NoError(t, err)
	assert.Equal(t, resp.GUID, user.GUID)

	again, err := env.auth.CheckDevice(ctx, "dev-1", "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusAuthenticated, again.Status)
}

func TestAuthService_PhoneFirstRegistration(t *testing.T) {
	ctx := context.Background()
	env := newBackend(t)

	_, err := env.auth.VerifyLogin(ctx, "dev-1", models.VerifyLoginRequest{Phone: alicePhone, Registration: true})
	require.NoError(t, err)

	pending, err := env.auth.VerifyCode(ctx, "dev-1", models.VerifyCodeRequest{Code: fixedCode})
	require.NoError(t, err)
	assert.Equal(t, models.StatusNeedsHandle, pending.Status)
	require.NotEmpty(t, pending.GUID)

	// only the verifying device may finish
	_, err = env.auth.CreateHandle(ctx, "dev-2", models.CreateHandleRequest{Handle: "alice", GUID: pending.GUID})
	assert.ErrorIs(t, err, ErrNoPendingRegistration)

	resp, err := env.auth.CreateHandle(ctx, "dev-1", models.CreateHandleRequest{Handle: "alice", GUID: pending.GUID})
	require.NoError(t, err)
	assert.Equal(t, models.StatusAuthenticated, resp.Status)
	assert.Equal(t, pending.GUID, resp.GUID)

	_, err = env.auth.CreateHandle(ctx, "dev-1", models.CreateHandleRequest{Handle: "alice2", GUID: pending.GUID})
	assert.ErrorIs(t, err, ErrNoPendingRegistration)
}

func TestAuthService_CreateHandleTakenKeepsRegistration(t *testing.T) {
	ctx := context.Background()
	env := newBackend(t)
	env.seed(t, "bob", bobPhone, "", nil)

	_, err := env.auth.VerifyLogin(ctx, "dev-1", models.VerifyLoginRequest{Phone: alicePhone, Registration: true})
	require.NoError(t, err)
	pending, err := env.auth.VerifyCode(ctx, "dev-1", models.VerifyCodeRequest{Code: fixedCode})
	require.NoError(t, err)

	resp, err := env.auth.CreateHandle(ctx, "dev-1", models.CreateHandleRequest{Handle: "BOB", GUID: pending.GUID})
	assert.ErrorIs(t, err, ErrHandleTaken)
	assert.NotEmpty(t, resp.Suggestions)

	resp, err = env.auth.CreateHandle(ctx, "dev-1", models.CreateHandleRequest{Handle: resp.Suggestions[0], GUID: pending.GUID})
	require.NoError(t, err)
	assert.Equal(t, models.StatusAuthenticated, resp.Status)
}

func TestAuthService_RegistrationConflicts(t *testing.T) {
	ctx := context.Background()
	env := newBackend(t)
	env.seed(t, "alice", alicePhone, "", nil)

	resp, err := env.auth.VerifyLogin(ctx, "dev-1", models.VerifyLoginRequest{
		Handle: "alice", Phone: bobPhone, HandleFirst: true, Registration: true,
	})
	assert.ErrorIs(t, err, ErrHandleTaken)
	assert.Contains(t, resp.Suggestions, "alice1")

	resp, err = env.auth.VerifyLogin(ctx, "dev-1", models.VerifyLoginRequest{
		Handle: "bob", Phone: alicePhone, HandleFirst: true, Registration: true,
	})
	assert.ErrorIs(t, err, ErrPhoneTaken)
	assert.Equal(t, "alice", resp.Handle)
	assert.Equal(t, MaskPhone(alicePhone), resp.MaskedPhone)
	assert.NotEmpty(t, resp.GUID)

	_, err = env.auth.VerifyLogin(ctx, "dev-1", models.VerifyLoginRequest{Handle: "bob", Registration: true})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	assert.Zero(t, env.outbox.Sent())
}

// ── sign-in ─────────────────────────────────────────────────────────────────

func TestAuthService_SMSLogin(t *testing.T) {
	ctx := context.Background()
	env := newBackend(t)
	alice := env.seed(t, "alice", alicePhone, "", nil)

	sent, err := env.auth.VerifyLogin(ctx, "dev-1", models.VerifyLoginRequest{Handle: "alice"})
	require.NoError(t, err)
	assert.Equal(t, "alice", sent.Handle)

	resp, err := env.auth.VerifyCode(ctx, "dev-1", models.VerifyCodeRequest{Code: fixedCode})
	require.NoError(t, err)
	assert.Equal(t, models.StatusAuthenticated, resp.Status)
	assert.Equal(t, alice.GUID, resp.GUID)

	d, err := env.repos.DeviceRepository.FindDevice(ctx, "dev-1")
	require.NoError(t, err)
	assert.True(t, d.Bound(alice.GUID))
	assert.True(t, d.SessionAlive)
	assert.Equal(t, models.ConfidenceHigh, d.Confidence)

	_, err = env.auth.VerifyLogin(ctx, "dev-1", models.VerifyLoginRequest{Phone: bobPhone})
	assert.ErrorIs(t, err, ErrUnknownIdentifier)

	_, err = env.auth.VerifyLogin(ctx, "", models.VerifyLoginRequest{Handle: "alice"})
	assert.ErrorIs(t, err, ErrMissingDeviceKey)
}

func TestAuthService_WrongCodeBurnsChallenge(t *testing.T) {
	ctx := context.Background()
	env := newBackend(t)
	env.seed(t, "alice", alicePhone, "", nil)

	_, err := env.auth.VerifyLogin(ctx, "dev-1", models.VerifyLoginRequest{Handle: "alice"})
	require.NoError(t, err)

	for range backendCfg.CodeAttempts {
		_, err = env.auth.VerifyCode(ctx, "dev-1", models.VerifyCodeRequest{Code: "000000"})
		assert.ErrorIs(t, err, ErrWrongCode)
	}

	_, err = env.auth.VerifyCode(ctx, "dev-1", models.VerifyCodeRequest{Code: fixedCode})
	assert.ErrorIs(t, err, ErrWrongCode)
}

func TestAuthService_CodeIsBoundToDevice(t *testing.T) {
	ctx := context.Background()
	env := newBackend(t)
	env.seed(t, "alice", alicePhone, "", nil)

	_, err := env.auth.VerifyLogin(ctx, "dev-1", models.VerifyLoginRequest{Handle: "alice"})
	require.NoError(t, err)

	_, err = env.auth.VerifyCode(ctx, "dev-2", models.VerifyCodeRequest{Code: fixedCode})
	assert.ErrorIs(t, err, ErrWrongCode)

	_, err = env.auth.VerifyCode(ctx, "dev-1", models.VerifyCodeRequest{Code: fixedCode})
	assert.NoError(t, err)
}

func TestAuthService_ExpiredCode(t *testing.T) {
	ctx := context.Background()
	env := newBackend(t)
	env.seed(t, "alice", alicePhone, "", nil)

	now := time.Now()
	env.auth.challenges = newExpiring[challenge](func() time.Time { return now })

	_, err := env.auth.VerifyLogin(ctx, "dev-1", models.VerifyLoginRequest{Handle: "alice"})
	require.NoError(t, err)

	now = now.Add(backendCfg.CodeTTL)
	_, err = env.auth.VerifyCode(ctx, "dev-1", models.VerifyCodeRequest{Code: fixedCode})
	assert.ErrorIs(t, err, ErrWrongCode)
}

func TestAuthService_CodeDeliveryFailure(t *testing.T) {
	ctx := context.Background()
	env := newBackend(t)
	env.seed(t, "alice", alicePhone, "", nil)

	sender := mock.NewMockCodeSender(gomock.NewController(t))
	sender.EXPECT().SendCode(gomock.Any(), alicePhone, fixedCode).Return(errors.New("gateway down"))
	env.auth.sender = sender

	_, err := env.auth.VerifyLogin(ctx, "dev-1", models.VerifyLoginRequest{Handle: "alice"})
	assert.ErrorIs(t, err, ErrCodeDelivery)

	// nothing to verify against
	_, err = env.auth.VerifyCode(ctx, "dev-1", models.VerifyCodeRequest{Code: fixedCode})
	assert.ErrorIs(t, err, ErrWrongCode)
}

func TestAuthService_FastAuthenticate(t *testing.T) {
	ctx := context.Background()
	env := newBackend(t)
	env.seed(t, "alice", alicePhone, "", map[string]models.DeviceConfidence{
		"dev-high":   models.ConfidenceHigh,
		"dev-medium": models.ConfidenceMedium,
	})

	resp, err := env.auth.FastAuthenticate(ctx, "", models.FastAuthenticateRequest{Identifier: "alice", DeviceKey: "dev-high"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusAuthenticated, resp.Status)

	_, err = env.auth.FastAuthenticate(ctx, "dev-medium", models.FastAuthenticateRequest{Identifier: "alice"})
	assert.ErrorIs(t, err, ErrUntrustedDevice)

	_, err = env.auth.FastAuthenticate(ctx, "dev-other", models.FastAuthenticateRequest{Identifier: alicePhone})
	assert.ErrorIs(t, err, ErrUntrustedDevice)
}

func TestAuthService_VerifyPIN(t *testing.T) {
	ctx := context.Background()
	env := newBackend(t)
	env.seed(t, "alice", alicePhone, "1234", map[string]models.DeviceConfidence{"dev-1": models.ConfidenceMedium})
	env.seed(t, "bob", bobPhone, "", map[string]models.DeviceConfidence{"dev-2": models.ConfidenceMedium})

	_, err := env.auth.VerifyPIN(ctx, "dev-1", models.VerifyPINRequest{Identifier: "alice", PIN: "9999"})
	assert.ErrorIs(t, err, ErrWrongPIN)

	_, err = env.auth.VerifyPIN(ctx, "dev-2", models.VerifyPINRequest{Identifier: "alice", PIN: "1234"})
	assert.ErrorIs(t, err, ErrUntrustedDevice)

	_, err = env.auth.VerifyPIN(ctx, "dev-2", models.VerifyPINRequest{Identifier: "bob", PIN: "1234"})
	assert.ErrorIs(t, err, ErrWrongPIN)

	_, err = env.auth.VerifyPIN(ctx, "dev-1", models.VerifyPINRequest{Identifier: "alice", PIN: "12"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	resp, err := env.auth.VerifyPIN(ctx, "dev-1", models.VerifyPINRequest{Identifier: "alice", PIN: "1234"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusAuthenticated, resp.Status)
	assert.Equal(t, models.ConfidenceMedium, resp.DeviceConfidence)
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	env := newBackend(t)
	alice := env.seed(t, "alice", alicePhone, "", map[string]models.DeviceConfidence{"dev-1": models.ConfidenceHigh})

	_, err := env.auth.FastAuthenticate(ctx, "dev-1", models.FastAuthenticateRequest{Identifier: "alice"})
	require.NoError(t, err)

	// someone else's token does not end the session
	resp, err := env.auth.Logout(ctx, "dev-1", "other-guid")
	require.NoError(t, err)
	assert.Equal(t, models.StatusLoggedOut, resp.Status)
	still, err := env.auth.CheckDevice(ctx, "dev-1", "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusAuthenticated, still.Status)

	_, err = env.auth.Logout(ctx, "dev-1", alice.GUID)
	require.NoError(t, err)

	after, err := env.auth.CheckDevice(ctx, "dev-1", "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusShowOptions, after.Status)
	assert.True(t, after.IsYourDevice)
	assert.Equal(t, "alice", after.Handle)
}

// ── seed and tokens ─────────────────────────────────────────────────────────

func TestAuthService_Seed(t *testing.T) {
	ctx := context.Background()
	env := newBackend(t)

	user := env.seed(t, "@alice", "+1 555 010 0001", "1234", nil)
	assert.Equal(t, "alice", user.Handle)
	assert.Equal(t, alicePhone, user.Phone)
	assert.NotEmpty(t, user.PINHash)
	assert.NotEqual(t, "1234", user.PINHash)

	_, err := env.auth.Seed(ctx, models.SeedUser{Handle: "alice", Phone: bobPhone})
	assert.ErrorIs(t, err, store.ErrHandleAlreadyExists)

	_, err = env.auth.Seed(ctx, models.SeedUser{Handle: "bob"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = env.auth.Seed(ctx, models.SeedUser{Handle: "bob", Phone: bobPhone, PIN: "12a4"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_Tokens(t *testing.T) {
	ctx := context.Background()
	env := newBackend(t)

	token, err := env.auth.CreateToken(ctx, "guid-1")
	require.NoError(t, err)

	guid, err := env.auth.ParseToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "guid-1", guid)

	_, err = env.auth.ParseToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)

	other := newBackend(t)
	other.auth.tokenSignKey = "another-secret"
	_, err = other.auth.ParseToken(ctx, token)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}
