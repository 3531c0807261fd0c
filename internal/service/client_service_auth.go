package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MKhiriev/go-device-trust/internal/adapter"
	"github.com/MKhiriev/go-device-trust/internal/logger"
	"github.com/MKhiriev/go-device-trust/internal/passkey"
	"github.com/MKhiriev/go-device-trust/internal/store"
	"github.com/MKhiriev/go-device-trust/internal/validators"
	"github.com/MKhiriev/go-device-trust/internal/workers"
	"github.com/MKhiriev/go-device-trust/models"
)

// transient session keys dropped once a sign-in completes.
var transientKeys = []string{
	models.KeyVerificationInProgress,
	models.KeyDeviceRegistrationFlow,
	models.KeyHandleFirst,
}

type spawnFunc func(ctx context.Context, name string, fn func(ctx context.Context) error) <-chan struct{}

type clientAuthService struct {
	adapter       adapter.ServerAdapter
	identity      DeviceManager
	storage       store.StorageAdapter
	validator     validators.Validator
	authenticator passkey.Authenticator
	passkeys      bool

	spawn  spawnFunc
	now    func() time.Time
	logger *logger.Logger
}

// NewClientAuthService returns the [ClientAuthService] of one tab. Passkey
// enrolment and sign-in are available only when passkeysEnabled is set and
// authenticator is not nil.
func NewClientAuthService(
	serverAdapter adapter.ServerAdapter,
	identity DeviceManager,
	storage store.StorageAdapter,
	validator validators.Validator,
	authenticator passkey.Authenticator,
	passkeysEnabled bool,
	log *logger.Logger,
) ClientAuthService {
	s := &clientAuthService{
		adapter:       serverAdapter,
		identity:      identity,
		storage:       storage,
		validator:     validator,
		authenticator: authenticator,
		passkeys:      passkeysEnabled && authenticator != nil,
		now:           time.Now,
		logger:        log,
	}
	s.spawn = func(ctx context.Context, name string, fn func(ctx context.Context) error) <-chan struct{} {
		return workers.Go(ctx, s.logger, name, fn)
	}
	return s
}

func (s *clientAuthService) CheckDevice(ctx context.Context) (models.AuthResponse, error) {
	req := models.CheckDeviceRequest{
		DeviceKey:   s.identity.StoredDeviceKey(ctx),
		Fingerprint: s.identity.Fingerprint(),
	}

	resp, err := s.adapter.CheckDevice(ctx, req)
	if err = mapAdapterError(err, resp); err != nil {
		s.logger.Err(err).Str("func", "clientAuthService.CheckDevice").Msg("device check failed")
		return resp, err
	}

	s.setSession(ctx, models.KeyLastDeviceCheck, s.now().UTC().Format(time.RFC3339))
	if resp.Handle != "" {
		s.setSession(ctx, models.KeyCurrentHandle, resp.Handle)
	}
	return resp, nil
}

func (s *clientAuthService) LookupIdentifier(ctx context.Context, kind validators.IdentifierKind, value string) (models.AuthResponse, error) {
	var (
		resp models.AuthResponse
		err  error
	)

	switch kind {
	case validators.KindHandle:
		if value, err = validators.NormalizeHandle(value); err != nil {
			return models.AuthResponse{}, err
		}
		resp, err = s.adapter.CheckHandle(ctx, value)
	case validators.KindPhone:
		if value, err = validators.NormalizePhone(value); err != nil {
			return models.AuthResponse{}, err
		}
		resp, err = s.adapter.CheckPhone(ctx, value)
	default:
		return models.AuthResponse{}, validators.ErrEmptyIdentifier
	}

	if err = mapAdapterError(err, resp); err != nil {
		s.logger.Err(err).
			Str("func", "clientAuthService.LookupIdentifier").
			Str("kind", kind.String()).
			Msg("identifier lookup failed")
		return resp, err
	}

	if kind == validators.KindHandle {
		s.setSession(ctx, models.KeyCurrentHandle, value)
	} else {
		s.setSession(ctx, models.KeyCurrentPhone, value)
	}
	if resp.Exists && resp.GUID != "" {
		s.setSession(ctx, models.KeyCurrentGUID, resp.GUID)
	}

	if resp.Exists && resp.IsYourDevice && resp.DeviceConfidence == models.ConfidenceMedium && resp.PINAvailable == nil {
		resp.PINAvailable = s.pinAvailable(ctx, value)
	}

	return resp, nil
}

// pinAvailable asks the backend whether identifier has a PIN. Failures are
// read as "no PIN" so that the flow falls back to SMS.
func (s *clientAuthService) pinAvailable(ctx context.Context, identifier string) *bool {
	no := false

	resp, err := s.adapter.CheckPINAvailability(ctx, identifier)
	if err = mapAdapterError(err, resp); err != nil {
		s.logger.Warn().Err(err).Str("func", "clientAuthService.pinAvailable").Msg("PIN availability unknown")
		return &no
	}
	if resp.PINAvailable == nil {
		return &no
	}
	return resp.PINAvailable
}

func (s *clientAuthService) FastAuthenticate(ctx context.Context, identifier string) (models.AuthResponse, error) {
	req := models.FastAuthenticateRequest{
		Identifier: identifier,
		DeviceKey:  s.identity.StoredDeviceKey(ctx),
	}
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.AuthResponse{}, err
	}

	resp, err := s.adapter.FastAuthenticate(ctx, req)
	if err = mapAdapterError(err, resp); err != nil {
		s.logger.Err(err).Str("func", "clientAuthService.FastAuthenticate").Msg("fast authentication failed")
		return resp, err
	}
	return resp, nil
}

func (s *clientAuthService) SendCode(ctx context.Context, req models.VerifyLoginRequest) (models.AuthResponse, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.AuthResponse{}, err
	}

	s.setSession(ctx, models.KeyVerificationInProgress, "true")
	s.setSession(ctx, models.KeyHandleFirst, strconv.FormatBool(req.HandleFirst))
	if req.DeviceFlow {
		s.setSession(ctx, models.KeyDeviceRegistrationFlow, "true")
	}

	resp, err := s.adapter.VerifyLogin(ctx, req)
	if err = mapAdapterError(err, resp); err != nil {
		s.logger.Err(err).
			Str("func", "clientAuthService.SendCode").
			Bool("registration", req.Registration).
			Msg("failed to send verification code")
		return resp, err
	}
	return resp, nil
}

func (s *clientAuthService) VerifyCode(ctx context.Context, req models.VerifyCodeRequest) (models.AuthResponse, error) {
	req.DeviceKey = s.identity.StoredDeviceKey(ctx)
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.AuthResponse{}, err
	}

	resp, err := s.adapter.VerifyCode(ctx, req)
	if err = mapAdapterError(err, resp); err != nil {
		s.logger.Err(err).Str("func", "clientAuthService.VerifyCode").Msg("code verification failed")
		return resp, err
	}

	s.removeSession(ctx, models.KeyVerificationInProgress)
	if resp.GUID != "" {
		s.setSession(ctx, models.KeyCurrentGUID, resp.GUID)
	}
	return resp, nil
}

func (s *clientAuthService) VerifyPIN(ctx context.Context, identifier, pin string) (models.AuthResponse, error) {
	req := models.VerifyPINRequest{
		Identifier: identifier,
		PIN:        pin,
		DeviceKey:  s.identity.StoredDeviceKey(ctx),
	}
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.AuthResponse{}, err
	}

	resp, err := s.adapter.VerifyPIN(ctx, req)
	if err = mapAdapterError(err, resp); err != nil {
		s.logger.Err(err).Str("func", "clientAuthService.VerifyPIN").Msg("PIN verification failed")
		return resp, err
	}
	return resp, nil
}

func (s *clientAuthService) CreateHandle(ctx context.Context, req models.CreateHandleRequest) (models.AuthResponse, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.AuthResponse{}, err
	}

	resp, err := s.adapter.CreateHandle(ctx, req)
	if err = mapAdapterError(err, resp); err != nil {
		s.logger.Err(err).Str("func", "clientAuthService.CreateHandle").Msg("handle creation failed")
		return resp, err
	}
	return resp, nil
}

func (s *clientAuthService) PasskeyLogin(ctx context.Context, handle string) (models.AuthResponse, error) {
	if !s.passkeys {
		return models.AuthResponse{}, ErrPasskeysDisabled
	}

	handle, err := validators.NormalizeHandle(handle)
	if err != nil {
		return models.AuthResponse{}, err
	}
	if !s.authenticator.Has(handle) {
		return models.AuthResponse{}, ErrPasskeyUnavailable
	}

	opts, err := s.adapter.PasskeyLoginOptions(ctx, models.PasskeyOptionsRequest{Handle: handle})
	if err = mapAdapterError(err, models.AuthResponse{}); err != nil {
		return models.AuthResponse{}, err
	}

	assertion, err := s.authenticator.Assert(ctx, handle, opts)
	if err != nil {
		if errors.Is(err, passkey.ErrNoCredential) {
			return models.AuthResponse{}, ErrPasskeyUnavailable
		}
		return models.AuthResponse{}, fmt.Errorf("passkey assertion: %w", err)
	}

	resp, err := s.adapter.PasskeyLoginVerify(ctx, models.PasskeyVerifyRequest{SessionID: opts.SessionID, Credential: assertion})
	if err = mapAdapterError(err, resp); err != nil {
		s.logger.Err(err).Str("func", "clientAuthService.PasskeyLogin").Msg("passkey sign-in rejected")
		return resp, err
	}
	return resp, nil
}

func (s *clientAuthService) CompleteAuthentication(ctx context.Context, resp models.AuthResponse, method models.AuthMethod) error {
	handle, guid := resp.Handle, resp.GUID
	if data := resp.DeviceHeaderData; data != nil {
		if handle == "" {
			handle = data.UserHandle
		}
		if guid == "" {
			guid = data.UserGUID
		}
	}

	if guid != "" {
		s.setSession(ctx, models.KeyCurrentGUID, guid)
	}
	if handle != "" {
		s.setSession(ctx, models.KeyCurrentHandle, handle)
		if err := s.storage.Set(ctx, models.ScopeLocal, models.KeyPreviousHandle, handle); err != nil {
			s.logger.Warn().Err(err).Str("func", "clientAuthService.CompleteAuthentication").Msg("previous handle not saved")
		}
	}

	if method == models.MethodSMS && s.passkeys && handle != "" && !s.authenticator.Has(handle) {
		s.spawn(context.WithoutCancel(ctx), "passkey-registration", func(ctx context.Context) error {
			return s.registerPasskey(ctx, handle, guid)
		})
	}

	_ = s.storage.Remove(ctx, models.ScopeLocal, models.KeyLogoutState)
	if err := s.storage.Set(ctx, models.ScopeLocal, models.KeyAuthenticatedUser, "true"); err != nil {
		s.logger.Err(err).Str("func", "clientAuthService.CompleteAuthentication").Msg("failed to broadcast sign-in")
		return fmt.Errorf("broadcast sign-in: %w", err)
	}

	for _, key := range transientKeys {
		s.removeSession(ctx, key)
	}

	s.logger.Info().
		Str("func", "clientAuthService.CompleteAuthentication").
		Str("method", string(method)).
		Str("guid", guid).
		Msg("signed in")
	return nil
}

func (s *clientAuthService) registerPasskey(ctx context.Context, handle, guid string) error {
	opts, err := s.adapter.PasskeyRegisterOptions(ctx, models.PasskeyOptionsRequest{Handle: handle, GUID: guid})
	if err != nil {
		return fmt.Errorf("registration options: %w", err)
	}

	credential, err := s.authenticator.Register(ctx, handle, opts)
	if err != nil {
		return fmt.Errorf("create passkey: %w", err)
	}

	resp, err := s.adapter.PasskeyRegisterVerify(ctx, models.PasskeyVerifyRequest{SessionID: opts.SessionID, Credential: credential})
	if err = mapAdapterError(err, resp); err != nil {
		s.authenticator.Forget(handle)
		return fmt.Errorf("verify passkey: %w", err)
	}

	s.logger.Info().Str("func", "clientAuthService.registerPasskey").Str("handle", handle).Msg("passkey enrolled")
	return nil
}

func (s *clientAuthService) Logout(ctx context.Context) error {
	req := models.LogoutRequest{DeviceKey: s.identity.StoredDeviceKey(ctx)}
	if guid, err := s.storage.Get(ctx, models.ScopeSession, models.KeyCurrentGUID); err == nil {
		req.GUID = guid
	} else if header, ok := s.identity.CompleteDeviceHeader(ctx); ok {
		req.GUID = header.UserGUID
	}

	if resp, err := s.adapter.Logout(ctx, req); mapAdapterError(err, resp) != nil {
		s.logger.Warn().Err(err).Str("func", "clientAuthService.Logout").Msg("backend logout failed, clearing locally")
	}

	if err := s.identity.ClearDeviceSession(ctx); err != nil {
		s.logger.Err(err).Str("func", "clientAuthService.Logout").Msg("failed to clear device session")
		return err
	}

	_ = s.storage.Remove(ctx, models.ScopeLocal, models.KeyAuthenticatedUser)
	if err := s.storage.Set(ctx, models.ScopeLocal, models.KeyLogoutState, "true"); err != nil {
		return fmt.Errorf("broadcast logout: %w", err)
	}
	return nil
}

func (s *clientAuthService) BoundHandle(ctx context.Context) string {
	header, ok := s.identity.CompleteDeviceHeader(ctx)
	if !ok {
		return ""
	}
	return header.UserHandle
}

func (s *clientAuthService) PreviousHandle(ctx context.Context) string {
	handle, err := s.storage.Get(ctx, models.ScopeLocal, models.KeyPreviousHandle)
	if err != nil {
		return ""
	}
	return handle
}

func (s *clientAuthService) setSession(ctx context.Context, key, value string) {
	if err := s.storage.Set(ctx, models.ScopeSession, key, value); err != nil {
		s.logger.Warn().Err(err).Str("func", "clientAuthService.setSession").Str("key", key).Msg("session write failed")
	}
}

func (s *clientAuthService) removeSession(ctx context.Context, key string) {
	if err := s.storage.Remove(ctx, models.ScopeSession, key); err != nil {
		s.logger.Warn().Err(err).Str("func", "clientAuthService.removeSession").Str("key", key).Msg("session remove failed")
	}
}
