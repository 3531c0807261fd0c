package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-device-trust/internal/config"
	"github.com/MKhiriev/go-device-trust/internal/logger"
	"github.com/MKhiriev/go-device-trust/internal/store"
	"github.com/MKhiriev/go-device-trust/models"
)

const ceremonyTTL = 5 * time.Minute

// passkeyUser adapts an account to [webauthn.User].
type passkeyUser struct {
	user  models.User
	creds []webauthn.Credential
}

func (u *passkeyUser) WebAuthnID() []byte                         { return []byte(u.user.GUID) }
func (u *passkeyUser) WebAuthnName() string                       { return u.user.Handle }
func (u *passkeyUser) WebAuthnDisplayName() string                { return "@" + u.user.Handle }
func (u *passkeyUser) WebAuthnCredentials() []webauthn.Credential { return u.creds }

// ceremony is an options call waiting for its verify call.
type ceremony struct {
	session  webauthn.SessionData
	userGUID string
}

type passkeyService struct {
	wa       *webauthn.WebAuthn
	users    store.UserRepository
	auth     *authService
	sessions *expiring[ceremony]
	logger   *logger.Logger
}

func newPasskeyService(cfg config.WebAuthn, users store.UserRepository, auth *authService, log *logger.Logger) (*passkeyService, error) {
	wa, err := webauthn.New(&webauthn.Config{
		RPID:          cfg.RPID,
		RPDisplayName: cfg.RPName,
		RPOrigins:     []string{cfg.Origin},
	})
	if err != nil {
		return nil, fmt.Errorf("configure relying party: %w", err)
	}

	return &passkeyService{
		wa:       wa,
		users:    users,
		auth:     auth,
		sessions: newExpiring[ceremony](time.Now),
		logger:   log,
	}, nil
}

// RegisterOptions starts registering a passkey for an existing account.
func (p *passkeyService) RegisterOptions(ctx context.Context, req models.PasskeyOptionsRequest) (models.PasskeyOptions, error) {
	u, err := p.loadUser(ctx, req)
	if err != nil {
		return models.PasskeyOptions{}, err
	}

	exclusions := make([]protocol.CredentialDescriptor, 0, len(u.creds))
	for _, c := range u.creds {
		exclusions = append(exclusions, c.Descriptor())
	}

	creation, session, err := p.wa.BeginRegistration(u, webauthn.WithExclusions(exclusions))
	if err != nil {
		return models.PasskeyOptions{}, fmt.Errorf("begin registration: %w", err)
	}

	return p.begin(u, creation.Response, session)
}

// RegisterVerify stores the new credential. Only a device with a live session
// of the account may add one.
func (p *passkeyService) RegisterVerify(ctx context.Context, deviceKey string, req models.PasskeyVerifyRequest) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)

	c, u, err := p.finish(ctx, req.SessionID)
	if err != nil {
		return models.AuthResponse{}, err
	}

	device, err := p.auth.device(ctx, deviceKey)
	if err != nil {
		return models.AuthResponse{}, err
	}
	if !device.Bound(u.user.GUID) || !device.SessionAlive {
		return models.AuthResponse{}, ErrUntrustedDevice
	}

	var ccr protocol.CredentialCreationResponse
	if err = json.Unmarshal(req.Credential, &ccr); err != nil {
		return models.AuthResponse{}, fmt.Errorf("%w: %w", ErrPasskeyRejected, err)
	}
	parsed, err := ccr.Parse()
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("%w: %w", ErrPasskeyRejected, err)
	}

	cred, err := p.wa.CreateCredential(u, c.session, parsed)
	if err != nil {
		log.Warn().Err(err).Str("func", "passkeyService.RegisterVerify").Str("guid", u.user.GUID).Msg("attestation rejected")
		return models.AuthResponse{}, fmt.Errorf("%w: %w", ErrPasskeyRejected, err)
	}

	if err = p.save(ctx, u.user.GUID, cred); err != nil {
		return models.AuthResponse{}, err
	}

	log.Info().Str("func", "passkeyService.RegisterVerify").Str("guid", u.user.GUID).Msg("passkey registered")
	return models.AuthResponse{Handle: u.user.Handle, GUID: u.user.GUID, Message: "passkey registered"}, nil
}

// LoginOptions starts a passkey sign-in. Accounts without a passkey get
// [ErrNoPasskeyCredential].
func (p *passkeyService) LoginOptions(ctx context.Context, req models.PasskeyOptionsRequest) (models.PasskeyOptions, error) {
	u, err := p.loadUser(ctx, req)
	if err != nil {
		return models.PasskeyOptions{}, err
	}
	if len(u.creds) == 0 {
		return models.PasskeyOptions{}, ErrNoPasskeyCredential
	}

	assertion, session, err := p.wa.BeginLogin(u)
	if err != nil {
		return models.PasskeyOptions{}, fmt.Errorf("begin login: %w", err)
	}

	return p.begin(u, assertion.Response, session)
}

// LoginVerify checks the assertion and signs the device in with the
// confidence of a verified device.
func (p *passkeyService) LoginVerify(ctx context.Context, deviceKey string, req models.PasskeyVerifyRequest) (models.AuthResponse, error) {
	c, u, err := p.finish(ctx, req.SessionID)
	if err != nil {
		return models.AuthResponse{}, err
	}

	var car protocol.CredentialAssertionResponse
	if err = json.Unmarshal(req.Credential, &car); err != nil {
		return models.AuthResponse{}, fmt.Errorf("%w: %w", ErrPasskeyRejected, err)
	}
	parsed, err := car.Parse()
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("%w: %w", ErrPasskeyRejected, err)
	}

	cred, err := p.wa.ValidateLogin(u, c.session, parsed)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "passkeyService.LoginVerify").Str("guid", u.user.GUID).Msg("assertion rejected")
		return models.AuthResponse{}, fmt.Errorf("%w: %w", ErrPasskeyRejected, err)
	}

	// the sign counter moved
	if err = p.save(ctx, u.user.GUID, cred); err != nil {
		return models.AuthResponse{}, err
	}

	device, err := p.auth.device(ctx, deviceKey)
	if err != nil {
		return models.AuthResponse{}, err
	}
	return p.auth.authenticated(ctx, u.user, device, p.auth.verifiedTrust)
}

func (p *passkeyService) begin(u *passkeyUser, options any, session *webauthn.SessionData) (models.PasskeyOptions, error) {
	raw, err := json.Marshal(options)
	if err != nil {
		return models.PasskeyOptions{}, fmt.Errorf("encode options: %w", err)
	}

	id := uuid.NewString()
	p.sessions.Put(id, ceremony{session: *session, userGUID: u.user.GUID}, ceremonyTTL)

	return models.PasskeyOptions{SessionID: id, Options: raw}, nil
}

// finish consumes the ceremony and reloads its account.
func (p *passkeyService) finish(ctx context.Context, sessionID string) (ceremony, *passkeyUser, error) {
	c, ok := p.sessions.Take(sessionID)
	if !ok {
		return ceremony{}, nil, ErrUnknownPasskeySession
	}
	u, err := p.loadUser(ctx, models.PasskeyOptionsRequest{GUID: c.userGUID})
	if err != nil {
		return ceremony{}, nil, err
	}
	return c, u, nil
}

func (p *passkeyService) loadUser(ctx context.Context, req models.PasskeyOptionsRequest) (*passkeyUser, error) {
	var (
		user models.User
		err  error
	)
	switch {
	case req.GUID != "":
		user, err = p.users.FindUserByGUID(ctx, req.GUID)
	case req.Handle != "":
		user, err = p.auth.findByIdentifier(ctx, req.Handle)
	default:
		return nil, fmt.Errorf("%w: no account given", ErrInvalidDataProvided)
	}
	if errors.Is(err, store.ErrNoUserWasFound) {
		return nil, ErrUnknownIdentifier
	}
	if err != nil {
		return nil, err
	}

	stored, err := p.users.Credentials(ctx, user.GUID)
	if err != nil {
		return nil, err
	}

	u := &passkeyUser{user: user}
	for _, s := range stored {
		var cred webauthn.Credential
		if err = json.Unmarshal(s.Data, &cred); err != nil {
			p.logger.Warn().Err(err).Str("func", "passkeyService.loadUser").Str("credential", s.ID).Msg("skipping unreadable credential")
			continue
		}
		u.creds = append(u.creds, cred)
	}
	return u, nil
}

func (p *passkeyService) save(ctx context.Context, guid string, cred *webauthn.Credential) error {
	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}
	return p.users.SaveCredential(ctx, models.PasskeyCredential{
		ID:       base64.RawURLEncoding.EncodeToString(cred.ID),
		UserGUID: guid,
		Data:     data,
	})
}
