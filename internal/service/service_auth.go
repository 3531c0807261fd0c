package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-device-trust/internal/config"
	"github.com/MKhiriev/go-device-trust/internal/crypto"
	"github.com/MKhiriev/go-device-trust/internal/logger"
	"github.com/MKhiriev/go-device-trust/internal/store"
	"github.com/MKhiriev/go-device-trust/internal/utils"
	"github.com/MKhiriev/go-device-trust/internal/validators"
	"github.com/MKhiriev/go-device-trust/models"
)

const (
	deviceKeyBytes = 32
	maxSuggestions = 3
)

// handleSuffixes are tried in order when a handle is taken.
var handleSuffixes = []string{"1", "2", "3", "_1", "_2", "01", "99", "_x"}

// challenge is an SMS verification in progress, keyed by device key.
type challenge struct {
	// UserGUID is set when an existing account signs in.
	UserGUID     string
	Handle       string
	Phone        string
	HandleFirst  bool
	Registration bool
	CodeHash     string
	Attempts     int
}

// pendingRegistration is a phone-first registration whose phone has been
// verified but which has no handle yet. It is keyed by the GUID handed out
// with needs_handle.
type pendingRegistration struct {
	Phone     string
	DeviceKey string
}

// authService is the concrete implementation of [AuthService]. Accounts and
// devices are persisted through the repositories; challenges and pending
// registrations only live in memory.
type authService struct {
	users   store.UserRepository
	devices store.DeviceRepository
	sender  CodeSender

	challenges *expiring[challenge]
	pending    *expiring[pendingRegistration]

	tokenSignKey  string
	tokenIssuer   string
	tokenDuration time.Duration
	codeTTL       time.Duration
	codeAttempts  int
	verifiedTrust models.DeviceConfidence

	newCode      func() (string, error)
	newDeviceKey func() (string, error)

	logger *logger.Logger
}

func newAuthService(repos *store.Repositories, sender CodeSender, cfg config.Server, log *logger.Logger) *authService {
	return &authService{
		users:         repos.UserRepository,
		devices:       repos.DeviceRepository,
		sender:        sender,
		challenges:    newExpiring[challenge](time.Now),
		pending:       newExpiring[pendingRegistration](time.Now),
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		codeTTL:       cfg.CodeTTL,
		codeAttempts:  cfg.CodeAttempts,
		verifiedTrust: models.DeviceConfidence(cfg.VerifiedTrust),
		newCode:       func() (string, error) { return crypto.RandomDigits(validators.CodeLength) },
		newDeviceKey:  func() (string, error) { return crypto.RandomHex(deviceKeyBytes) },
		logger:        log,
	}
}

// NewAuthService constructs an [AuthService] over repos. Codes are delivered
// through sender.
func NewAuthService(repos *store.Repositories, sender CodeSender, cfg config.Server, log *logger.Logger) AuthService {
	return newAuthService(repos, sender, cfg, log)
}

// CheckDevice opens every flow.
//
// An empty deviceKey gets a fresh key in the response. An unknown or unbound
// device is recorded and answered with show_options. A bound device answers
// with the account it belongs to: authenticated while its session is alive
// (needs_verification when its trust is low), show_options otherwise.
func (a *authService) CheckDevice(ctx context.Context, deviceKey, userAgent string) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)

	if deviceKey == "" {
		key, err := a.newDeviceKey()
		if err != nil {
			return models.AuthResponse{}, fmt.Errorf("issue device key: %w", err)
		}
		if err = a.devices.SaveDevice(ctx, models.Device{Key: key, UserAgent: userAgent}); err != nil {
			return models.AuthResponse{}, err
		}
		log.Info().Str("func", "authService.CheckDevice").Msg("issued device key")
		return models.AuthResponse{Status: models.StatusShowOptions, DeviceKey: key}, nil
	}

	device, err := a.devices.FindDevice(ctx, deviceKey)
	if errors.Is(err, store.ErrDeviceNotFound) {
		device = models.Device{Key: deviceKey, UserAgent: userAgent}
		if err = a.devices.SaveDevice(ctx, device); err != nil {
			return models.AuthResponse{}, err
		}
		return models.AuthResponse{Status: models.StatusShowOptions}, nil
	}
	if err != nil {
		return models.AuthResponse{}, err
	}

	if device.UserGUID == "" {
		return models.AuthResponse{Status: models.StatusShowOptions}, nil
	}

	user, err := a.users.FindUserByGUID(ctx, device.UserGUID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Warn().Str("func", "authService.CheckDevice").Str("guid", device.UserGUID).Msg("device bound to a missing account")
		return models.AuthResponse{Status: models.StatusShowOptions}, nil
	}
	if err != nil {
		return models.AuthResponse{}, err
	}

	switch {
	case !device.SessionAlive:
		resp := a.accountResponse(user, device)
		resp.Status = models.StatusShowOptions
		return resp, nil
	case device.Confidence == models.ConfidenceLow:
		resp := a.accountResponse(user, device)
		resp.Status = models.StatusNeedsVerification
		return resp, nil
	}

	return a.authenticated(ctx, user, device, "")
}

func (a *authService) CheckHandle(ctx context.Context, deviceKey, raw string) (models.AuthResponse, error) {
	handle, err := validators.NormalizeHandle(raw)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := a.users.FindUserByHandle(ctx, handle)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.AuthResponse{Handle: handle}, nil
	}
	if err != nil {
		return models.AuthResponse{}, err
	}

	resp, err := a.lookupResponse(ctx, deviceKey, user)
	if err != nil {
		return models.AuthResponse{}, err
	}
	resp.Suggestions = a.suggest(ctx, handle)
	return resp, nil
}

func (a *authService) CheckPhone(ctx context.Context, deviceKey, raw string) (models.AuthResponse, error) {
	phone, err := validators.NormalizePhone(raw)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := a.users.FindUserByPhone(ctx, phone)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.AuthResponse{MaskedPhone: MaskPhone(phone)}, nil
	}
	if err != nil {
		return models.AuthResponse{}, err
	}

	return a.lookupResponse(ctx, deviceKey, user)
}

func (a *authService) CheckPINAvailability(ctx context.Context, identifier string) (models.AuthResponse, error) {
	user, err := a.findByIdentifier(ctx, identifier)
	if err != nil {
		return models.AuthResponse{}, err
	}

	available := user.PINHash != ""
	return models.AuthResponse{Exists: true, Handle: user.Handle, GUID: user.GUID, PINAvailable: &available}, nil
}

// VerifyLogin starts an SMS challenge. Registrations are refused when the
// handle or the phone already belongs to someone; the response then carries
// handle suggestions or the owner of the phone.
func (a *authService) VerifyLogin(ctx context.Context, deviceKey string, req models.VerifyLoginRequest) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)

	if deviceKey == "" {
		return models.AuthResponse{}, ErrMissingDeviceKey
	}

	handle, phone, err := normalizeContact(req.Handle, req.Phone)
	if err != nil {
		return models.AuthResponse{}, err
	}

	ch := challenge{HandleFirst: req.HandleFirst, Registration: req.Registration}

	if req.Registration {
		if phone == "" {
			return models.AuthResponse{}, fmt.Errorf("%w: registration needs a phone", ErrInvalidDataProvided)
		}
		if handle != "" {
			if resp, err := a.ensureHandleFree(ctx, handle); err != nil {
				return resp, err
			}
		}
		owner, err := a.users.FindUserByPhone(ctx, phone)
		if err == nil {
			resp, lookupErr := a.lookupResponse(ctx, deviceKey, owner)
			if lookupErr != nil {
				return models.AuthResponse{}, lookupErr
			}
			return resp, ErrPhoneTaken
		}
		if !errors.Is(err, store.ErrNoUserWasFound) {
			return models.AuthResponse{}, err
		}
		ch.Handle, ch.Phone = handle, phone
	} else {
		var user models.User
		switch {
		case handle != "":
			user, err = a.users.FindUserByHandle(ctx, handle)
		case phone != "":
			user, err = a.users.FindUserByPhone(ctx, phone)
		default:
			return models.AuthResponse{}, fmt.Errorf("%w: no identifier", ErrInvalidDataProvided)
		}
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.AuthResponse{}, ErrUnknownIdentifier
		}
		if err != nil {
			return models.AuthResponse{}, err
		}
		ch.UserGUID, ch.Handle, ch.Phone = user.GUID, user.Handle, user.Phone
	}

	code, err := a.newCode()
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("generate code: %w", err)
	}
	ch.CodeHash = utils.HashString(code, deviceKey)
	a.challenges.Put(deviceKey, ch, a.codeTTL)

	if err = a.sender.SendCode(ctx, ch.Phone, code); err != nil {
		a.challenges.Delete(deviceKey)
		log.Err(err).Str("func", "authService.VerifyLogin").Str("phone", MaskPhone(ch.Phone)).Msg("code delivery failed")
		return models.AuthResponse{}, fmt.Errorf("%w: %w", ErrCodeDelivery, err)
	}

	log.Info().
		Str("func", "authService.VerifyLogin").
		Bool("registration", ch.Registration).
		Str("phone", MaskPhone(ch.Phone)).
		Msg("verification code sent")

	return models.AuthResponse{Status: models.StatusCodeSent, Handle: ch.Handle, MaskedPhone: MaskPhone(ch.Phone)}, nil
}

// VerifyCode checks the code of the challenge bound to deviceKey. A wrong
// code counts against the challenge, which is burnt after the configured
// number of attempts.
func (a *authService) VerifyCode(ctx context.Context, deviceKey string, req models.VerifyCodeRequest) (models.AuthResponse, error) {
	if deviceKey == "" {
		return models.AuthResponse{}, ErrMissingDeviceKey
	}
	if err := validators.ValidateCode(req.Code); err != nil {
		return models.AuthResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	var (
		ch      challenge
		matched bool
		hash    = utils.HashString(req.Code, deviceKey)
	)
	a.challenges.Update(deviceKey, func(c *challenge) bool {
		if utils.EqualHash(c.CodeHash, hash) {
			ch, matched = *c, true
			return false
		}
		c.Attempts++
		return c.Attempts < a.codeAttempts
	})
	if !matched {
		return models.AuthResponse{}, ErrWrongCode
	}

	device, err := a.device(ctx, deviceKey)
	if err != nil {
		return models.AuthResponse{}, err
	}

	switch {
	case !ch.Registration:
		user, err := a.users.FindUserByGUID(ctx, ch.UserGUID)
		if err != nil {
			return models.AuthResponse{}, err
		}
		return a.authenticated(ctx, user, device, a.verifiedTrust)

	case ch.HandleFirst && ch.Handle != "":
		user, resp, err := a.createUser(ctx, uuid.NewString(), ch.Handle, ch.Phone)
		if err != nil {
			return resp, err
		}
		return a.authenticated(ctx, user, device, a.verifiedTrust)
	}

	guid := uuid.NewString()
	a.pending.Put(guid, pendingRegistration{Phone: ch.Phone, DeviceKey: deviceKey}, a.codeTTL)

	return models.AuthResponse{Status: models.StatusNeedsHandle, GUID: guid, MaskedPhone: MaskPhone(ch.Phone)}, nil
}

// CreateHandle finishes a phone-first registration started on the same
// device. A taken handle keeps the registration pending.
func (a *authService) CreateHandle(ctx context.Context, deviceKey string, req models.CreateHandleRequest) (models.AuthResponse, error) {
	handle, err := validators.NormalizeHandle(req.Handle)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	p, ok := a.pending.Get(req.GUID)
	if !ok || p.DeviceKey != deviceKey {
		return models.AuthResponse{}, ErrNoPendingRegistration
	}

	user, resp, err := a.createUser(ctx, req.GUID, handle, p.Phone)
	if err != nil {
		if errors.Is(err, ErrPhoneTaken) {
			a.pending.Delete(req.GUID)
		}
		return resp, err
	}
	a.pending.Delete(req.GUID)

	device, err := a.device(ctx, deviceKey)
	if err != nil {
		return models.AuthResponse{}, err
	}
	return a.authenticated(ctx, user, device, a.verifiedTrust)
}

// FastAuthenticate signs in without a challenge when the device is bound to
// the account with high confidence.
func (a *authService) FastAuthenticate(ctx context.Context, deviceKey string, req models.FastAuthenticateRequest) (models.AuthResponse, error) {
	if deviceKey == "" {
		deviceKey = req.DeviceKey
	}

	user, err := a.findByIdentifier(ctx, req.Identifier)
	if err != nil {
		return models.AuthResponse{}, err
	}

	device, err := a.device(ctx, deviceKey)
	if err != nil {
		return models.AuthResponse{}, err
	}
	if !device.Bound(user.GUID) || device.Confidence != models.ConfidenceHigh {
		return models.AuthResponse{}, ErrUntrustedDevice
	}

	return a.authenticated(ctx, user, device, "")
}

// VerifyPIN signs in with the account PIN from a device bound to it.
func (a *authService) VerifyPIN(ctx context.Context, deviceKey string, req models.VerifyPINRequest) (models.AuthResponse, error) {
	if deviceKey == "" {
		deviceKey = req.DeviceKey
	}
	if err := validators.ValidatePIN(req.PIN); err != nil {
		return models.AuthResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := a.findByIdentifier(ctx, req.Identifier)
	if err != nil {
		return models.AuthResponse{}, err
	}

	device, err := a.device(ctx, deviceKey)
	if err != nil {
		return models.AuthResponse{}, err
	}
	if !device.Bound(user.GUID) {
		return models.AuthResponse{}, ErrUntrustedDevice
	}

	if user.PINHash == "" || !utils.EqualHash(user.PINHash, utils.HashString(req.PIN, user.GUID)) {
		logger.FromContext(ctx).Warn().Str("func", "authService.VerifyPIN").Str("guid", user.GUID).Msg("wrong PIN")
		return models.AuthResponse{}, ErrWrongPIN
	}

	return a.authenticated(ctx, user, device, "")
}

// Logout ends the session of deviceKey when it belongs to guid. The device
// stays bound so that the account is offered on the next visit.
func (a *authService) Logout(ctx context.Context, deviceKey, guid string) (models.AuthResponse, error) {
	out := models.AuthResponse{Status: models.StatusLoggedOut}
	if deviceKey == "" {
		return out, nil
	}

	device, err := a.device(ctx, deviceKey)
	if err != nil {
		return models.AuthResponse{}, err
	}
	if !device.Bound(guid) || !device.SessionAlive {
		return out, nil
	}

	device.SessionAlive = false
	if err = a.devices.SaveDevice(ctx, device); err != nil {
		return models.AuthResponse{}, err
	}
	return out, nil
}

func (a *authService) Seed(ctx context.Context, seed models.SeedUser) (models.User, error) {
	handle, phone, err := normalizeContact(seed.Handle, seed.Phone)
	if err != nil {
		return models.User{}, err
	}
	if handle == "" || phone == "" {
		return models.User{}, fmt.Errorf("%w: seed needs a handle and a phone", ErrInvalidDataProvided)
	}

	user := models.User{GUID: uuid.NewString(), Handle: handle, Phone: phone}
	if seed.PIN != "" {
		if err = validators.ValidatePIN(seed.PIN); err != nil {
			return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
		}
		user.PINHash = utils.HashString(seed.PIN, user.GUID)
	}

	if user, err = a.users.CreateUser(ctx, user); err != nil {
		return models.User{}, fmt.Errorf("seed %s: %w", handle, err)
	}

	for key, confidence := range seed.Devices {
		if err = a.devices.SaveDevice(ctx, models.Device{Key: key, UserGUID: user.GUID, Confidence: confidence}); err != nil {
			return models.User{}, err
		}
	}

	return user, nil
}

// CreateToken issues a signed JWT whose subject is guid.
func (a *authService) CreateToken(_ context.Context, guid string) (string, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, guid, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}
	return token, nil
}

// ParseToken validates token and returns its subject.
func (a *authService) ParseToken(_ context.Context, token string) (string, error) {
	guid, err := utils.ValidateJWTToken(token, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenIsExpiredOrInvalid, err)
	}
	return guid, nil
}

// authenticated binds device to user, revives its session and builds the
// authenticated response. A non-empty trust replaces the device confidence.
func (a *authService) authenticated(ctx context.Context, user models.User, device models.Device, trust models.DeviceConfidence) (models.AuthResponse, error) {
	if !device.Bound(user.GUID) {
		logger.FromContext(ctx).Info().
			Str("func", "authService.authenticated").
			Str("guid", user.GUID).
			Str("previous_guid", device.UserGUID).
			Msg("binding device")
	}

	device.UserGUID = user.GUID
	device.SessionAlive = true
	if trust != "" {
		device.Confidence = trust
	}
	if device.Confidence == "" {
		device.Confidence = models.ConfidenceLow
	}
	if err := a.devices.SaveDevice(ctx, device); err != nil {
		return models.AuthResponse{}, err
	}

	resp := a.accountResponse(user, device)
	resp.Status = models.StatusAuthenticated
	resp.DeviceKey = device.Key
	resp.DeviceHeaderData = &models.DeviceHeaderData{
		DeviceID:   device.Key,
		UserGUID:   user.GUID,
		UserHandle: user.Handle,
	}
	return resp, nil
}

func (a *authService) accountResponse(user models.User, device models.Device) models.AuthResponse {
	resp := models.AuthResponse{
		Exists:      true,
		Handle:      user.Handle,
		GUID:        user.GUID,
		MaskedPhone: MaskPhone(user.Phone),
	}
	if device.Bound(user.GUID) {
		resp.IsYourDevice = true
		resp.DeviceConfidence = device.Confidence
	}
	return resp
}

// lookupResponse describes an existing account as seen from deviceKey. PIN
// enrolment is left out; clients ask check_pin_availability when they need
// it.
func (a *authService) lookupResponse(ctx context.Context, deviceKey string, user models.User) (models.AuthResponse, error) {
	var device models.Device
	if deviceKey != "" {
		d, err := a.device(ctx, deviceKey)
		if err != nil {
			return models.AuthResponse{}, err
		}
		device = d
	}
	return a.accountResponse(user, device), nil
}

// device returns the record of key, or an unbound record when the key was
// never seen.
func (a *authService) device(ctx context.Context, key string) (models.Device, error) {
	if key == "" {
		return models.Device{}, ErrMissingDeviceKey
	}
	d, err := a.devices.FindDevice(ctx, key)
	if errors.Is(err, store.ErrDeviceNotFound) {
		return models.Device{Key: key}, nil
	}
	return d, err
}

func (a *authService) findByIdentifier(ctx context.Context, identifier string) (models.User, error) {
	kind, value, err := validators.ClassifyIdentifier(identifier)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	var user models.User
	if kind == validators.KindPhone {
		user, err = a.users.FindUserByPhone(ctx, value)
	} else {
		user, err = a.users.FindUserByHandle(ctx, value)
	}
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.User{}, ErrUnknownIdentifier
	}
	return user, err
}

func (a *authService) ensureHandleFree(ctx context.Context, handle string) (models.AuthResponse, error) {
	_, err := a.users.FindUserByHandle(ctx, handle)
	switch {
	case err == nil:
		return models.AuthResponse{Handle: handle, Suggestions: a.suggest(ctx, handle)}, ErrHandleTaken
	case errors.Is(err, store.ErrNoUserWasFound):
		return models.AuthResponse{}, nil
	default:
		return models.AuthResponse{}, err
	}
}

func (a *authService) createUser(ctx context.Context, guid, handle, phone string) (models.User, models.AuthResponse, error) {
	user, err := a.users.CreateUser(ctx, models.User{GUID: guid, Handle: handle, Phone: phone})
	switch {
	case errors.Is(err, store.ErrHandleAlreadyExists):
		return models.User{}, models.AuthResponse{Handle: handle, Suggestions: a.suggest(ctx, handle)}, ErrHandleTaken
	case errors.Is(err, store.ErrPhoneAlreadyExists):
		return models.User{}, models.AuthResponse{MaskedPhone: MaskPhone(phone)}, ErrPhoneTaken
	case err != nil:
		return models.User{}, models.AuthResponse{}, err
	}

	logger.FromContext(ctx).Info().Str("func", "authService.createUser").Str("guid", guid).Str("handle", handle).Msg("account created")
	return user, models.AuthResponse{}, nil
}

// suggest returns up to three free variations of handle. Failures only cost
// the suggestions.
func (a *authService) suggest(ctx context.Context, handle string) []string {
	base := handle
	if len(base) > 27 {
		base = base[:27]
	}

	candidates := make([]string, 0, len(handleSuffixes))
	for _, suffix := range handleSuffixes {
		candidates = append(candidates, base+suffix)
	}

	taken, err := a.users.TakenHandles(ctx, candidates)
	if err != nil {
		a.logger.Warn().Err(err).Str("func", "authService.suggest").Msg("no handle suggestions")
		return nil
	}
	isTaken := make(map[string]bool, len(taken))
	for _, t := range taken {
		isTaken[t] = true
	}

	var out []string
	for _, c := range candidates {
		if len(out) == maxSuggestions {
			break
		}
		if !isTaken[strings.ToLower(c)] {
			out = append(out, c)
		}
	}
	return out
}

func normalizeContact(rawHandle, rawPhone string) (handle, phone string, err error) {
	if rawHandle != "" {
		if handle, err = validators.NormalizeHandle(rawHandle); err != nil {
			return "", "", fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
		}
	}
	if rawPhone != "" {
		if phone, err = validators.NormalizePhone(rawPhone); err != nil {
			return "", "", fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
		}
	}
	return handle, phone, nil
}
