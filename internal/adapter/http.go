package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/MKhiriev/go-device-trust/internal/config"
	"github.com/MKhiriev/go-device-trust/internal/logger"
	"github.com/MKhiriev/go-device-trust/internal/store"
	"github.com/MKhiriev/go-device-trust/internal/utils"
	"github.com/MKhiriev/go-device-trust/models"
)

// Request headers emitted by the interceptor.
const (
	HeaderCSRFToken     = "X-CSRF-Token"
	HeaderDeviceHeader  = "X-Device-Header"
	HeaderDeviceKey     = "X-Device-Key"
	HeaderRequestID     = "X-Request-ID"
	HeaderAuthorization = "Authorization"
)

type httpServerAdapter struct {
	client   *utils.HTTPClient
	identity DeviceIdentity
	storage  store.StorageAdapter
	csrf     *csrfSource
	limiter  *rate.Limiter
	ids      *utils.UUIDGenerator

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the HTTP implementation of [ServerAdapter].
// It normalises and validates the base URL from cfg.HTTPAddress and installs
// the request and response interceptors on a fresh resty client. identity
// supplies device material for outgoing requests; storage receives the
// session data harvested from responses.
//
// Returns an error if cfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(cfg config.Adapter, identity DeviceIdentity, storage store.StorageAdapter, log *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}

	pageClient := utils.NewHTTPClient(cfg.UserAgent, cfg.RequestTimeout)
	pageClient.SetBaseURL(baseURL)

	h := &httpServerAdapter{
		client:   utils.NewHTTPClient(cfg.UserAgent, cfg.RequestTimeout),
		identity: identity,
		storage:  storage,
		csrf:     newCSRFSource(cfg.CSRFToken, cfg.CSRFPage, pageClient, log),
		limiter:  rate.NewLimiter(limit, burst),
		ids:      utils.NewUUIDGenerator(),
		logger:   log,
	}

	h.client.
		SetBaseURL(baseURL).
		OnBeforeRequest(h.beforeRequest).
		OnAfterResponse(h.afterResponse)

	return h, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// beforeRequest is the request interceptor.
func (h *httpServerAdapter) beforeRequest(_ *resty.Client, r *resty.Request) error {
	ctx := r.Context()

	if err := h.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("client rate limit: %w", err)
	}

	r.URL = normalizePath(r.URL)

	token, err := h.csrf.Token(ctx)
	if err != nil {
		h.logger.Warn().Err(err).Str("func", "httpServerAdapter.beforeRequest").Msg("sending request without csrf token")
	} else if token != "" {
		r.SetHeader(HeaderCSRFToken, token)
	}

	if header, ok := h.identity.DeviceHeader(ctx); ok {
		r.SetHeader(HeaderDeviceHeader, header)
	} else if minimal, err := h.identity.MinimalHeader(ctx); err == nil {
		r.SetHeader(HeaderDeviceHeader, minimal)
	}

	if key := h.identity.StoredDeviceKey(ctx); key != "" {
		r.SetHeader(HeaderDeviceKey, key)
	}

	requestID, ok := utils.GetRequestIDFromContext(ctx)
	if !ok {
		requestID = h.ids.Generate()
	}
	r.SetHeader(HeaderRequestID, requestID)

	if bearer, err := h.storage.Get(ctx, models.ScopeSession, models.KeyAuthToken); err == nil && bearer != "" {
		r.SetHeader(HeaderAuthorization, "Bearer "+bearer)
	}

	h.logger.Debug().
		Str("func", "httpServerAdapter.beforeRequest").
		Str("method", r.Method).
		Str("url", r.URL).
		Str("request_id", requestID).
		Str("tab", utils.GetTabIDFromContext(ctx)).
		Msg("outgoing request")
	return nil
}

// afterResponse is the response interceptor. It never fails the request:
// storage problems are logged and the response is returned unchanged.
func (h *httpServerAdapter) afterResponse(_ *resty.Client, resp *resty.Response) error {
	ctx := resp.Request.Context()
	const fn = "httpServerAdapter.afterResponse"

	if resp.StatusCode() == http.StatusForbidden {
		h.csrf.Invalidate()
	}

	var body models.AuthResponse
	if len(resp.Body()) > 0 && json.Unmarshal(resp.Body(), &body) == nil {
		if body.DeviceKey != "" {
			if err := h.storage.Set(ctx, models.ScopeSession, models.KeyDeviceKey, body.DeviceKey); err != nil {
				h.logger.Err(err).Str("func", fn).Msg("failed to cache device key")
			}
		}

		if body.Authenticated() {
			if err := h.identity.StoreDeviceSessionData(ctx, body); err != nil {
				h.logger.Err(err).Str("func", fn).Msg("failed to store device session data")
			}
		}
	}

	if raw := resp.Header().Get(HeaderAuthorization); raw != "" {
		h.harvestBearer(ctx, raw, body.GUID)
	}

	return nil
}

func (h *httpServerAdapter) harvestBearer(ctx context.Context, raw, guid string) {
	const fn = "httpServerAdapter.harvestBearer"

	token, err := utils.ParseBearerToken(raw)
	if err != nil {
		h.logger.Warn().Err(err).Str("func", fn).Msg("ignoring malformed authorization header")
		return
	}

	if subject, err := utils.SubjectFromJWT(token); err == nil && guid != "" && subject != guid {
		h.logger.Warn().Str("func", fn).Str("subject", subject).Str("guid", guid).Msg("token subject differs from response guid")
	}

	if err = h.storage.Set(ctx, models.ScopeSession, models.KeyAuthToken, token); err != nil {
		h.logger.Err(err).Str("func", fn).Msg("failed to store bearer token")
	}
}

// post sends payload as JSON to endpoint and decodes the auth response.
func (h *httpServerAdapter) post(ctx context.Context, endpoint string, payload any) (models.AuthResponse, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post(endpoint)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("%s request: %w", endpoint, err)
	}
	return decodeAuthResponse(resp)
}

func (h *httpServerAdapter) get(ctx context.Context, endpoint, param, value string) (models.AuthResponse, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParam(param, value).
		Get(endpoint)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("%s request: %w", endpoint, err)
	}
	return decodeAuthResponse(resp)
}

// decodeAuthResponse decodes the body whatever the status and then maps the
// status to an error.
func decodeAuthResponse(resp *resty.Response) (models.AuthResponse, error) {
	var out models.AuthResponse
	if len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), &out); err != nil && !resp.IsError() {
			return out, fmt.Errorf("%w: %w", ErrDecodeResponse, err)
		}
	}
	return out, mapHTTPError(resp, out)
}

// CheckDevice implements [ServerAdapter]. POST auth/check_device.
func (h *httpServerAdapter) CheckDevice(ctx context.Context, req models.CheckDeviceRequest) (models.AuthResponse, error) {
	return h.post(ctx, "check_device", req)
}

// CheckHandle implements [ServerAdapter]. GET auth/check_handle?handle=.
func (h *httpServerAdapter) CheckHandle(ctx context.Context, handle string) (models.AuthResponse, error) {
	return h.get(ctx, "check_handle", "handle", handle)
}

// CheckPhone implements [ServerAdapter]. GET auth/check_phone?phone=.
func (h *httpServerAdapter) CheckPhone(ctx context.Context, phone string) (models.AuthResponse, error) {
	return h.get(ctx, "check_phone", "phone", phone)
}

// CheckPINAvailability implements [ServerAdapter].
// GET auth/check_pin_availability?identifier=.
func (h *httpServerAdapter) CheckPINAvailability(ctx context.Context, identifier string) (models.AuthResponse, error) {
	return h.get(ctx, "check_pin_availability", "identifier", identifier)
}

// VerifyLogin implements [ServerAdapter]. POST auth/verify_login.
//
// It asks the backend to send an SMS code for the identifier in req. For a
// registration req also carries the handle and phone in the order the user
// entered them.
//
// Returns [ErrConflict] (wrapped) when the handle or phone is taken; the
// decoded response then carries the suggestions.
func (h *httpServerAdapter) VerifyLogin(ctx context.Context, req models.VerifyLoginRequest) (models.AuthResponse, error) {
	return h.post(ctx, "verify_login", req)
}

// FastAuthenticate implements [ServerAdapter]. POST auth/fast_authenticate.
//
// The one-step sign-in allowed only for a high-confidence device. On success
// the response interceptor stores the session data and the bearer token.
//
// Returns [ErrForbidden] (wrapped) when the backend no longer trusts the
// device.
func (h *httpServerAdapter) FastAuthenticate(ctx context.Context, req models.FastAuthenticateRequest) (models.AuthResponse, error) {
	return h.post(ctx, "fast_authenticate", req)
}

// VerifyCode implements [ServerAdapter]. POST auth/verify_code.
//
// Parameters:
//   - req: the 6-digit code with the handle and phone of the flow and the
//     order they were entered in, so that a registration completes in the
//     same call.
//
// Returns [ErrUnauthorized] (wrapped) for a wrong or expired code.
func (h *httpServerAdapter) VerifyCode(ctx context.Context, req models.VerifyCodeRequest) (models.AuthResponse, error) {
	return h.post(ctx, "verify_code", req)
}

// VerifyPIN implements [ServerAdapter]. POST auth/verify_pin.
//
// Returns [ErrUnauthorized] (wrapped) for a wrong PIN; counting attempts is
// left to the caller.
func (h *httpServerAdapter) VerifyPIN(ctx context.Context, req models.VerifyPINRequest) (models.AuthResponse, error) {
	return h.post(ctx, "verify_pin", req)
}

// CreateHandle implements [ServerAdapter]. POST auth/create_handle.
//
// Completes a phone-first registration once the phone is verified. Returns
// [ErrConflict] (wrapped) with suggestions when the handle was taken in the
// meantime.
func (h *httpServerAdapter) CreateHandle(ctx context.Context, req models.CreateHandleRequest) (models.AuthResponse, error) {
	return h.post(ctx, "create_handle", req)
}

// Logout implements [ServerAdapter]. POST auth/logout with the bearer token.
// The device binding on the backend survives it.
func (h *httpServerAdapter) Logout(ctx context.Context, req models.LogoutRequest) (models.AuthResponse, error) {
	return h.post(ctx, "logout", req)
}

func (h *httpServerAdapter) passkeyOptions(ctx context.Context, endpoint string, req models.PasskeyOptionsRequest) (models.PasskeyOptions, error) {
	var out models.PasskeyOptions

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		Post(endpoint)
	if err != nil {
		return out, fmt.Errorf("%s request: %w", endpoint, err)
	}
	if err = mapHTTPError(resp, models.AuthResponse{}); err != nil {
		return out, err
	}
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return out, fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}
	return out, nil
}

// PasskeyRegisterOptions implements [ServerAdapter].
// POST auth/webauthn/register/options.
func (h *httpServerAdapter) PasskeyRegisterOptions(ctx context.Context, req models.PasskeyOptionsRequest) (models.PasskeyOptions, error) {
	return h.passkeyOptions(ctx, "webauthn/register/options", req)
}

// PasskeyRegisterVerify implements [ServerAdapter].
// POST auth/webauthn/register/verify; requires the bearer token of the
// session that has just been verified.
func (h *httpServerAdapter) PasskeyRegisterVerify(ctx context.Context, req models.PasskeyVerifyRequest) (models.AuthResponse, error) {
	return h.post(ctx, "webauthn/register/verify", req)
}

// PasskeyLoginOptions implements [ServerAdapter].
// POST auth/webauthn/login/options.
func (h *httpServerAdapter) PasskeyLoginOptions(ctx context.Context, req models.PasskeyOptionsRequest) (models.PasskeyOptions, error) {
	return h.passkeyOptions(ctx, "webauthn/login/options", req)
}

// PasskeyLoginVerify implements [ServerAdapter].
// POST auth/webauthn/login/verify. A successful assertion signs the tab in
// like any other method.
func (h *httpServerAdapter) PasskeyLoginVerify(ctx context.Context, req models.PasskeyVerifyRequest) (models.AuthResponse, error) {
	return h.post(ctx, "webauthn/login/verify", req)
}
