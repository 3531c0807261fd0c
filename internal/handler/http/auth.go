package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-device-trust/internal/app"
	"github.com/MKhiriev/go-device-trust/internal/logger"
	"github.com/MKhiriev/go-device-trust/internal/utils"
	"github.com/MKhiriev/go-device-trust/models"
)

const (
	deviceKeyHeader     = "X-Device-Key"
	authorizationHeader = "Authorization"
)

func (h *Handler) checkDevice(w http.ResponseWriter, r *http.Request) {
	var req models.CheckDeviceRequest
	if !decode(w, r, &req) {
		return
	}

	userAgent := req.Fingerprint.UserAgent
	if userAgent == "" {
		userAgent = r.UserAgent()
	}

	resp, err := h.services.AuthService.CheckDevice(r.Context(), deviceKey(r, req.DeviceKey), userAgent)
	h.respond(w, r, resp, err)
}

func (h *Handler) checkHandle(w http.ResponseWriter, r *http.Request) {
	resp, err := h.services.AuthService.CheckHandle(r.Context(), deviceKey(r, ""), r.URL.Query().Get("handle"))
	h.respond(w, r, resp, err)
}

func (h *Handler) checkPhone(w http.ResponseWriter, r *http.Request) {
	resp, err := h.services.AuthService.CheckPhone(r.Context(), deviceKey(r, ""), r.URL.Query().Get("phone"))
	h.respond(w, r, resp, err)
}

func (h *Handler) checkPINAvailability(w http.ResponseWriter, r *http.Request) {
	resp, err := h.services.AuthService.CheckPINAvailability(r.Context(), r.URL.Query().Get("identifier"))
	h.respond(w, r, resp, err)
}

func (h *Handler) verifyLogin(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyLoginRequest
	if !decode(w, r, &req) {
		return
	}

	resp, err := h.services.AuthService.VerifyLogin(r.Context(), deviceKey(r, ""), req)
	h.respond(w, r, resp, err)
}

func (h *Handler) fastAuthenticate(w http.ResponseWriter, r *http.Request) {
	var req models.FastAuthenticateRequest
	if !decode(w, r, &req) {
		return
	}

	resp, err := h.services.AuthService.FastAuthenticate(r.Context(), deviceKey(r, req.DeviceKey), req)
	h.respond(w, r, resp, err)
}

func (h *Handler) verifyCode(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyCodeRequest
	if !decode(w, r, &req) {
		return
	}

	resp, err := h.services.AuthService.VerifyCode(r.Context(), deviceKey(r, req.DeviceKey), req)
	h.respond(w, r, resp, err)
}

func (h *Handler) verifyPIN(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyPINRequest
	if !decode(w, r, &req) {
		return
	}

	resp, err := h.services.AuthService.VerifyPIN(r.Context(), deviceKey(r, req.DeviceKey), req)
	h.respond(w, r, resp, err)
}

func (h *Handler) createHandle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateHandleRequest
	if !decode(w, r, &req) {
		return
	}

	resp, err := h.services.AuthService.CreateHandle(r.Context(), deviceKey(r, ""), req)
	h.respond(w, r, resp, err)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	var req models.LogoutRequest
	if r.ContentLength != 0 && !decode(w, r, &req) {
		return
	}

	guid, _ := utils.GetUserGUIDFromContext(r.Context())
	resp, err := h.services.AuthService.Logout(r.Context(), deviceKey(r, req.DeviceKey), guid)
	h.respond(w, r, resp, err)
}

// respond writes the outcome of a service call. A failed call keeps the
// details of resp, such as suggestions, next to the error code. An
// authenticated response carries a fresh bearer token in the Authorization
// header.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, resp models.AuthResponse, err error) {
	log := logger.FromRequest(r)

	if err != nil {
		writeError(w, r, resp, err)
		return
	}

	if resp.Authenticated() {
		token, err := h.services.AuthService.CreateToken(r.Context(), resp.GUID)
		if err != nil {
			log.Err(err).Str("func", "*Handler.respond").Msg("creation of token failed")
			writeError(w, r, models.AuthResponse{}, err)
			return
		}
		w.Header().Set(authorizationHeader, fmt.Sprintf("Bearer %s", token))
	}

	if _, err = utils.WriteJSON(w, resp, http.StatusOK); err != nil {
		log.Err(err).Str("func", "*Handler.respond").Msg("failed to write response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, resp models.AuthResponse, err error) {
	log := logger.FromRequest(r)
	status, code := statusFromError(err)

	if status >= http.StatusInternalServerError {
		log.Err(err).Str("path", r.URL.Path).Msg("request failed")
		resp = models.AuthResponse{Message: http.StatusText(status)}
	} else {
		log.Warn().Err(err).Str("path", r.URL.Path).Str("code", code).Msg("request rejected")
		if resp.Message == "" {
			resp.Message = err.Error()
		}
	}

	resp.Status = models.StatusError
	resp.Error = code
	_, _ = utils.WriteJSON(w, resp, status)
}

// decode reads a JSON body into v and answers 400 when it cannot.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		logger.FromRequest(r).Err(err).Msg("Invalid JSON was passed")
		_, _ = utils.WriteJSON(w, models.AuthResponse{
			Status:  models.StatusError,
			Error:   app.CodeInvalidRequest,
			Message: "invalid JSON was passed",
		}, http.StatusBadRequest)
		return false
	}
	return true
}

// deviceKey prefers the X-Device-Key header over a key sent in the body.
func deviceKey(r *http.Request, fromBody string) string {
	if key := r.Header.Get(deviceKeyHeader); key != "" {
		return key
	}
	return fromBody
}
