package http

import (
	"net/http"

	"github.com/MKhiriev/go-device-trust/internal/logger"
	"github.com/MKhiriev/go-device-trust/internal/utils"
	"github.com/MKhiriev/go-device-trust/models"
)

func (h *Handler) passkeyRegisterOptions(w http.ResponseWriter, r *http.Request) {
	var req models.PasskeyOptionsRequest
	if !decode(w, r, &req) {
		return
	}

	opts, err := h.services.PasskeyService.RegisterOptions(r.Context(), req)
	h.respondOptions(w, r, opts, err)
}

func (h *Handler) passkeyRegisterVerify(w http.ResponseWriter, r *http.Request) {
	var req models.PasskeyVerifyRequest
	if !decode(w, r, &req) {
		return
	}

	resp, err := h.services.PasskeyService.RegisterVerify(r.Context(), deviceKey(r, ""), req)
	h.respond(w, r, resp, err)
}

func (h *Handler) passkeyLoginOptions(w http.ResponseWriter, r *http.Request) {
	var req models.PasskeyOptionsRequest
	if !decode(w, r, &req) {
		return
	}

	opts, err := h.services.PasskeyService.LoginOptions(r.Context(), req)
	h.respondOptions(w, r, opts, err)
}

func (h *Handler) passkeyLoginVerify(w http.ResponseWriter, r *http.Request) {
	var req models.PasskeyVerifyRequest
	if !decode(w, r, &req) {
		return
	}

	resp, err := h.services.PasskeyService.LoginVerify(r.Context(), deviceKey(r, ""), req)
	h.respond(w, r, resp, err)
}

func (h *Handler) respondOptions(w http.ResponseWriter, r *http.Request, opts models.PasskeyOptions, err error) {
	if err != nil {
		writeError(w, r, models.AuthResponse{}, err)
		return
	}
	if _, err = utils.WriteJSON(w, opts, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.respondOptions").Msg("failed to write response")
	}
}
