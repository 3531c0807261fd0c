package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/MKhiriev/go-device-trust/internal/app"
	"github.com/MKhiriev/go-device-trust/internal/logger"
	"github.com/MKhiriev/go-device-trust/internal/utils"
	"github.com/MKhiriev/go-device-trust/models"
)

const csrfHeader = "X-CSRF-Token"

// withCSRF rejects state-changing requests whose X-CSRF-Token differs from
// the token rendered into the login page.
func (h *Handler) withCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.csrfToken == "" || isSafeMethod(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		got := r.Header.Get(csrfHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.csrfToken)) != 1 {
			logger.FromRequest(r).Warn().Bool("present", got != "").Str("path", r.URL.Path).Msg("csrf check failed")
			_, _ = utils.WriteJSON(w, models.AuthResponse{
				Status:  models.StatusError,
				Error:   app.CodeCSRFMismatch,
				Message: ErrCSRFTokenMismatch.Error(),
			}, http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}
