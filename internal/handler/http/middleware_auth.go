package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-device-trust/internal/app"
	"github.com/MKhiriev/go-device-trust/internal/logger"
	"github.com/MKhiriev/go-device-trust/internal/utils"
	"github.com/MKhiriev/go-device-trust/models"
)

// auth lets a request through only with a valid bearer token issued by this
// backend. The token subject is stored under [utils.UserGUIDCtxKey].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get(authorizationHeader)
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			unauthorized(w, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			unauthorized(w, err)
			return
		}

		ctx := r.Context()
		guid, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("error occurred during parsing token")
			unauthorized(w, err)
			return
		}

		ctx = context.WithValue(ctx, utils.UserGUIDCtxKey, guid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter, err error) {
	_, _ = utils.WriteJSON(w, models.AuthResponse{
		Status:  models.StatusError,
		Error:   app.CodeUnauthorized,
		Message: err.Error(),
	}, http.StatusUnauthorized)
}

// getTokenFromAuthHeader extracts the token of a "Bearer <token>" header.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	scheme, token, found := strings.Cut(strings.TrimSpace(authHeader), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrInvalidAuthorizationHeader
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrEmptyToken
	}

	return token, nil
}
