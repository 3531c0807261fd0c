package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withRequestID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	router.Get("/login", h.loginPage)

	router.Group(func(r chi.Router) {
		r.Use(h.withCSRF)

		r.Post("/auth/check_device", h.checkDevice)
		r.Get("/auth/check_handle", h.checkHandle)
		r.Get("/auth/check_phone", h.checkPhone)
		r.Get("/auth/check_pin_availability", h.checkPINAvailability)

		r.Post("/auth/verify_login", h.verifyLogin)
		r.Post("/auth/fast_authenticate", h.fastAuthenticate)
		r.Post("/auth/verify_code", h.verifyCode)
		r.Post("/auth/verify_pin", h.verifyPIN)
		r.Post("/auth/create_handle", h.createHandle)

		// routes with authorization
		r.With(h.auth).Post("/auth/logout", h.logout)

		if h.services.PasskeyService != nil {
			r.Post("/auth/webauthn/register/options", h.passkeyRegisterOptions)
			r.With(h.auth).Post("/auth/webauthn/register/verify", h.passkeyRegisterVerify)
			r.Post("/auth/webauthn/login/options", h.passkeyLoginOptions)
			r.Post("/auth/webauthn/login/verify", h.passkeyLoginVerify)
		}
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
