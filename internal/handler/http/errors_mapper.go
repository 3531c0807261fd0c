package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-device-trust/internal/app"
	"github.com/MKhiriev/go-device-trust/internal/service"
	"github.com/MKhiriev/go-device-trust/internal/store"
)

type errorStatus struct {
	status int
	code   string
}

var errorStatusMap = map[error]errorStatus{
	service.ErrInvalidDataProvided:   {http.StatusBadRequest, app.CodeInvalidRequest},
	service.ErrMissingDeviceKey:      {http.StatusBadRequest, app.CodeInvalidRequest},
	service.ErrUnknownPasskeySession: {http.StatusBadRequest, app.CodeInvalidRequest},

	service.ErrHandleTaken: {http.StatusConflict, app.CodeHandleExists},
	service.ErrPhoneTaken:  {http.StatusConflict, app.CodePhoneExists},

	service.ErrWrongCode:               {http.StatusUnauthorized, app.CodeInvalidCode},
	service.ErrWrongPIN:                {http.StatusUnauthorized, app.CodeInvalidPIN},
	service.ErrPasskeyRejected:         {http.StatusUnauthorized, app.CodePasskeyRejected},
	service.ErrTokenIsExpiredOrInvalid: {http.StatusUnauthorized, app.CodeUnauthorized},

	service.ErrUntrustedDevice: {http.StatusForbidden, app.CodeDeviceNotTrusted},

	service.ErrUnknownIdentifier:     {http.StatusNotFound, app.CodeNotFound},
	service.ErrNoPendingRegistration: {http.StatusNotFound, app.CodeNotFound},
	service.ErrNoPasskeyCredential:   {http.StatusNotFound, app.CodeNotFound},

	service.ErrCodeDelivery: {http.StatusBadGateway, app.CodeDeliveryFailed},

	service.ErrTokenCreationFailed: {http.StatusInternalServerError, app.CodeInternal},
	store.ErrBuildingSQLQuery:      {http.StatusInternalServerError, app.CodeInternal},
	store.ErrExecutingQuery:        {http.StatusInternalServerError, app.CodeInternal},
	store.ErrExecutingStatement:    {http.StatusInternalServerError, app.CodeInternal},
	store.ErrScanningRows:          {http.StatusInternalServerError, app.CodeInternal},
}

// statusFromError returns the HTTP status and the error code of the body for
// err. Unknown errors are internal.
func statusFromError(err error) (int, string) {
	for target, s := range errorStatusMap {
		if errors.Is(err, target) {
			return s.status, s.code
		}
	}
	return http.StatusInternalServerError, app.CodeInternal
}
