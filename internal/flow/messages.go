package flow

import (
	"errors"

	"github.com/MKhiriev/go-device-trust/internal/app"
	"github.com/MKhiriev/go-device-trust/internal/service"
	"github.com/MKhiriev/go-device-trust/internal/validators"
)

// message turns an effect or validation error into the inline text shown to
// the user.
func message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, service.ErrTimeout):
		return app.MsgTimeout
	case errors.Is(err, service.ErrNetwork):
		return app.MsgNetworkError
	case errors.Is(err, service.ErrInvalidCode):
		return app.MsgInvalidCode
	case errors.Is(err, service.ErrInvalidPIN):
		return app.MsgInvalidPIN
	case errors.Is(err, service.ErrHandleExists):
		return app.MsgHandleTaken
	case errors.Is(err, service.ErrPhoneExists):
		return app.MsgPhoneTaken
	case errors.Is(err, service.ErrPasskeyUnavailable), errors.Is(err, service.ErrPasskeysDisabled):
		return app.MsgPasskeyUnavailable
	case errors.Is(err, validators.ErrEmptyIdentifier):
		return "Enter your handle or phone number."
	case errors.Is(err, validators.ErrInvalidHandle):
		return "A handle is 3 to 30 letters, digits or underscores."
	case errors.Is(err, validators.ErrInvalidPhone):
		return "Enter the phone number with its country code."
	case errors.Is(err, validators.ErrInvalidCode):
		return "The code has 6 digits."
	case errors.Is(err, validators.ErrInvalidPIN):
		return "The PIN has 4 digits."
	default:
		return app.MsgSomethingWentWrong
	}
}
