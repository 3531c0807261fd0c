package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyIdentifier = errors.New("handle or phone is required")
	ErrInvalidHandle   = errors.New("handle must be 3-30 letters, digits or underscores")
	ErrInvalidPhone    = errors.New("phone must be 8-15 digits in international format")
	ErrInvalidPIN      = errors.New("PIN must be exactly 4 digits")
	ErrInvalidCode     = errors.New("code must be exactly 6 digits")
	ErrMissingContact  = errors.New("handle or phone must accompany the code")
)
