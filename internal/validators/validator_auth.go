package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-device-trust/models"
)

const (
	FieldHandle     = "handle"
	FieldPhone      = "phone"
	FieldIdentifier = "identifier"
	FieldPIN        = "pin"
	FieldCode       = "code"
)

// AuthRequestValidator validates the auth request models before they are
// handed to the adapter.
type AuthRequestValidator struct {
}

func NewAuthRequestValidator() Validator {
	return &AuthRequestValidator{}
}

// Validate checks obj. When fields are given only those fields are checked;
// naming a field the request does not carry yields [ErrUnknownField].
func (v *AuthRequestValidator) Validate(_ context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.VerifyLoginRequest:
		return v.verifyLogin(value, fields...)
	case *models.VerifyLoginRequest:
		return v.verifyLogin(*value, fields...)

	case models.VerifyCodeRequest:
		return v.verifyCode(value, fields...)
	case *models.VerifyCodeRequest:
		return v.verifyCode(*value, fields...)

	case models.VerifyPINRequest:
		return v.verifyPIN(value, fields...)
	case *models.VerifyPINRequest:
		return v.verifyPIN(*value, fields...)

	case models.CreateHandleRequest:
		return v.createHandle(value, fields...)
	case *models.CreateHandleRequest:
		return v.createHandle(*value, fields...)

	case models.FastAuthenticateRequest:
		return v.identifierOnly(value.Identifier, fields...)
	case *models.FastAuthenticateRequest:
		return v.identifierOnly(value.Identifier, fields...)

	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

type check func() error

func run(checks map[string]check, fields []string) error {
	if len(fields) == 0 {
		for _, name := range []string{FieldIdentifier, FieldHandle, FieldPhone, FieldPIN, FieldCode} {
			if c, ok := checks[name]; ok {
				if err := c(); err != nil {
					return err
				}
			}
		}
		return nil
	}

	for _, name := range fields {
		c, ok := checks[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, name)
		}
		if err := c(); err != nil {
			return err
		}
	}
	return nil
}

func optionalHandle(h string) check {
	return func() error {
		if h == "" {
			return nil
		}
		_, err := NormalizeHandle(h)
		return err
	}
}

func optionalPhone(p string) check {
	return func() error {
		if p == "" {
			return nil
		}
		_, err := NormalizePhone(p)
		return err
	}
}

func (v *AuthRequestValidator) verifyLogin(req models.VerifyLoginRequest, fields ...string) error {
	return run(map[string]check{
		FieldIdentifier: func() error {
			if req.Handle == "" && req.Phone == "" {
				return ErrEmptyIdentifier
			}
			return nil
		},
		FieldHandle: optionalHandle(req.Handle),
		FieldPhone:  optionalPhone(req.Phone),
	}, fields)
}

func (v *AuthRequestValidator) verifyCode(req models.VerifyCodeRequest, fields ...string) error {
	return run(map[string]check{
		FieldIdentifier: func() error {
			if req.Handle == "" && req.Phone == "" {
				return ErrMissingContact
			}
			return nil
		},
		FieldHandle: optionalHandle(req.Handle),
		FieldPhone:  optionalPhone(req.Phone),
		FieldCode:   func() error { return ValidateCode(req.Code) },
	}, fields)
}

func (v *AuthRequestValidator) verifyPIN(req models.VerifyPINRequest, fields ...string) error {
	return run(map[string]check{
		FieldIdentifier: func() error {
			_, _, err := ClassifyIdentifier(req.Identifier)
			return err
		},
		FieldPIN: func() error { return ValidatePIN(req.PIN) },
	}, fields)
}

func (v *AuthRequestValidator) createHandle(req models.CreateHandleRequest, fields ...string) error {
	return run(map[string]check{
		FieldHandle: func() error {
			_, err := NormalizeHandle(req.Handle)
			return err
		},
		FieldPhone: optionalPhone(req.Phone),
	}, fields)
}

func (v *AuthRequestValidator) identifierOnly(identifier string, fields ...string) error {
	return run(map[string]check{
		FieldIdentifier: func() error {
			_, _, err := ClassifyIdentifier(identifier)
			return err
		},
	}, fields)
}
