// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-device-trust/internal/adapter"
	"github.com/MKhiriev/go-device-trust/internal/app"
	"github.com/MKhiriev/go-device-trust/models"
)

var httpErrors = []error{
	adapter.ErrBadRequest,
	adapter.ErrUnauthorized,
	adapter.ErrForbidden,
	adapter.ErrNotFound,
	adapter.ErrConflict,
	adapter.ErrUnprocessable,
	adapter.ErrTooManyRequests,
	adapter.ErrInternalServerError,
	adapter.ErrBadGateway,
	adapter.ErrServiceUnavailable,
	adapter.ErrDecodeResponse,
}

// mapAdapterError translates the adapter's transport error, or an error
// status in an otherwise successful body, into a service business error.
func mapAdapterError(err error, resp models.AuthResponse) error {
	if err == nil {
		if resp.Status == models.StatusError {
			if mapped := businessError(resp.Error); mapped != nil {
				return mapped
			}
			return fmt.Errorf("%w: %s", ErrBackend, firstNonEmpty(resp.Error, resp.Message, "error status"))
		}
		return nil
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	case errors.Is(err, context.Canceled):
		return err
	}

	if !isHTTPError(err) {
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	code := resp.Error
	if code == "" {
		code = extractBody(err)
	}
	if mapped := businessError(code); mapped != nil {
		return fmt.Errorf("%w: %w", mapped, err)
	}

	switch {
	case errors.Is(err, adapter.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrIdentifierNotFound, err)
	case errors.Is(err, adapter.ErrForbidden):
		return fmt.Errorf("%w: %w", ErrDeviceNotTrusted, err)
	}

	return fmt.Errorf("%w: %w", ErrBackend, err)
}

func businessError(code string) error {
	switch code {
	case app.CodeHandleExists:
		return ErrHandleExists
	case app.CodePhoneExists:
		return ErrPhoneExists
	case app.CodeInvalidCode:
		return ErrInvalidCode
	case app.CodeInvalidPIN:
		return ErrInvalidPIN
	case app.CodeNotFound:
		return ErrIdentifierNotFound
	case app.CodeDeviceNotTrusted:
		return ErrDeviceNotTrusted
	}
	return nil
}

func isHTTPError(err error) bool {
	for _, target := range httpErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// extractBody extracts the body from a message of the form "conflict: <body>"
func extractBody(err error) string {
	msg := err.Error()
	if idx := strings.LastIndex(msg, ": "); idx != -1 {
		return msg[idx+2:]
	}
	return msg
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
