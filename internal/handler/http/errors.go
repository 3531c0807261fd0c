// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of the auth middleware.
var (
	// ErrEmptyAuthorizationHeader is returned when the request has no
	// "Authorization" header.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the header is not of the
	// form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the scheme is present but the token is
	// blank.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")

	// ErrCSRFTokenMismatch is returned when X-CSRF-Token is missing or wrong.
	ErrCSRFTokenMismatch = errors.New("csrf token mismatch")
)
