// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks user input before it reaches the backend.
//
// Handles, phone numbers, PINs and SMS codes are validated and normalised
// here; anything rejected is surfaced inline and never sent. [Validator] is
// the request-level entry point; the Normalize* and Validate* helpers serve
// the per-keystroke checks of the UI.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
// Implementations may perform structural validation, semantic checks,
// cross-field rules.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
