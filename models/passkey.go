// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// PasskeyOptions is returned by the webauthn options endpoints. Options holds
// the raw publicKey creation or request options and is passed unchanged to
// the authenticator.
type PasskeyOptions struct {
	SessionID string          `json:"session_id"`
	Options   json.RawMessage `json:"options"`
}

// PasskeyOptionsRequest asks for a registration or login challenge.
type PasskeyOptionsRequest struct {
	Handle string `json:"handle,omitempty"`
	GUID   string `json:"guid,omitempty"`
}

// PasskeyVerifyRequest carries the authenticator output back to the backend.
type PasskeyVerifyRequest struct {
	SessionID  string          `json:"session_id"`
	Credential json.RawMessage `json:"credential"`
}
