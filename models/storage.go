// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Scope names one of the two key/value areas a tab can use.
type Scope string

const (
	// ScopeLocal is shared by every tab and survives restarts.
	ScopeLocal Scope = "local"
	// ScopeSession belongs to a single tab and lives as long as it does.
	ScopeSession Scope = "session"
)

// Local scope keys.
const (
	KeyDeviceHeader      = "superapp_device_header"
	KeyAuthenticatedUser = "authenticated_user"
	KeyLogoutState       = "logout_state"
	KeyPreviousHandle    = "previous_handle"
)

// Session scope keys.
const (
	KeyDeviceKey              = "device_key"
	KeyDeviceSession          = "device_session"
	KeyCurrentHandle          = "current_handle"
	KeyCurrentPhone           = "current_phone"
	KeyCurrentGUID            = "current_guid"
	KeyLastDeviceCheck        = "last_device_check"
	KeyAuthToken              = "auth_token"
	KeyVerificationInProgress = "verification_in_progress"
	KeyDeviceRegistrationFlow = "device_registration_flow"
	KeyHandleFirst            = "handle_first"
)

// SessionAuthenticated is the sentinel stored under [KeyDeviceSession].
const SessionAuthenticated = "authenticated"

// StorageEvent describes a mutation of the local scope observed by another tab.
// A removal has an empty NewValue and Removed set.
type StorageEvent struct {
	Key      string `json:"key"`
	OldValue string `json:"old_value,omitempty"`
	NewValue string `json:"new_value,omitempty"`
	Removed  bool   `json:"removed,omitempty"`

	// Origin identifies the tab that performed the write.
	Origin string `json:"origin"`
}
