// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package flow is the progressive-authentication state machine.
//
// [Machine.Transition] is a pure function from a [Snapshot] and an [Event] to
// the next snapshot and at most one [Effect]. [Controller] owns the current
// snapshot of one tab, runs effects through the auth service under a safety
// timeout and feeds their outcome back as [Result] events.
package flow

import (
	"github.com/MKhiriev/go-device-trust/internal/validators"
	"github.com/MKhiriev/go-device-trust/models"
)

// State is the screen a tab is on. It is never persisted: a restart always
// goes through StateChecking again.
type State string

const (
	StateChecking               State = "checking"
	StateLoginOptions           State = "loginOptions"
	StateHandleEntry            State = "handleEntry"
	StatePhoneEntry             State = "phoneEntry"
	StateVerification           State = "verification"
	StateCreateHandle           State = "createHandle"
	StateVerificationSuccess    State = "verificationSuccess"
	StatePINEntry               State = "pinEntry"
	StateDeviceRegistration     State = "deviceRegistration"
	StateHandleSuggestions      State = "handleSuggestions"
	StateRegistrationTransition State = "registrationTransition"
	StateDeviceNotRegistered    State = "deviceNotRegistered"
	StateLoginSuccess           State = "loginSuccess"
)

// Authenticated reports whether the state is past a successful sign-in.
func (s State) Authenticated() bool {
	return s == StateVerificationSuccess || s == StateLoginSuccess
}

// Alert is a modal shown on top of the login options.
type Alert int

const (
	AlertNone Alert = iota
	// AlertExistingAccount is the "welcome back" prompt offering SMS
	// verification or "not me".
	AlertExistingAccount
)

// Snapshot is everything the screens need to render one state. Fields not
// relevant to State keep their zero value.
type Snapshot struct {
	State State

	// Registration is set once the user chose to create an account.
	Registration bool
	// HandleFirst records which identifier the registration started with.
	HandleFirst bool

	// Identifier is the last submitted identifier, normalised.
	Identifier     string
	IdentifierKind validators.IdentifierKind

	Handle string
	Phone  string
	// BoundHandle is the user of the complete device header at start.
	BoundHandle string
	MaskedPhone string
	GUID        string

	// Trust verdict of the last lookup.
	IsYourDevice bool
	Confidence   models.DeviceConfidence

	Alert Alert

	// Digits holds the PIN or SMS code typed so far.
	Digits      string
	AutoSubmit  bool
	PINAttempts int

	Suggestions []string

	// Verified is set once the SMS code was accepted, before the handle is
	// created.
	Verified bool
	// DeviceFlow marks an SMS challenge that binds this device.
	DeviceFlow bool

	Method     models.AuthMethod
	RedirectTo string

	Loading bool
	Error   string
	Info    string

	// lookup is the kind of identifier the pending lookup checks.
	lookup validators.IdentifierKind
}

// identifierRequest builds the contact part of a verify_login request from
// whatever is known about the user.
func (s Snapshot) identifierRequest() models.VerifyLoginRequest {
	return models.VerifyLoginRequest{
		Handle:       s.Handle,
		Phone:        s.Phone,
		HandleFirst:  s.HandleFirst,
		Registration: s.Registration,
		DeviceFlow:   s.DeviceFlow,
	}
}

func (s Snapshot) challengeIdentifier() string {
	if s.Identifier != "" {
		return s.Identifier
	}
	if s.Handle != "" {
		return s.Handle
	}
	return s.Phone
}
