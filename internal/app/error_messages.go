// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the message vocabulary shared by the client and the
// test backend.
//
// Code* constants are the machine-readable values of the "error" field in
// auth responses. Msg* constants are the human-readable texts shown inline on
// the login screens or written into response bodies. Keeping both in one place
// keeps the backend fake and the client mapping in step.
package app

// Backend error codes.
const (
	// CodeHandleExists is returned by verify_login and create_handle when a
	// registration picks a handle that is already taken. The response carries
	// alternative handles in "suggestions".
	CodeHandleExists = "handle_exists"

	// CodePhoneExists is returned when a registration uses a phone number
	// that already belongs to an account.
	CodePhoneExists = "phone_exists"

	// CodeInvalidCode is returned by verify_code for a wrong or expired code.
	CodeInvalidCode = "invalid_code"

	// CodeInvalidPIN is returned by verify_pin for a wrong PIN.
	CodeInvalidPIN = "invalid_pin"

	// CodeNotFound is returned when the identifier has no account.
	CodeNotFound = "not_found"

	// CodeDeviceNotTrusted is returned by fast_authenticate when the device
	// lost its high confidence between the lookup and the call.
	CodeDeviceNotTrusted = "device_not_trusted"

	// CodeInvalidRequest is returned for malformed bodies.
	CodeInvalidRequest = "invalid_request"

	// CodeUnauthorized is returned when a bearer token is missing or invalid.
	CodeUnauthorized = "unauthorized"

	// CodeCSRFMismatch is returned when X-CSRF-Token does not match the token
	// of the login page.
	CodeCSRFMismatch = "csrf_token_mismatch"

	// CodePasskeyRejected is returned when the authenticator output does not
	// verify.
	CodePasskeyRejected = "passkey_rejected"

	// CodeDeliveryFailed is returned when the SMS could not be sent.
	CodeDeliveryFailed = "code_delivery_failed"

	// CodeInternal hides unexpected backend failures.
	CodeInternal = "internal_error"
)

// Inline messages.
const (
	MsgNetworkError        = "Can't reach the server. Check your connection and try again."
	MsgTimeout             = "The server took too long to respond. Please try again."
	MsgInvalidCode         = "That code is not right. Check the SMS and try again."
	MsgInvalidPIN          = "Wrong PIN."
	MsgPINLockedOut        = "Too many wrong PINs. We sent you an SMS code instead."
	MsgHandleTaken         = "That handle is taken. Pick one of the suggestions or try another."
	MsgPhoneTaken          = "That phone number already has an account. Sign in instead."
	MsgCodeSent            = "We sent a 6-digit code to %s."
	MsgCodeResent          = "A new code is on its way."
	MsgWelcomeBack         = "Welcome back, %s! Is this you?"
	MsgNotFound            = "No account uses %s yet."
	MsgDeviceNotRegistered = "This device isn't registered to your account yet. Verify with SMS to add it."
	MsgLoggedOut           = "You have been signed out."
	MsgSignedInElsewhere   = "Signed in from another tab."
	MsgSomethingWentWrong  = "Something went wrong. Please try again."
	MsgClipboardEmpty      = "Clipboard has no 6-digit code."
	MsgPasskeyUnavailable  = "No passkey is stored on this device."
)
