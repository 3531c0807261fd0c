// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AuthStatus is the value of the "status" field in backend auth responses.
type AuthStatus string

const (
	StatusAuthenticated      AuthStatus = "authenticated"
	StatusNeedsVerification  AuthStatus = "needs_verification"
	StatusVerificationNeeded AuthStatus = "verification_needed"
	StatusNeedsHandle        AuthStatus = "needs_handle"
	StatusShowOptions        AuthStatus = "show_options"
	StatusLoggedOut          AuthStatus = "logged_out"
	StatusCodeSent           AuthStatus = "code_sent"
	StatusError              AuthStatus = "error"
)

// RequiresVerification reports whether the status asks for an SMS challenge.
// The backend uses both spellings.
func (s AuthStatus) RequiresVerification() bool {
	return s == StatusNeedsVerification || s == StatusVerificationNeeded
}

// DeviceConfidence is the backend-reported trust tier of the current device
// for a given identifier.
type DeviceConfidence string

const (
	ConfidenceHigh   DeviceConfidence = "high"
	ConfidenceMedium DeviceConfidence = "medium"
	ConfidenceLow    DeviceConfidence = "low"
)

// AuthResponse is the common body returned by every auth endpoint. Fields not
// relevant to a particular endpoint are left empty.
type AuthResponse struct {
	Status  AuthStatus `json:"status,omitempty"`
	Error   string     `json:"error,omitempty"`
	Message string     `json:"message,omitempty"`

	// Exists is set by check_handle and check_phone.
	Exists bool `json:"exists,omitempty"`

	Handle      string `json:"handle,omitempty"`
	MaskedPhone string `json:"masked_phone,omitempty"`
	GUID        string `json:"guid,omitempty"`

	DeviceKey        string            `json:"device_key,omitempty"`
	DeviceHeaderData *DeviceHeaderData `json:"device_header_data,omitempty"`

	IsYourDevice     bool             `json:"is_your_device,omitempty"`
	DeviceConfidence DeviceConfidence `json:"device_confidence,omitempty"`

	// PINAvailable is nil when the endpoint did not report PIN enrolment.
	PINAvailable *bool `json:"pin_available,omitempty"`

	RedirectTo  string   `json:"redirect_to,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Authenticated reports whether the response completes a sign-in.
func (r AuthResponse) Authenticated() bool {
	return r.Status == StatusAuthenticated
}

// PINEnrolled reports whether the backend declared a PIN for the identifier.
func (r AuthResponse) PINEnrolled() bool {
	return r.PINAvailable != nil && *r.PINAvailable
}

// VerifyLoginRequest starts an SMS challenge for an existing or new identity.
type VerifyLoginRequest struct {
	Handle       string `json:"handle,omitempty"`
	Phone        string `json:"phone,omitempty"`
	HandleFirst  bool   `json:"handle_first"`
	Registration bool   `json:"registration,omitempty"`
	DeviceFlow   bool   `json:"device_registration_flow,omitempty"`
}

// FastAuthenticateRequest asks for challenge-free sign-in of a high-confidence
// device.
type FastAuthenticateRequest struct {
	Identifier string `json:"identifier"`
	DeviceKey  string `json:"device_key"`
}

// VerifyCodeRequest submits the 6-digit SMS code.
type VerifyCodeRequest struct {
	Handle      string `json:"handle,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Code        string `json:"code"`
	HandleFirst bool   `json:"handle_first"`
	DeviceKey   string `json:"device_key,omitempty"`
}

// VerifyPINRequest submits the 4-digit PIN.
type VerifyPINRequest struct {
	Identifier string `json:"identifier"`
	PIN        string `json:"pin"`
	DeviceKey  string `json:"device_key,omitempty"`
}

// CreateHandleRequest finishes phone-first registration.
type CreateHandleRequest struct {
	Handle      string `json:"handle"`
	Phone       string `json:"phone,omitempty"`
	GUID        string `json:"guid,omitempty"`
	HandleFirst bool   `json:"handle_first"`
}

// LogoutRequest ends the backend session for the device.
type LogoutRequest struct {
	GUID      string `json:"guid,omitempty"`
	DeviceKey string `json:"device_key,omitempty"`
}

// CheckDeviceRequest opens every flow: the backend answers whether the device
// is known and, if a session is still alive, who is signed in.
type CheckDeviceRequest struct {
	DeviceKey   string            `json:"device_key,omitempty"`
	Fingerprint DeviceFingerprint `json:"fingerprint"`
}

// AuthMethod names the way a sign-in was completed.
type AuthMethod string

const (
	MethodSMS     AuthMethod = "sms"
	MethodPIN     AuthMethod = "pin"
	MethodFast    AuthMethod = "fast"
	MethodPasskey AuthMethod = "passkey"
	MethodSession AuthMethod = "session"
)
