package flow

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/MKhiriev/go-device-trust/internal/app"
	"github.com/MKhiriev/go-device-trust/internal/config"
	"github.com/MKhiriev/go-device-trust/internal/service"
	"github.com/MKhiriev/go-device-trust/internal/validators"
	"github.com/MKhiriev/go-device-trust/models"
)

const maxHandleLength = 30

// Machine holds the constants the transitions depend on.
type Machine struct {
	PINMaxAttempts int
	DashboardPath  string
}

// NewMachine builds a Machine from the flow config.
func NewMachine(cfg config.Flow, dashboardPath string) Machine {
	attempts := cfg.PINMaxAttempts
	if attempts <= 0 {
		attempts = 3
	}
	return Machine{PINMaxAttempts: attempts, DashboardPath: dashboardPath}
}

// Transition returns the snapshot following s after ev and the effect to run.
// It is a pure function: every side effect is described by the returned
// Effect and carried out by the [Controller].
//
// Events that make no sense in the current state leave s unchanged. Back is
// ignored while the device check runs and once the user is authenticated, so
// the effect in flight keeps running.
func (m Machine) Transition(s Snapshot, ev Event) (Snapshot, Effect) {
	switch e := ev.(type) {
	case Start:
		return Snapshot{
			State:       StateChecking,
			Handle:      e.PreviousHandle,
			BoundHandle: e.BoundHandle,
			Loading:     true,
		}, Effect{Op: OpCheckDevice}

	case Result:
		return m.result(s, e)

	case Redirected:
		if s.State.Authenticated() {
			s.State = StateLoginSuccess
		}
		return s, Effect{}

	case RemoteLogin:
		if s.State == StateLoginSuccess {
			return s, Effect{}
		}
		return Snapshot{State: StateLoginSuccess, BoundHandle: s.BoundHandle, Info: app.MsgSignedInElsewhere}, Effect{}

	case RemoteLogout:
		return Snapshot{State: StateLoginOptions, Info: app.MsgLoggedOut}, Effect{}

	case Back:
		if s.State == StateChecking || s.State.Authenticated() {
			return s, Effect{}
		}
		return Snapshot{State: StateLoginOptions, Handle: s.Handle, BoundHandle: s.BoundHandle}, Effect{}

	case DismissError:
		s.Error = ""
		return s, Effect{}

	case Logout:
		if !s.State.Authenticated() {
			return s, Effect{}
		}
		return begin(s), Effect{Op: OpLogout}
	}

	switch s.State {
	case StateLoginOptions:
		return m.loginOptions(s, ev)
	case StateHandleEntry, StateCreateHandle:
		if e, ok := ev.(SubmitHandle); ok {
			return m.submitHandle(s, e.Value)
		}
	case StatePhoneEntry:
		if e, ok := ev.(SubmitPhone); ok {
			phone, err := validators.NormalizePhone(e.Value)
			if err != nil {
				return invalid(s, err), Effect{}
			}
			s.Phone = phone
			return lookup(s, validators.KindPhone, phone)
		}
	case StatePINEntry:
		return m.pinEntry(s, ev)
	case StateVerification:
		return m.verification(s, ev)
	case StateHandleSuggestions:
		switch e := ev.(type) {
		case PickSuggestion:
			return m.pickHandle(s, e.Handle)
		case SubmitHandle:
			return m.submitHandle(s, e.Value)
		}
	case StateRegistrationTransition:
		if _, ok := ev.(AcceptRegistration); ok {
			s.Registration = true
			s.HandleFirst = s.IdentifierKind == validators.KindHandle
			s.Error, s.Info = "", ""
			if s.HandleFirst {
				s.State = StatePhoneEntry
			} else {
				s.State = StateHandleEntry
			}
			return s, Effect{}
		}
	case StateDeviceRegistration, StateDeviceNotRegistered:
		if _, ok := ev.(ConfirmDeviceRegistration); ok {
			if s.State == StateDeviceNotRegistered && s.Identifier == "" {
				s.Identifier, s.IdentifierKind, s.Handle = s.BoundHandle, validators.KindHandle, s.BoundHandle
			}
			s.DeviceFlow = true
			return begin(s), Effect{Op: OpSendCode, Login: s.identifierRequest()}
		}
	}

	return s, Effect{}
}

// loginOptions handles the identifier screen. Input is classified as a
// handle or a phone locally; only a well-formed value reaches the backend.
func (m Machine) loginOptions(s Snapshot, ev Event) (Snapshot, Effect) {
	switch e := ev.(type) {
	case SubmitIdentifier:
		kind, value, err := validators.ClassifyIdentifier(e.Value)
		if err != nil {
			return invalid(s, err), Effect{}
		}
		s = Snapshot{State: StateLoginOptions, BoundHandle: s.BoundHandle, Identifier: value, IdentifierKind: kind}
		if kind == validators.KindHandle {
			s.Handle = value
		} else {
			s.Phone = value
		}
		return lookup(s, kind, value)

	case StartRegistration:
		s = Snapshot{State: StateHandleEntry, BoundHandle: s.BoundHandle, Registration: true, HandleFirst: e.HandleFirst}
		if !e.HandleFirst {
			s.State = StatePhoneEntry
		}
		return s, Effect{}

	case ChooseSMS:
		if s.Alert != AlertExistingAccount {
			return s, Effect{}
		}
		s.Alert = AlertNone
		if !s.IsYourDevice {
			s.State = StateDeviceRegistration
			return s, Effect{}
		}
		return begin(s), Effect{Op: OpSendCode, Login: s.identifierRequest()}

	case NotMe:
		return Snapshot{State: StateLoginOptions, BoundHandle: s.BoundHandle}, Effect{}

	case UsePasskey:
		handle, err := validators.NormalizeHandle(e.Handle)
		if err != nil {
			return invalid(s, err), Effect{}
		}
		s.Handle = handle
		return begin(s), Effect{Op: OpPasskeyLogin, Identifier: handle}
	}
	return s, Effect{}
}

// submitHandle continues a phone-first registration with the handle typed on
// the create-handle screen.
func (m Machine) submitHandle(s Snapshot, raw string) (Snapshot, Effect) {
	handle, err := validators.NormalizeHandle(raw)
	if err != nil {
		return invalid(s, err), Effect{}
	}
	s.Handle = handle

	if s.State == StateCreateHandle {
		return begin(s), createEffect(s)
	}
	return lookup(s, validators.KindHandle, handle)
}

// pickHandle continues a registration with a handle known to be free.
func (m Machine) pickHandle(s Snapshot, raw string) (Snapshot, Effect) {
	handle, err := validators.NormalizeHandle(raw)
	if err != nil {
		return invalid(s, err), Effect{}
	}
	s.Handle = handle
	s.Suggestions = nil

	switch {
	case s.Verified:
		s.State = StateCreateHandle
		return begin(s), createEffect(s)
	case s.HandleFirst && s.Phone == "":
		s.State = StatePhoneEntry
		s.Error, s.Info = "", ""
		return s, Effect{}
	default:
		return begin(s), Effect{Op: OpSendCode, Login: s.identifierRequest()}
	}
}

// pinEntry collects PIN digits and submits the PIN once it is complete.
func (m Machine) pinEntry(s Snapshot, ev Event) (Snapshot, Effect) {
	switch e := ev.(type) {
	case Digit:
		if !isDigit(e.Value) || len(s.Digits) >= validators.PINLength {
			return s, Effect{}
		}
		s.Digits += string(e.Value)
		s.Error = ""
		if len(s.Digits) == validators.PINLength {
			return begin(s), Effect{Op: OpVerifyPIN, Identifier: s.challengeIdentifier(), PIN: s.Digits}
		}
	case Backspace:
		s.Digits = dropLast(s.Digits)
	case ChooseSMS:
		return m.downgrade(s)
	}
	return s, Effect{}
}

// downgrade leaves the PIN screen for an SMS challenge.
func (m Machine) downgrade(s Snapshot) (Snapshot, Effect) {
	s.Digits = ""
	return begin(s), Effect{Op: OpSendCode, Login: s.identifierRequest()}
}

// verification collects SMS code digits. A complete code is submitted on its
// own until the user submits by hand; resending starts a new challenge for
// the same identifier and re-arms that.
func (m Machine) verification(s Snapshot, ev Event) (Snapshot, Effect) {
	switch e := ev.(type) {
	case Digit:
		if !isDigit(e.Value) || len(s.Digits) >= validators.CodeLength {
			return s, Effect{}
		}
		s.Digits += string(e.Value)
		s.Error = ""
		if len(s.Digits) == validators.CodeLength && s.AutoSubmit {
			return begin(s), verifyCodeEffect(s)
		}
	case Backspace:
		s.Digits = dropLast(s.Digits)
	case Paste:
		code := digitsOnly(e.Value, validators.CodeLength)
		if len(code) != validators.CodeLength {
			s.Error = app.MsgClipboardEmpty
			return s, Effect{}
		}
		s.Digits = code
		s.Error = ""
		if s.AutoSubmit {
			return begin(s), verifyCodeEffect(s)
		}
	case SubmitCode:
		s.AutoSubmit = false
		if err := validators.ValidateCode(s.Digits); err != nil {
			return invalid(s, err), Effect{}
		}
		return begin(s), verifyCodeEffect(s)
	case ResendCode:
		s.Digits = ""
		s.AutoSubmit = true
		return begin(s), Effect{Op: OpSendCode, Login: s.identifierRequest()}
	}
	return s, Effect{}
}

// result routes the outcome of an effect to the handler of its operation.
// Loading always ends here, whether the effect succeeded or not.
func (m Machine) result(s Snapshot, r Result) (Snapshot, Effect) {
	s.Loading = false

	switch r.Op {
	case OpCheckDevice:
		return m.deviceChecked(s, r)
	case OpLookup:
		return m.lookedUp(s, r)
	case OpFastAuth:
		if r.Err == nil && r.Resp.Authenticated() {
			return m.complete(s, r.Resp, models.MethodFast)
		}
		s.Alert = AlertExistingAccount
		s.Error = message(r.Err)
		return s, Effect{}
	case OpSendCode:
		return m.codeSent(s, r)
	case OpVerifyCode:
		return m.codeVerified(s, r)
	case OpVerifyPIN:
		return m.pinVerified(s, r)
	case OpCreateHandle:
		return m.handleCreated(s, r)
	case OpPasskeyLogin:
		if r.Err == nil && r.Resp.Authenticated() {
			return m.complete(s, r.Resp, models.MethodPasskey)
		}
		s.Error = message(r.Err)
		if r.Err == nil {
			s.Error = app.MsgSomethingWentWrong
		}
		return s, Effect{}
	case OpComplete:
		s.Error = ""
		if r.Err != nil {
			s.Error = message(r.Err)
		}
		if s.Method == models.MethodSession {
			s.State = StateLoginSuccess
			return s, Effect{Op: OpRedirect, RedirectTo: s.RedirectTo}
		}
		s.State = StateVerificationSuccess
		return s, Effect{Op: OpRedirect, RedirectTo: s.RedirectTo, Dwell: true}
	case OpLogout:
		next := Snapshot{State: StateLoginOptions, Info: app.MsgLoggedOut}
		if r.Err != nil {
			next.Error = message(r.Err)
		}
		return next, Effect{}
	}
	return s, Effect{}
}

// deviceChecked leaves StateChecking. A live session completes the sign-in,
// a backend demand for verification goes straight to SMS, and a bound device
// the backend no longer knows gets its own screen. Errors land on the
// identifier screen so that the user can still sign in.
func (m Machine) deviceChecked(s Snapshot, r Result) (Snapshot, Effect) {
	resp := r.Resp
	switch {
	case r.Err != nil:
		s.State = StateLoginOptions
		s.Error = message(r.Err)
		return s, Effect{}

	case resp.Authenticated():
		return m.complete(s, resp, models.MethodSession)

	case resp.Status.RequiresVerification():
		s.Handle = firstNonEmpty(resp.Handle, s.BoundHandle, s.Handle)
		s.Identifier, s.IdentifierKind = s.Handle, validators.KindHandle
		s.MaskedPhone = resp.MaskedPhone
		s.AutoSubmit = true
		return begin(s), Effect{Op: OpSendCode, Login: s.identifierRequest()}

	case s.BoundHandle != "" && !resp.IsYourDevice:
		s.State = StateDeviceNotRegistered
		s.Handle = s.BoundHandle
		s.Info = app.MsgDeviceNotRegistered
		return s, Effect{}
	}

	s.State = StateLoginOptions
	return s, Effect{}
}

// lookedUp picks the challenge for an identifier from the device confidence:
// fast sign-in for high, PIN for medium when one is set, SMS otherwise.
func (m Machine) lookedUp(s Snapshot, r Result) (Snapshot, Effect) {
	if r.Err != nil {
		s.Error = message(r.Err)
		return s, Effect{}
	}

	resp, kind := r.Resp, s.lookup

	if s.Registration {
		return m.registrationLookup(s, resp, kind)
	}

	if !resp.Exists {
		s.State = StateRegistrationTransition
		s.Info = fmt.Sprintf(app.MsgNotFound, s.Identifier)
		return s, Effect{}
	}

	s.GUID = firstNonEmpty(resp.GUID, s.GUID)
	s.Handle = firstNonEmpty(resp.Handle, s.Handle)
	s.MaskedPhone = resp.MaskedPhone
	s.IsYourDevice = resp.IsYourDevice
	s.Confidence = resp.DeviceConfidence
	s.HandleFirst = s.IdentifierKind == validators.KindHandle

	switch {
	case resp.IsYourDevice && resp.DeviceConfidence == models.ConfidenceHigh:
		return begin(s), Effect{Op: OpFastAuth, Identifier: s.Identifier}

	case resp.IsYourDevice && resp.DeviceConfidence == models.ConfidenceMedium && resp.PINEnrolled():
		s.State = StatePINEntry
		s.Digits = ""
		s.PINAttempts = 0
		return s, Effect{}
	}

	s.State = StateLoginOptions
	s.Alert = AlertExistingAccount
	s.Info = fmt.Sprintf(app.MsgWelcomeBack, firstNonEmpty(s.Handle, s.MaskedPhone, s.Identifier))
	return s, Effect{}
}

// registrationLookup handles a lookup made on the registration path, where an
// existing identifier is a conflict rather than a sign-in.
func (m Machine) registrationLookup(s Snapshot, resp models.AuthResponse, kind validators.IdentifierKind) (Snapshot, Effect) {
	if resp.Exists {
		if kind == validators.KindHandle {
			s.State = StateHandleSuggestions
			s.Suggestions = suggestions(s.Handle, resp.Suggestions)
			s.Error = app.MsgHandleTaken
			return s, Effect{}
		}
		return m.existingPhone(s, resp), Effect{}
	}

	switch {
	case kind == validators.KindHandle && s.Verified:
		s.State = StateCreateHandle
		return begin(s), createEffect(s)
	case kind == validators.KindHandle && s.HandleFirst:
		s.State = StatePhoneEntry
		return s, Effect{}
	case kind == validators.KindPhone && !s.HandleFirst:
		s.State = StateHandleEntry
		return s, Effect{}
	}

	return begin(s), Effect{Op: OpSendCode, Login: s.identifierRequest()}
}

// existingPhone stops a registration on a phone that already has an account
// and offers to sign in instead.
func (m Machine) existingPhone(s Snapshot, resp models.AuthResponse) Snapshot {
	return Snapshot{
		State:          StateLoginOptions,
		BoundHandle:    s.BoundHandle,
		Identifier:     s.Phone,
		IdentifierKind: validators.KindPhone,
		Phone:          s.Phone,
		Handle:         resp.Handle,
		MaskedPhone:    resp.MaskedPhone,
		GUID:           resp.GUID,
		IsYourDevice:   resp.IsYourDevice,
		Confidence:     resp.DeviceConfidence,
		Alert:          AlertExistingAccount,
		Error:          app.MsgPhoneTaken,
	}
}

// codeSent moves to StateVerification once a challenge is out. Conflicts on
// the registration path become suggestions or the existing-account alert.
func (m Machine) codeSent(s Snapshot, r Result) (Snapshot, Effect) {
	if r.Err != nil {
		switch {
		case errors.Is(r.Err, service.ErrHandleExists):
			s.State = StateHandleSuggestions
			s.Suggestions = suggestions(s.Handle, r.Resp.Suggestions)
			s.Error = app.MsgHandleTaken
		case errors.Is(r.Err, service.ErrPhoneExists):
			s = m.existingPhone(s, r.Resp)
		default:
			s.Error = message(r.Err)
		}
		return s, Effect{}
	}

	s.MaskedPhone = firstNonEmpty(r.Resp.MaskedPhone, s.MaskedPhone)
	switch {
	case s.State == StatePINEntry && s.PINAttempts >= m.PINMaxAttempts:
		s.Info = app.MsgPINLockedOut
	case s.State == StateVerification:
		s.Info = app.MsgCodeResent
	default:
		s.Info = fmt.Sprintf(app.MsgCodeSent, firstNonEmpty(s.MaskedPhone, "your phone"))
	}

	s.State = StateVerification
	s.Digits = ""
	s.AutoSubmit = true
	return s, Effect{}
}

// codeVerified completes the sign-in, or asks for a handle when the backend
// created an account without one. A rejected code clears the digits and
// re-arms auto-submit.
func (m Machine) codeVerified(s Snapshot, r Result) (Snapshot, Effect) {
	if r.Err != nil {
		s.Error = message(r.Err)
		s.Digits = ""
		s.AutoSubmit = true
		return s, Effect{}
	}

	resp := r.Resp
	switch {
	case resp.Authenticated():
		return m.complete(s, resp, models.MethodSMS)

	case resp.Status == models.StatusNeedsHandle:
		s.Verified = true
		s.GUID = firstNonEmpty(resp.GUID, s.GUID)
		s.State = StateCreateHandle
		s.Digits = ""
		if s.Handle != "" {
			return begin(s), createEffect(s)
		}
		return s, Effect{}
	}

	s.Error = app.MsgSomethingWentWrong
	s.Digits = ""
	s.AutoSubmit = true
	return s, Effect{}
}

// pinVerified counts failed attempts and downgrades to SMS once
// PINMaxAttempts is reached. Transport errors do not count as attempts.
func (m Machine) pinVerified(s Snapshot, r Result) (Snapshot, Effect) {
	if r.Err == nil && r.Resp.Authenticated() {
		return m.complete(s, r.Resp, models.MethodPIN)
	}

	s.Digits = ""
	if r.Err != nil && !errors.Is(r.Err, service.ErrInvalidPIN) {
		s.Error = message(r.Err)
		return s, Effect{}
	}

	s.PINAttempts++
	if s.PINAttempts >= m.PINMaxAttempts {
		return m.downgrade(s)
	}
	s.Error = app.MsgInvalidPIN + " " + strconv.Itoa(m.PINMaxAttempts-s.PINAttempts) + " attempts left."
	return s, Effect{}
}

// handleCreated completes a phone-first registration.
func (m Machine) handleCreated(s Snapshot, r Result) (Snapshot, Effect) {
	switch {
	case r.Err == nil && r.Resp.Authenticated():
		return m.complete(s, r.Resp, models.MethodSMS)
	case errors.Is(r.Err, service.ErrHandleExists):
		s.State = StateHandleSuggestions
		s.Suggestions = suggestions(s.Handle, r.Resp.Suggestions)
		s.Error = app.MsgHandleTaken
	case r.Err != nil:
		s.Error = message(r.Err)
	default:
		s.Error = app.MsgSomethingWentWrong
	}
	return s, Effect{}
}

// complete starts the post-authentication bookkeeping.
func (m Machine) complete(s Snapshot, resp models.AuthResponse, method models.AuthMethod) (Snapshot, Effect) {
	s.Method = method
	s.RedirectTo = firstNonEmpty(resp.RedirectTo, m.DashboardPath)
	s.Handle = firstNonEmpty(resp.Handle, s.Handle)
	s.GUID = firstNonEmpty(resp.GUID, s.GUID)
	s.Digits = ""
	s.Alert = AlertNone
	return begin(s), Effect{Op: OpComplete, Auth: resp, Method: method}
}

// createEffect builds the CreateHandle request from the registration data
// gathered so far.
func createEffect(s Snapshot) Effect {
	return Effect{Op: OpCreateHandle, Create: models.CreateHandleRequest{
		Handle:      s.Handle,
		Phone:       s.Phone,
		GUID:        s.GUID,
		HandleFirst: s.HandleFirst,
	}}
}

func verifyCodeEffect(s Snapshot) Effect {
	return Effect{Op: OpVerifyCode, Code: models.VerifyCodeRequest{
		Handle:      s.Handle,
		Phone:       s.Phone,
		Code:        s.Digits,
		HandleFirst: s.HandleFirst,
	}}
}

// lookup remembers which kind of identifier is being looked up so that the
// result can be routed.
func lookup(s Snapshot, kind validators.IdentifierKind, value string) (Snapshot, Effect) {
	s.lookup = kind
	return begin(s), Effect{Op: OpLookup, Kind: kind, Identifier: value}
}

// begin marks s as waiting for an effect.
func begin(s Snapshot) Snapshot {
	s.Loading = true
	s.Error = ""
	return s
}

func invalid(s Snapshot, err error) Snapshot {
	s.Error = message(err)
	return s
}

// suggestions returns the backend alternatives or, when there are none, a
// few local variations of handle.
func suggestions(handle string, fromBackend []string) []string {
	if len(fromBackend) > 0 {
		return fromBackend
	}
	if handle == "" {
		return nil
	}
	base := handle
	if len(base) > maxHandleLength-2 {
		base = base[:maxHandleLength-2]
	}
	return []string{base + "1", base + "_1", base + "42"}
}

func digitsOnly(s string, max int) string {
	out := make([]rune, 0, max)
	for _, r := range s {
		if isDigit(r) {
			out = append(out, r)
		}
	}
	if len(out) > max {
		return ""
	}
	return string(out)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func dropLast(s string) string {
	if s == "" {
		return s
	}
	return s[:len(s)-1]
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
