package flow

import (
	"github.com/MKhiriev/go-device-trust/internal/validators"
	"github.com/MKhiriev/go-device-trust/models"
)

// Event drives the machine. User input, effect results and notifications
// from other tabs are all events.
type Event interface {
	event()
}

// Op names an effect. Network-bound ops are named after the backend endpoint
// so that their safety timeout can be looked up in config.
type Op string

const (
	OpNone         Op = ""
	OpCheckDevice  Op = "check_device"
	OpLookup       Op = "check_identifier"
	OpFastAuth     Op = "fast_authenticate"
	OpSendCode     Op = "verify_login"
	OpVerifyCode   Op = "verify_code"
	OpVerifyPIN    Op = "verify_pin"
	OpCreateHandle Op = "create_handle"
	OpPasskeyLogin Op = "passkey_login"
	OpComplete     Op = "complete"
	OpLogout       Op = "logout"
	OpRedirect     Op = "redirect"
)

type (
	// Start opens the flow.
	Start struct {
		PreviousHandle string
		BoundHandle    string
	}

	// SubmitIdentifier is a handle or phone typed on the login options.
	SubmitIdentifier struct{ Value string }

	// StartRegistration picks "create account", handle or phone first.
	StartRegistration struct{ HandleFirst bool }

	SubmitHandle struct{ Value string }
	SubmitPhone  struct{ Value string }

	// ChooseSMS answers the existing-account alert with "verify via SMS".
	ChooseSMS struct{}
	// NotMe answers the existing-account alert with "not me".
	NotMe struct{}

	// ConfirmDeviceRegistration continues from deviceRegistration or
	// deviceNotRegistered with an SMS challenge that binds the device.
	ConfirmDeviceRegistration struct{}

	// AcceptRegistration turns a not-found identifier into a registration.
	AcceptRegistration struct{}

	Digit     struct{ Value rune }
	Backspace struct{}
	// Paste fills the code from the clipboard.
	Paste      struct{ Value string }
	SubmitCode struct{}
	ResendCode struct{}

	PickSuggestion struct{ Handle string }

	UsePasskey struct{ Handle string }

	Back         struct{}
	DismissError struct{}
	Logout       struct{}

	// Result carries the outcome of an effect back into the machine.
	Result struct {
		Op   Op
		Resp models.AuthResponse
		Err  error
	}

	// Redirected is emitted once the post-login dwell has elapsed and the
	// tab navigated away.
	Redirected struct{}

	// RemoteLogin and RemoteLogout come from another tab.
	RemoteLogin  struct{}
	RemoteLogout struct{}
)

func (Start) event()                     {}
func (SubmitIdentifier) event()          {}
func (StartRegistration) event()         {}
func (SubmitHandle) event()              {}
func (SubmitPhone) event()               {}
func (ChooseSMS) event()                 {}
func (NotMe) event()                     {}
func (ConfirmDeviceRegistration) event() {}
func (AcceptRegistration) event()        {}
func (Digit) event()                     {}
func (Backspace) event()                 {}
func (Paste) event()                     {}
func (SubmitCode) event()                {}
func (ResendCode) event()                {}
func (PickSuggestion) event()            {}
func (UsePasskey) event()                {}
func (Back) event()                      {}
func (DismissError) event()              {}
func (Logout) event()                    {}
func (Result) event()                    {}
func (Redirected) event()                {}
func (RemoteLogin) event()               {}
func (RemoteLogout) event()              {}

// userInput reports whether ev comes from the keyboard. User input is
// refused while an effect is in flight.
func userInput(ev Event) bool {
	switch ev.(type) {
	case Result, Redirected, RemoteLogin, RemoteLogout, Start, Back, DismissError:
		return false
	default:
		return true
	}
}

// resets reports whether ev may abandon the effect in flight. It does so
// only when the transition actually leaves the screen or ends Loading.
func resets(ev Event) bool {
	switch ev.(type) {
	case Start, Back, NotMe, RemoteLogin, RemoteLogout:
		return true
	default:
		return false
	}
}

// Effect is the side effect requested by a transition. Only the fields
// relevant to Op are set.
type Effect struct {
	Op Op

	Kind       validators.IdentifierKind
	Identifier string
	PIN        string

	Login  models.VerifyLoginRequest
	Code   models.VerifyCodeRequest
	Create models.CreateHandleRequest

	Auth   models.AuthResponse
	Method models.AuthMethod

	RedirectTo string
	// Dwell asks the runner to pause on the success screen first.
	Dwell bool
}

// None reports whether the effect is empty.
func (e Effect) None() bool {
	return e.Op == OpNone
}
