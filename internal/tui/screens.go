package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-device-trust/internal/flow"
	"github.com/MKhiriev/go-device-trust/internal/validators"
)

// handleKey turns a key into the flow event of the current screen. Keys
// that mean nothing on the screen go to the text input.
func (r RootModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := r.snap

	if key.Matches(msg, keys.esc) {
		if s.Error != "" {
			return r, r.dispatch(flow.DismissError{})
		}
		return r, r.dispatch(flow.Back{})
	}

	if r.onDashboard() || s.State.Authenticated() {
		if key.Matches(msg, keys.logout) {
			return r, r.dispatch(flow.Logout{})
		}
		return r, nil
	}

	switch s.State {
	case flow.StateLoginOptions:
		if s.Alert == flow.AlertExistingAccount {
			switch {
			case key.Matches(msg, keys.yes):
				return r, r.dispatch(flow.ChooseSMS{})
			case key.Matches(msg, keys.no):
				return r, r.dispatch(flow.NotMe{})
			case r.options.Passkeys && key.Matches(msg, keys.passkey):
				return r, r.dispatch(flow.UsePasskey{Handle: s.Handle})
			}
			return r, nil
		}
		switch {
		case key.Matches(msg, keys.enter):
			return r, r.dispatch(flow.SubmitIdentifier{Value: r.inputValue()})
		case key.Matches(msg, keys.register):
			return r, r.dispatch(flow.StartRegistration{HandleFirst: true})
		case key.Matches(msg, keys.registerBy):
			return r, r.dispatch(flow.StartRegistration{HandleFirst: false})
		case r.options.Passkeys && key.Matches(msg, keys.passkey):
			return r, r.dispatch(flow.UsePasskey{Handle: r.inputValue()})
		}

	case flow.StateHandleEntry, flow.StateCreateHandle:
		if key.Matches(msg, keys.enter) {
			return r, r.dispatch(flow.SubmitHandle{Value: r.inputValue()})
		}

	case flow.StatePhoneEntry:
		if key.Matches(msg, keys.enter) {
			return r, r.dispatch(flow.SubmitPhone{Value: r.inputValue()})
		}

	case flow.StateHandleSuggestions:
		switch {
		case key.Matches(msg, keys.up):
			if r.cursor > 0 {
				r.cursor--
			}
			return r, nil
		case key.Matches(msg, keys.down):
			if r.cursor < len(s.Suggestions)-1 {
				r.cursor++
			}
			return r, nil
		case key.Matches(msg, keys.enter):
			if typed := r.inputValue(); typed != "" {
				return r, r.dispatch(flow.SubmitHandle{Value: typed})
			}
			if r.cursor < len(s.Suggestions) {
				return r, r.dispatch(flow.PickSuggestion{Handle: s.Suggestions[r.cursor]})
			}
			return r, nil
		}

	case flow.StateVerification:
		switch {
		case key.Matches(msg, keys.enter):
			return r, r.dispatch(flow.SubmitCode{})
		case key.Matches(msg, keys.backspace):
			return r, r.dispatch(flow.Backspace{})
		case key.Matches(msg, keys.resend):
			return r, r.dispatch(flow.ResendCode{})
		case key.Matches(msg, keys.paste):
			return r, r.pasteCode()
		case msg.Type == tea.KeyRunes && msg.Paste:
			return r, r.dispatch(flow.Paste{Value: string(msg.Runes)})
		}
		return r, r.digits(msg)

	case flow.StatePINEntry:
		switch {
		case key.Matches(msg, keys.backspace):
			return r, r.dispatch(flow.Backspace{})
		case key.Matches(msg, keys.sms):
			return r, r.dispatch(flow.ChooseSMS{})
		}
		return r, r.digits(msg)

	case flow.StateRegistrationTransition:
		switch {
		case key.Matches(msg, keys.yes):
			return r, r.dispatch(flow.AcceptRegistration{})
		case key.Matches(msg, keys.no):
			return r, r.dispatch(flow.Back{})
		}
		return r, nil

	case flow.StateDeviceRegistration, flow.StateDeviceNotRegistered:
		switch {
		case key.Matches(msg, keys.yes):
			return r, r.dispatch(flow.ConfirmDeviceRegistration{})
		case key.Matches(msg, keys.no):
			return r, r.dispatch(flow.Back{})
		}
		return r, nil

	default:
		return r, nil
	}

	var cmd tea.Cmd
	r.input, cmd = r.input.Update(msg)
	return r, cmd
}

// digits dispatches every typed rune as a digit in order; the machine drops
// anything that is not one.
func (r RootModel) digits(msg tea.KeyMsg) tea.Cmd {
	if msg.Type != tea.KeyRunes || len(msg.Runes) == 0 {
		return nil
	}
	ctrl, runes := r.flow, msg.Runes
	return func() tea.Msg {
		for _, d := range runes {
			if err := ctrl.Dispatch(flow.Digit{Value: d}); err != nil {
				return dispatchErrMsg{err: err}
			}
		}
		return nil
	}
}

func (r RootModel) screen() string {
	s := r.snap
	var (
		title, hotKeys string
		b              strings.Builder
	)

	switch {
	case r.onDashboard():
		title = "DASHBOARD"
		fmt.Fprintf(&b, "Signed in as @%s\n", firstNonEmpty(s.Handle, s.BoundHandle, "you"))
		hotKeys = "l: sign out"

	case s.State == flow.StateChecking:
		title = "SIGN IN"
		b.WriteString("Checking this device...\n")

	case s.State == flow.StateLoginOptions:
		title = "SIGN IN"
		if s.BoundHandle != "" {
			fmt.Fprintf(&b, "This device belongs to @%s\n\n", s.BoundHandle)
		}
		b.WriteString("Handle or phone │ [")
		b.WriteString(r.input.View())
		b.WriteString("]\n")
		hotKeys = "enter: continue │ ctrl+r: new account by handle │ ctrl+t: new account by phone"
		if r.options.Passkeys {
			hotKeys += " │ ctrl+k: passkey"
		}

	case s.State == flow.StateHandleEntry || s.State == flow.StateCreateHandle:
		title = "CHOOSE A HANDLE"
		if s.Verified {
			fmt.Fprintf(&b, "%s is verified. One last step.\n\n", firstNonEmpty(s.MaskedPhone, "Your phone"))
		}
		b.WriteString("Handle │ @[")
		b.WriteString(r.input.View())
		b.WriteString("]\n")
		hotKeys = "enter: continue │ esc: back"

	case s.State == flow.StatePhoneEntry:
		title = "PHONE NUMBER"
		if s.Registration && s.Handle != "" {
			fmt.Fprintf(&b, "Creating @%s\n\n", s.Handle)
		}
		b.WriteString("Phone │ [")
		b.WriteString(r.input.View())
		b.WriteString("]\n")
		hotKeys = "enter: send code │ esc: back"

	case s.State == flow.StateHandleSuggestions:
		title = "HANDLE TAKEN"
		b.WriteString(renderMenu("Available", s.Suggestions, r.cursor))
		b.WriteString("\n\nOr type another │ @[")
		b.WriteString(r.input.View())
		b.WriteString("]\n")
		hotKeys = "↑/↓: choose │ enter: use │ esc: back"

	case s.State == flow.StateVerification:
		title = "ENTER THE CODE"
		b.WriteString(renderDigits(s.Digits, validators.CodeLength, false))
		b.WriteString("\n")
		hotKeys = "enter: verify │ ctrl+v: paste │ ctrl+r: resend │ esc: back"

	case s.State == flow.StatePINEntry:
		title = "ENTER YOUR PIN"
		fmt.Fprintf(&b, "@%s\n\n", firstNonEmpty(s.Handle, s.Identifier))
		b.WriteString(renderDigits(s.Digits, validators.PINLength, true))
		b.WriteString("\n")
		hotKeys = "ctrl+s: use SMS instead │ esc: back"

	case s.State == flow.StateRegistrationTransition:
		title = "CREATE ACCOUNT"
		b.WriteString(confirmModel{message: "Create a new account with " + s.Identifier + "?", yes: "create", no: "back"}.View())
		b.WriteString("\n")

	case s.State == flow.StateDeviceRegistration || s.State == flow.StateDeviceNotRegistered:
		title = "NEW DEVICE"
		if s.State == flow.StateDeviceRegistration {
			b.WriteString("This device is new for this account.\n")
		}
		b.WriteString(confirmModel{message: "Verify with an SMS code to add this device?", yes: "send code", no: "back"}.View())
		b.WriteString("\n")

	case s.State.Authenticated():
		title = "WELCOME"
		fmt.Fprintf(&b, "Signed in as @%s\n", firstNonEmpty(s.Handle, s.BoundHandle, "you"))
		if s.State == flow.StateVerificationSuccess {
			b.WriteString("Taking you to your dashboard...\n")
		}
		hotKeys = "l: sign out"
	}

	if s.Alert == flow.AlertExistingAccount {
		yes := "verify via SMS"
		if r.options.Passkeys {
			yes += " (ctrl+k: passkey)"
		}
		b.WriteString("\n")
		b.WriteString(confirmModel{message: firstNonEmpty(s.Info, "Is this you?"), yes: yes, no: "not me"}.View())
		b.WriteString("\n")
	} else if s.Info != "" {
		b.WriteString("\n")
		b.WriteString(infoStyle.Render(s.Info))
		b.WriteString("\n")
	}

	if s.Loading {
		b.WriteString("\nPlease wait...\n")
	}
	if s.Error != "" {
		b.WriteString("\n")
		b.WriteString(errorOverlayModel{message: s.Error}.View())
		b.WriteString("\n")
	}
	if r.notice != "" {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(r.notice))
		b.WriteString("\n")
	}

	return renderPage(title, strings.TrimRight(b.String(), "\n"), hotKeys)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
