package tui

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-device-trust/internal/flow"
)

const dashboard = "/dashboard"

type fakeFlow struct {
	mu      sync.Mutex
	snap    flow.Snapshot
	events  []flow.Event
	err     error
	updates chan flow.Snapshot
}

func newFakeFlow(snap flow.Snapshot) *fakeFlow {
	return &fakeFlow{snap: snap, updates: make(chan flow.Snapshot, 1)}
}

func (f *fakeFlow) Dispatch(ev flow.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	return f.err
}

func (f *fakeFlow) Snapshot() flow.Snapshot { return f.snap }

func (f *fakeFlow) Updates() <-chan flow.Snapshot { return f.updates }

func (f *fakeFlow) Events() []flow.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]flow.Event(nil), f.events...)
}

func newModel(snap flow.Snapshot, path string) (RootModel, *fakeFlow) {
	f := newFakeFlow(snap)
	m := NewRootModel(context.Background(), f, flow.NewLocation(path, nil), Options{DashboardPath: dashboard}, func() (string, error) {
		return "123456", nil
	})
	m.input.Cursor.SetMode(cursor.CursorStatic)
	return m, f
}

// press feeds one key through Update and runs the command it returns.
func press(t *testing.T, m RootModel, msg tea.KeyMsg) (RootModel, tea.Msg) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(RootModel)
	require.True(t, ok)
	if cmd == nil {
		return model, nil
	}
	return model, cmd()
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

// ── Keys ────────────────────────────────────────────────────────────────────

func TestLoginOptions_TypedIdentifierIsSubmitted(t *testing.T) {
	m, f := newModel(flow.Snapshot{State: flow.StateLoginOptions}, flow.LoginPath)

	m, _ = press(t, m, runes("alice"))
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, []flow.Event{flow.SubmitIdentifier{Value: "alice"}}, f.Events())
}

func TestLoginOptions_Shortcuts(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
		want flow.Event
	}{
		{name: "register by handle", key: tea.KeyMsg{Type: tea.KeyCtrlR}, want: flow.StartRegistration{HandleFirst: true}},
		{name: "register by phone", key: tea.KeyMsg{Type: tea.KeyCtrlT}, want: flow.StartRegistration{HandleFirst: false}},
		{name: "back", key: tea.KeyMsg{Type: tea.KeyEsc}, want: flow.Back{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, f := newModel(flow.Snapshot{State: flow.StateLoginOptions}, flow.LoginPath)
			press(t, m, tt.key)
			assert.Equal(t, []flow.Event{tt.want}, f.Events())
		})
	}
}

func TestLoginOptions_PasskeyOnlyWhenEnabled(t *testing.T) {
	m, f := newModel(flow.Snapshot{State: flow.StateLoginOptions}, flow.LoginPath)
	press(t, m, tea.KeyMsg{Type: tea.KeyCtrlK})
	assert.Empty(t, f.Events())

	m.options.Passkeys = true
	m, _ = press(t, m, runes("bob"))
	press(t, m, tea.KeyMsg{Type: tea.KeyCtrlK})
	assert.Equal(t, []flow.Event{flow.UsePasskey{Handle: "bob"}}, f.Events())
}

func TestExistingAccountAlert(t *testing.T) {
	snap := flow.Snapshot{State: flow.StateLoginOptions, Alert: flow.AlertExistingAccount, Handle: "alice"}

	m, f := newModel(snap, flow.LoginPath)
	press(t, m, runes("y"))
	assert.Equal(t, []flow.Event{flow.ChooseSMS{}}, f.Events())

	m, f = newModel(snap, flow.LoginPath)
	press(t, m, runes("n"))
	assert.Equal(t, []flow.Event{flow.NotMe{}}, f.Events())

	m, f = newModel(snap, flow.LoginPath)
	m.options.Passkeys = true
	press(t, m, tea.KeyMsg{Type: tea.KeyCtrlK})
	assert.Equal(t, []flow.Event{flow.UsePasskey{Handle: "alice"}}, f.Events())
}

func TestEscDismissesErrorFirst(t *testing.T) {
	m, f := newModel(flow.Snapshot{State: flow.StatePhoneEntry, Error: "Invalid phone number"}, flow.LoginPath)
	press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, []flow.Event{flow.DismissError{}}, f.Events())
}

func TestVerification_Keys(t *testing.T) {
	m, f := newModel(flow.Snapshot{State: flow.StateVerification}, flow.LoginPath)

	press(t, m, runes("12"))
	press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	press(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, []flow.Event{
		flow.Digit{Value: '1'},
		flow.Digit{Value: '2'},
		flow.Backspace{},
		flow.ResendCode{},
		flow.SubmitCode{},
	}, f.Events())
}

func TestVerification_PasteFromClipboard(t *testing.T) {
	m, f := newModel(flow.Snapshot{State: flow.StateVerification}, flow.LoginPath)

	m, msg := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlV})
	require.Equal(t, clipboardMsg{text: "123456"}, msg)

	_, cmd := m.Update(msg)
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, []flow.Event{flow.Paste{Value: "123456"}}, f.Events())
}

func TestVerification_ClipboardFailureShowsNotice(t *testing.T) {
	m, f := newModel(flow.Snapshot{State: flow.StateVerification}, flow.LoginPath)

	next, _ := m.Update(clipboardMsg{err: errors.New("exec: \"xclip\": executable file not found")})
	m = next.(RootModel)
	assert.Contains(t, m.View(), "clipboard is not available")
	assert.Empty(t, f.Events())
}

func TestPINEntry_Keys(t *testing.T) {
	m, f := newModel(flow.Snapshot{State: flow.StatePINEntry, Handle: "alice"}, flow.LoginPath)

	press(t, m, runes("7"))
	press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Equal(t, []flow.Event{flow.Digit{Value: '7'}, flow.ChooseSMS{}}, f.Events())
}

func TestSuggestions_PickWithCursor(t *testing.T) {
	m, f := newModel(flow.Snapshot{State: flow.StateHandleSuggestions, Suggestions: []string{"alice1", "alice2"}}, flow.LoginPath)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.cursor)
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, []flow.Event{flow.PickSuggestion{Handle: "alice2"}}, f.Events())
}

func TestSuggestions_TypedHandleWins(t *testing.T) {
	m, f := newModel(flow.Snapshot{State: flow.StateHandleSuggestions, Suggestions: []string{"alice1"}}, flow.LoginPath)

	m, _ = press(t, m, runes("alicia"))
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, []flow.Event{flow.SubmitHandle{Value: "alicia"}}, f.Events())
}

func TestConfirmScreens(t *testing.T) {
	tests := []struct {
		state flow.State
		key   string
		want  flow.Event
	}{
		{state: flow.StateRegistrationTransition, key: "y", want: flow.AcceptRegistration{}},
		{state: flow.StateRegistrationTransition, key: "n", want: flow.Back{}},
		{state: flow.StateDeviceRegistration, key: "y", want: flow.ConfirmDeviceRegistration{}},
		{state: flow.StateDeviceNotRegistered, key: "n", want: flow.Back{}},
	}
	for _, tt := range tests {
		t.Run(string(tt.state)+"/"+tt.key, func(t *testing.T) {
			m, f := newModel(flow.Snapshot{State: tt.state}, flow.LoginPath)
			press(t, m, runes(tt.key))
			assert.Equal(t, []flow.Event{tt.want}, f.Events())
		})
	}
}

func TestDashboard_Logout(t *testing.T) {
	m, f := newModel(flow.Snapshot{State: flow.StateLoginSuccess, Handle: "alice"}, dashboard)

	assert.Contains(t, m.View(), "Signed in as @alice")
	press(t, m, runes("l"))
	assert.Equal(t, []flow.Event{flow.Logout{}}, f.Events())
}

func TestDispatchErrorBecomesNotice(t *testing.T) {
	m, f := newModel(flow.Snapshot{State: flow.StateLoginOptions, Loading: true}, flow.LoginPath)
	f.err = flow.ErrBusy

	m, msg := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, dispatchErrMsg{err: flow.ErrBusy}, msg)

	next, _ := m.Update(msg)
	m = next.(RootModel)
	assert.Contains(t, m.View(), "Still working")

	// the next key clears it
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.NotContains(t, m.View(), "Still working")
}

// ── Global keys ─────────────────────────────────────────────────────────────

func TestQuit(t *testing.T) {
	m, _ := newModel(flow.Snapshot{State: flow.StateLoginOptions}, flow.LoginPath)

	m, msg := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, m.quitByUser)
	assert.Equal(t, tea.QuitMsg{}, msg)
}

func TestBuildInfoWindow(t *testing.T) {
	m, f := newModel(flow.Snapshot{State: flow.StateLoginOptions}, flow.LoginPath)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyF1})
	assert.True(t, m.showBuildInfo)

	// keys do not reach the flow while the window is open
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, f.Events())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showBuildInfo)
}

// ── Snapshots ───────────────────────────────────────────────────────────────

func TestSnapshotUpdatesResetInput(t *testing.T) {
	m, f := newModel(flow.Snapshot{State: flow.StateLoginOptions}, flow.LoginPath)
	m, _ = press(t, m, runes("alice"))

	// same screen keeps what was typed
	next, _ := m.Update(snapshotMsg{snap: flow.Snapshot{State: flow.StateLoginOptions, Error: "User not found"}})
	m = next.(RootModel)
	assert.Equal(t, "alice", m.inputValue())
	assert.Contains(t, m.View(), "User not found")

	next, cmd := m.Update(snapshotMsg{snap: flow.Snapshot{State: flow.StatePhoneEntry}})
	m = next.(RootModel)
	assert.Empty(t, m.inputValue())
	require.NotNil(t, cmd)

	// the returned command waits for the next snapshot
	f.updates <- flow.Snapshot{State: flow.StateVerification, Digits: "12"}
	msg := cmd()
	require.Equal(t, snapshotMsg{snap: flow.Snapshot{State: flow.StateVerification, Digits: "12"}}, msg)

	next, _ = m.Update(msg)
	assert.Contains(t, next.View(), "[ 1 2 _ _ _ _ ]")
}

func TestViews(t *testing.T) {
	tests := []struct {
		name string
		snap flow.Snapshot
		want []string
	}{
		{name: "checking", snap: flow.Snapshot{State: flow.StateChecking}, want: []string{"Checking this device"}},
		{name: "bound device", snap: flow.Snapshot{State: flow.StateLoginOptions, BoundHandle: "alice"}, want: []string{"belongs to @alice"}},
		{name: "pin masked", snap: flow.Snapshot{State: flow.StatePINEntry, Handle: "alice", Digits: "12"}, want: []string{"@alice", "[ • • _ _ ]"}},
		{name: "suggestions", snap: flow.Snapshot{State: flow.StateHandleSuggestions, Suggestions: []string{"alice7"}}, want: []string{"HANDLE TAKEN", "alice7"}},
		{name: "loading", snap: flow.Snapshot{State: flow.StatePhoneEntry, Loading: true}, want: []string{"Please wait"}},
		{name: "verified", snap: flow.Snapshot{State: flow.StateVerificationSuccess, Handle: "bob"}, want: []string{"Signed in as @bob", "dashboard"}},
		{name: "alert", snap: flow.Snapshot{State: flow.StateLoginOptions, Alert: flow.AlertExistingAccount, Info: "An account already uses this phone"}, want: []string{"An account already uses this phone", "not me"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newModel(tt.snap, flow.LoginPath)
			view := m.View()
			for _, w := range tt.want {
				assert.Contains(t, view, w)
			}
		})
	}
}
