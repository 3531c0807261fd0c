package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-device-trust/internal/flow"
)

// RootModel renders the snapshot of one flow controller:
// 1) mirrors every snapshot the controller publishes
// 2) handles global ctrl+c quit and the build info window
// 3) turns keys into flow events for the current state
type RootModel struct {
	ctx           context.Context
	flow          FlowController
	nav           flow.Navigator
	options       Options
	readClipboard func() (string, error)

	snap   flow.Snapshot
	input  textinput.Model
	cursor int
	notice string

	quitByUser    bool
	showBuildInfo bool
}

// NewRootModel starts from the controller's current snapshot.
func NewRootModel(ctx context.Context, ctrl FlowController, nav flow.Navigator, options Options, readClipboard func() (string, error)) RootModel {
	input := textinput.New()
	input.CharLimit = 32
	input.Width = 40

	m := RootModel{
		ctx:           ctx,
		flow:          ctrl,
		nav:           nav,
		options:       options,
		readClipboard: readClipboard,
		input:         input,
	}
	m.setSnapshot(ctrl.Snapshot())
	return m
}

func (r RootModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, r.waitForSnapshot())
}

// waitForSnapshot blocks until the controller publishes a snapshot.
func (r RootModel) waitForSnapshot() tea.Cmd {
	updates, ctx := r.flow.Updates(), r.ctx
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case snap := <-updates:
			return snapshotMsg{snap: snap}
		}
	}
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		r.setSnapshot(msg.snap)
		return r, r.waitForSnapshot()

	case dispatchErrMsg:
		r.notice = humanizeDispatchError(msg.err)
		return r, nil

	case clipboardMsg:
		if msg.err != nil {
			r.notice = humanizeDispatchError(msg.err)
			return r, nil
		}
		return r, r.dispatch(flow.Paste{Value: msg.text})

	case tea.KeyMsg:
		// Global hotkeys for every screen.
		switch {
		case key.Matches(msg, keys.quit):
			r.quitByUser = true
			return r, tea.Quit
		case key.Matches(msg, keys.info):
			r.showBuildInfo = !r.showBuildInfo
			return r, nil
		case r.showBuildInfo:
			if key.Matches(msg, keys.esc) {
				r.showBuildInfo = false
			}
			return r, nil
		}

		r.notice = ""
		return r.handleKey(msg)
	}

	var cmd tea.Cmd
	r.input, cmd = r.input.Update(msg)
	return r, cmd
}

func (r RootModel) View() string {
	if r.showBuildInfo {
		return renderBuildInfoWindow(r.options.BuildInfo)
	}
	return r.screen()
}

// setSnapshot mirrors snap and resets the text input when the screen changed.
func (r *RootModel) setSnapshot(snap flow.Snapshot) {
	prev := r.snap
	r.snap = snap

	if prev.State == snap.State && prev.Alert == snap.Alert {
		return
	}

	r.cursor = 0
	r.input.Reset()
	r.input.Blur()
	r.input.Placeholder = ""

	switch snap.State {
	case flow.StateLoginOptions:
		if snap.Alert == flow.AlertNone {
			r.input.Placeholder = "handle or +phone"
			r.input.SetValue(snap.Handle)
			r.input.CursorEnd()
			r.input.Focus()
		}
	case flow.StateHandleEntry, flow.StateCreateHandle, flow.StateHandleSuggestions:
		r.input.Placeholder = "handle"
		r.input.Focus()
	case flow.StatePhoneEntry:
		r.input.Placeholder = "+15551234567"
		r.input.Focus()
	}
}

// dispatch sends ev to the controller off the update loop.
func (r RootModel) dispatch(ev flow.Event) tea.Cmd {
	ctrl := r.flow
	return func() tea.Msg {
		if err := ctrl.Dispatch(ev); err != nil {
			return dispatchErrMsg{err: err}
		}
		return nil
	}
}

func (r RootModel) pasteCode() tea.Cmd {
	read := r.readClipboard
	return func() tea.Msg {
		text, err := read()
		return clipboardMsg{text: text, err: err}
	}
}

func (r RootModel) onDashboard() bool {
	return r.snap.State.Authenticated() && r.nav.Current() == r.options.DashboardPath
}

func (r RootModel) inputValue() string {
	return strings.TrimSpace(r.input.Value())
}
