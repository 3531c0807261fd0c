package tui

import (
	"context"
	"errors"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-device-trust/internal/flow"
	"github.com/MKhiriev/go-device-trust/internal/logger"
	"github.com/MKhiriev/go-device-trust/models"
)

var ErrUserQuit = errors.New("user quit")

// FlowController is the part of [flow.Controller] the screens use.
type FlowController interface {
	Dispatch(ev flow.Event) error
	Snapshot() flow.Snapshot
	Updates() <-chan flow.Snapshot
}

// Options tunes the screens of one tab.
type Options struct {
	// DashboardPath is the page shown after sign-in.
	DashboardPath string
	// Passkeys shows the passkey shortcut.
	Passkeys  bool
	BuildInfo models.AppBuildInfo
}

type TUI struct {
	flow    FlowController
	nav     flow.Navigator
	options Options
	logger  *logger.Logger
}

func New(ctrl FlowController, nav flow.Navigator, options Options, log *logger.Logger) *TUI {
	return &TUI{flow: ctrl, nav: nav, options: options, logger: log}
}

// Run shows the unified login until the user quits or ctx is cancelled.
// Quitting with ctrl+c returns [ErrUserQuit].
func (t *TUI) Run(ctx context.Context) error {
	root := NewRootModel(ctx, t.flow, t.nav, t.options, clipboard.ReadAll)

	finalModel, err := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		t.logger.Info().Str("func", "TUI.Run").Msg("user quit")
		return ErrUserQuit
	}
	return nil
}
