package tui

import "github.com/MKhiriev/go-device-trust/internal/flow"

// snapshotMsg carries a new flow snapshot into the program.
type snapshotMsg struct {
	snap flow.Snapshot
}

// dispatchErrMsg reports an event the controller refused.
type dispatchErrMsg struct {
	err error
}

type clipboardMsg struct {
	text string
	err  error
}
