package tui

import "tasky/internal/view"

// OpenSheetMsg switches to the sheet view with a fresh snapshot.
type OpenSheetMsg struct {
	Snapshot view.Snapshot
}

// BackToPickerMsg returns to the sheet picker.
type BackToPickerMsg struct{}

// StatusMsg sets the status bar message.
type StatusMsg struct {
	Text  string
	IsErr bool
}
