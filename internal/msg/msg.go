// Package msg holds the tea.Msg types shared between the UI components and
// the root model.
package msg

import (
	"time"

	"github.com/sadopc/schemasketch/internal/schema"
)

// Pane focus targets.
type Pane int

const (
	PaneAside Pane = iota
	PaneDiagram
)

func (p Pane) String() string {
	if p == PaneDiagram {
		return "diagram"
	}
	return "aside"
}

// AsideTab identifies a tab of the aside.
type AsideTab int

const (
	TabBlocks AsideTab = iota
	TabCode
)

func (t AsideTab) String() string {
	if t == TabCode {
		return "Code Editor"
	}
	return "Block Builder"
}

// FocusMsg requests a pane focus change.
type FocusMsg struct {
	Pane Pane
}

// SwitchTabMsg requests switching the aside to a tab.
type SwitchTabMsg struct {
	Tab AsideTab
}

// OpenTableFormMsg opens the table form. An empty TableID creates a new
// table; otherwise the identified table is edited.
type OpenTableFormMsg struct {
	TableID string
}

// TableSubmittedMsg is sent when the table form is saved with a valid title.
type TableSubmittedMsg struct {
	Table   schema.Table
	Editing bool
}

// CloseTableFormMsg is sent when the table form is dismissed without saving.
type CloseTableFormMsg struct{}

// ConfirmDeleteMsg asks the user to confirm deleting a table.
type ConfirmDeleteMsg struct {
	TableID string
	Name    string
}

// DeleteTableMsg removes a table after confirmation.
type DeleteTableMsg struct {
	TableID string
}

// StatusMsg updates the status bar text.
type StatusMsg struct {
	Text     string
	IsError  bool
	Duration time.Duration
}

// ExportRequestMsg requests writing the schema to a file.
type ExportRequestMsg struct {
	Format string
	Dir    string
}

// ExportCompleteMsg is sent when export finishes.
type ExportCompleteMsg struct {
	Path   string
	Tables int
}

// ExportErrMsg is sent when export fails.
type ExportErrMsg struct {
	Err error
}
