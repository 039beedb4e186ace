package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all application keybindings.
type KeyMap struct {
	// Navigation
	FocusNext    key.Binding
	FocusPrev    key.Binding
	FocusBlocks  key.Binding
	FocusCode    key.Binding
	FocusDiagram key.Binding

	// Aside tabs
	NextTab key.Binding
	PrevTab key.Binding

	// Tables
	NewTable    key.Binding
	EditTable   key.Binding
	DeleteTable key.Binding
	Search      key.Binding

	// Code editor
	EditCode  key.Binding
	LeaveCode key.Binding

	// Diagram
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	ZoomReset key.Binding

	// App
	Quit        key.Binding
	Help        key.Binding
	ToggleAside key.Binding
	Export      key.Binding
	CopySQL     key.Binding

	// Pane resizing
	ResizeLeft  key.Binding
	ResizeRight key.Binding
}

// DefaultKeyMap returns the application keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		FocusNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next pane"),
		),
		FocusPrev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev pane"),
		),
		FocusBlocks: key.NewBinding(
			key.WithKeys("alt+1"),
			key.WithHelp("alt+1", "block builder"),
		),
		FocusCode: key.NewBinding(
			key.WithKeys("alt+2"),
			key.WithHelp("alt+2", "code editor"),
		),
		FocusDiagram: key.NewBinding(
			key.WithKeys("alt+3"),
			key.WithHelp("alt+3", "diagram"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("ctrl+pgdown", "ctrl+]"),
			key.WithHelp("ctrl+]", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("ctrl+pgup"),
			key.WithHelp("ctrl+pgup", "prev tab"),
		),
		NewTable: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new table"),
		),
		EditTable: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e/enter", "edit table"),
		),
		DeleteTable: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete table"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search tables"),
		),
		EditCode: key.NewBinding(
			key.WithKeys("enter", "i"),
			key.WithHelp("enter/i", "edit code"),
		),
		LeaveCode: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "stop editing"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "zoom out"),
		),
		ZoomReset: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "reset zoom"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q", "ctrl+c"),
			key.WithHelp("ctrl+q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1", "?"),
			key.WithHelp("f1/?", "help"),
		),
		ToggleAside: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", "toggle aside"),
		),
		Export: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "export"),
		),
		CopySQL: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy SQL"),
		),
		ResizeLeft: key.NewBinding(
			key.WithKeys("ctrl+left"),
			key.WithHelp("ctrl+←", "shrink aside"),
		),
		ResizeRight: key.NewBinding(
			key.WithKeys("ctrl+right"),
			key.WithHelp("ctrl+→", "grow aside"),
		),
	}
}

// ShortHelp returns a subset of keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.NewTable, k.FocusNext, k.Export, k.Quit, k.Help,
	}
}

// FullHelp returns all keybindings grouped for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NewTable, k.EditTable, k.DeleteTable, k.Search},
		{k.FocusNext, k.FocusPrev, k.FocusBlocks, k.FocusCode, k.FocusDiagram},
		{k.NextTab, k.PrevTab, k.EditCode, k.LeaveCode},
		{k.ZoomIn, k.ZoomOut, k.ZoomReset},
		{k.ToggleAside, k.Export, k.CopySQL, k.ResizeLeft, k.ResizeRight},
		{k.Quit, k.Help},
	}
}

// helpSections names the FullHelp groups on the help screen.
var helpSections = []string{"Tables", "Navigation", "Aside", "Diagram", "Application", ""}
