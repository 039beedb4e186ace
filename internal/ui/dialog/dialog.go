package dialog

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	appmsg "github.com/sadopc/schemasketch/internal/msg"
	"github.com/sadopc/schemasketch/internal/theme"
)

// Button represents a dialog button. A nil Action just closes the dialog.
type Button struct {
	Label  string
	Action func() tea.Msg
}

// Model is a reusable modal dialog component.
type Model struct {
	title    string
	body     string
	buttons  []Button
	active   int
	visible  bool
	width    int
	height   int
	maxWidth int
}

// New creates a new dialog.
func New(title, body string, buttons ...Button) Model {
	return Model{
		title:    title,
		body:     body,
		buttons:  buttons,
		maxWidth: 60,
	}
}

// ConfirmDelete builds the confirmation shown before a table is removed.
// Cancel is focused first so a stray enter keeps the table.
func ConfirmDelete(tableID, name string) Model {
	return New("Delete table",
		fmt.Sprintf("Are you sure you want to delete table: %s?", name),
		Button{Label: "Cancel"},
		Button{Label: "Confirm", Action: func() tea.Msg {
			return appmsg.DeleteTableMsg{TableID: tableID}
		}},
	)
}

// Init returns no initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles dialog messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "shift+tab", "h":
			if m.active > 0 {
				m.active--
			}
		case "right", "tab", "l":
			if m.active < len(m.buttons)-1 {
				m.active++
			}
		case "enter", " ":
			if m.active >= len(m.buttons) {
				return m, nil
			}
			m.visible = false
			return m, m.buttons[m.active].Action
		case "esc", "q":
			m.visible = false
		}
	}

	return m, nil
}

// View renders the dialog box.
func (m Model) View() string {
	if !m.visible {
		return ""
	}

	th := theme.Current
	inner := m.maxWidth - 4
	if inner < 10 {
		inner = 10
	}

	title := th.DialogTitle.Render(m.title)
	body := lipgloss.NewStyle().Width(inner).Render(m.body)

	var btns []string
	for i, btn := range m.buttons {
		style := th.DialogButton
		if i == m.active {
			style = th.DialogButtonActive
		}
		if i > 0 {
			btns = append(btns, "  ")
		}
		btns = append(btns, style.Render(btn.Label))
	}
	buttonRow := lipgloss.JoinHorizontal(lipgloss.Center, btns...)
	buttonRow = lipgloss.NewStyle().Width(inner).Align(lipgloss.Right).Render(buttonRow)

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		body,
		"",
		buttonRow,
	)
	return th.DialogBorder.Render(content)
}

// Overlay centers the dialog in the available space. The background is
// replaced rather than blended.
func (m Model) Overlay(background string) string {
	if !m.visible || m.width == 0 {
		return background
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.View())
}

// Show makes the dialog visible.
func (m *Model) Show() {
	m.visible = true
	m.active = 0
}

// Hide makes the dialog invisible.
func (m *Model) Hide() {
	m.visible = false
}

// Visible returns whether the dialog is shown.
func (m Model) Visible() bool {
	return m.visible
}

// Body returns the dialog message.
func (m Model) Body() string {
	return m.body
}

// SetSize sets the available space for centering.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.maxWidth = 60
	if m.maxWidth > width-4 {
		m.maxWidth = width - 4
	}
}
