// Package typeselect is the column type dropdown used by the table form.
package typeselect

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/sadopc/schemasketch/internal/schema"
	"github.com/sadopc/schemasketch/internal/theme"
)

// SelectedMsg is sent when a new type is picked for a column.
type SelectedMsg struct {
	ColumnID string
	Type     schema.ColumnType
}

// Model is a closed-by-default dropdown over the column types. The option
// matching the current type is disabled.
type Model struct {
	columnID string
	options  []schema.ColumnType
	current  schema.ColumnType
	selected int
	open     bool
	width    int
}

// New creates a dropdown for the given column.
func New(columnID string, current schema.ColumnType) Model {
	return Model{
		columnID: columnID,
		options:  schema.Types(),
		current:  current,
		width:    12,
	}
}

// Init returns no initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles keys while the list is open.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.open {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k", "shift+tab":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "enter", " ":
		opt := m.options[m.selected]
		m.open = false
		if m.disabled(m.selected) {
			return m, nil
		}
		m.current = opt
		id := m.columnID
		return m, func() tea.Msg { return SelectedMsg{ColumnID: id, Type: opt} }
	case "esc", "tab":
		m.open = false
	}
	return m, nil
}

// View renders the closed button, followed by the option list when open.
func (m Model) View() string {
	th := theme.Current

	label := m.current.SQL()
	if label == "" {
		label = "-"
	}
	button := runewidth.FillRight(runewidth.Truncate(label, m.width-2, "…"), m.width-2) + " ▾"
	if !m.open {
		return button
	}

	lines := []string{th.DropdownSelected.Render(button)}
	var opts []string
	for i, opt := range m.options {
		text := runewidth.FillRight(opt.SQL(), m.width)
		switch {
		case m.disabled(i):
			opts = append(opts, th.DropdownDisabled.Render(text))
		case i == m.selected:
			opts = append(opts, th.DropdownSelected.Render(text))
		default:
			opts = append(opts, th.DropdownItem.Render(text))
		}
	}
	lines = append(lines, th.DropdownBorder.Render(strings.Join(opts, "\n")))
	return strings.Join(lines, "\n")
}

// Open shows the option list with the cursor on the first enabled option
// after the current type.
func (m *Model) Open() {
	m.open = true
	m.selected = 0
	for i, opt := range m.options {
		if opt == m.current {
			m.selected = i
			break
		}
	}
	if m.disabled(m.selected) {
		m.move(1)
	}
}

// Close hides the option list.
func (m *Model) Close() {
	m.open = false
}

// Visible reports whether the option list is shown.
func (m Model) Visible() bool {
	return m.open
}

// Current returns the column's type.
func (m Model) Current() schema.ColumnType {
	return m.current
}

// SetCurrent changes the column's type.
func (m *Model) SetCurrent(t schema.ColumnType) {
	m.current = t
}

// ColumnID returns the column this dropdown edits.
func (m Model) ColumnID() string {
	return m.columnID
}

// Cursor returns the highlighted option.
func (m Model) Cursor() schema.ColumnType {
	return m.options[m.selected]
}

// SetWidth sets the button width.
func (m *Model) SetWidth(w int) {
	if w < 6 {
		w = 6
	}
	m.width = w
}

func (m Model) disabled(i int) bool {
	return m.options[i] == m.current
}

// move steps the cursor by delta, wrapping and skipping the disabled option.
func (m *Model) move(delta int) {
	n := len(m.options)
	for range n {
		m.selected = (m.selected + delta + n) % n
		if !m.disabled(m.selected) {
			return
		}
	}
}
