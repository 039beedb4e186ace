// Package tableform is the modal form used to create and edit tables.
package tableform

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	appmsg "github.com/sadopc/schemasketch/internal/msg"
	"github.com/sadopc/schemasketch/internal/schema"
	"github.com/sadopc/schemasketch/internal/theme"
	"github.com/sadopc/schemasketch/internal/ui/typeselect"
)

// ErrInvalidTitle is shown when the trimmed title is empty.
const ErrInvalidTitle = "Invalid Title"

type columnRow struct {
	id   string
	name textinput.Model
	typ  typeselect.Model
}

// Model is the create/edit table modal.
type Model struct {
	visible bool
	editing bool
	tableID string

	title textinput.Model
	cols  []columnRow
	focus int
	err   string

	colOffset int
	width     int
	height    int
}

// New creates a hidden form.
func New() Model {
	t := textinput.New()
	t.Prompt = ""
	t.Placeholder = "table_name"
	t.CharLimit = 128
	return Model{title: t}
}

// Init returns no initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// OpenNew shows an empty form seeded with the given columns.
func (m *Model) OpenNew(defaults []schema.Column) tea.Cmd {
	m.reset()
	m.editing = false
	m.tableID = ""
	for _, c := range defaults {
		m.appendColumn(uuid.NewString(), c.Name, c.Type)
	}
	return m.show()
}

// OpenEdit shows the form filled with an existing table.
func (m *Model) OpenEdit(t schema.Table) tea.Cmd {
	m.reset()
	m.editing = true
	m.tableID = t.ID
	m.title.SetValue(t.Name)
	m.title.CursorEnd()
	for _, c := range t.Columns {
		m.appendColumn(c.ID, c.Name, c.Type)
	}
	return m.show()
}

// Hide closes the form without emitting anything.
func (m *Model) Hide() {
	m.visible = false
	m.blurAll()
}

// Visible reports whether the form is shown.
func (m Model) Visible() bool { return m.visible }

// Editing reports whether the form edits an existing table.
func (m Model) Editing() bool { return m.editing }

// Err returns the inline validation error, if any.
func (m Model) Err() string { return m.err }

// SetSize sets the space available to the modal.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.ensureVisible()
}

// Table returns the table described by the current field values.
func (m Model) Table() schema.Table {
	t := schema.Table{ID: m.tableID, Name: m.title.Value()}
	for _, c := range m.cols {
		t.Columns = append(t.Columns, schema.Column{
			ID:   c.id,
			Name: c.name.Value(),
			Type: c.typ.Current(),
		})
	}
	return t
}

// Update handles form messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	switch msg := msg.(type) {
	case typeselect.SelectedMsg:
		for i := range m.cols {
			if m.cols[i].id == msg.ColumnID {
				m.cols[i].typ.SetCurrent(msg.Type)
			}
		}
		return m, nil

	case tea.KeyMsg:
		if i, ok := m.typeIndex(); ok && m.cols[i].typ.Visible() {
			var cmd tea.Cmd
			m.cols[i].typ, cmd = m.cols[i].typ.Update(msg)
			if msg.String() == "tab" {
				return m, m.setFocus(m.focus + 1)
			}
			return m, cmd
		}

		switch msg.String() {
		case "esc":
			m.Hide()
			return m, func() tea.Msg { return appmsg.CloseTableFormMsg{} }
		case "tab", "down":
			return m, m.setFocus(m.focus + 1)
		case "shift+tab", "up":
			return m, m.setFocus(m.focus - 1)
		case "ctrl+s":
			return m.submit()
		case "ctrl+n":
			return m, m.addColumn()
		case "ctrl+x":
			m.removeFocusedColumn()
			return m, nil
		case "enter":
			return m.activate()
		case " ":
			if i, ok := m.typeIndex(); ok {
				m.cols[i].typ.Open()
				return m, nil
			}
			if m.focus >= m.addIndex() {
				return m.activate()
			}
		}
	}

	return m.updateInput(msg)
}

func (m Model) updateInput(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.focus == 0:
		before := m.title.Value()
		m.title, cmd = m.title.Update(msg)
		if m.title.Value() != before {
			m.err = ""
		}
	case m.focus <= 2*len(m.cols) && m.focus%2 == 1:
		i := (m.focus - 1) / 2
		m.cols[i].name, cmd = m.cols[i].name.Update(msg)
	}
	return m, cmd
}

// activate performs the enter action of the focused field.
func (m Model) activate() (Model, tea.Cmd) {
	switch {
	case m.focus == m.addIndex():
		return m, m.addColumn()
	case m.focus == m.saveIndex():
		return m.submit()
	case m.focus == m.cancelIndex():
		m.Hide()
		return m, func() tea.Msg { return appmsg.CloseTableFormMsg{} }
	}
	if i, ok := m.typeIndex(); ok {
		m.cols[i].typ.Open()
		return m, nil
	}
	return m, m.setFocus(m.focus + 1)
}

func (m Model) submit() (Model, tea.Cmd) {
	if strings.TrimSpace(m.title.Value()) == "" {
		m.err = ErrInvalidTitle
		return m, m.setFocus(0)
	}

	t := m.Table()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	editing := m.editing
	m.Hide()
	return m, func() tea.Msg {
		return appmsg.TableSubmittedMsg{Table: t, Editing: editing}
	}
}

// View renders the modal.
func (m Model) View() string {
	if !m.visible {
		return ""
	}

	th := theme.Current
	w := m.dialogWidth()
	inner := w - 6

	heading := "Create table"
	if m.editing {
		heading = "Edit table"
	}

	lines := []string{th.DialogTitle.Render(heading), ""}

	lines = append(lines, th.FormLabel.Render("Title"))
	lines = append(lines, m.inputStyle(m.focus == 0).Width(inner).Render(m.title.View()))
	if m.err != "" {
		lines = append(lines, th.FormError.Render(m.err))
	} else {
		lines = append(lines, "")
	}

	lines = append(lines, th.FormLabel.Render(fmt.Sprintf("Columns (%d)", len(m.cols))))
	if len(m.cols) == 0 {
		lines = append(lines, th.MutedText.Render("  no columns"))
	}

	typeW := 12
	nameW := max(inner-typeW-2, 8)
	end := min(m.colOffset+m.maxRows(), len(m.cols))
	if m.colOffset > 0 {
		lines = append(lines, th.MutedText.Render(fmt.Sprintf("  ↑ %d more", m.colOffset)))
	}
	for i := m.colOffset; i < end; i++ {
		c := m.cols[i]
		nameFocused := m.focus == 1+2*i
		typeFocused := m.focus == 2+2*i

		name := m.inputStyle(nameFocused).Width(nameW).Render(c.name.View())
		typ := c.typ
		typ.SetWidth(typeW)
		typeView := typ.View()
		if typeFocused && !typ.Visible() {
			typeView = th.DropdownSelected.Render(typeView)
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, name, "  ", typeView))
	}
	if end < len(m.cols) {
		lines = append(lines, th.MutedText.Render(fmt.Sprintf("  ↓ %d more", len(m.cols)-end)))
	}

	lines = append(lines, "")
	buttons := []struct {
		label string
		idx   int
	}{
		{"+ Add column", m.addIndex()},
		{"Save", m.saveIndex()},
		{"Cancel", m.cancelIndex()},
	}
	var btns []string
	for _, b := range buttons {
		style := th.DialogButton
		if m.focus == b.idx {
			style = th.DialogButtonActive
		}
		btns = append(btns, style.Render(b.label), " ")
	}
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Center, btns...))
	lines = append(lines, "", th.MutedText.Render("ctrl+n:add  ctrl+x:remove  ctrl+s:save  esc:close"))

	return th.DialogBorder.Width(w).Render(strings.Join(lines, "\n"))
}

func (m Model) inputStyle(focused bool) lipgloss.Style {
	if focused {
		return theme.Current.FormInputFocused
	}
	return theme.Current.FormInput
}

func (m Model) dialogWidth() int {
	w := 64
	if m.width > 0 && w > m.width-4 {
		w = m.width - 4
	}
	return max(w, 30)
}

// maxRows is how many column rows fit next to the fixed form chrome.
func (m Model) maxRows() int {
	if m.height == 0 {
		return len(m.cols) + 1
	}
	return max(m.height-18, 1)
}

func (m *Model) ensureVisible() {
	i := -1
	if m.focus >= 1 && m.focus <= 2*len(m.cols) {
		i = (m.focus - 1) / 2
	}
	rows := m.maxRows()
	switch {
	case i >= 0 && i < m.colOffset:
		m.colOffset = i
	case i >= m.colOffset+rows:
		m.colOffset = i - rows + 1
	case m.focus > 2*len(m.cols):
		m.colOffset = max(len(m.cols)-rows, 0)
	case m.focus == 0:
		m.colOffset = 0
	}
}

func (m Model) addIndex() int    { return 1 + 2*len(m.cols) }
func (m Model) saveIndex() int   { return 2 + 2*len(m.cols) }
func (m Model) cancelIndex() int { return 3 + 2*len(m.cols) }

// typeIndex returns the column whose type field has focus.
func (m Model) typeIndex() (int, bool) {
	if m.focus >= 2 && m.focus <= 2*len(m.cols) && m.focus%2 == 0 {
		return (m.focus - 2) / 2, true
	}
	return 0, false
}

func (m *Model) setFocus(i int) tea.Cmd {
	n := m.cancelIndex() + 1
	i = (i%n + n) % n

	m.blurAll()
	m.focus = i
	m.ensureVisible()

	switch {
	case i == 0:
		return m.title.Focus()
	case i <= 2*len(m.cols) && i%2 == 1:
		return m.cols[(i-1)/2].name.Focus()
	}
	return nil
}

func (m *Model) blurAll() {
	m.title.Blur()
	for i := range m.cols {
		m.cols[i].name.Blur()
		m.cols[i].typ.Close()
	}
}

// addColumn appends an unnamed int column and focuses its name.
func (m *Model) addColumn() tea.Cmd {
	m.appendColumn(uuid.NewString(), "", schema.TypeInt)
	return m.setFocus(1 + 2*(len(m.cols)-1))
}

func (m *Model) removeFocusedColumn() {
	if m.focus < 1 || m.focus > 2*len(m.cols) {
		return
	}
	i := (m.focus - 1) / 2
	m.cols = append(m.cols[:i:i], m.cols[i+1:]...)
	if len(m.cols) == 0 {
		m.setFocus(m.addIndex())
		return
	}
	m.setFocus(1 + 2*min(i, len(m.cols)-1))
}

func (m *Model) appendColumn(id, name string, typ schema.ColumnType) {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = "column_name"
	in.CharLimit = 128
	in.SetValue(name)
	m.cols = append(m.cols, columnRow{id: id, name: in, typ: typeselect.New(id, typ)})
}

func (m *Model) reset() {
	m.title.SetValue("")
	m.cols = nil
	m.err = ""
	m.colOffset = 0
	m.focus = 0
}

func (m *Model) show() tea.Cmd {
	m.visible = true
	return m.setFocus(0)
}
