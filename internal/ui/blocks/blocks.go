// Package blocks is the Block Builder: a filterable, collapsible list of the
// sketched tables and their columns.
package blocks

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"

	appmsg "github.com/sadopc/schemasketch/internal/msg"
	"github.com/sadopc/schemasketch/internal/schema"
	"github.com/sadopc/schemasketch/internal/theme"
)

type rowKind int

const (
	rowTable rowKind = iota
	rowColumn
)

// row is one visible line of the list.
type row struct {
	kind  rowKind
	table int // index into visible
	col   int
}

// Model is the Block Builder list.
type Model struct {
	tables   []schema.Table
	visible  []schema.Table
	flat     []row
	expanded map[string]bool

	cursor  int
	offset  int
	width   int
	height  int
	focused bool

	search    textinput.Model
	searching bool
	query     string
	fuzzy     bool
}

// New creates an empty Block Builder. With fuzzy set, the search matches
// subsequences case-insensitively instead of exact substrings.
func New(fuzzy bool) Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Search tables"
	ti.CharLimit = 64

	return Model{
		expanded: make(map[string]bool),
		search:   ti,
		fuzzy:    fuzzy,
	}
}

// Init returns no initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles Block Builder messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused {
		return m, nil
	}

	if m.searching {
		return m.updateSearch(keyMsg)
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.ensureVisible()
		}
	case "down", "j":
		if m.cursor < len(m.flat)-1 {
			m.cursor++
			m.ensureVisible()
		}
	case "home", "g":
		m.cursor = 0
		m.offset = 0
	case "end", "G":
		m.cursor = max(len(m.flat)-1, 0)
		m.ensureVisible()
	case " ", "right", "l":
		m.toggle(keyMsg.String() == " ")
	case "left", "h":
		m.collapse()
	case "n":
		return m, func() tea.Msg { return appmsg.OpenTableFormMsg{} }
	case "e", "enter":
		if t, ok := m.Selected(); ok {
			id := t.ID
			return m, func() tea.Msg { return appmsg.OpenTableFormMsg{TableID: id} }
		}
	case "d", "delete":
		if t, ok := m.Selected(); ok {
			id, name := t.ID, t.Name
			return m, func() tea.Msg { return appmsg.ConfirmDeleteMsg{TableID: id, Name: name} }
		}
	case "/":
		m.searching = true
		m.search.SetValue(m.query)
		m.search.CursorEnd()
		return m, m.search.Focus()
	case "esc":
		if m.query != "" {
			m.SetQuery("")
		}
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.SetQuery("")
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != m.query {
		m.SetQuery(v)
	}
	return m, cmd
}

// View renders the Block Builder.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	th := theme.Current

	innerW := max(m.width-2, 1)
	innerH := max(m.height-2, 1)

	titleStyle := th.AsideTitle
	if m.focused {
		titleStyle = titleStyle.Reverse(true)
	}
	title := fmt.Sprintf(" Tables (%d) ", len(m.tables))
	lines := []string{titleStyle.Width(innerW).Render(title)}

	if m.searching {
		m.search.Width = max(innerW-4, 1)
		lines = append(lines, m.search.View())
	} else if m.query != "" {
		lines = append(lines, th.SearchPrompt.Render("/ ")+m.query+th.MutedText.Render("  esc clears"))
	}

	switch {
	case len(m.tables) == 0:
		lines = append(lines, "", th.SearchEmpty.Render("No tables yet. Press n to create one."))
	case len(m.visible) == 0:
		lines = append(lines, "", th.SearchEmpty.Render(fmt.Sprintf("No tables match %q", m.query)))
	default:
		contentH := max(innerH-len(lines), 1)
		end := min(m.offset+contentH, len(m.flat))
		for i := m.offset; i < end; i++ {
			lines = append(lines, m.renderRow(m.flat[i], i == m.cursor, innerW-1, th))
		}
	}

	return m.borderStyle().Width(innerW).Height(innerH).Render(strings.Join(lines, "\n"))
}

func (m Model) renderRow(r row, selected bool, width int, th *theme.Theme) string {
	t := m.visible[r.table]

	var line string
	if r.kind == rowTable {
		marker := "▶ "
		if m.expanded[t.ID] {
			marker = "▼ "
		}
		line = fmt.Sprintf("%s%s (%d)", marker, t.Name, len(t.Columns))
	} else {
		c := t.Columns[r.col]
		line = fmt.Sprintf("    %s  %s", c.Name, c.Type.SQL())
	}
	line = runewidth.FillRight(runewidth.Truncate(line, width, "…"), width)

	if selected && m.focused {
		return th.BlockSelected.Render(line)
	}
	if r.kind == rowTable {
		return th.BlockTable.Render(line)
	}
	return th.BlockColumn.Render(line)
}

func (m Model) borderStyle() lipgloss.Style {
	th := theme.Current
	if m.focused {
		return th.FocusedBorder
	}
	return th.UnfocusedBorder
}

// SetTables replaces the listed tables. Expansion state survives for tables
// that keep their ID.
func (m *Model) SetTables(tables []schema.Table) {
	m.tables = tables
	keep := make(map[string]bool, len(tables))
	for _, t := range tables {
		if m.expanded[t.ID] {
			keep[t.ID] = true
		}
	}
	m.expanded = keep
	m.refilter()
}

// SetQuery sets the search filter and rebuilds the visible list.
func (m *Model) SetQuery(q string) {
	m.query = q
	m.cursor = 0
	m.offset = 0
	m.refilter()
}

// Query returns the active search filter.
func (m Model) Query() string {
	return m.query
}

// Searching reports whether the search input has focus.
func (m Model) Searching() bool {
	return m.searching
}

// Visible returns the tables that pass the current filter.
func (m Model) Visible() []schema.Table {
	return m.visible
}

// Expanded reports whether the table's columns are shown.
func (m Model) Expanded(id string) bool {
	return m.expanded[id]
}

// Selected returns the table under the cursor, or the owner of the column
// under the cursor.
func (m Model) Selected() (schema.Table, bool) {
	if m.cursor < 0 || m.cursor >= len(m.flat) {
		return schema.Table{}, false
	}
	return m.visible[m.flat[m.cursor].table], true
}

// SelectID moves the cursor to the table with the given ID, if visible.
func (m *Model) SelectID(id string) {
	for i, r := range m.flat {
		if r.kind == rowTable && m.visible[r.table].ID == id {
			m.cursor = i
			m.ensureVisible()
			return
		}
	}
}

// SetSize sets the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.ensureVisible()
}

// Focus focuses the list.
func (m *Model) Focus() { m.focused = true }

// Blur unfocuses the list and leaves search mode.
func (m *Model) Blur() {
	m.focused = false
	m.searching = false
	m.search.Blur()
}

// Focused returns whether the list is focused.
func (m Model) Focused() bool { return m.focused }

func (m *Model) toggle(flip bool) {
	if m.cursor >= len(m.flat) {
		return
	}
	r := m.flat[m.cursor]
	id := m.visible[r.table].ID
	switch {
	case r.kind == rowColumn:
		return
	case flip:
		m.expanded[id] = !m.expanded[id]
	default:
		m.expanded[id] = true
	}
	m.flatten()
}

func (m *Model) collapse() {
	if m.cursor >= len(m.flat) {
		return
	}
	r := m.flat[m.cursor]
	id := m.visible[r.table].ID
	if !m.expanded[id] {
		return
	}
	m.expanded[id] = false
	m.flatten()
	m.SelectID(id)
}

func (m *Model) refilter() {
	if m.fuzzy && m.query != "" {
		m.visible = fuzzyFilter(m.tables, m.query)
	} else {
		m.visible = schema.FilterTables(m.tables, m.query)
	}
	m.flatten()
}

func (m *Model) flatten() {
	m.flat = nil
	for ti, t := range m.visible {
		m.flat = append(m.flat, row{kind: rowTable, table: ti})
		if m.expanded[t.ID] {
			for ci := range t.Columns {
				m.flat = append(m.flat, row{kind: rowColumn, table: ti, col: ci})
			}
		}
	}
	if m.cursor >= len(m.flat) {
		m.cursor = len(m.flat) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureVisible()
}

func (m *Model) ensureVisible() {
	contentHeight := max(m.height-3, 1)
	if m.searching || m.query != "" {
		contentHeight = max(contentHeight-1, 1)
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+contentHeight {
		m.offset = m.cursor - contentHeight + 1
	}
}

// tableNames implements fuzzy.Source over lower-cased table names.
type tableNames []string

func (n tableNames) String(i int) string { return n[i] }
func (n tableNames) Len() int            { return len(n) }

// fuzzyFilter keeps the tables whose name fuzzily matches query, in schema
// order.
func fuzzyFilter(tables []schema.Table, query string) []schema.Table {
	names := make(tableNames, len(tables))
	for i, t := range tables {
		names[i] = strings.ToLower(t.Name)
	}

	matches := fuzzy.FindFrom(strings.ToLower(query), names)
	idx := make([]int, 0, len(matches))
	for _, match := range matches {
		idx = append(idx, match.Index)
	}
	sort.Ints(idx)

	out := make([]schema.Table, 0, len(idx))
	for _, i := range idx {
		out = append(out, tables[i])
	}
	return out
}
