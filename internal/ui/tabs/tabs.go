package tabs

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	appmsg "github.com/sadopc/schemasketch/internal/msg"
	"github.com/sadopc/schemasketch/internal/theme"
)

// Tab represents one aside tab.
type Tab struct {
	ID       appmsg.AsideTab
	Title    string
	Modified bool
}

// Model is the aside tab bar. The set of tabs is fixed.
type Model struct {
	tabs   []Tab
	active int
	width  int
}

// New creates the tab bar with Block Builder active.
func New() Model {
	return Model{
		tabs: []Tab{
			{ID: appmsg.TabBlocks, Title: appmsg.TabBlocks.String()},
			{ID: appmsg.TabCode, Title: appmsg.TabCode.String()},
		},
	}
}

// Init returns no initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles tab bar messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(appmsg.SwitchTabMsg); ok {
		if idx := m.indexByID(msg.Tab); idx >= 0 {
			m.active = idx
		}
	}
	return m, nil
}

// View renders the tab bar.
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	th := theme.Current

	var tabs []string
	for i, tab := range m.tabs {
		title := tab.Title
		if tab.Modified {
			title += " *"
		}

		style := th.TabInactive
		if i == m.active {
			style = th.TabActive
		}
		tabs = append(tabs, style.Render(title))
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
	return th.TabBar.Width(m.width).Render(bar)
}

// SetSize sets the tab bar width.
func (m *Model) SetSize(width int) {
	m.width = width
}

// Active returns the active tab.
func (m Model) Active() appmsg.AsideTab {
	return m.tabs[m.active].ID
}

// SetModified marks a tab as modified.
func (m *Model) SetModified(id appmsg.AsideTab, modified bool) {
	if idx := m.indexByID(id); idx >= 0 {
		m.tabs[idx].Modified = modified
	}
}

// Modified reports whether the tab carries the modified marker.
func (m Model) Modified(id appmsg.AsideTab) bool {
	if idx := m.indexByID(id); idx >= 0 {
		return m.tabs[idx].Modified
	}
	return false
}

// NextTab switches to the next tab, wrapping around.
func (m *Model) NextTab() tea.Cmd {
	m.active = (m.active + 1) % len(m.tabs)
	return m.switchCmd()
}

// PrevTab switches to the previous tab, wrapping around.
func (m *Model) PrevTab() tea.Cmd {
	m.active--
	if m.active < 0 {
		m.active = len(m.tabs) - 1
	}
	return m.switchCmd()
}

// Tabs returns all tabs.
func (m Model) Tabs() []Tab {
	return m.tabs
}

func (m Model) switchCmd() tea.Cmd {
	id := m.tabs[m.active].ID
	return func() tea.Msg { return appmsg.SwitchTabMsg{Tab: id} }
}

func (m Model) indexByID(id appmsg.AsideTab) int {
	for i, t := range m.tabs {
		if t.ID == id {
			return i
		}
	}
	return -1
}
