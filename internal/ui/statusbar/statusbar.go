package statusbar

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	appmsg "github.com/sadopc/schemasketch/internal/msg"
	"github.com/sadopc/schemasketch/internal/theme"
)

// ClearStatusMsg is sent after a timeout to revert the status bar to key hints.
// Gen ties the timer to the message that started it.
type ClearStatusMsg struct {
	Gen uint64
}

// ClearAfter is how long a status message stays visible.
var ClearAfter = 5 * time.Second

// Model is the status bar component.
type Model struct {
	width   int
	source  string
	tables  int
	columns int
	zoom    int
	message string
	isError bool
	gen     uint64
	hints   []Hint
}

// Hint is a key and its short description.
type Hint struct {
	Key  string
	Desc string
}

// DefaultHints are shown while no message is active.
var DefaultHints = []Hint{
	{"n", "New"},
	{"/", "Search"},
	{"Ctrl+E", "Export"},
	{"F1", "Help"},
	{"Ctrl+Q", "Quit"},
}

// New creates a new status bar.
func New() Model {
	return Model{
		zoom:  100,
		hints: DefaultHints,
	}
}

// Init returns no initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	clearAfter := func() tea.Cmd {
		m.gen++
		gen := m.gen
		return tea.Tick(ClearAfter, func(time.Time) tea.Msg {
			return ClearStatusMsg{Gen: gen}
		})
	}

	switch msg := msg.(type) {
	case appmsg.StatusMsg:
		m.message = msg.Text
		m.isError = msg.IsError
		cmd := clearAfter()
		return m, cmd

	case appmsg.ExportCompleteMsg:
		m.message = fmt.Sprintf("Exported %s to %s", plural(msg.Tables, "table"), msg.Path)
		m.isError = false
		cmd := clearAfter()
		return m, cmd

	case appmsg.ExportErrMsg:
		if msg.Err != nil {
			m.message = msg.Err.Error()
		} else {
			m.message = "export failed"
		}
		m.isError = true
		cmd := clearAfter()
		return m, cmd

	case ClearStatusMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.message = ""
		m.isError = false
	}

	return m, nil
}

// View renders the status bar.
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	th := theme.Current

	left := th.StatusBarKey.Render(" " + m.sourceLabel() + " ")

	var center string
	if m.message != "" {
		text := " " + truncate(m.message, m.width/2) + " "
		if m.isError {
			center = th.StatusBarError.Render(text)
		} else {
			center = th.StatusBarSuccess.Render(text)
		}
	} else {
		hintKey := th.StatusBarValue
		hintSep := th.StatusBar
		for _, h := range m.hints {
			center += hintKey.Render(h.Key) + hintSep.Render(" "+h.Desc+" ")
		}
	}

	right := th.StatusBarKey.Render(fmt.Sprintf(" %s · %s ",
		plural(m.tables, "table"), plural(m.columns, "column")))
	right += th.StatusBarValue.Render(fmt.Sprintf(" %d%% ", m.zoom))

	leftW := lipgloss.Width(left)
	centerW := lipgloss.Width(center)
	rightW := lipgloss.Width(right)
	gap := m.width - leftW - centerW - rightW
	if gap < 0 {
		gap = 0
	}

	leftGap := gap / 2
	rightGap := gap - leftGap

	bar := left +
		th.StatusBar.Render(spaces(leftGap)) +
		center +
		th.StatusBar.Render(spaces(rightGap)) +
		right

	return th.StatusBar.Width(m.width).Render(bar)
}

// SetSize sets the status bar width.
func (m *Model) SetSize(width int) {
	m.width = width
}

// SetSource names the sketch file the schema came from.
func (m *Model) SetSource(name string) {
	m.source = name
}

// SetCounts updates the table and column totals.
func (m *Model) SetCounts(tables, columns int) {
	m.tables = tables
	m.columns = columns
}

// SetZoom updates the diagram zoom display.
func (m *Model) SetZoom(zoom int) {
	m.zoom = zoom
}

// SetHints replaces the idle key hints.
func (m *Model) SetHints(hints []Hint) {
	m.hints = hints
}

// Message returns the active status message, if any.
func (m Model) Message() (string, bool) {
	return m.message, m.isError
}

func (m Model) sourceLabel() string {
	if m.source == "" {
		return "schemasketch"
	}
	return m.source
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func truncate(s string, maxLen int) string {
	if maxLen <= 3 {
		return s
	}
	return runewidth.Truncate(s, maxLen, "...")
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
