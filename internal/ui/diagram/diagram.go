// Package diagram draws the schema as a canvas of table cards.
package diagram

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/sadopc/schemasketch/internal/schema"
	"github.com/sadopc/schemasketch/internal/theme"
)

// Zoom bounds, in percent.
const (
	ZoomMin     = 0
	ZoomMax     = 200
	ZoomStep    = 25
	ZoomDefault = 100
)

// ZoomMsg reports a zoom change.
type ZoomMsg struct {
	Zoom int
}

const maxCardWidth = 32

// Model is the diagram pane. Zoom is shown on the toolbar only; card
// geometry does not depend on it.
type Model struct {
	tables  []schema.Table
	zoom    int
	offsetY int
	width   int
	height  int
	focused bool
}

// New creates a diagram at the given zoom.
func New(zoom int) Model {
	m := Model{}
	m.SetZoom(zoom)
	return m
}

// Init returns no initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles zoom and scroll keys while focused.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused {
		return m, nil
	}

	before := m.zoom
	switch k.String() {
	case "+", "=":
		m.ZoomIn()
	case "-", "_":
		m.ZoomOut()
	case "0":
		m.zoom = ZoomDefault
	case "up", "k":
		if m.offsetY > 0 {
			m.offsetY--
		}
	case "down", "j":
		if m.offsetY < m.maxOffset() {
			m.offsetY++
		}
	case "home", "g":
		m.offsetY = 0
	case "end", "G":
		m.offsetY = m.maxOffset()
	}

	if m.zoom != before {
		z := m.zoom
		return m, func() tea.Msg { return ZoomMsg{Zoom: z} }
	}
	return m, nil
}

// View renders the toolbar and the canvas.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	th := theme.Current
	border := th.UnfocusedBorder
	if m.focused {
		border = th.FocusedBorder
	}

	innerW := max(m.width-2, 1)
	innerH := max(m.height-2, 1)
	canvasH := max(innerH-1, 1)

	lines := strings.Split(m.canvas(innerW), "\n")
	start := min(m.offsetY, max(len(lines)-canvasH, 0))
	end := min(start+canvasH, len(lines))
	body := strings.Join(lines[start:end], "\n")
	if len(m.tables) == 0 {
		body = lipgloss.Place(innerW, canvasH, lipgloss.Center, lipgloss.Center,
			th.MutedText.Render("No tables. Press n to create one."))
	}

	return border.
		Width(innerW).
		Height(innerH).
		Render(m.toolbar(th, innerW) + "\n" + body)
}

func (m Model) toolbar(th *theme.Theme, width int) string {
	out := th.MutedText
	in := th.MutedText
	if m.CanZoomOut() {
		out = th.DiagramToolbar
	}
	if m.CanZoomIn() {
		in = th.DiagramToolbar
	}
	controls := out.Render("[-]") + th.DiagramToolbar.Render(fmt.Sprintf("%d%%", m.zoom)) + in.Render("[+]")
	title := th.AsideTitle.Render("Diagram")
	gap := max(width-lipgloss.Width(title)-lipgloss.Width(controls), 1)
	return title + strings.Repeat(" ", gap) + controls
}

// canvas lays the cards out left to right, wrapping to a new band when the
// next card would overflow width.
func (m Model) canvas(width int) string {
	var bands []string
	var band []string
	used := 0
	for _, t := range m.tables {
		card := m.card(t)
		w := lipgloss.Width(card)
		if len(band) > 0 && used+1+w > width {
			bands = append(bands, lipgloss.JoinHorizontal(lipgloss.Top, band...))
			band, used = nil, 0
		}
		if len(band) > 0 {
			band = append(band, " ")
			used++
		}
		band = append(band, card)
		used += w
	}
	if len(band) > 0 {
		bands = append(bands, lipgloss.JoinHorizontal(lipgloss.Top, band...))
	}
	return strings.Join(bands, "\n")
}

func (m Model) card(t schema.Table) string {
	th := theme.Current

	nameW := 0
	for _, c := range t.Columns {
		nameW = max(nameW, runewidth.StringWidth(c.Name))
	}
	nameW = min(nameW, maxCardWidth-10)

	lines := []string{th.DiagramCardTitle.Render(runewidth.Truncate(t.Name, maxCardWidth, "…"))}
	if len(t.Columns) == 0 {
		lines = append(lines, th.MutedText.Render("(no columns)"))
	}
	for _, c := range t.Columns {
		name := runewidth.FillRight(runewidth.Truncate(c.Name, nameW, "…"), nameW)
		lines = append(lines, th.DiagramColumn.Render(name)+" "+th.DiagramColumnType.Render(c.Type.SQL()))
	}
	return th.DiagramCard.Render(strings.Join(lines, "\n"))
}

func (m Model) maxOffset() int {
	innerW := max(m.width-2, 1)
	canvasH := max(m.height-3, 1)
	n := strings.Count(m.canvas(innerW), "\n") + 1
	return max(n-canvasH, 0)
}

// SetTables replaces the drawn tables.
func (m *Model) SetTables(tables []schema.Table) {
	m.tables = tables
	m.offsetY = min(m.offsetY, m.maxOffset())
}

// ZoomIn raises the zoom by one step up to ZoomMax.
func (m *Model) ZoomIn() {
	m.zoom = min(m.zoom+ZoomStep, ZoomMax)
}

// ZoomOut lowers the zoom by one step down to ZoomMin.
func (m *Model) ZoomOut() {
	m.zoom = max(m.zoom-ZoomStep, ZoomMin)
}

// CanZoomIn reports whether ZoomIn would change the zoom.
func (m Model) CanZoomIn() bool { return m.zoom < ZoomMax }

// CanZoomOut reports whether ZoomOut would change the zoom.
func (m Model) CanZoomOut() bool { return m.zoom > ZoomMin }

// Zoom returns the zoom in percent.
func (m Model) Zoom() int { return m.zoom }

// SetZoom clamps z into range and snaps it down to a step.
func (m *Model) SetZoom(z int) {
	z = min(max(z, ZoomMin), ZoomMax)
	m.zoom = z - z%ZoomStep
}

// SetSize sets the pane dimensions, border included.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Focus focuses the pane.
func (m *Model) Focus() { m.focused = true }

// Blur unfocuses the pane.
func (m *Model) Blur() { m.focused = false }

// Focused reports whether the pane is focused.
func (m Model) Focused() bool { return m.focused }
