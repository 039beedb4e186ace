package app

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/schemasketch/internal/config"
	"github.com/sadopc/schemasketch/internal/ddl"
	"github.com/sadopc/schemasketch/internal/export"
	"github.com/sadopc/schemasketch/internal/journal"
	"github.com/sadopc/schemasketch/internal/logging"
	"github.com/sadopc/schemasketch/internal/schema"
	"github.com/sadopc/schemasketch/internal/theme"
	"github.com/sadopc/schemasketch/internal/ui/blocks"
	"github.com/sadopc/schemasketch/internal/ui/codeview"
	"github.com/sadopc/schemasketch/internal/ui/diagram"
	"github.com/sadopc/schemasketch/internal/ui/dialog"
	"github.com/sadopc/schemasketch/internal/ui/statusbar"
	"github.com/sadopc/schemasketch/internal/ui/tableform"
	"github.com/sadopc/schemasketch/internal/ui/tabs"
)

const (
	defaultAsideWidth = 36
	minAsideWidth     = 24
)

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

// Model is the root application model.
type Model struct {
	// Layout
	width      int
	height     int
	asideWidth int
	showAside  bool

	// Focus
	focusedPane Pane

	// Components
	tabs      tabs.Model
	blocks    blocks.Model
	codeview  codeview.Model
	diagram   diagram.Model
	statusbar statusbar.Model
	form      tableform.Model
	confirm   dialog.Model
	help      help.Model

	// State tree
	schema *schema.Schema

	// Config
	cfg     *config.Config
	journal *journal.Logger
	logger  *slog.Logger
	keyMap  KeyMap
	now     func() time.Time

	showHelp bool
	quitting bool
}

// New creates the root model around sk. A nil schema starts empty, a nil
// journal records nothing and a nil logger discards.
func New(cfg *config.Config, sk *schema.Schema, jr *journal.Logger, logger *slog.Logger) Model {
	if t := theme.Get(cfg.Theme); t != nil {
		theme.Current = t
	}
	if sk == nil {
		sk = schema.New()
	}
	if logger == nil {
		logger = logging.Discard()
	}

	m := Model{
		asideWidth:  defaultAsideWidth,
		showAside:   true,
		focusedPane: PaneAside,

		tabs:   tabs.New(),
		blocks: blocks.New(cfg.Search.Fuzzy),
		codeview: codeview.New(codeview.Options{
			TabSize:         cfg.Editor.TabSize,
			ShowLineNumbers: cfg.Editor.ShowLineNumbers,
		}),
		diagram:   diagram.New(cfg.Diagram.Zoom),
		statusbar: statusbar.New(),
		form:      tableform.New(),
		help:      help.New(),

		schema:  sk,
		cfg:     cfg,
		journal: jr,
		logger:  logger,
		keyMap:  DefaultKeyMap(),
		now:     time.Now,
	}

	m.blocks.Focus()
	m.statusbar.SetZoom(m.diagram.Zoom())
	m.refresh()
	return m
}

// SetSource names the sketch file shown in the status bar.
func (m *Model) SetSource(name string) {
	m.statusbar.SetSource(name)
}

// Schema returns the schema being edited.
func (m Model) Schema() *schema.Schema {
	return m.schema
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		// Priority: form > confirmation > help > global > focused pane
		if m.form.Visible() {
			var cmd tea.Cmd
			m.form, cmd = m.form.Update(msg)
			return m, cmd
		}

		if m.confirm.Visible() {
			var cmd tea.Cmd
			m.confirm, cmd = m.confirm.Update(msg)
			return m, cmd
		}

		if m.showHelp {
			if key.Matches(msg, m.keyMap.Help, m.keyMap.LeaveCode) || msg.String() == "q" {
				m.showHelp = false
			}
			return m, nil
		}

		if cmd, handled := m.handleGlobalKeys(msg); handled {
			return m, cmd
		}

		cmd := m.handleFocusedPaneKey(msg)
		return m, cmd

	case FocusMsg:
		m.setFocus(msg.Pane)
		return m, nil

	case SwitchTabMsg:
		m.tabs, _ = m.tabs.Update(msg)
		return m, m.enterTab(msg.Tab)

	case OpenTableFormMsg:
		return m, m.openForm(msg.TableID)

	case TableSubmittedMsg:
		return m, m.applySubmit(msg)

	case CloseTableFormMsg:
		m.form.Hide()
		return m, nil

	case ConfirmDeleteMsg:
		m.confirm = dialog.ConfirmDelete(msg.TableID, msg.Name)
		m.confirm.SetSize(m.width, m.height)
		m.confirm.Show()
		return m, nil

	case DeleteTableMsg:
		return m, m.applyDelete(msg.TableID)

	case diagram.ZoomMsg:
		m.statusbar.SetZoom(msg.Zoom)
		m.logger.Debug("diagram zoom", "zoom", msg.Zoom)
		return m, nil

	case ExportRequestMsg:
		return m, m.exportSchema(export.ParseFormat(msg.Format), msg.Dir)

	case ExportCompleteMsg:
		m.logger.Info("schema exported", "path", msg.Path, "tables", msg.Tables)
		var cmd tea.Cmd
		m.statusbar, cmd = m.statusbar.Update(msg)
		return m, cmd

	case ExportErrMsg:
		m.logger.Error("export failed", "err", msg.Err)
		var cmd tea.Cmd
		m.statusbar, cmd = m.statusbar.Update(msg)
		return m, cmd

	case StatusMsg, statusbar.ClearStatusMsg:
		var cmd tea.Cmd
		m.statusbar, cmd = m.statusbar.Update(msg)
		return m, cmd
	}

	// Forward anything else (cursor blink, dropdown selections) to the open
	// form and the focused text inputs.
	if m.form.Visible() {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		cmds = append(cmds, cmd)
	} else if m.codeview.Focused() {
		var cmd tea.Cmd
		m.codeview, cmd = m.codeview.Update(msg)
		cmds = append(cmds, cmd)
	} else if m.blocks.Searching() {
		var cmd tea.Cmd
		m.blocks, cmd = m.blocks.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleGlobalKeys runs application-wide shortcuts. The bool reports whether
// the key was consumed.
func (m *Model) handleGlobalKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	typing := m.typing()

	switch {
	case key.Matches(msg, m.keyMap.Quit):
		m.quitting = true
		return tea.Quit, true

	case key.Matches(msg, m.keyMap.Help) && !(typing && msg.String() == "?"):
		m.showHelp = true
		return nil, true

	case key.Matches(msg, m.keyMap.ToggleAside):
		m.showAside = !m.showAside
		if !m.showAside && m.focusedPane == PaneAside {
			m.setFocus(PaneDiagram)
		}
		m.updateLayout()
		return nil, true

	case key.Matches(msg, m.keyMap.Export):
		format, dir := m.cfg.Export.Format, m.cfg.Export.Dir
		return func() tea.Msg { return ExportRequestMsg{Format: format, Dir: dir} }, true

	case key.Matches(msg, m.keyMap.CopySQL):
		return m.copySQL(), true

	case key.Matches(msg, m.keyMap.NextTab):
		return m.tabs.NextTab(), true

	case key.Matches(msg, m.keyMap.PrevTab):
		return m.tabs.PrevTab(), true

	case key.Matches(msg, m.keyMap.FocusBlocks):
		return func() tea.Msg { return SwitchTabMsg{Tab: TabBlocks} }, true

	case key.Matches(msg, m.keyMap.FocusCode):
		return func() tea.Msg { return SwitchTabMsg{Tab: TabCode} }, true

	case key.Matches(msg, m.keyMap.FocusDiagram):
		m.setFocus(PaneDiagram)
		return nil, true

	case key.Matches(msg, m.keyMap.FocusNext) && !m.codeview.Focused():
		m.cycleFocus(1)
		return nil, true

	case key.Matches(msg, m.keyMap.FocusPrev) && !m.codeview.Focused():
		m.cycleFocus(-1)
		return nil, true

	case key.Matches(msg, m.keyMap.ResizeLeft):
		if m.asideWidth > minAsideWidth {
			m.asideWidth -= 2
			m.updateLayout()
		}
		return nil, true

	case key.Matches(msg, m.keyMap.ResizeRight):
		if m.asideWidth < m.width/2 {
			m.asideWidth += 2
			m.updateLayout()
		}
		return nil, true
	}
	return nil, false
}

func (m *Model) handleFocusedPaneKey(msg tea.KeyMsg) tea.Cmd {
	switch m.focusedPane {
	case PaneAside:
		if m.tabs.Active() == TabCode {
			if !m.codeview.Focused() {
				if key.Matches(msg, m.keyMap.EditCode) {
					return m.codeview.Focus()
				}
				return nil
			}
			var cmd tea.Cmd
			m.codeview, cmd = m.codeview.Update(msg)
			m.tabs.SetModified(TabCode, m.codeview.Modified())
			return cmd
		}
		var cmd tea.Cmd
		m.blocks, cmd = m.blocks.Update(msg)
		return cmd

	case PaneDiagram:
		if key.Matches(msg, m.keyMap.NewTable) {
			return func() tea.Msg { return OpenTableFormMsg{} }
		}
		var cmd tea.Cmd
		m.diagram, cmd = m.diagram.Update(msg)
		return cmd
	}
	return nil
}

// typing reports whether a text field holds the keyboard.
func (m Model) typing() bool {
	return m.codeview.Focused() || m.blocks.Searching()
}

// enterTab shows tab in the aside. Entering the code editor regenerates its
// text from the schema and focuses it.
func (m *Model) enterTab(tab AsideTab) tea.Cmd {
	m.setFocus(PaneAside)
	if tab != TabCode {
		m.codeview.Blur()
		m.blocks.Focus()
		return nil
	}

	m.blocks.Blur()
	m.codeview.Load(ddl.Render(m.schema.Tables()))
	m.tabs.SetModified(TabCode, false)
	return m.codeview.Focus()
}

func (m *Model) openForm(tableID string) tea.Cmd {
	m.form.SetSize(m.width, m.height)
	if tableID == "" {
		return m.form.OpenNew(m.cfg.DefaultColumns())
	}
	t, ok := m.schema.Find(tableID)
	if !ok {
		return m.status(fmt.Sprintf("table %s no longer exists", tableID), true)
	}
	return m.form.OpenEdit(t)
}

func (m *Model) applySubmit(msg TableSubmittedMsg) tea.Cmd {
	t := msg.Table
	action := journal.ActionCreate
	text := fmt.Sprintf("Created table %s", t.Name)

	if msg.Editing && m.schema.Update(t) {
		action = journal.ActionUpdate
		text = fmt.Sprintf("Updated table %s", t.Name)
	} else {
		t = m.schema.Add(t)
	}

	m.logger.Info("table saved", "action", action, "id", t.ID, "name", t.Name, "columns", len(t.Columns))
	m.refresh()
	m.blocks.SelectID(t.ID)

	return tea.Batch(m.status(text, false), m.record(action, t))
}

func (m *Model) applyDelete(id string) tea.Cmd {
	t, ok := m.schema.Find(id)
	if !ok || !m.schema.Delete(id) {
		return nil
	}

	m.logger.Info("table deleted", "id", t.ID, "name", t.Name)
	m.refresh()
	return tea.Batch(m.status(fmt.Sprintf("Deleted table %s", t.Name), false), m.record(journal.ActionDelete, t))
}

// refresh pushes the current schema into every view.
func (m *Model) refresh() {
	tables := m.schema.Tables()
	m.blocks.SetTables(tables)
	m.diagram.SetTables(tables)
	m.statusbar.SetCounts(m.schema.Len(), m.schema.ColumnCount())
}

// record writes a journal entry off the update loop.
func (m *Model) record(action journal.Action, t schema.Table) tea.Cmd {
	if m.journal == nil {
		return nil
	}
	jr, logger := m.journal, m.logger
	return func() tea.Msg {
		if err := jr.Record(action, t); err != nil {
			logger.Error("journal write failed", "err", err)
			return StatusMsg{Text: fmt.Sprintf("journal: %v", err), IsError: true}
		}
		return nil
	}
}

func (m *Model) status(text string, isError bool) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text, IsError: isError} }
}

func (m *Model) exportSchema(format export.Format, dir string) tea.Cmd {
	tables := m.schema.Tables()
	now := m.now()
	return func() tea.Msg {
		if len(tables) == 0 {
			return ExportErrMsg{Err: fmt.Errorf("no tables to export")}
		}
		path, err := export.ToFile(dir, format, tables, now)
		if err != nil {
			return ExportErrMsg{Err: err}
		}
		return ExportCompleteMsg{Path: path, Tables: len(tables)}
	}
}

func (m *Model) copySQL() tea.Cmd {
	text := ddl.Render(m.schema.Tables())
	logger := m.logger
	return func() tea.Msg {
		if err := copyToClipboard(text); err != nil {
			logger.Error("clipboard write failed", "err", err)
			return StatusMsg{Text: fmt.Sprintf("copy failed: %v", err), IsError: true}
		}
		return StatusMsg{Text: "Copied SQL to clipboard"}
	}
}

// View renders the entire application.
func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	th := theme.Current

	var content string
	if m.showAside {
		aside := lipgloss.JoinVertical(lipgloss.Left, m.tabs.View(), m.asideBody())
		content = lipgloss.JoinHorizontal(lipgloss.Top, aside, m.diagram.View())
	} else {
		content = m.diagram.View()
	}

	view := lipgloss.JoinVertical(lipgloss.Left, content, m.statusbar.View())

	if m.showHelp {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderHelpScreen(th))
	}
	if m.form.Visible() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.form.View())
	}
	return m.confirm.Overlay(view)
}

func (m Model) asideBody() string {
	if m.tabs.Active() == TabCode {
		return m.codeview.View()
	}
	return m.blocks.View()
}

func (m *Model) updateLayout() {
	mainHeight := max(m.height-1, 1) // status bar

	m.statusbar.SetSize(m.width)
	m.form.SetSize(m.width, m.height)
	m.confirm.SetSize(m.width, m.height)
	m.help.Width = m.width

	diagramWidth := m.width
	if m.showAside {
		if m.asideWidth > m.width/2 {
			m.asideWidth = max(m.width/2, minAsideWidth)
		}
		diagramWidth = max(m.width-m.asideWidth, 1)

		m.tabs.SetSize(m.asideWidth)
		bodyHeight := max(mainHeight-lipgloss.Height(m.tabs.View()), 1)
		m.blocks.SetSize(m.asideWidth, bodyHeight)
		m.codeview.SetSize(m.asideWidth, bodyHeight)
	}
	m.diagram.SetSize(diagramWidth, mainHeight)
}

func (m *Model) cycleFocus(direction int) {
	panes := []Pane{PaneDiagram}
	if m.showAside {
		panes = []Pane{PaneAside, PaneDiagram}
	}

	current := 0
	for i, p := range panes {
		if p == m.focusedPane {
			current = i
			break
		}
	}

	next := (current + direction + len(panes)) % len(panes)
	m.setFocus(panes[next])
}

func (m *Model) setFocus(pane Pane) {
	switch m.focusedPane {
	case PaneAside:
		m.blocks.Blur()
		m.codeview.Blur()
	case PaneDiagram:
		m.diagram.Blur()
	}

	if pane == PaneAside && !m.showAside {
		m.showAside = true
		m.updateLayout()
	}
	m.focusedPane = pane

	switch pane {
	case PaneAside:
		if m.tabs.Active() == TabBlocks {
			m.blocks.Focus()
		}
	case PaneDiagram:
		m.diagram.Focus()
	}
}

func (m *Model) renderHelpScreen(th *theme.Theme) string {
	keyStyle := th.StatusBarValue.Bold(true)
	descStyle := lipgloss.NewStyle()

	line := func(b key.Binding) string {
		h := b.Help()
		return fmt.Sprintf("  %s  %s", keyStyle.Render(fmt.Sprintf("%-14s", h.Key)), descStyle.Render(h.Desc))
	}

	var b strings.Builder
	b.WriteString(th.DialogTitle.Render("  schemasketch - Keyboard Shortcuts"))
	b.WriteString("\n")

	for i, group := range m.keyMap.FullHelp() {
		if title := helpSections[i]; title != "" {
			b.WriteString("\n")
			b.WriteString(th.AsideTitle.Render("  " + title))
			b.WriteString("\n")
		}
		for _, binding := range group {
			b.WriteString(line(binding))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(th.AsideTitle.Render("  Table form"))
	b.WriteString("\n")
	for _, kv := range [][2]string{
		{"tab / shift+tab", "Next / previous field"},
		{"space / enter", "Open type list"},
		{"ctrl+n / ctrl+x", "Add / remove column"},
		{"ctrl+s", "Save"},
		{"esc", "Close"},
	} {
		b.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-14s", kv[0])), descStyle.Render(kv[1])))
	}

	b.WriteString("\n")
	b.WriteString(th.MutedText.Render("  " + m.help.ShortHelpView([]key.Binding{m.keyMap.Help, m.keyMap.LeaveCode})))
	b.WriteString(th.MutedText.Render(" to close"))

	return th.DialogBorder.Render(b.String())
}
