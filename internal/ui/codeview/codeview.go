// Package codeview shows the generated DDL in an editable text area. Edits
// stay local to the view; the schema is never parsed back from them.
package codeview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/schemasketch/internal/theme"
)

// Options configures the code view.
type Options struct {
	TabSize         int
	ShowLineNumbers bool
}

// Model wraps a textarea. Focused, the textarea edits the text; blurred,
// the text is syntax-highlighted with a wrap-aware gutter.
type Model struct {
	textarea    textarea.Model
	highlighter *Highlighter
	opts        Options
	width       int
	height      int
	focused     bool
	modified    bool
}

// New creates an empty code view.
func New(opts Options) Model {
	if opts.TabSize < 1 {
		opts.TabSize = 4
	}

	ta := textarea.New()
	ta.Placeholder = "-- no tables"
	ta.ShowLineNumbers = opts.ShowLineNumbers
	ta.CharLimit = 0
	ta.MaxHeight = 0

	th := theme.Current
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.LineNumber = th.EditorLineNumber
	ta.FocusedStyle.Text = lipgloss.NewStyle()
	ta.BlurredStyle.LineNumber = th.EditorLineNumber
	ta.BlurredStyle.Text = lipgloss.NewStyle()
	ta.Blur()

	return Model{
		textarea:    ta,
		highlighter: NewHighlighter(),
		opts:        opts,
	}
}

// Init returns no initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update forwards keys to the textarea while focused. Tab inserts spaces and
// esc leaves editing.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			m.Blur()
			return m, nil
		case "tab":
			m.textarea.InsertString(strings.Repeat(" ", m.opts.TabSize))
			m.modified = true
			return m, nil
		}
	}

	prev := m.textarea.Value()
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	if m.textarea.Value() != prev {
		m.modified = true
	}
	return m, cmd
}

// View renders the code view with its footer.
func (m Model) View() string {
	th := theme.Current

	border := th.UnfocusedBorder
	if m.focused {
		border = th.FocusedBorder
	}

	innerW := max(m.width-2, 1)
	innerH := max(m.height-2, 1)
	bodyH := max(innerH-1, 1)

	var body string
	if m.focused {
		m.textarea.SetWidth(innerW)
		m.textarea.SetHeight(bodyH)
		body = m.textarea.View()
	} else {
		body = m.renderHighlighted(th, innerW, bodyH)
	}
	body = lipgloss.NewStyle().Height(bodyH).MaxHeight(bodyH).Render(body)

	return border.
		Width(innerW).
		Height(innerH).
		Render(body + "\n" + m.footer(th))
}

func (m Model) footer(th *theme.Theme) string {
	text := th.EditorFooter.Render(plural(m.LineCount(), "line"))
	if m.modified {
		text += th.EditorModified.Render("modified")
	}
	return text
}

// renderHighlighted draws the read-only view: each logical line is wrapped
// to the width left after the gutter, and only its first row is numbered.
func (m Model) renderHighlighted(th *theme.Theme, width, height int) string {
	raw := m.textarea.Value()
	if raw == "" {
		return th.MutedText.Render(m.textarea.Placeholder)
	}

	gutterW := 0
	if m.opts.ShowLineNumbers {
		gutterW = max(len(strconv.Itoa(m.LineCount())), 2) + 1
	}
	textW := max(width-gutterW, 1)

	numbers := gutter(raw, textW)
	var out []string
	for _, line := range m.highlighter.Lines(raw, th) {
		for _, row := range wrap(line, textW) {
			if len(out) == height || len(out) == len(numbers) {
				return strings.Join(out, "\n")
			}
			var cell string
			if gutterW > 0 {
				cell = th.EditorLineNumber.Render(fmt.Sprintf("%*s ", gutterW-1, numbers[len(out)]))
			}
			out = append(out, cell+render(row))
		}
	}
	return strings.Join(out, "\n")
}

// gutter returns one entry per visual row of text wrapped at width: the
// line number on the first row of each logical line, "" on wrapped rows.
func gutter(text string, width int) []string {
	var out []string
	for i, line := range strings.Split(text, "\n") {
		out = append(out, strconv.Itoa(i+1))
		for range rowCount(line, width) - 1 {
			out = append(out, "")
		}
	}
	return out
}

// Load replaces the content with freshly generated text and clears the
// modified flag. Tabs are expanded to the configured width.
func (m *Model) Load(text string) {
	m.textarea.SetValue(strings.ReplaceAll(text, "\t", strings.Repeat(" ", m.opts.TabSize)))
	for m.textarea.Line() > 0 {
		m.textarea.CursorUp()
	}
	m.textarea.CursorStart()
	m.modified = false
}

// Value returns the current text.
func (m Model) Value() string {
	return m.textarea.Value()
}

// LineCount returns the number of logical lines.
func (m Model) LineCount() int {
	return strings.Count(m.textarea.Value(), "\n") + 1
}

// Modified reports whether the text was edited since the last Load.
func (m Model) Modified() bool {
	return m.modified
}

// SetSize updates the dimensions, border included.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.textarea.SetWidth(max(w-2, 1))
	m.textarea.SetHeight(max(h-3, 1))
}

// Focus starts editing.
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	return m.textarea.Focus()
}

// Blur stops editing.
func (m *Model) Blur() {
	m.focused = false
	m.textarea.Blur()
}

// Focused reports whether the view is being edited.
func (m Model) Focused() bool {
	return m.focused
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
