package codeview

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/sadopc/schemasketch/internal/theme"
)

// Highlighter tokenises DDL with chroma and styles tokens from the theme.
type Highlighter struct {
	lexer chroma.Lexer
}

// NewHighlighter returns a highlighter for the generic SQL lexer.
func NewHighlighter() *Highlighter {
	l := lexers.Get("SQL")
	if l == nil {
		l = lexers.Fallback
	}
	return &Highlighter{lexer: chroma.Coalesce(l)}
}

// segment is a run of text sharing one style.
type segment struct {
	text   string
	style  lipgloss.Style
	styled bool
}

// Lines tokenises src and returns one segment list per logical line.
func (h *Highlighter) Lines(src string, th *theme.Theme) [][]segment {
	lines := [][]segment{nil}
	push := func(text string, style lipgloss.Style, ok bool) {
		if text == "" {
			return
		}
		last := len(lines) - 1
		lines[last] = append(lines[last], segment{text: text, style: style, styled: ok})
	}

	iter, err := h.lexer.Tokenise(nil, src)
	if err != nil || th == nil {
		for i, l := range strings.Split(src, "\n") {
			if i > 0 {
				lines = append(lines, nil)
			}
			push(l, lipgloss.Style{}, false)
		}
		return lines
	}

	for _, tok := range iter.Tokens() {
		style, ok := styleFor(tok.Type, th)
		for i, part := range strings.Split(tok.Value, "\n") {
			if i > 0 {
				lines = append(lines, nil)
			}
			push(part, style, ok)
		}
	}
	// Some lexers append a newline to the input.
	if want := strings.Count(src, "\n") + 1; len(lines) > want {
		lines = lines[:want]
	}
	return lines
}

// Highlight renders src with styles, keeping newlines as-is.
func (h *Highlighter) Highlight(src string, th *theme.Theme) string {
	lines := h.Lines(src, th)
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = render(l)
	}
	return strings.Join(out, "\n")
}

func render(segs []segment) string {
	var b strings.Builder
	for _, s := range segs {
		if s.styled {
			b.WriteString(s.style.Render(s.text))
		} else {
			b.WriteString(s.text)
		}
	}
	return b.String()
}

// wrap breaks a styled line into rows at most width cells wide.
func wrap(segs []segment, width int) [][]segment {
	if width < 1 {
		return [][]segment{segs}
	}
	rows := [][]segment{nil}
	col := 0
	for _, s := range segs {
		var cur strings.Builder
		for _, r := range s.text {
			rw := runewidth.RuneWidth(r)
			if col > 0 && col+rw > width {
				if cur.Len() > 0 {
					rows[len(rows)-1] = append(rows[len(rows)-1], segment{cur.String(), s.style, s.styled})
					cur.Reset()
				}
				rows = append(rows, nil)
				col = 0
			}
			cur.WriteRune(r)
			col += rw
		}
		if cur.Len() > 0 {
			rows[len(rows)-1] = append(rows[len(rows)-1], segment{cur.String(), s.style, s.styled})
		}
	}
	return rows
}

// rowCount is the number of rows wrap produces for a plain line.
func rowCount(line string, width int) int {
	return len(wrap([]segment{{text: line}}, width))
}

func styleFor(tt chroma.TokenType, th *theme.Theme) (lipgloss.Style, bool) {
	switch {
	case tt == chroma.KeywordType:
		return th.SQLType, true
	case tt == chroma.NameFunction || tt == chroma.NameBuiltin:
		return th.SQLFunction, true
	case tt.InCategory(chroma.Keyword):
		return th.SQLKeyword, true
	case tt.InSubCategory(chroma.LiteralString):
		return th.SQLString, true
	case tt.InSubCategory(chroma.LiteralNumber):
		return th.SQLNumber, true
	case tt.InCategory(chroma.Comment):
		return th.SQLComment, true
	case tt.InCategory(chroma.Operator), tt == chroma.Punctuation:
		return th.SQLOperator, true
	case tt.InCategory(chroma.Name):
		return th.SQLIdentifier, true
	default:
		return lipgloss.Style{}, false
	}
}
