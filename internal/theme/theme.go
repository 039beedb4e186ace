// Package theme provides a centralized styling system for the schemasketch
// terminal UI. Every visual element references a lipgloss.Style held in a
// Theme struct so that the entire look-and-feel can be swapped at runtime.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme holds lipgloss.Style values for every UI element in the application.
type Theme struct {
	Name string

	// App-level
	AppBackground lipgloss.Style

	// Aside / block builder
	AsideTitle      lipgloss.Style
	BlockTable      lipgloss.Style
	BlockColumn     lipgloss.Style
	BlockColumnType lipgloss.Style
	BlockSelected   lipgloss.Style
	SearchPrompt    lipgloss.Style
	SearchEmpty     lipgloss.Style

	// Code view
	EditorLineNumber lipgloss.Style
	EditorFooter     lipgloss.Style
	EditorModified   lipgloss.Style

	// SQL Syntax highlighting
	SQLKeyword    lipgloss.Style
	SQLString     lipgloss.Style
	SQLNumber     lipgloss.Style
	SQLComment    lipgloss.Style
	SQLOperator   lipgloss.Style
	SQLFunction   lipgloss.Style
	SQLType       lipgloss.Style
	SQLIdentifier lipgloss.Style

	// Diagram
	DiagramCard       lipgloss.Style
	DiagramCardTitle  lipgloss.Style
	DiagramColumn     lipgloss.Style
	DiagramColumnType lipgloss.Style
	DiagramToolbar    lipgloss.Style

	// Tab bar
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	TabBar      lipgloss.Style

	// Status bar
	StatusBar        lipgloss.Style
	StatusBarKey     lipgloss.Style
	StatusBarValue   lipgloss.Style
	StatusBarError   lipgloss.Style
	StatusBarSuccess lipgloss.Style

	// Type dropdown
	DropdownItem     lipgloss.Style
	DropdownSelected lipgloss.Style
	DropdownDisabled lipgloss.Style
	DropdownBorder   lipgloss.Style

	// Dialog/Modal
	DialogBorder       lipgloss.Style
	DialogTitle        lipgloss.Style
	DialogButton       lipgloss.Style
	DialogButtonActive lipgloss.Style

	// Table form
	FormLabel        lipgloss.Style
	FormInput        lipgloss.Style
	FormInputFocused lipgloss.Style
	FormError        lipgloss.Style

	// General
	FocusedBorder   lipgloss.Style
	UnfocusedBorder lipgloss.Style
	ErrorText       lipgloss.Style
	SuccessText     lipgloss.Style
	WarningText     lipgloss.Style
	MutedText       lipgloss.Style
}

// palette is the small set of colors a theme is derived from.
type palette struct {
	bg, surface, raised lipgloss.Color
	border, accent      lipgloss.Color
	text, muted         lipgloss.Color
	selFg, selBg        lipgloss.Color
	table, column       lipgloss.Color

	keyword, str, number, comment lipgloss.Color
	operator, function, typ       lipgloss.Color

	err, success, warning lipgloss.Color
	statusFg, statusBg    lipgloss.Color
	buttonFg, buttonBg    lipgloss.Color
	activeFg, activeBg    lipgloss.Color
}

// ---------------------------------------------------------------------------
// Theme definitions
// ---------------------------------------------------------------------------

var (
	defaultPalette = palette{
		bg: "#1E1E1E", surface: "#252526", raised: "#2D2D2D",
		border: "#3C3C3C", accent: "#569CD6",
		text: "#D4D4D4", muted: "#808080",
		selFg: "#FFFFFF", selBg: "#264F78",
		table: "#4EC9B0", column: "#9CDCFE",
		keyword: "#569CD6", str: "#CE9178", number: "#B5CEA8", comment: "#6A9955",
		operator: "#D4D4D4", function: "#DCDCAA", typ: "#4EC9B0",
		err: "#F44747", success: "#6A9955", warning: "#CCA700",
		statusFg: "#FFFFFF", statusBg: "#007ACC",
		buttonFg: "#D4D4D4", buttonBg: "#3C3C3C",
		activeFg: "#FFFFFF", activeBg: "#007ACC",
	}

	lightPalette = palette{
		bg: "#FFFFFF", surface: "#F3F3F3", raised: "#ECECEC",
		border: "#D4D4D4", accent: "#0451A5",
		text: "#1E1E1E", muted: "#A0A0A0",
		selFg: "#FFFFFF", selBg: "#0060C0",
		table: "#267F99", column: "#001080",
		keyword: "#0000FF", str: "#A31515", number: "#098658", comment: "#008000",
		operator: "#1E1E1E", function: "#795E26", typ: "#267F99",
		err: "#E51400", success: "#16825D", warning: "#BF8803",
		statusFg: "#FFFFFF", statusBg: "#0060C0",
		buttonFg: "#1E1E1E", buttonBg: "#D4D4D4",
		activeFg: "#FFFFFF", activeBg: "#0060C0",
	}

	monokaiPalette = palette{
		bg: "#272822", surface: "#3E3D32", raised: "#1E1F1C",
		border: "#49483E", accent: "#F92672",
		text: "#F8F8F2", muted: "#75715E",
		selFg: "#F8F8F2", selBg: "#49483E",
		table: "#A6E22E", column: "#66D9EF",
		keyword: "#F92672", str: "#E6DB74", number: "#AE81FF", comment: "#75715E",
		operator: "#F92672", function: "#A6E22E", typ: "#66D9EF",
		err: "#F92672", success: "#A6E22E", warning: "#E6DB74",
		statusFg: "#F8F8F2", statusBg: "#75715E",
		buttonFg: "#F8F8F2", buttonBg: "#49483E",
		activeFg: "#272822", activeBg: "#A6E22E",
	}
)

// build derives every style from a palette.
func build(name string, p palette) *Theme {
	return &Theme{
		Name: name,

		AppBackground: lipgloss.NewStyle().
			Background(p.bg),

		// Aside
		AsideTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.accent).
			PaddingLeft(1),
		BlockTable: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.table),
		BlockColumn: lipgloss.NewStyle().
			Foreground(p.column),
		BlockColumnType: lipgloss.NewStyle().
			Foreground(p.muted).
			Italic(true),
		BlockSelected: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.selFg).
			Background(p.selBg),
		SearchPrompt: lipgloss.NewStyle().
			Foreground(p.accent),
		SearchEmpty: lipgloss.NewStyle().
			Italic(true).
			Foreground(p.muted).
			PaddingLeft(1),

		// Code view
		EditorLineNumber: lipgloss.NewStyle().
			Foreground(p.muted),
		EditorFooter: lipgloss.NewStyle().
			Foreground(p.muted).
			PaddingLeft(1),
		EditorModified: lipgloss.NewStyle().
			Foreground(p.warning).
			PaddingLeft(1),

		// SQL Syntax highlighting
		SQLKeyword: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.keyword),
		SQLString: lipgloss.NewStyle().
			Foreground(p.str),
		SQLNumber: lipgloss.NewStyle().
			Foreground(p.number),
		SQLComment: lipgloss.NewStyle().
			Italic(true).
			Foreground(p.comment),
		SQLOperator: lipgloss.NewStyle().
			Foreground(p.operator),
		SQLFunction: lipgloss.NewStyle().
			Foreground(p.function),
		SQLType: lipgloss.NewStyle().
			Foreground(p.typ),
		SQLIdentifier: lipgloss.NewStyle().
			Foreground(p.text),

		// Diagram
		DiagramCard: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(0, 1),
		DiagramCardTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.table),
		DiagramColumn: lipgloss.NewStyle().
			Foreground(p.text),
		DiagramColumnType: lipgloss.NewStyle().
			Foreground(p.muted),
		DiagramToolbar: lipgloss.NewStyle().
			Foreground(p.muted).
			Background(p.surface).
			PaddingLeft(1).
			PaddingRight(1),

		// Tab bar
		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.selFg).
			Background(p.bg).
			PaddingLeft(1).
			PaddingRight(1),
		TabInactive: lipgloss.NewStyle().
			Foreground(p.muted).
			Background(p.raised).
			PaddingLeft(1).
			PaddingRight(1),
		TabBar: lipgloss.NewStyle().
			Background(p.surface),

		// Status bar
		StatusBar: lipgloss.NewStyle().
			Foreground(p.statusFg).
			Background(p.statusBg),
		StatusBarKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.statusFg).
			Background(p.statusBg).
			PaddingLeft(1).
			PaddingRight(1),
		StatusBarValue: lipgloss.NewStyle().
			Foreground(p.text).
			Background(p.bg).
			PaddingLeft(1).
			PaddingRight(1),
		StatusBarError: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(p.err),
		StatusBarSuccess: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(p.success),

		// Type dropdown
		DropdownItem: lipgloss.NewStyle().
			Foreground(p.text).
			Background(p.surface).
			PaddingLeft(1).
			PaddingRight(1),
		DropdownSelected: lipgloss.NewStyle().
			Foreground(p.selFg).
			Background(p.selBg).
			PaddingLeft(1).
			PaddingRight(1),
		DropdownDisabled: lipgloss.NewStyle().
			Foreground(p.muted).
			Background(p.surface).
			Strikethrough(true).
			PaddingLeft(1).
			PaddingRight(1),
		DropdownBorder: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.accent),

		// Dialog/Modal
		DialogBorder: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.accent).
			Padding(1, 2),
		DialogTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.accent),
		DialogButton: lipgloss.NewStyle().
			Foreground(p.buttonFg).
			Background(p.buttonBg).
			PaddingLeft(2).
			PaddingRight(2),
		DialogButtonActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.activeFg).
			Background(p.activeBg).
			PaddingLeft(2).
			PaddingRight(2),

		// Table form
		FormLabel: lipgloss.NewStyle().
			Foreground(p.muted),
		FormInput: lipgloss.NewStyle().
			Foreground(p.text).
			Background(p.surface).
			PaddingLeft(1),
		FormInputFocused: lipgloss.NewStyle().
			Foreground(p.selFg).
			Background(p.selBg).
			PaddingLeft(1),
		FormError: lipgloss.NewStyle().
			Foreground(p.err),

		// General
		FocusedBorder: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.accent),
		UnfocusedBorder: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.border),
		ErrorText: lipgloss.NewStyle().
			Foreground(p.err),
		SuccessText: lipgloss.NewStyle().
			Foreground(p.success),
		WarningText: lipgloss.NewStyle().
			Foreground(p.warning),
		MutedText: lipgloss.NewStyle().
			Foreground(p.muted),
	}
}

// ---------------------------------------------------------------------------
// Registry and accessors
// ---------------------------------------------------------------------------

// Themes maps theme names to their Theme definitions.
var Themes = map[string]*Theme{
	"default": build("default", defaultPalette),
	"light":   build("light", lightPalette),
	"monokai": build("monokai", monokaiPalette),
}

// Current is the currently active theme. It is initialized to Default.
var Current = Themes["default"]

// Default returns the default dark theme.
func Default() *Theme {
	return Themes["default"]
}

// Get returns the theme identified by name. If no theme with that name exists
// it falls back to the default theme.
func Get(name string) *Theme {
	if t, ok := Themes[name]; ok {
		return t
	}
	return Default()
}

// Names returns the registered theme names in a stable order.
func Names() []string {
	return []string{"default", "light", "monokai"}
}
