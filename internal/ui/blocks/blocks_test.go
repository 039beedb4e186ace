package blocks

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	appmsg "github.com/sadopc/schemasketch/internal/msg"
	"github.com/sadopc/schemasketch/internal/schema"
	"github.com/sadopc/schemasketch/internal/theme"
)

func init() {
	theme.Current = theme.Default()
}

func keyMsg(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func specialKeyMsg(keyType tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: keyType}
}

func sampleTables() []schema.Table {
	return []schema.Table{
		{ID: "t1", Name: "users", Columns: []schema.Column{
			{ID: "c1", Name: "id", Type: schema.TypeInt},
			{ID: "c2", Name: "email", Type: schema.TypeVarchar},
		}},
		{ID: "t2", Name: "orders", Columns: []schema.Column{
			{ID: "c3", Name: "id", Type: schema.TypeInt},
		}},
		{ID: "t3", Name: "user_roles"},
	}
}

func newFocused(fuzzy bool) Model {
	m := New(fuzzy)
	m.SetSize(40, 20)
	m.SetTables(sampleTables())
	m.Focus()
	return m
}

func names(tables []schema.Table) []string {
	var out []string
	for _, t := range tables {
		out = append(out, t.Name)
	}
	return out
}

func TestNew(t *testing.T) {
	m := New(false)
	if len(m.flat) != 0 || m.cursor != 0 || m.focused {
		t.Fatalf("unexpected initial state: flat=%d cursor=%d focused=%v", len(m.flat), m.cursor, m.focused)
	}
}

func TestSetTables_OneRowPerTable(t *testing.T) {
	m := newFocused(false)
	if len(m.flat) != 3 {
		t.Fatalf("expected 3 rows with everything collapsed, got %d", len(m.flat))
	}
}

func TestUpdate_IgnoredWhenBlurred(t *testing.T) {
	m := newFocused(false)
	m.Blur()
	m, cmd := m.Update(keyMsg("n"))
	if cmd != nil {
		t.Fatal("expected nil cmd when not focused")
	}
}

func TestNavigation(t *testing.T) {
	m := newFocused(false)

	m, _ = m.Update(keyMsg("j"))
	if m.cursor != 1 {
		t.Fatalf("cursor = %d after j, want 1", m.cursor)
	}
	m, _ = m.Update(specialKeyMsg(tea.KeyDown))
	m, _ = m.Update(specialKeyMsg(tea.KeyDown))
	if m.cursor != 2 {
		t.Fatalf("cursor = %d at bottom, want 2", m.cursor)
	}
	m, _ = m.Update(keyMsg("g"))
	if m.cursor != 0 {
		t.Fatalf("cursor = %d after g, want 0", m.cursor)
	}
	m, _ = m.Update(keyMsg("G"))
	if m.cursor != 2 {
		t.Fatalf("cursor = %d after G, want 2", m.cursor)
	}
	m, _ = m.Update(keyMsg("k"))
	if m.cursor != 1 {
		t.Fatalf("cursor = %d after k, want 1", m.cursor)
	}
}

func TestExpandCollapse(t *testing.T) {
	m := newFocused(false)

	m, _ = m.Update(specialKeyMsg(tea.KeySpace))
	if !m.Expanded("t1") {
		t.Fatal("space did not expand users")
	}
	if len(m.flat) != 5 {
		t.Fatalf("expected 5 rows after expanding users, got %d", len(m.flat))
	}

	// Move onto a column row; left collapses its table and selects it.
	m, _ = m.Update(keyMsg("j"))
	if m.flat[m.cursor].kind != rowColumn {
		t.Fatal("expected cursor on a column row")
	}
	m, _ = m.Update(specialKeyMsg(tea.KeyLeft))
	if m.Expanded("t1") {
		t.Fatal("left did not collapse users")
	}
	if m.cursor != 0 {
		t.Fatalf("cursor = %d after collapse, want 0", m.cursor)
	}

	m, _ = m.Update(specialKeyMsg(tea.KeyRight))
	m, _ = m.Update(specialKeyMsg(tea.KeyRight))
	if !m.Expanded("t1") {
		t.Fatal("right should only expand")
	}
	m, _ = m.Update(specialKeyMsg(tea.KeySpace))
	if m.Expanded("t1") {
		t.Fatal("space should toggle closed")
	}
}

func TestSetTables_KeepsExpansion(t *testing.T) {
	m := newFocused(false)
	m, _ = m.Update(specialKeyMsg(tea.KeySpace))

	tables := sampleTables()
	tables[0].Columns = append(tables[0].Columns, schema.Column{ID: "c9", Name: "name", Type: schema.TypeChar})
	m.SetTables(tables)

	if !m.Expanded("t1") {
		t.Fatal("expansion lost after SetTables")
	}
	if len(m.flat) != 6 {
		t.Fatalf("expected 6 rows, got %d", len(m.flat))
	}

	m.SetTables(tables[1:])
	if m.Expanded("t1") {
		t.Fatal("removed table still marked expanded")
	}
}

func TestNewEditDeleteMessages(t *testing.T) {
	m := newFocused(false)
	m, _ = m.Update(keyMsg("j"))

	_, cmd := m.Update(keyMsg("n"))
	if open, ok := cmd().(appmsg.OpenTableFormMsg); !ok || open.TableID != "" {
		t.Fatalf("n produced %#v", cmd())
	}

	for _, k := range []tea.KeyMsg{keyMsg("e"), specialKeyMsg(tea.KeyEnter)} {
		_, cmd = m.Update(k)
		open, ok := cmd().(appmsg.OpenTableFormMsg)
		if !ok || open.TableID != "t2" {
			t.Fatalf("%s produced %#v", k, cmd())
		}
	}

	for _, k := range []tea.KeyMsg{keyMsg("d"), specialKeyMsg(tea.KeyDelete)} {
		_, cmd = m.Update(k)
		del, ok := cmd().(appmsg.ConfirmDeleteMsg)
		if !ok || del.TableID != "t2" || del.Name != "orders" {
			t.Fatalf("%s produced %#v", k, cmd())
		}
	}
}

func TestEditFromColumnRow(t *testing.T) {
	m := newFocused(false)
	m, _ = m.Update(specialKeyMsg(tea.KeySpace))
	m, _ = m.Update(keyMsg("j"))
	m, _ = m.Update(keyMsg("j"))

	_, cmd := m.Update(keyMsg("e"))
	if open := cmd().(appmsg.OpenTableFormMsg); open.TableID != "t1" {
		t.Fatalf("edit from column row opened %q, want t1", open.TableID)
	}
}

func TestEmptyListHasNoSelection(t *testing.T) {
	m := New(false)
	m.SetSize(60, 10)
	m.Focus()

	if _, ok := m.Selected(); ok {
		t.Fatal("empty list reported a selection")
	}
	_, cmd := m.Update(keyMsg("d"))
	if cmd != nil {
		t.Fatal("delete on empty list produced a command")
	}
	if !strings.Contains(m.View(), "No tables yet") {
		t.Errorf("empty view = %q", m.View())
	}
}

func TestSearch_Substring(t *testing.T) {
	m := newFocused(false)

	m, _ = m.Update(keyMsg("/"))
	if !m.Searching() {
		t.Fatal("/ did not start search")
	}
	m, _ = m.Update(keyMsg("user"))
	if got := names(m.Visible()); strings.Join(got, ",") != "users,user_roles" {
		t.Fatalf("visible = %v", got)
	}

	// Enter keeps the filter and leaves the input.
	m, _ = m.Update(specialKeyMsg(tea.KeyEnter))
	if m.Searching() {
		t.Fatal("enter did not leave search")
	}
	if m.Query() != "user" || len(m.Visible()) != 2 {
		t.Fatalf("filter lost after enter: %q %v", m.Query(), names(m.Visible()))
	}

	// Esc outside the input clears the filter.
	m, _ = m.Update(specialKeyMsg(tea.KeyEscape))
	if m.Query() != "" || len(m.Visible()) != 3 {
		t.Fatalf("esc did not clear filter: %q %v", m.Query(), names(m.Visible()))
	}
}

func TestSearch_CaseSensitive(t *testing.T) {
	m := newFocused(false)
	m.SetQuery("USER")
	if len(m.Visible()) != 0 {
		t.Fatalf("substring search should be case-sensitive, got %v", names(m.Visible()))
	}
	if !strings.Contains(m.View(), `No tables match "USER"`) {
		t.Errorf("no-match view = %q", m.View())
	}
}

func TestSearch_EscClearsWhileTyping(t *testing.T) {
	m := newFocused(false)
	m, _ = m.Update(keyMsg("/"))
	m, _ = m.Update(keyMsg("ord"))
	if len(m.Visible()) != 1 {
		t.Fatalf("visible = %v", names(m.Visible()))
	}
	m, _ = m.Update(specialKeyMsg(tea.KeyEscape))
	if m.Searching() || m.Query() != "" || len(m.Visible()) != 3 {
		t.Fatalf("esc in search: searching=%v query=%q visible=%v", m.Searching(), m.Query(), names(m.Visible()))
	}
}

func TestSearch_KeysDoNotTriggerActions(t *testing.T) {
	m := newFocused(false)
	m, _ = m.Update(keyMsg("/"))
	m, _ = m.Update(keyMsg("n"))
	if !m.Searching() {
		t.Fatal("typing left search mode")
	}
	if m.Query() != "n" {
		t.Fatalf("query = %q, want n", m.Query())
	}
}

func TestSearch_Fuzzy(t *testing.T) {
	m := newFocused(true)
	m.SetQuery("RS")
	if got := strings.Join(names(m.Visible()), ","); got != "users,orders,user_roles" {
		t.Fatalf("fuzzy visible = %q", got)
	}
	m.SetQuery("usrl")
	if got := strings.Join(names(m.Visible()), ","); got != "user_roles" {
		t.Fatalf("fuzzy visible = %q", got)
	}
}

func TestSelectID(t *testing.T) {
	m := newFocused(false)
	m.SelectID("t3")
	if sel, _ := m.Selected(); sel.ID != "t3" {
		t.Fatalf("selected %q, want t3", sel.ID)
	}
	m.SelectID("missing")
	if sel, _ := m.Selected(); sel.ID != "t3" {
		t.Fatal("unknown ID moved the cursor")
	}
}

func TestView(t *testing.T) {
	m := newFocused(false)
	m, _ = m.Update(specialKeyMsg(tea.KeySpace))

	view := m.View()
	for _, want := range []string{"Tables (3)", "users (2)", "email", "VARCHAR", "orders (1)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	var zero Model
	if zero.View() != "" {
		t.Fatal("expected empty view with zero size")
	}
}
