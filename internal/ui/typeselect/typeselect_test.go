package typeselect

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

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

func TestNew_Closed(t *testing.T) {
	m := New("c1", schema.TypeInt)
	if m.Visible() {
		t.Fatal("expected dropdown closed")
	}
	if _, cmd := m.Update(specialKeyMsg(tea.KeyEnter)); cmd != nil {
		t.Fatal("closed dropdown handled enter")
	}
	if !strings.Contains(m.View(), "INT") {
		t.Errorf("button = %q", m.View())
	}
}

func TestOpen_SkipsCurrent(t *testing.T) {
	m := New("c1", schema.TypeInt)
	m.Open()
	if m.Cursor() != schema.TypeVarchar {
		t.Fatalf("cursor on %q, want varchar", m.Cursor())
	}

	m = New("c1", schema.TypeBool)
	m.Open()
	if m.Cursor() != schema.TypeChar {
		t.Fatalf("cursor on %q, want char", m.Cursor())
	}
}

func TestOpen_UnknownTypeEnablesAll(t *testing.T) {
	m := New("c1", "money")
	m.Open()
	if m.Cursor() != schema.TypeInt {
		t.Fatalf("cursor on %q, want int", m.Cursor())
	}
}

func TestMove_SkipsDisabled(t *testing.T) {
	m := New("c1", schema.TypeFloat)
	m.Open()
	if m.Cursor() != schema.TypeDouble {
		t.Fatalf("cursor on %q, want double", m.Cursor())
	}

	m, _ = m.Update(specialKeyMsg(tea.KeyUp))
	if m.Cursor() != schema.TypeVarchar {
		t.Fatalf("up skipped to %q, want varchar", m.Cursor())
	}

	m, _ = m.Update(keyMsg("k"))
	m, _ = m.Update(keyMsg("k"))
	if m.Cursor() != schema.TypeChar {
		t.Fatalf("up wrapped to %q, want char", m.Cursor())
	}

	m, _ = m.Update(keyMsg("j"))
	if m.Cursor() != schema.TypeInt {
		t.Fatalf("down wrapped to %q, want int", m.Cursor())
	}
}

func TestSelect(t *testing.T) {
	m := New("c7", schema.TypeInt)
	m.Open()
	m, _ = m.Update(specialKeyMsg(tea.KeyDown))

	m, cmd := m.Update(specialKeyMsg(tea.KeyEnter))
	if m.Visible() {
		t.Fatal("dropdown still open after select")
	}
	if cmd == nil {
		t.Fatal("expected SelectedMsg command")
	}
	sel, ok := cmd().(SelectedMsg)
	if !ok {
		t.Fatalf("expected SelectedMsg, got %T", cmd())
	}
	if sel.ColumnID != "c7" || sel.Type != schema.TypeFloat {
		t.Fatalf("SelectedMsg = %+v", sel)
	}
	if m.Current() != schema.TypeFloat {
		t.Fatalf("Current() = %q", m.Current())
	}
}

func TestEscapeAndTabClose(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyEscape, tea.KeyTab} {
		m := New("c1", schema.TypeInt)
		m.Open()
		m, cmd := m.Update(specialKeyMsg(k))
		if m.Visible() {
			t.Errorf("%v did not close dropdown", k)
		}
		if cmd != nil {
			t.Errorf("%v produced a command", k)
		}
		if m.Current() != schema.TypeInt {
			t.Errorf("%v changed type to %q", k, m.Current())
		}
	}
}

func TestView_Open(t *testing.T) {
	m := New("c1", schema.TypeChar)
	m.Open()
	view := m.View()
	for _, typ := range schema.Types() {
		if !strings.Contains(view, typ.SQL()) {
			t.Errorf("open view missing %s", typ.SQL())
		}
	}
}
