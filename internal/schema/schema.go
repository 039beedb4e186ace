package schema

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

// ColumnType is the SQL scalar type of a column.
type ColumnType string

const (
	TypeInt     ColumnType = "int"
	TypeVarchar ColumnType = "varchar"
	TypeFloat   ColumnType = "float"
	TypeDouble  ColumnType = "double"
	TypeBool    ColumnType = "bool"
	TypeChar    ColumnType = "char"
)

var columnTypes = []ColumnType{TypeInt, TypeVarchar, TypeFloat, TypeDouble, TypeBool, TypeChar}

// Types returns the selectable column types in display order.
func Types() []ColumnType {
	return slices.Clone(columnTypes)
}

// Known reports whether t is one of the selectable column types.
func (t ColumnType) Known() bool {
	return slices.Contains(columnTypes, t)
}

// SQL returns the upper-cased spelling used in generated DDL.
func (t ColumnType) SQL() string {
	return strings.ToUpper(string(t))
}

// Column represents a table column.
type Column struct {
	ID   string
	Name string
	Type ColumnType
}

// Table represents a sketched table.
type Table struct {
	ID      string
	Name    string
	Columns []Column
}

// NewColumn returns a column with a fresh identifier.
func NewColumn(name string, typ ColumnType) Column {
	return Column{ID: uuid.NewString(), Name: name, Type: typ}
}

// NewTable returns a table with a fresh identifier.
func NewTable(name string, cols ...Column) Table {
	t := Table{ID: uuid.NewString(), Name: name, Columns: slices.Clone(cols)}
	t.fillIDs()
	return t
}

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	t.Columns = slices.Clone(t.Columns)
	return t
}

func (t *Table) fillIDs() {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	seen := make(map[string]bool, len(t.Columns))
	for i := range t.Columns {
		c := &t.Columns[i]
		if c.ID == "" || seen[c.ID] {
			c.ID = uuid.NewString()
		}
		seen[c.ID] = true
	}
}

// Schema is the ordered collection of tables held by the editor.
//
// Mutations never touch a slice previously returned by Tables; each one
// installs a new backing slice.
type Schema struct {
	tables []Table
}

// New creates a schema holding the given tables in order.
func New(tables ...Table) *Schema {
	s := &Schema{}
	for _, t := range tables {
		s.Add(t)
	}
	return s
}

// Tables returns the tables in order. The result must not be modified.
func (s *Schema) Tables() []Table {
	return s.tables
}

// Len returns the number of tables.
func (s *Schema) Len() int {
	return len(s.tables)
}

// ColumnCount returns the number of columns across all tables.
func (s *Schema) ColumnCount() int {
	n := 0
	for _, t := range s.tables {
		n += len(t.Columns)
	}
	return n
}

// Find returns a copy of the table with the given ID.
func (s *Schema) Find(id string) (Table, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Table{}, false
	}
	return s.tables[i].Clone(), true
}

// Add appends a table. Missing or clashing identifiers are replaced with
// fresh ones. It returns the stored table.
func (s *Schema) Add(t Table) Table {
	t = t.Clone()
	if t.ID != "" && s.indexOf(t.ID) >= 0 {
		t.ID = ""
	}
	t.fillIDs()

	next := make([]Table, 0, len(s.tables)+1)
	next = append(next, s.tables...)
	next = append(next, t)
	s.tables = next
	return t.Clone()
}

// Update replaces the table that has the same ID, keeping its position.
func (s *Schema) Update(t Table) bool {
	i := s.indexOf(t.ID)
	if i < 0 {
		return false
	}
	t = t.Clone()
	t.fillIDs()

	next := slices.Clone(s.tables)
	next[i] = t
	s.tables = next
	return true
}

// Delete removes the table with the given ID.
func (s *Schema) Delete(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	next := make([]Table, 0, len(s.tables)-1)
	next = append(next, s.tables[:i]...)
	next = append(next, s.tables[i+1:]...)
	s.tables = next
	return true
}

// Filter returns the tables whose name contains query, in schema order.
// Matching is case-sensitive; an empty query matches every table.
func (s *Schema) Filter(query string) []Table {
	return FilterTables(s.tables, query)
}

// FilterTables applies the Filter rule to an arbitrary table list.
func FilterTables(tables []Table, query string) []Table {
	if query == "" {
		return tables
	}
	var out []Table
	for _, t := range tables {
		if strings.Contains(t.Name, query) {
			out = append(out, t)
		}
	}
	return out
}

func (s *Schema) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, t := range s.tables {
		if t.ID == id {
			return i
		}
	}
	return -1
}
