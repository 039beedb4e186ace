package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// sketchFile is the on-disk YAML shape of a sketch.
type sketchFile struct {
	Tables []sketchTable `yaml:"tables"`
}

type sketchTable struct {
	ID      string         `yaml:"id,omitempty"`
	Name    string         `yaml:"name"`
	Columns []sketchColumn `yaml:"columns"`
}

type sketchColumn struct {
	ID   string `yaml:"id,omitempty"`
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// ParseSketch decodes a YAML sketch into a schema. Missing identifiers are
// generated; a column without a type defaults to int.
func ParseSketch(data []byte) (*Schema, error) {
	var f sketchFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse sketch: %w", err)
	}

	s := New()
	for _, st := range f.Tables {
		t := Table{ID: st.ID, Name: st.Name}
		for _, sc := range st.Columns {
			typ := ColumnType(sc.Type)
			if typ == "" {
				typ = TypeInt
			}
			t.Columns = append(t.Columns, Column{ID: sc.ID, Name: sc.Name, Type: typ})
		}
		s.Add(t)
	}
	return s, nil
}

// LoadSketch reads and decodes the sketch file at path.
func LoadSketch(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sketch: %w", err)
	}
	return ParseSketch(data)
}

// UnknownTypes lists "table.column" for every column whose type is outside
// the selectable set.
func (s *Schema) UnknownTypes() []string {
	var out []string
	for _, t := range s.tables {
		for _, c := range t.Columns {
			if !c.Type.Known() {
				out = append(out, t.Name+"."+c.Name)
			}
		}
	}
	return out
}

// Starter returns the schema a fresh editor session opens with.
func Starter() *Schema {
	return New(NewTable("users", NewColumn("id", TypeInt)))
}
