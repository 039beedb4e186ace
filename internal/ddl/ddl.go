// Package ddl turns a schema sketch into CREATE TABLE text.
//
// The output is for display only. Identifiers are written verbatim, without
// quoting or escaping, and no constraints are emitted.
package ddl

import (
	"io"
	"strings"

	"github.com/sadopc/schemasketch/internal/schema"
)

// Render returns the CREATE TABLE statements for tables, separated by a blank
// line. There is no trailing newline after the last statement.
func Render(tables []schema.Table) string {
	var b strings.Builder
	for i, t := range tables {
		writeTable(&b, t)
		if i != len(tables)-1 {
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

// Write streams the Render output to w.
func Write(w io.Writer, tables []schema.Table) error {
	_, err := io.WriteString(w, Render(tables))
	return err
}

// Table returns the statement for a single table.
func Table(t schema.Table) string {
	var b strings.Builder
	writeTable(&b, t)
	return b.String()
}

func writeTable(b *strings.Builder, t schema.Table) {
	b.WriteString("CREATE TABLE ")
	b.WriteString(t.Name)
	b.WriteString(" (\n")
	for i, c := range t.Columns {
		b.WriteByte('\t')
		b.WriteString(c.Name)
		b.WriteByte(' ')
		b.WriteString(c.Type.SQL())
		if i != len(t.Columns)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString(");")
}
