// Package export writes the sketched schema to files.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sadopc/schemasketch/internal/ddl"
	"github.com/sadopc/schemasketch/internal/schema"
)

// Format selects the export encoding.
type Format string

const (
	FormatSQL      Format = "sql"
	FormatMarkdown Format = "md"
)

// ParseFormat maps "md"/"markdown" to FormatMarkdown and anything else to
// FormatSQL.
func ParseFormat(s string) Format {
	switch s {
	case "md", "markdown":
		return FormatMarkdown
	default:
		return FormatSQL
	}
}

// Write encodes tables to w in the given format.
func Write(w io.Writer, format Format, tables []schema.Table) error {
	if format == FormatMarkdown {
		return Markdown(w, tables)
	}
	if err := ddl.Write(w, tables); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Markdown writes one section per table listing its columns.
func Markdown(w io.Writer, tables []schema.Table) error {
	if _, err := fmt.Fprint(w, "# Schema\n\n"); err != nil {
		return err
	}
	for _, t := range tables {
		if _, err := fmt.Fprintf(w, "## %s\n\n", t.Name); err != nil {
			return err
		}
		if len(t.Columns) == 0 {
			if _, err := fmt.Fprint(w, "_no columns_\n\n"); err != nil {
				return err
			}
			continue
		}
		for _, c := range t.Columns {
			if _, err := fmt.Fprintf(w, "- **%s:** %s\n", c.Name, c.Type.SQL()); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// FileName returns schema_<timestamp>.<ext> for the given moment.
func FileName(format Format, now time.Time) string {
	return fmt.Sprintf("schema_%s.%s", now.Format("20060102_150405"), format)
}

// ToFile writes tables to a new file in dir and returns its path.
func ToFile(dir string, format Format, tables []schema.Table, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export: create dir: %w", err)
	}
	path := filepath.Join(dir, FileName(format, now))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	defer f.Close()

	if err := Write(f, format, tables); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	return path, f.Close()
}
