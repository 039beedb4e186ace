package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/pflag"

	"github.com/sadopc/schemasketch/internal/schema"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Theme != "default" {
		t.Errorf("Theme = %q, want %q", cfg.Theme, "default")
	}
	if cfg.Editor.TabSize != 4 {
		t.Errorf("Editor.TabSize = %d, want %d", cfg.Editor.TabSize, 4)
	}
	if !cfg.Editor.ShowLineNumbers {
		t.Error("Editor.ShowLineNumbers = false, want true")
	}
	if cfg.Search.Fuzzy {
		t.Error("Search.Fuzzy = true, want false")
	}
	if cfg.Diagram.Zoom != 100 {
		t.Errorf("Diagram.Zoom = %d, want 100", cfg.Diagram.Zoom)
	}
	if cfg.Export.Format != "sql" || cfg.Export.Dir != "." {
		t.Errorf("Export = %+v", cfg.Export)
	}
	if cfg.Journal.Enabled {
		t.Error("Journal.Enabled = true, want false")
	}
	want := []ColumnTemplate{{Name: "id", Type: "int"}}
	if !reflect.DeepEqual(cfg.Form.DefaultColumns, want) {
		t.Errorf("Form.DefaultColumns = %+v, want %+v", cfg.Form.DefaultColumns, want)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("Load(missing) = %+v, want defaults %+v", cfg, DefaultConfig())
	}
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Theme != "default" {
		t.Errorf("Theme = %q", cfg.Theme)
	}
}

func TestLoadValidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `theme: monokai
editor:
  tab_size: 2
  show_line_numbers: false
search:
  fuzzy: true
diagram:
  zoom: 150
export:
  dir: /tmp/out
  format: md
journal:
  enabled: true
  path: /tmp/journal.jsonl
  max_size_mb: 5
form:
  default_columns:
    - name: id
      type: int
    - name: created_at
      type: varchar
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Theme != "monokai" {
		t.Errorf("Theme = %q", cfg.Theme)
	}
	if cfg.Editor.TabSize != 2 || cfg.Editor.ShowLineNumbers {
		t.Errorf("Editor = %+v", cfg.Editor)
	}
	if !cfg.Search.Fuzzy {
		t.Error("Search.Fuzzy = false")
	}
	if cfg.Diagram.Zoom != 150 {
		t.Errorf("Diagram.Zoom = %d", cfg.Diagram.Zoom)
	}
	if cfg.Export.Dir != "/tmp/out" || cfg.Export.Format != "md" {
		t.Errorf("Export = %+v", cfg.Export)
	}
	if !cfg.Journal.Enabled || cfg.Journal.Path != "/tmp/journal.jsonl" || cfg.Journal.MaxSizeMB != 5 {
		t.Errorf("Journal = %+v", cfg.Journal)
	}
	// Untouched keys keep their defaults.
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
	if len(cfg.Form.DefaultColumns) != 2 || cfg.Form.DefaultColumns[1].Name != "created_at" {
		t.Errorf("Form.DefaultColumns = %+v", cfg.Form.DefaultColumns)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("theme: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, nil); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("theme: light\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SKETCHSQL_THEME", "monokai")
	t.Setenv("SKETCHSQL_SEARCH__FUZZY", "true")
	t.Setenv("SKETCHSQL_DIAGRAM__ZOOM", "75")

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Theme != "monokai" {
		t.Errorf("Theme = %q, want monokai", cfg.Theme)
	}
	if !cfg.Search.Fuzzy {
		t.Error("Search.Fuzzy = false, want true")
	}
	if cfg.Diagram.Zoom != 75 {
		t.Errorf("Diagram.Zoom = %d, want 75", cfg.Diagram.Zoom)
	}
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("SKETCHSQL_THEME", "monokai")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("theme", "", "")
	flags.Bool("fuzzy", false, "")
	flags.String("sketch", "", "")
	if err := flags.Parse([]string{"--theme", "light", "--sketch", "x.yaml"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("", flags)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Theme != "light" {
		t.Errorf("Theme = %q, want light", cfg.Theme)
	}
	// Unset flags do not override.
	if cfg.Search.Fuzzy {
		t.Error("Search.Fuzzy = true from an unset flag")
	}
}

func TestLoad_Normalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "diagram:\n  zoom: 260\nexport:\n  format: PDF\n  dir: \"\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Diagram.Zoom != 200 {
		t.Errorf("Diagram.Zoom = %d, want 200", cfg.Diagram.Zoom)
	}
	if cfg.Export.Format != "sql" {
		t.Errorf("Export.Format = %q, want sql", cfg.Export.Format)
	}
	if cfg.Export.Dir != "." {
		t.Errorf("Export.Dir = %q, want .", cfg.Export.Dir)
	}
}

func TestNormalize_ZoomSnapsToStep(t *testing.T) {
	tests := []struct{ in, want int }{
		{-10, 0}, {0, 0}, {30, 25}, {100, 100}, {199, 175}, {500, 200},
	}
	for _, tt := range tests {
		c := DefaultConfig()
		c.Diagram.Zoom = tt.in
		c.normalize()
		if c.Diagram.Zoom != tt.want {
			t.Errorf("zoom %d normalized to %d, want %d", tt.in, c.Diagram.Zoom, tt.want)
		}
	}
}

func TestDefaultColumns(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Form.DefaultColumns = []ColumnTemplate{
		{Name: "id", Type: "INT"},
		{Name: "label", Type: ""},
		{Name: "code", Type: "char"},
	}
	cols := cfg.DefaultColumns()
	if len(cols) != 3 {
		t.Fatalf("len = %d, want 3", len(cols))
	}
	wantTypes := []schema.ColumnType{schema.TypeInt, schema.TypeInt, schema.TypeChar}
	for i, c := range cols {
		if c.Type != wantTypes[i] {
			t.Errorf("cols[%d].Type = %q, want %q", i, c.Type, wantTypes[i])
		}
		if c.ID == "" {
			t.Errorf("cols[%d] has no ID", i)
		}
	}
	if cols[0].ID == cols[1].ID {
		t.Error("column IDs repeat")
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	orig := DefaultConfig()
	orig.Theme = "light"
	orig.Search.Fuzzy = true
	orig.Form.DefaultColumns = append(orig.Form.DefaultColumns, ColumnTemplate{Name: "name", Type: "varchar"})

	if err := orig.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat saved config: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("file perm = %o, want 600", perm)
	}

	loaded, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(loaded, orig) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", loaded, orig)
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if filepath.Base(dir) != "schemasketch" {
		t.Errorf("ConfigDir() = %q, want .../schemasketch", dir)
	}
}

func TestJournalPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Journal.Path = "/tmp/custom.jsonl"
	if got := cfg.JournalPath(); got != "/tmp/custom.jsonl" {
		t.Errorf("JournalPath() = %q", got)
	}

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg.Journal.Path = ""
	if got := cfg.JournalPath(); filepath.Base(got) != "journal.jsonl" {
		t.Errorf("JournalPath() = %q, want .../journal.jsonl", got)
	}
}
