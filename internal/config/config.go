package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/sadopc/schemasketch/internal/schema"
)

// EnvPrefix is the prefix of environment variables that override config keys.
// A double underscore separates nested keys: SKETCHSQL_SEARCH__FUZZY=true.
const EnvPrefix = "SKETCHSQL_"

// Config holds all application configuration.
type Config struct {
	Theme   string        `yaml:"theme"`
	Editor  EditorConfig  `yaml:"editor"`
	Search  SearchConfig  `yaml:"search"`
	Diagram DiagramConfig `yaml:"diagram"`
	Export  ExportConfig  `yaml:"export"`
	Journal JournalConfig `yaml:"journal"`
	Log     LogConfig     `yaml:"log"`
	Form    FormConfig    `yaml:"form"`
}

// EditorConfig holds code view settings.
type EditorConfig struct {
	TabSize         int  `yaml:"tab_size"`
	ShowLineNumbers bool `yaml:"show_line_numbers"`
}

// SearchConfig controls the table filter.
type SearchConfig struct {
	Fuzzy bool `yaml:"fuzzy"`
}

// DiagramConfig holds diagram pane settings.
type DiagramConfig struct {
	Zoom int `yaml:"zoom"`
}

// ExportConfig controls where ctrl+e writes and in which format.
type ExportConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // "sql" or "md"
}

// JournalConfig controls the schema edit journal.
type JournalConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Path      string `yaml:"path,omitempty"`
	MaxSizeMB int    `yaml:"max_size_mb"`
}

// LogConfig controls the diagnostic log file.
type LogConfig struct {
	Path  string `yaml:"path,omitempty"`
	Level string `yaml:"level"`
}

// FormConfig holds defaults for the table form.
type FormConfig struct {
	DefaultColumns []ColumnTemplate `yaml:"default_columns"`
}

// ColumnTemplate seeds a column in a newly created table.
type ColumnTemplate struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Theme: "default",
		Editor: EditorConfig{
			TabSize:         4,
			ShowLineNumbers: true,
		},
		Diagram: DiagramConfig{Zoom: 100},
		Export: ExportConfig{
			Dir:    ".",
			Format: "sql",
		},
		Journal: JournalConfig{MaxSizeMB: 10},
		Log:     LogConfig{Level: "info"},
		Form: FormConfig{
			DefaultColumns: []ColumnTemplate{{Name: "id", Type: string(schema.TypeInt)}},
		},
	}
}

// defaultValues flattens DefaultConfig into koanf keys.
func defaultValues() map[string]any {
	d := DefaultConfig()
	cols := make([]any, 0, len(d.Form.DefaultColumns))
	for _, c := range d.Form.DefaultColumns {
		cols = append(cols, map[string]any{"name": c.Name, "type": c.Type})
	}
	return map[string]any{
		"theme":                    d.Theme,
		"editor.tab_size":          d.Editor.TabSize,
		"editor.show_line_numbers": d.Editor.ShowLineNumbers,
		"search.fuzzy":             d.Search.Fuzzy,
		"diagram.zoom":             d.Diagram.Zoom,
		"export.dir":               d.Export.Dir,
		"export.format":            d.Export.Format,
		"journal.enabled":          d.Journal.Enabled,
		"journal.max_size_mb":      d.Journal.MaxSizeMB,
		"log.level":                d.Log.Level,
		"form.default_columns":     cols,
	}
}

// ConfigDir returns the schemasketch configuration directory path,
// typically ~/.config/schemasketch/.
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config dir: %w", err)
	}
	return filepath.Join(base, "schemasketch"), nil
}

// DefaultPath returns ConfigDir()/config.yaml.
func DefaultPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load builds a Config from defaults, the YAML file at path, SKETCHSQL_*
// environment variables and explicitly set flags, in increasing precedence.
// A missing file is not an error. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultValues(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, flagKey(flags)), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "yaml"}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()
	return &cfg, nil
}

// LoadDefault loads configuration from DefaultPath.
func LoadDefault(flags *pflag.FlagSet) (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Load(path, flags)
}

// envKey maps SKETCHSQL_SEARCH__FUZZY to search.fuzzy.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// flagKey only forwards flags the user set and that name a config key.
func flagKey(flags *pflag.FlagSet) func(*pflag.Flag) (string, any) {
	mapped := map[string]string{
		"theme":         "theme",
		"fuzzy":         "search.fuzzy",
		"zoom":          "diagram.zoom",
		"export-dir":    "export.dir",
		"export-format": "export.format",
		"journal":       "journal.enabled",
		"log-file":      "log.path",
		"log-level":     "log.level",
	}
	return func(f *pflag.Flag) (string, any) {
		if !f.Changed {
			return "", nil
		}
		key, ok := mapped[f.Name]
		if !ok {
			return "", nil
		}
		return key, posflag.FlagVal(flags, f)
	}
}

func (c *Config) normalize() {
	if c.Diagram.Zoom < 0 {
		c.Diagram.Zoom = 0
	}
	if c.Diagram.Zoom > 200 {
		c.Diagram.Zoom = 200
	}
	c.Diagram.Zoom -= c.Diagram.Zoom % 25
	c.Export.Format = strings.ToLower(c.Export.Format)
	if c.Export.Format != "md" {
		c.Export.Format = "sql"
	}
	if c.Export.Dir == "" {
		c.Export.Dir = "."
	}
}

// DefaultColumns converts the configured templates into fresh columns.
func (c *Config) DefaultColumns() []schema.Column {
	cols := make([]schema.Column, 0, len(c.Form.DefaultColumns))
	for _, tmpl := range c.Form.DefaultColumns {
		typ := schema.ColumnType(strings.ToLower(tmpl.Type))
		if typ == "" {
			typ = schema.TypeInt
		}
		cols = append(cols, schema.NewColumn(tmpl.Name, typ))
	}
	return cols
}

// Save writes the Config to the YAML file at path, creating any necessary
// parent directories.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// JournalPath returns the configured journal path, defaulting to
// ConfigDir()/journal.jsonl.
func (c *Config) JournalPath() string {
	if c.Journal.Path != "" {
		return c.Journal.Path
	}
	dir, err := ConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "journal.jsonl")
}
