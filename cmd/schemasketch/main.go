package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sadopc/schemasketch/internal/app"
	"github.com/sadopc/schemasketch/internal/config"
	"github.com/sadopc/schemasketch/internal/journal"
	"github.com/sadopc/schemasketch/internal/logging"
	"github.com/sadopc/schemasketch/internal/schema"
	"github.com/sadopc/schemasketch/internal/theme"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configFlag string
		sketchFlag string
	)

	rootCmd := &cobra.Command{
		Use:   "schemasketch",
		Short: "Sketch SQL tables in the terminal",
		Long: `schemasketch is a terminal editor for quick database schema sketches.
Tables and typed columns are built with a form and shown as CREATE TABLE text.

Examples:
  schemasketch                          # Start with a users table
  schemasketch --sketch shop.yaml       # Seed the editor from a sketch file
  schemasketch render shop.yaml         # Print the CREATE TABLE text
  schemasketch describe shop.yaml       # Print a table/column grid
  schemasketch config init              # Write the default config file`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFlag, cmd)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not load config: %v\n", err)
				cfg = config.DefaultConfig()
			}

			logger, logCloser, err := logging.New(cfg.Log.Path, cfg.Log.Level)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
				logger = logging.Discard()
			} else {
				defer logCloser.Close()
			}

			sk := schema.Starter()
			if sketchFlag != "" {
				sk, err = schema.LoadSketch(sketchFlag)
				if err != nil {
					return err
				}
				warnUnknownTypes(sk)
			}

			var jr *journal.Logger
			if cfg.Journal.Enabled {
				if path := cfg.JournalPath(); path != "" {
					jr, err = journal.New(path, cfg.Journal.MaxSizeMB)
					if err != nil {
						fmt.Fprintf(os.Stderr, "Warning: could not open journal: %v\n", err)
					}
				}
			}
			if jr != nil {
				defer jr.Close()
			}

			logger.Info("starting", "version", version, "tables", sk.Len(), "theme", cfg.Theme)

			model := app.New(cfg, sk, jr, logger)
			if sketchFlag != "" {
				model.SetSource(filepath.Base(sketchFlag))
			}

			p := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running application: %w", err)
			}
			return nil
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&configFlag, "config", "c", "", "Config file path")
	flags.StringVarP(&sketchFlag, "sketch", "s", "", "Sketch file to open")
	flags.String("theme", "", "Color theme ("+strings.Join(theme.Names(), ", ")+")")
	flags.Bool("fuzzy", false, "Fuzzy table search")
	flags.Int("zoom", 100, "Initial diagram zoom (0-200)")
	flags.String("export-dir", "", "Directory for ctrl+e exports")
	flags.String("export-format", "", "Export format (sql, md)")
	flags.Bool("journal", false, "Record schema edits to the journal")
	flags.String("log-file", "", "Write diagnostic logs to this file")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newRenderCmd(), newDescribeCmd(), newConfigCmd(), newVersionCmd())
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "schemasketch %s (commit: %s, built: %s)\n", version, commit, date)
			fmt.Fprintln(cmd.OutOrStdout(), "\nColumn types:")
			for _, t := range schema.Types() {
				fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", t)
			}
		},
	}
}

func loadConfig(path string, cmd *cobra.Command) (*config.Config, error) {
	if path != "" {
		return config.Load(path, cmd.Flags())
	}
	return config.LoadDefault(cmd.Flags())
}

func warnUnknownTypes(sk *schema.Schema) {
	if unknown := sk.UnknownTypes(); len(unknown) > 0 {
		fmt.Fprintf(os.Stderr, "Warning: unknown column types in %s\n", strings.Join(unknown, ", "))
	}
}
