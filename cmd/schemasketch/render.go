package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/sadopc/schemasketch/internal/export"
	"github.com/sadopc/schemasketch/internal/schema"
)

// watchDebounce collapses the burst of events editors emit on save.
const watchDebounce = 100 * time.Millisecond

func newRenderCmd() *cobra.Command {
	var (
		output string
		format string
		watch  bool
	)

	cmd := &cobra.Command{
		Use:   "render [sketch]",
		Short: "Print the CREATE TABLE text of a sketch file",
		Long: `Render reads a YAML sketch (or stdin when no file is given) and prints
its CREATE TABLE text, or a Markdown summary with --format md.

With --watch the sketch is rendered again every time it changes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 && args[0] != "-" {
				path = args[0]
			}
			if watch && path == "" {
				return fmt.Errorf("--watch needs a sketch file")
			}

			f := export.ParseFormat(format)
			render := func() error {
				sk, err := readSketch(path, cmd.InOrStdin())
				if err != nil {
					return err
				}
				warnUnknownTypes(sk)
				return writeRendered(output, cmd.OutOrStdout(), f, sk)
			}

			if err := render(); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return watchFile(ctx, path, func() {
				if err := render(); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "render: %v\n", err)
				}
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	cmd.Flags().StringVar(&format, "format", "sql", "Output format (sql, md)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-render when the sketch changes")
	return cmd
}

func readSketch(path string, stdin io.Reader) (*schema.Schema, error) {
	if path != "" {
		return schema.LoadSketch(path)
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return schema.ParseSketch(data)
}

func writeRendered(output string, stdout io.Writer, f export.Format, sk *schema.Schema) error {
	if output == "" {
		return export.Write(stdout, f, sk.Tables())
	}

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()
	if err := export.Write(out, f, sk.Tables()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return out.Close()
}

// watchFile calls onChange after path is written, until ctx is done. The
// parent directory is watched so editors that replace the file on save keep
// triggering.
func watchFile(ctx context.Context, path string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	changed := make(chan struct{}, 1)
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(watchDebounce, func() {
				select {
				case changed <- struct{}{}:
				default:
				}
			})

		case <-changed:
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
		}
	}
}
