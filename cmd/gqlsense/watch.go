package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/sevigo/gqlsense/query"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <file>",
		Short: "Print the outline of a schema file every time it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			out := cmd.OutOrStdout()
			return a.watchFile(cmd.Context(), path, func() error {
				text, err := os.ReadFile(path)
				if err != nil {
					// Editors that save by rename briefly leave no file behind.
					a.logger.Debug("Schema file not readable yet", "path", path, "error", err)
					return nil
				}
				fmt.Fprintf(out, "== %s\n", path)
				return writeOutline(out, query.Enumerate(string(text)))
			})
		},
	}
}

// watchFile calls onChange once, then again after every write to path, until
// ctx is cancelled. The parent directory is watched so that atomic saves
// (write to temp, rename over) are seen.
func (a *app) watchFile(ctx context.Context, path string, onChange func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	a.logger.Info("Watching schema file", "path", path)

	if err := onChange(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			a.logger.Debug("Schema file changed", "path", path, "op", event.Op.String())
			if err := onChange(); err != nil {
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("Watcher error", "path", path, "error", err)
		}
	}
}
