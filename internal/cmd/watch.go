// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mtreilly/arc-bookshelf/internal/library"
	"github.com/mtreilly/arc-bookshelf/internal/output"
	"github.com/spf13/cobra"
)

func newWatchCmd(a *app) *cobra.Command {
	var debounceMs int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print statistics whenever the library file changes",
		Long: `Watch the JSON library file and print fresh statistics each time it is
rewritten, by another arc-bookshelf process or by hand.

Only available with the json storage backend.

Examples:
  arc-bookshelf watch
  arc-bookshelf watch --file ~/books/library.json --debounce 250`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := a.library(ctx)
			if err != nil {
				return err
			}
			js, ok := store.(*library.JSONStore)
			if !ok {
				return fmt.Errorf("watch requires the json storage backend")
			}

			w := cmd.OutOrStdout()
			show := func(s library.Stats) {
				if err := output.WriteStats(w, a.format, s); err != nil {
					slog.Warn("write stats", "err", err)
				}
			}

			stats, err := js.Statistics(ctx)
			if err != nil {
				return err
			}
			show(stats)
			slog.Info("watching library file", "path", js.Path())

			return watchSnapshot(ctx, js, time.Duration(debounceMs)*time.Millisecond, show)
		},
	}

	cmd.Flags().IntVar(&debounceMs, "debounce", 500, "Debounce milliseconds for file events")
	return cmd
}

// watchSnapshot reloads store after its file changes and calls onChange with
// the new statistics. Events are debounced so that one save produces one
// callback. It returns when ctx is done.
func watchSnapshot(ctx context.Context, store *library.JSONStore, debounce time.Duration, onChange func(library.Stats)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Saves replace the file by rename, so watch the directory, not the file.
	target := filepath.Clean(store.Path())
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create library directory: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}

	// Reloads run on this goroutine, so onChange is never called after
	// watchSnapshot returns.
	debounced := time.NewTimer(debounce)
	debounced.Stop()
	defer debounced.Stop()

	reload := func() {
		if err := store.Reload(); err != nil {
			slog.Warn("reload library", "path", target, "err", err)
			return
		}
		stats, err := store.Statistics(ctx)
		if err != nil {
			slog.Warn("library statistics", "err", err)
			return
		}
		onChange(stats)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			slog.Debug("library file event", "op", event.Op.String())
			debounced.Reset(debounce)

		case <-debounced.C:
			reload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", "err", err)
		}
	}
}
