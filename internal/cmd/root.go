// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"fmt"

	"github.com/mtreilly/arc-bookshelf/internal/config"
	"github.com/mtreilly/arc-bookshelf/internal/library"
	"github.com/mtreilly/arc-bookshelf/internal/logging"
	"github.com/mtreilly/arc-bookshelf/internal/output"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Opener opens the library store selected by cfg.
type Opener func(ctx context.Context, cfg *config.Config) (library.LibraryStore, error)

// app carries state shared by all commands of one invocation. The store is
// opened on first use and closed once when the invocation ends.
type app struct {
	v          *viper.Viper
	open       Opener
	configFile string

	cfg    *config.Config
	format output.Format
	store  library.LibraryStore
}

func newApp(open Opener) *app {
	return &app{v: viper.New(), open: open}
}

// NewRootCmd creates the root command for arc-bookshelf.
func NewRootCmd(open Opener) *cobra.Command {
	return newApp(open).rootCmd()
}

// Execute runs the command line and releases the store afterwards.
func Execute(ctx context.Context, open Opener) error {
	a := newApp(open)
	defer func() {
		_ = a.close()
	}()
	return a.rootCmd().ExecuteContext(ctx)
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "arc-bookshelf",
		Short: "Manage your personal book library",
		Long: `Keep track of the books you own and the books you have read.

arc-bookshelf provides tools to:
- Add and remove books
- Search by title or author
- List the whole collection
- Show reading statistics
- Recommend books from a genre

Books are stored in a JSON file by default, or in SQLite/PostgreSQL
with --storage sql.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "Config file (default $HOME/.config/arc-bookshelf/config.yaml)")
	pf.String("storage", "", "Storage backend: json, sql, memory (default json)")
	pf.String("file", "", "JSON library file (default $HOME/.local/share/arc-bookshelf/library.json)")
	pf.String("db-driver", "", "SQL driver for --storage sql: sqlite, postgres (default sqlite)")
	pf.String("dsn", "", "Database path (sqlite) or connection URL (postgres)")
	pf.String("log-level", "", "Log level: debug, info, warn, error (default info)")
	pf.StringP("output", "o", "", "Output format: table, json, yaml (default table)")
	cobra.CheckErr(config.BindFlags(a.v, pf))

	root.AddCommand(newAddCmd(a))
	root.AddCommand(newRemoveCmd(a))
	root.AddCommand(newSearchCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newStatsCmd(a))
	root.AddCommand(newRecommendCmd(a))
	root.AddCommand(newImportCmd(a))
	root.AddCommand(newExportCmd(a))
	root.AddCommand(newDuplicatesCmd(a))
	root.AddCommand(newWatchCmd(a))
	root.AddCommand(newWebCmd(a))

	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	if err := logging.Setup(cfg.LogLevel); err != nil {
		return err
	}
	format, err := output.ParseFormat(cfg.Output)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.format = format
	return nil
}

// library returns the store, opening it on first call.
func (a *app) library(ctx context.Context) (library.LibraryStore, error) {
	if a.store != nil {
		return a.store, nil
	}
	if a.cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	s, err := a.open(ctx, a.cfg)
	if err != nil {
		return nil, err
	}
	a.store = s
	return s, nil
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}
