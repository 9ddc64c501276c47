// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package config loads arc-bookshelf settings from defaults, an optional
// YAML config file, a .env file, the environment and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mtreilly/arc-bookshelf/internal/db"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "ARC_BOOKSHELF"

// Storage backends.
const (
	StorageJSON   = "json"
	StorageSQL    = "sql"
	StorageMemory = "memory"
)

// Config is the resolved configuration.
type Config struct {
	Storage  string `mapstructure:"storage"`
	File     string `mapstructure:"file"`
	DBDriver string `mapstructure:"db_driver"`
	DSN      string `mapstructure:"dsn"`
	LogLevel string `mapstructure:"log_level"`
	Output   string `mapstructure:"output"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("storage", StorageJSON)
	v.SetDefault("file", filepath.Join(db.DataDir(), "library.json"))
	v.SetDefault("db_driver", "sqlite")
	v.SetDefault("dsn", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("output", "table")
}

// BindFlags binds the persistent flags in fs to their config keys. Flag
// names use dashes, keys use underscores.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, key := range []string{"storage", "file", "db_driver", "dsn", "log_level", "output"} {
		name := strings.ReplaceAll(key, "_", "-")
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Load resolves the configuration. configFile may be empty, in which case
// $XDG_CONFIG_HOME/arc-bookshelf/config.yaml is read if present.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	// .env is optional; values already in the environment win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir())
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Storage = strings.ToLower(cfg.Storage)
	cfg.File = ExpandHome(cfg.File)
	if cfg.DSN != "" && !strings.Contains(cfg.DSN, "://") {
		cfg.DSN = ExpandHome(cfg.DSN)
	}
	return &cfg, nil
}

func configDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "arc-bookshelf")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "arc-bookshelf")
}

// ExpandHome replaces a leading "~" in p with the user's home directory.
// p is returned unchanged when the home directory is unknown.
func ExpandHome(p string) string {
	if !strings.HasPrefix(p, "~") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}
