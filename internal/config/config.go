// Package config provides functionality for loading and managing the
// application configuration settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the configuration settings for the application.
type Config struct {
	Source  SourceConfig  `mapstructure:"source"`
	Log     LogConfig     `mapstructure:"log"`
	History HistoryConfig `mapstructure:"history"`
	UI      UIConfig      `mapstructure:"ui"`
}

// SourceConfig names where the flat node records are read from.
type SourceConfig struct {
	Kind  string `mapstructure:"kind"`
	Path  string `mapstructure:"path"`
	Table string `mapstructure:"table"`
}

type LogConfig struct {
	Folder      string `mapstructure:"folder"`
	CommandFile string `mapstructure:"command_file"`
	ErrorFile   string `mapstructure:"error_file"`
	Level       string `mapstructure:"level"`
}

type HistoryConfig struct {
	File  string `mapstructure:"file"`
	Limit int    `mapstructure:"limit"`
}

type UIConfig struct {
	Color bool `mapstructure:"color"`
}

// Source kinds.
const (
	SourceJSON   = "json"
	SourceXML    = "xml"
	SourceSQLite = "sqlite"
)

var currentConfig *Config

// ConfigLoad reads the configuration from defaults, an optional JSON file and
// NODEFOREST_* environment variables, in increasing order of precedence.
// An empty path skips the file.
func ConfigLoad(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("source.kind", SourceJSON)
	v.SetDefault("source.path", "./data/nodes.json")
	v.SetDefault("source.table", "nodes")
	v.SetDefault("log.folder", "./log")
	v.SetDefault("log.command_file", "commands.log")
	v.SetDefault("log.error_file", "errors.log")
	v.SetDefault("log.level", "info")
	v.SetDefault("history.file", "./data/.nodeforest_history")
	v.SetDefault("history.limit", 100)
	v.SetDefault("ui.color", true)

	v.SetEnvPrefix("NODEFOREST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	currentConfig = cfg
	return cfg, nil
}

// ConfigGet returns the configuration loaded last.
func ConfigGet() *Config {
	return currentConfig
}

// EnsureDirs creates the folders the log and history files live in.
func (c *Config) EnsureDirs() error {
	dirs := []string{c.Log.Folder, filepath.Dir(c.History.File)}
	for _, dir := range dirs {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

func (c *Config) validate() error {
	switch c.Source.Kind {
	case SourceJSON, SourceXML, SourceSQLite:
	default:
		return fmt.Errorf("unsupported source kind: %s", c.Source.Kind)
	}
	if c.Source.Kind == SourceSQLite && c.Source.Table == "" {
		return fmt.Errorf("missing source table")
	}
	if c.History.Limit < 1 {
		return fmt.Errorf("history limit must be positive, got %d", c.History.Limit)
	}
	return nil
}
