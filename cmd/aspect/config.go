package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// appName is the single source of truth for the application name.
// Derived identifiers (env vars, config paths) are computed from it.
const (
	appName            = "aspect"
	configFileName     = "config.yml"
	defaultHistoryFile = ".aspect_history"
)

var envConfigDir = strings.ToUpper(appName) + "_CONFIG_DIR"

// config holds the file-backed settings. Flags override the file.
type config struct {
	// Debug forwards logged script errors to the diagnostic stream and
	// raises the log level.
	Debug bool `yaml:"debug"`

	// HistoryFile is the REPL history location, relative paths resolve
	// against the home directory.
	HistoryFile string `yaml:"history_file"`

	// NoColor disables styled terminal output.
	NoColor bool `yaml:"no_color"`
}

func defaultConfig() config {
	return config{
		HistoryFile: defaultHistoryFile,
	}
}

// resolveConfigDir returns the base config directory for the application.
// Priority: $ASPECT_CONFIG_DIR > $XDG_CONFIG_HOME/aspect > ~/.config/aspect
func resolveConfigDir() (string, error) {
	if v := os.Getenv(envConfigDir); v != "" {
		return v, nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// loadConfig reads the config file. A missing auto-resolved file falls back to
// defaults; a missing explicitly requested file is an error.
func loadConfig(explicitPath string) (config, error) {
	cfg := defaultConfig()

	path := explicitPath
	if path == "" {
		dir, err := resolveConfigDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, configFileName)
	}

	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if explicitPath != "" {
			return cfg, fmt.Errorf("config file %s does not exist", explicitPath)
		}
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// withFlags applies command-line overrides on top of the file config.
func (c config) withFlags() config {
	if flagDebug {
		c.Debug = true
	}
	if flagNoDebug {
		c.Debug = false
	}
	if flagNoColor {
		c.NoColor = true
	}
	return c
}

// historyPath resolves the REPL history file location. Relative paths are
// anchored at the home directory.
func historyPath(cfg config) (string, error) {
	p := cfg.HistoryFile
	if p == "" {
		p = defaultHistoryFile
	}
	if filepath.IsAbs(p) {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, p), nil
}

// newHandler builds the slog handler for evaluator internals. Debug mode
// lowers the level so compile and dispatch logs become visible.
func newHandler(cfg config) slog.Handler {
	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	return slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
}
