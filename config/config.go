// Package config loads the optional exprcalc configuration file.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"github.com/takoeight0821/exprcalc/parser"
)

// RelPath is the location of the config file below the XDG config directories.
const RelPath = "exprcalc/config.toml"

// Config holds the interactive front end settings.
type Config struct {
	Prompt      string `toml:"prompt"`
	HistoryFile string `toml:"history_file"`
	NoColor     bool   `toml:"no_color"`
	MaxDepth    int    `toml:"max_depth"`
	Verbose     bool   `toml:"verbose"`
}

// Default returns the settings used when no file is found.
func Default() *Config {
	return &Config{
		Prompt:      "expr > ",
		HistoryFile: filepath.Join(xdg.DataHome, "exprcalc", ".exprcalc_history"),
		NoColor:     false,
		MaxDepth:    parser.DefaultMaxDepth,
		Verbose:     false,
	}
}

// Locate returns path if it is set, otherwise the first config file found
// in the XDG config directories. An empty result means there is no file.
func Locate(path string) string {
	if path != "" {
		return path
	}
	found, err := xdg.SearchConfigFile(RelPath)
	if err != nil {
		return ""
	}
	return found
}

// Load reads path on top of Default. An empty path yields Default.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if c.Prompt == "" {
		errs = append(errs, errors.New("prompt must not be empty"))
	}
	if c.MaxDepth < 1 {
		errs = append(errs, fmt.Errorf("max_depth must be at least 1, got %d", c.MaxDepth))
	}
	if c.HistoryFile != "" && !filepath.IsAbs(c.HistoryFile) {
		errs = append(errs, fmt.Errorf("history_file must be an absolute path, got %q", c.HistoryFile))
	}
	return errors.Join(errs...)
}
