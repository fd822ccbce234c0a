package config

import (
	"fmt"
	"strconv"
)

// Config represents the persistent declair configuration stored as
// config.toml in the .declair/ directory. The TOML layout uses sections for
// logical grouping.
type Config struct {
	Version int           `toml:"version"`
	Nix     NixConfig     `toml:"nix"`
	Rebuild RebuildConfig `toml:"rebuild"`
}

// NixConfig holds the location of the Nix configuration being managed.
type NixConfig struct {
	// Path is a file, or a directory probed for the usual candidate
	// filenames (configuration.nix, flake.nix, ...). A leading ~ is
	// expanded.
	Path string `toml:"path,omitempty"`
}

// RebuildConfig holds the settings that decide whether and how the system is
// rebuilt after an edit.
type RebuildConfig struct {
	Auto        bool `toml:"auto,omitempty"`
	HomeManager bool `toml:"home_manager,omitempty"`
	Flake       bool `toml:"flake,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// boolKey builds a configKeyInfo for a bool field selected by sel.
func boolKey(name string, sel func(c *Config) *bool) configKeyInfo {
	return configKeyInfo{
		get: func(c *Config) string { return strconv.FormatBool(*sel(c)) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %w", name, err)
			}
			*sel(c) = b
			return nil
		},
	}
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"nix.path": {
		get: func(c *Config) string { return c.Nix.Path },
		set: func(c *Config, v string) error { c.Nix.Path = v; return nil },
	},
	"rebuild.auto":         boolKey("rebuild.auto", func(c *Config) *bool { return &c.Rebuild.Auto }),
	"rebuild.home_manager": boolKey("rebuild.home_manager", func(c *Config) *bool { return &c.Rebuild.HomeManager }),
	"rebuild.flake":        boolKey("rebuild.flake", func(c *Config) *bool { return &c.Rebuild.Flake }),
}
