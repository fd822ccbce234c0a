package initcmder

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/timasoft/declair/pkg/config"
	"github.com/timasoft/declair/pkg/rebuild"
)

// Settings are the effective edit settings after the full precedence chain
// (flag > env > config.toml > default) has been applied.
type Settings struct {
	// NixPath is the configured Nix file or directory, before tilde
	// expansion and candidate probing.
	NixPath string

	// AutoRebuild triggers a system rebuild after a successful edit.
	AutoRebuild bool

	// Rebuild selects which rebuild command runs when AutoRebuild is set.
	Rebuild rebuild.Options
}

// ResolveSettings resolves the edit settings for cmd. When no configuration
// source yields a nix path it bootstraps config.toml through EnsureConfig
// first, so a fresh install works from any edit command.
func ResolveSettings(cmd *cobra.Command, configDir string, noInput bool, in io.Reader, out io.Writer) (Settings, error) {
	v, err := bindViper(cmd, configDir)
	if err != nil {
		return Settings{}, err
	}

	if v.GetString("nix.path") == "" {
		if _, err := EnsureConfig(configDir, noInput, in, out); err != nil {
			return Settings{}, err
		}

		// Re-read so the freshly written config.toml participates in
		// the precedence chain.
		if v, err = bindViper(cmd, configDir); err != nil {
			return Settings{}, err
		}
	}

	settings := Settings{
		NixPath:     v.GetString("nix.path"),
		AutoRebuild: v.GetBool("rebuild.auto"),
		Rebuild: rebuild.Options{
			HomeManager: v.GetBool("rebuild.home_manager"),
			Flake:       v.GetBool("rebuild.flake"),
		},
	}

	if settings.NixPath == "" {
		return Settings{}, fmt.Errorf("no nix configuration path set; run `declair init` or pass --config")
	}

	return settings, nil
}

func bindViper(cmd *cobra.Command, configDir string) (*viper.Viper, error) {
	v, err := config.InitViper(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	config.BindRegisteredFlags(v, cmd, config.CommandFlags, []string{
		config.FlagNixConfig,
		config.FlagAutoRebuild,
		config.FlagHomeManager,
		config.FlagFlake,
	})

	return v, nil
}
