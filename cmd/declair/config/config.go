// Package configcmder provides the config command for managing persistent
// declair configuration stored in the .declair/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent declair configuration.

Configuration is stored as config.toml in the .declair/ directory and
provides default values for command flags. CLI flags always take precedence
over config file values.

Keys use dotted notation matching the TOML section structure:
  nix.path, rebuild.auto, rebuild.home_manager, rebuild.flake

Use subcommands to get, set, or list configuration values:
  declair config set <key> <value>    Set a configuration value
  declair config get <key>            Get a configuration value
  declair config list                 List all configuration values

Examples:
  declair config set nix.path ~/nixos/configuration.nix
  declair config set rebuild.auto true
  declair config get nix.path
  declair config list`

const configShortDesc string = "Manage persistent declair configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
