// Package declaircmder
package declaircmder

import (
	"github.com/spf13/cobra"

	addcmder "github.com/timasoft/declair/cmd/declair/add"
	configcmder "github.com/timasoft/declair/cmd/declair/config"
	initcmder "github.com/timasoft/declair/cmd/declair/init"
	listcmder "github.com/timasoft/declair/cmd/declair/list"
	removecmder "github.com/timasoft/declair/cmd/declair/remove"
	searchcmder "github.com/timasoft/declair/cmd/declair/search"
	versioncmder "github.com/timasoft/declair/cmd/version"
)

const declairLongDesc string = `Declair manages the package list of a declarative NixOS configuration.

It finds the "with pkgs; [" block in your configuration file, keeps its
entries tidy, and can rebuild the system after an edit.

Common usage:
  declair add <package>       Search nixpkgs and add a package
  declair remove <package>    Remove a package from the configuration
  declair list                List packages currently in the configuration
  declair search <query>      Search nixpkgs without editing anything`

const declairShortDesc string = "Declair - declarative package management helper"

func NewDeclairCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "declair",
		Short: declairShortDesc,
		Long:  declairLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override path to .declair/ config directory")
	cmd.PersistentFlags().Bool("no-input", false, "Never prompt; fail when input would be required")
	cmd.PersistentFlags().Bool("no-rebuild", false, "Skip the system rebuild after an edit")

	// Add subcommands
	cmd.AddCommand(addcmder.NewAddCmd())
	cmd.AddCommand(removecmder.NewRemoveCmd())
	cmd.AddCommand(listcmder.NewListCmd())
	cmd.AddCommand(searchcmder.NewSearchCmd())
	cmd.AddCommand(initcmder.NewInitCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
