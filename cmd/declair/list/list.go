// Package listcmder provides the list command for showing the packages
// currently present in the configuration's package block.
package listcmder

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	initcmder "github.com/timasoft/declair/cmd/declair/init"
	"github.com/timasoft/declair/pkg/block"
	"github.com/timasoft/declair/pkg/cliui"
	"github.com/timasoft/declair/pkg/config"
	"github.com/timasoft/declair/pkg/nixfile"
)

const listLongDesc string = `List the packages in the configuration's package block.

Reads the "with pkgs; [" block of your Nix configuration and prints its
entries in file order. The file is not modified.

Examples:
  declair list
  declair list --config ~/nixos/configuration.nix`

const listShortDesc string = "List packages in the configuration"

type listCommander struct {
	nixConfig string

	configDir string
	noInput   bool

	settings initcmder.Settings
}

func NewListCmd() *cobra.Command {
	cmder := &listCommander{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: listShortDesc,
		Long:  listLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.configDir, err = cmd.Flags().GetString("config-dir")
			if err != nil {
				return fmt.Errorf("could not get config-dir flag: %w", err)
			}
			cmder.noInput, err = cmd.Flags().GetBool("no-input")
			if err != nil {
				return fmt.Errorf("could not get no-input flag: %w", err)
			}

			cmder.settings, err = initcmder.ResolveSettings(cmd, cmder.configDir, cmder.noInput, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			return cmder.run(cmd.OutOrStdout())
		},
	}

	config.AddStringFlag(cmd, config.CommandFlags, config.FlagNixConfig, &cmder.nixConfig)

	return cmd
}

func (c *listCommander) run(out io.Writer) error {
	path, err := nixfile.ExpandTilde(c.settings.NixPath)
	if err != nil {
		return err
	}
	path, err = nixfile.Resolve(path)
	if err != nil {
		return err
	}

	entries, err := block.List(path)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintf(out, "No packages in %s\n", path)
		return nil
	}

	width := cliui.ColumnWidth("Package", entries)

	fmt.Fprintf(out, "%-*s  %s\n", width, "Package", "Source")
	for _, entry := range entries {
		fmt.Fprintf(out, "%-*s  %s\n", width, entry, path)
	}

	return nil
}
