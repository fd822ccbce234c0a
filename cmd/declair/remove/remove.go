// Package removecmder provides the remove command for deleting a package
// from the configuration's package block.
package removecmder

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	initcmder "github.com/timasoft/declair/cmd/declair/init"
	"github.com/timasoft/declair/pkg/block"
	"github.com/timasoft/declair/pkg/cliui"
	"github.com/timasoft/declair/pkg/config"
	"github.com/timasoft/declair/pkg/git"
	"github.com/timasoft/declair/pkg/logger"
	"github.com/timasoft/declair/pkg/nixfile"
	"github.com/timasoft/declair/pkg/rebuild"
)

const removeLongDesc string = `Remove a package from the configuration's package block.

The name must match an entry in the "with pkgs; [" block exactly. Without an
argument, the current entries are listed for interactive selection. A backup
of the original file is written next to it before the edit.

When rebuild.auto is configured (or --auto-rebuild is passed) the system is
rebuilt afterwards; --no-rebuild skips that.

Examples:
  declair remove ripgrep
  declair remove
  declair remove vim --config ~/nixos/configuration.nix --no-rebuild`

const removeShortDesc string = "Remove a package from the configuration"

type removeCommander struct {
	token     string
	nixConfig string

	autoRebuild bool
	homeManager bool
	flake       bool

	configDir string
	noInput   bool
	noRebuild bool
	debug     bool

	settings initcmder.Settings
	logger   *slog.Logger
}

func NewRemoveCmd() *cobra.Command {
	cmder := &removeCommander{}

	cmd := &cobra.Command{
		Use:   "remove [package]",
		Short: removeShortDesc,
		Long:  removeLongDesc,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				cmder.token = args[0]
			}

			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}
			cmder.configDir, err = cmd.Flags().GetString("config-dir")
			if err != nil {
				return fmt.Errorf("could not get config-dir flag: %w", err)
			}
			cmder.noInput, err = cmd.Flags().GetBool("no-input")
			if err != nil {
				return fmt.Errorf("could not get no-input flag: %w", err)
			}
			cmder.noRebuild, err = cmd.Flags().GetBool("no-rebuild")
			if err != nil {
				return fmt.Errorf("could not get no-rebuild flag: %w", err)
			}

			cmder.settings, err = initcmder.ResolveSettings(cmd, cmder.configDir, cmder.noInput, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			return cmder.run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	config.AddStringFlag(cmd, config.CommandFlags, config.FlagNixConfig, &cmder.nixConfig)
	config.AddBoolFlag(cmd, config.CommandFlags, config.FlagAutoRebuild, &cmder.autoRebuild)
	config.AddBoolFlag(cmd, config.CommandFlags, config.FlagHomeManager, &cmder.homeManager)
	config.AddBoolFlag(cmd, config.CommandFlags, config.FlagFlake, &cmder.flake)

	return cmd
}

func (c *removeCommander) run(ctx context.Context, in io.Reader, out io.Writer) error {
	c.logger = logger.New(
		logger.WithDebug(c.debug),
		logger.WithPretty(true),
		logger.WithWriter(os.Stderr),
	)

	path, err := nixfile.ExpandTilde(c.settings.NixPath)
	if err != nil {
		return err
	}
	path, err = nixfile.Resolve(path)
	if err != nil {
		return err
	}
	c.logger.Debug("resolved nix configuration", "path", path)

	worktree, err := git.Root(path)
	if err != nil {
		return err
	}

	token := c.token
	if token == "" {
		if c.noInput {
			return errors.New("a package name is required with --no-input")
		}
		token, err = c.pickEntry(ctx, bufio.NewReader(in), out, path)
		if err != nil {
			return err
		}
	}

	if err := block.Remove(path, token); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n  %s Removed %s from %s\n\n",
		cliui.SuccessMark,
		cliui.ValueStyle.Render(token),
		cliui.DimStyle.Render(path),
	)

	if !c.settings.AutoRebuild || c.noRebuild {
		return nil
	}

	// The edit already succeeded; a failed rebuild is reported, not fatal.
	if err := rebuild.Run(ctx, c.logger, worktree, c.settings.Rebuild); err != nil {
		fmt.Fprintf(out, "  %s Rebuild failed: %v\n", cliui.FailMark, err)
	}
	return nil
}

// pickEntry lists the block's current entries for selection.
func (c *removeCommander) pickEntry(ctx context.Context, in io.Reader, out io.Writer, path string) (string, error) {
	entries, err := block.List(path)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", errors.New("the package block is empty, nothing to remove")
	}

	var idx int
	if cliui.IsTerminal(os.Stdin) {
		idx, err = cliui.Select(ctx, "Select a package to remove", entries)
	} else {
		idx, err = cliui.PromptChoice(in, out, "Select a package to remove:", entries)
	}
	if err != nil {
		return "", err
	}

	return entries[idx], nil
}
