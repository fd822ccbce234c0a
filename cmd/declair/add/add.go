// Package addcmder provides the add command for inserting a package into the
// configuration's package block.
package addcmder

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
	"github.com/timasoft/declair/pkg/search"
)

const addLongDesc string = `Add a package to the configuration's package block.

Searches nixpkgs for the given name, lets you pick the matching package, and
inserts it into the "with pkgs; [" block of your Nix configuration. A backup
of the original file is written next to it before the edit.

With --no-input the name is inserted literally, without searching or
prompting. When rebuild.auto is configured (or --auto-rebuild is passed) the
system is rebuilt afterwards; --no-rebuild skips that.

Examples:
  declair add ripgrep
  declair add
  declair add htop --no-input
  declair add vim --config ~/nixos/configuration.nix --no-rebuild`

const addShortDesc string = "Add a package to the configuration"

type addCommander struct {
	query     string
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

func NewAddCmd() *cobra.Command {
	cmder := &addCommander{}

	cmd := &cobra.Command{
		Use:   "add [package]",
		Short: addShortDesc,
		Long:  addLongDesc,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				cmder.query = args[0]
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

func (c *addCommander) run(ctx context.Context, in io.Reader, out io.Writer) error {
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
	c.logger.Debug("resolved worktree", "dir", worktree)

	br := bufio.NewReader(in)

	token := c.query
	if token == "" {
		if c.noInput {
			return errors.New("a package name is required with --no-input")
		}
		token, err = cliui.PromptString(br, out, "Package to add", "")
		if err != nil {
			return err
		}
		if token == "" {
			return errors.New("no package name given")
		}
	}

	if !c.noInput {
		token, err = c.pickPackage(ctx, br, out, token)
		if err != nil {
			return err
		}
	}

	if err := block.Insert(path, token); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n  %s Added %s to %s\n\n",
		cliui.SuccessMark,
		cliui.ValueStyle.Render(token),
		cliui.DimStyle.Render(path),
	)

	return c.maybeRebuild(ctx, out, worktree)
}

// pickPackage turns the typed query into the package token to insert. Search
// results are offered for selection; when the search yields nothing usable
// the literal query is kept so an unindexed package can still be added.
func (c *addCommander) pickPackage(ctx context.Context, in io.Reader, out io.Writer, query string) (string, error) {
	var pkgs []search.Package

	err := cliui.Step(out, fmt.Sprintf("Searching nixpkgs for %q", query), func() error {
		var err error
		pkgs, err = search.NewSearcher().Search(ctx, query)
		return err
	})
	if err != nil {
		c.logger.Warn("search failed, using the name as typed", "query", query, "error", err)
		return query, nil
	}

	if len(pkgs) == 0 {
		fmt.Fprintf(out, "  %s\n", cliui.DimStyle.Render("No search results, using the name as typed."))
		return query, nil
	}

	labels := make([]string, len(pkgs))
	for i, p := range pkgs {
		labels[i] = p.Label()
	}

	var idx int
	if cliui.IsTerminal(os.Stdin) {
		idx, err = cliui.Select(ctx, fmt.Sprintf("Select a package for %q", query), labels)
	} else {
		idx, err = cliui.PromptChoice(in, out, "Select a package:", labels)
	}
	if err != nil {
		return "", err
	}

	return pkgs[idx].Name, nil
}

func (c *addCommander) maybeRebuild(ctx context.Context, out io.Writer, worktree string) error {
	if !c.settings.AutoRebuild || c.noRebuild {
		return nil
	}

	// The edit already succeeded; a failed rebuild is reported, not fatal.
	if err := rebuild.Run(ctx, c.logger, worktree, c.settings.Rebuild); err != nil {
		fmt.Fprintf(out, "  %s Rebuild failed: %v\n", cliui.FailMark, err)
	}
	return nil
}
