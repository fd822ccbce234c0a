// Package initcmder provides the init command for bootstrapping the declair
// configuration interactively.
package initcmder

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/timasoft/declair/pkg/cliui"
	"github.com/timasoft/declair/pkg/config"
)

const initLongDesc string = `Initialize the declair configuration.

Walks through the initial setup: the path to your Nix configuration file (or
a directory to probe for one), and whether declair should rebuild the system
after each edit. Answers are stored as config.toml in the .declair/ directory.

The other edit commands run this setup automatically the first time they need
a configuration, so running init explicitly is optional.

Examples:
  declair init
  declair init --config-dir /tmp/scratch`

const initShortDesc string = "Initialize the declair configuration"

func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: initShortDesc,
		Long:  initLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			noInput, _ := cmd.Flags().GetBool("no-input")
			return runInit(configDir, noInput, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	return cmd
}

func runInit(configDir string, noInput bool, in io.Reader, out io.Writer) error {
	cfger, err := config.NewConfiger(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if cfger.Exists() {
		fmt.Fprintf(out, "Already initialized: %s\n", cfger.GetTarget())
		return nil
	}

	_, err = bootstrap(cfger, noInput, in, out)
	return err
}

// EnsureConfig returns the stored configuration, bootstrapping it through
// interactive prompts when no config.toml exists yet. Under noInput a missing
// configuration is an error instead of a prompt.
func EnsureConfig(configDir string, noInput bool, in io.Reader, out io.Writer) (*config.Config, error) {
	cfger, err := config.NewConfiger(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if cfger.Exists() {
		return cfger.LoadConfig()
	}

	return bootstrap(cfger, noInput, in, out)
}

func bootstrap(cfger *config.Configer, noInput bool, in io.Reader, out io.Writer) (*config.Config, error) {
	if noInput {
		return nil, fmt.Errorf("no configuration found; run `declair init` or pass --config")
	}

	fmt.Fprintf(out, "\n  %s\n\n", cliui.KeyStyle.Render("First run, let's set up declair."))

	// One buffered reader across all prompts so answers are not dropped.
	br := bufio.NewReader(in)

	cfg := config.NewDefaultConfig()

	nixPath, err := cliui.PromptString(br, out, "Path to your Nix configuration", defaultNixPath())
	if err != nil {
		return nil, err
	}
	cfg.Nix.Path = nixPath

	cfg.Rebuild.Auto, err = cliui.PromptBool(br, out, "Rebuild the system after each edit?", false)
	if err != nil {
		return nil, err
	}

	if cfg.Rebuild.Auto {
		cfg.Rebuild.HomeManager, err = cliui.PromptBool(br, out, "Use home-manager instead of nixos-rebuild?", false)
		if err != nil {
			return nil, err
		}

		cfg.Rebuild.Flake, err = cliui.PromptBool(br, out, "Rebuild from a flake?", false)
		if err != nil {
			return nil, err
		}
	}

	if err := cfger.SaveConfig(cfg); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintf(out, "\n  %s Wrote %s\n\n",
		cliui.SuccessMark,
		cliui.ValueStyle.Render(cfger.GetTarget()),
	)

	return cfg, nil
}

func defaultNixPath() string {
	if _, err := os.Stat("/etc/nixos/configuration.nix"); err == nil {
		return "/etc/nixos/configuration.nix"
	}
	return ""
}
