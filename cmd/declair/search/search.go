// Package searchcmder provides the search command for querying nixpkgs
// without editing anything.
package searchcmder

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/timasoft/declair/pkg/cliui"
	"github.com/timasoft/declair/pkg/search"
)

const searchLongDesc string = `Search nixpkgs for packages matching a query.

Runs the same nixpkgs search that "declair add" uses for its selection list
and prints the results as a table. Nothing is edited.

Examples:
  declair search ripgrep
  declair search "json formatter"`

const searchShortDesc string = "Search nixpkgs for packages"

type searchCommander struct {
	query string
}

func NewSearchCmd() *cobra.Command {
	cmder := &searchCommander{}

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: searchShortDesc,
		Long:  searchLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmder.query = args[0]
			return cmder.run(cmd, cmd.OutOrStdout())
		},
	}

	return cmd
}

func (c *searchCommander) run(cmd *cobra.Command, out io.Writer) error {
	pkgs, err := search.NewSearcher().Search(cmd.Context(), c.query)
	if err != nil {
		return err
	}

	if len(pkgs) == 0 {
		fmt.Fprintln(out, "No results found.")
		return nil
	}

	names := make([]string, len(pkgs))
	versions := make([]string, len(pkgs))
	for i, p := range pkgs {
		names[i] = p.Name
		versions[i] = p.Version
	}

	nameWidth := cliui.ColumnWidth("Package", names)
	versionWidth := cliui.ColumnWidth("Version", versions)

	fmt.Fprintf(out, "%-*s  %-*s  %s\n", nameWidth, "Package", versionWidth, "Version", "Description")
	for _, p := range pkgs {
		fmt.Fprintf(out, "%-*s  %-*s  %s\n", nameWidth, p.Name, versionWidth, p.Version, p.Description)
	}

	return nil
}
