// Package search queries the nixpkgs index via the nix CLI.
package search

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// defaultTimeout bounds one "nix search" invocation. Cold evaluations of
// nixpkgs can take a while, so this is generous.
const defaultTimeout = 2 * time.Minute

// Searcher runs package searches against the nixpkgs flake.
type Searcher struct {
	timeout time.Duration
}

func NewSearcher() *Searcher {
	return &Searcher{timeout: defaultTimeout}
}

// Search runs "nix search nixpkgs <query> --json" and returns the decoded,
// deterministically ordered results. An empty slice means no matches.
func (s *Searcher) Search(ctx context.Context, query string) ([]Package, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// #nosec G204 -- the query is an argument to a fixed binary, not shell.
	cmd := exec.CommandContext(ctx, "nix",
		"search", "nixpkgs", query, "--json",
		"--extra-experimental-features", "nix-command flakes",
	)

	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("nix search failed: %s", firstLine(exitErr.Stderr))
		}
		return nil, fmt.Errorf("running nix search: %w", err)
	}

	return ParseResults(out)
}

// firstLine trims stderr down to its first non-empty line for error display.
func firstLine(stderr []byte) string {
	for _, line := range strings.Split(string(stderr), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return "non-zero exit status"
}
