// Package nixfile resolves user-supplied paths to the Nix configuration
// file whose package block declair edits.
package nixfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// candidates are the filenames probed, in order, when the configured path
// is a directory.
var candidates = []string{
	"configuration.nix",
	"flake.nix",
	"default.nix",
	"home.nix",
	"pkgs.nix",
}

// ExpandTilde expands a leading "~/" in path to the user's home directory.
func ExpandTilde(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}

	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}

// Resolve turns path into the Nix configuration file to edit. A file path
// is returned as-is; a directory is probed for the first existing candidate
// filename. Anything else is an error.
func Resolve(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("file or directory %s not found: %w", path, err)
	}

	if !info.IsDir() {
		return path, nil
	}

	for _, name := range candidates {
		candidate := filepath.Join(path, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("directory %s contains none of the expected files: %s",
		path, strings.Join(candidates, ", "))
}
