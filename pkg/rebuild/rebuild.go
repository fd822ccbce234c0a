// Package rebuild invokes the system rebuild command after a successful
// configuration edit.
package rebuild

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
)

// Options select which rebuild command applies to the managed configuration.
type Options struct {
	// Flake rebuilds from the flake in the configuration's worktree.
	Flake bool

	// HomeManager uses home-manager instead of nixos-rebuild.
	HomeManager bool
}

// Command returns the rebuild binary and arguments for the given options.
// nixos-rebuild requires root, so it runs through sudo; home-manager does not.
func Command(opts Options) (name string, args []string) {
	switch {
	case opts.HomeManager && opts.Flake:
		return "home-manager", []string{"switch", "--flake", "."}
	case opts.HomeManager:
		return "home-manager", []string{"switch"}
	case opts.Flake:
		return "sudo", []string{"nixos-rebuild", "switch", "--flake", "."}
	default:
		return "sudo", []string{"nixos-rebuild", "switch"}
	}
}

// Run executes the rebuild command in dir with inherited stdio. The rebuild
// is fire-and-forget: a non-zero exit is logged and reported, but callers
// treat it as advisory since the configuration edit already succeeded.
func Run(ctx context.Context, log *slog.Logger, dir string, opts Options) error {
	name, args := Command(opts)

	log.Info("rebuilding system", "command", name, "args", args, "dir", dir)

	// #nosec G204 -- the command matrix is fixed, nothing user-controlled.
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		log.Error("rebuild failed", "command", name, "error", err)
		return fmt.Errorf("running %s: %w", name, err)
	}

	log.Info("rebuild finished")
	return nil
}
