// Package git provides utilities for detecting git repository information.
package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Root returns the top-level directory of the git repository containing
// path. It runs "git rev-parse --show-toplevel" in path's directory. When
// path is not inside a git repo (or git is unavailable), it falls back to
// the directory itself for directories, or the parent directory for files.
func Root(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}

	dir := path
	if !info.IsDir() {
		dir = filepath.Dir(path)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	out, err := exec.CommandContext(ctx, "git", "-C", dir, "rev-parse", "--show-toplevel").Output()
	if err == nil {
		top := strings.TrimSpace(string(out))
		if top != "" {
			return top, nil
		}
	}

	return dir, nil
}
