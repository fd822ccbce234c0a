package block

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// backupSuffix replaces the target file's extension to form the backup path,
// e.g. configuration.nix -> configuration.declair.bak.
const backupSuffix = ".declair.bak"

// BackupPath returns the sibling path the pre-mutation backup is written to.
func BackupPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + backupSuffix
}

// List reads the file at path and returns the package entries of its block.
func List(path string) ([]string, error) {
	lines, _, err := readLines(path)
	if err != nil {
		return nil, err
	}

	start, end, err := Locate(lines)
	if err != nil {
		return nil, err
	}

	return Entries(lines, start, end), nil
}

// Insert adds pkg to the block in the file at path. It fails with
// ErrAlreadyPresent if pkg is already listed as an entry, leaving the file
// untouched. On success the original file content is copied to BackupPath
// before the rewritten file replaces the original.
func Insert(path, pkg string) error {
	lines, mode, err := readLines(path)
	if err != nil {
		return err
	}

	start, end, err := Locate(lines)
	if err != nil {
		return err
	}

	if slices.Contains(Entries(lines, start, end), pkg) {
		return ErrAlreadyPresent{Pkg: pkg}
	}

	if start == end {
		line := lines[start]
		// Normalize spacing so the new token is separated from its
		// neighbors and from the closing bracket.
		switch {
		case strings.Contains(line, "[]"):
			lines[start] = strings.Replace(line, "[]", "[ "+pkg+" ]", 1)
		case strings.Contains(line, " ]"):
			lines[start] = strings.Replace(line, "]", pkg+" ]", 1)
		default:
			lines[start] = strings.Replace(line, "]", " "+pkg+" ]", 1)
		}
	} else {
		// One extra nesting level relative to the closing bracket.
		indent := leadingWhitespace(lines[end])
		lines = slices.Insert(lines, end, indent+indent+pkg)
	}

	if err := makeBackup(path); err != nil {
		return err
	}

	return persist(path, lines, mode)
}

// Remove deletes the first entry exactly matching pkg from the block in the
// file at path. It fails with ErrNotFound when no entry matches, leaving the
// file untouched. The same backup-then-replace discipline as Insert applies.
func Remove(path, pkg string) error {
	lines, mode, err := readLines(path)
	if err != nil {
		return err
	}

	start, end, err := Locate(lines)
	if err != nil {
		return err
	}

	if start == end {
		line := lines[start]
		lbr := strings.Index(line, "[")
		rbr := strings.LastIndex(line, "]")
		if lbr < 0 || rbr < lbr {
			return ErrMalformed{Line: start + 1}
		}

		tokens := strings.Fields(line[lbr+1 : rbr])
		i := slices.Index(tokens, pkg)
		if i < 0 {
			return ErrNotFound{Pkg: pkg}
		}
		tokens = slices.Delete(tokens, i, i+1)
		lines[start] = line[:lbr] + "[ " + strings.Join(tokens, " ") + " ]"
	} else {
		idx := -1
		for i := start + 1; i < end; i++ {
			trimmed := strings.TrimSpace(lines[i])
			if trimmed == "" {
				continue
			}
			if strings.Fields(trimmed)[0] == pkg {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrNotFound{Pkg: pkg}
		}
		lines = slices.Delete(lines, idx, idx+1)
	}

	if err := makeBackup(path); err != nil {
		return err
	}

	return persist(path, lines, mode)
}

// readLines loads the whole file as a newline-split line sequence. Splitting
// on "\n" round-trips exactly: a trailing newline becomes a trailing empty
// line that persist rejoins unchanged.
func readLines(path string) ([]string, fs.FileMode, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, 0, fmt.Errorf("reading %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("reading %s: %w", path, err)
	}

	return strings.Split(string(data), "\n"), info.Mode(), nil
}

// makeBackup copies the original file to BackupPath, overwriting any
// previous backup. The backup is a human safety net and is never read back.
func makeBackup(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s for backup: %w", path, err)
	}

	backup := BackupPath(path)
	if err := os.WriteFile(backup, data, 0o600); err != nil {
		return fmt.Errorf("writing backup %s: %w", backup, err)
	}

	return nil
}

// persist rejoins lines and replaces the file at path atomically: the new
// content goes to a temp file in the same directory, which is then renamed
// over the original. The backup and the rename remain two separate
// filesystem operations with no transaction across them.
func persist(path string, lines []string, mode fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	if err := tmp.Chmod(mode.Perm()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if _, err := tmp.WriteString(strings.Join(lines, "\n")); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("writing temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replacing %s: %w", path, err)
	}

	return nil
}
