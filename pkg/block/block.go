// Package block edits the package list inside a Nix configuration file.
//
// The block is the contiguous line range opened by the literal marker
// "with pkgs; [" and closed by the first following line that contains "]".
// A block may span a single line ("with pkgs; [ git vim ]") or many lines
// with one package per interior line. Mutations preserve the surrounding
// file byte-for-byte, write a sibling .declair.bak copy of the original
// before the first destructive write, and replace the file atomically via
// a temp file and rename.
package block

import "strings"

// Marker is the literal substring that opens a package block.
const Marker = "with pkgs; ["

// Locate finds the block within lines. start is the index of the first line
// containing Marker; end is the index of the first line at or after start
// containing a closing bracket. A marker line that also closes the block
// yields start == end. Returns ErrNoBlock when either index is missing.
func Locate(lines []string) (start, end int, err error) {
	start = -1
	for i, line := range lines {
		if strings.Contains(line, Marker) {
			start = i
			break
		}
	}
	if start < 0 {
		return 0, 0, ErrNoBlock
	}

	for i := start; i < len(lines); i++ {
		if strings.Contains(lines[i], "]") {
			return start, i, nil
		}
	}

	return 0, 0, ErrNoBlock
}

// Entries returns the package tokens listed in the block [start, end], in
// document order. No deduplication or normalization is performed.
//
// Single-line blocks contribute every whitespace-separated token strictly
// between the first "[" and the last "]". Multi-line blocks contribute the
// first token of each interior line, skipping blank lines and lines whose
// first token starts with a comment marker ("#" or "//").
func Entries(lines []string, start, end int) []string {
	if start == end {
		line := lines[start]
		lbr := strings.Index(line, "[")
		rbr := strings.LastIndex(line, "]")
		if lbr < 0 || rbr < lbr {
			return nil
		}
		return strings.Fields(line[lbr+1 : rbr])
	}

	var entries []string
	for _, line := range lines[start+1 : end] {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		token := strings.Fields(trimmed)[0]
		if strings.HasPrefix(token, "#") || strings.HasPrefix(token, "//") {
			continue
		}
		entries = append(entries, token)
	}
	return entries
}

// leadingWhitespace returns the run of whitespace characters that opens line.
func leadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}
