package cliui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// IsTerminal reports whether f is connected to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// PromptString reads one line of input after printing label. The fallback
// is returned for empty input.
func PromptString(r io.Reader, w io.Writer, label, fallback string) (string, error) {
	if fallback != "" {
		fmt.Fprintf(w, "%s [%s]: ", label, fallback)
	} else {
		fmt.Fprintf(w, "%s: ", label)
	}

	line, err := readLine(r)
	if err != nil {
		return "", err
	}
	if line == "" {
		return fallback, nil
	}
	return line, nil
}

// PromptBool asks a yes/no question, returning fallback for empty input.
func PromptBool(r io.Reader, w io.Writer, label string, fallback bool) (bool, error) {
	hint := "y/N"
	if fallback {
		hint = "Y/n"
	}
	fmt.Fprintf(w, "%s [%s]: ", label, hint)

	line, err := readLine(r)
	if err != nil {
		return false, err
	}

	switch strings.ToLower(line) {
	case "":
		return fallback, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, fmt.Errorf("invalid answer: %q", line)
	}
}

// PromptChoice prints a numbered list and reads a 1-based selection,
// defaulting to the first item for empty input. Returns the chosen index.
func PromptChoice(r io.Reader, w io.Writer, label string, items []string) (int, error) {
	fmt.Fprintf(w, "%s\n", label)
	for i, item := range items {
		fmt.Fprintf(w, "  %d) %s\n", i+1, item)
	}
	fmt.Fprintf(w, "Choice [1]: ")

	line, err := readLine(r)
	if err != nil {
		return 0, err
	}
	if line == "" {
		return 0, nil
	}

	n := 0
	if _, err := fmt.Sscanf(line, "%d", &n); err != nil || n < 1 || n > len(items) {
		return 0, fmt.Errorf("invalid choice: %q", line)
	}
	return n - 1, nil
}

// readLine consumes one line from r. Callers running several prompts over
// the same input should pass a *bufio.Reader so buffered bytes survive
// between prompts.
func readLine(r io.Reader) (string, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	line, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
