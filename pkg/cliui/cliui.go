// Package cliui provides reusable terminal UI helpers (step indicators,
// styles, column alignment) for declair CLI commands.
package cliui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	SuccessMark = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Render("✓")
	FailMark    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("✗")
	StepStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	KeyStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	ValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	DimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Step prints a step-in-progress indicator, executes fn, then prints
// a success or failure checkmark. Returns the error from fn.
func Step(w io.Writer, msg string, fn func() error) error {
	fmt.Fprintf(w, "  %s %s", StepStyle.Render("·"), msg)

	start := time.Now()
	err := fn()
	elapsed := time.Since(start)

	// Clear the line and reprint with result
	fmt.Fprintf(w, "\r  %s %s %s\n",
		Mark(err),
		msg,
		StepStyle.Render(fmt.Sprintf("(%s)", FormatDuration(elapsed))),
	)

	return err
}

// Mark returns a ✓ for nil errors or ✗ for non-nil errors.
func Mark(err error) string {
	if err != nil {
		return FailMark
	}
	return SuccessMark
}

// FormatDuration formats a duration for display (e.g. "12ms" or "3.2s").
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// ColumnWidth returns the widest length among header and values, for
// %-*s alignment in tabular output.
func ColumnWidth(header string, values []string) int {
	width := len(header)
	for _, v := range values {
		if len(v) > width {
			width = len(v)
		}
	}
	return width
}
