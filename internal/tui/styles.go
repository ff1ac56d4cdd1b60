package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	hintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	boxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)

	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// OK renders a success status line.
func OK(format string, args ...any) string {
	return okStyle.Render("✓ " + fmt.Sprintf(format, args...))
}

// Warn renders a status line for a degraded but finished operation.
func Warn(format string, args ...any) string {
	return warnStyle.Render("! " + fmt.Sprintf(format, args...))
}

// Fail renders a failure status line.
func Fail(format string, args ...any) string {
	return failStyle.Render("✗ " + fmt.Sprintf(format, args...))
}

// Title renders a section heading.
func Title(s string) string { return titleStyle.Render(s) }

// Hint renders dimmed helper text.
func Hint(s string) string { return hintStyle.Render(s) }
