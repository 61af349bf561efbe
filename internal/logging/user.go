package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// User-facing output functions with status indicators.
// These write to stdout/stderr directly for CLI output,
// separate from the structured debug logging.

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

func userLine(w io.Writer, style lipgloss.Style, indicator, format string, args ...interface{}) {
	fmt.Fprintf(w, style.Render(indicator)+" "+format+"\n", args...)
}

// UserInfo prints an info message to stdout.
func UserInfo(format string, args ...interface{}) {
	userLine(os.Stdout, infoStyle, "ℹ", format, args...)
}

// UserSuccess prints a success message to stdout.
func UserSuccess(format string, args ...interface{}) {
	userLine(os.Stdout, successStyle, "✓", format, args...)
}

// UserWarning prints a warning message to stderr.
func UserWarning(format string, args ...interface{}) {
	userLine(os.Stderr, warningStyle, "⚠", format, args...)
}

// UserError prints an error message to stderr.
func UserError(format string, args ...interface{}) {
	userLine(os.Stderr, errorStyle, "✗", format, args...)
}
