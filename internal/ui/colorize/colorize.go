// Package colorize provides terminal styling for eldr's CLI summary
// output (the --info inspection summary). It never
// touches the fixed plain-text debug lines the loader itself prints.
package colorize

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	addressStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC800"))
	tagStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB4C8"))
	funcNameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC800"))
	keyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5050"))
	borderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#505050"))
	commentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#56A0D6")).Bold(true)
	hexBytesStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B4B4B4"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF80C0"))
	stringStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF80C0"))
)

// IsDisabled reports whether color output should be suppressed: the
// NO_COLOR convention is honored, and output is also plain whenever
// stdout isn't a terminal.
func IsDisabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return true
	}
	return !isatty.IsTerminal(os.Stdout.Fd())
}

func render(style lipgloss.Style, s string) string {
	if IsDisabled() {
		return s
	}
	return style.Render(s)
}

func Address(s string) string  { return render(addressStyle, s) }
func Tag(s string) string      { return render(tagStyle, s) }
func FuncName(s string) string { return render(funcNameStyle, s) }
func Key(s string) string      { return render(keyStyle, s) }
func Border(s string) string   { return render(borderStyle, s) }
func Comment(s string) string  { return render(commentStyle, s) }
func Header(s string) string   { return render(headerStyle, s) }
func HexBytes(s string) string { return render(hexBytesStyle, s) }
func Error(s string) string    { return render(errorStyle, s) }
func String(s string) string   { return render(stringStyle, s) }
