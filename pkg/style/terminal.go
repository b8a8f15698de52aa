package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// ColorEnabled reports whether output should carry colour: it must be a
// terminal with colour support and NO_COLOR must be unset
func ColorEnabled(output *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return false
	}
	return termenv.NewOutput(output).ColorProfile() != termenv.Ascii
}

// Configure turns colour off for both pterm and lipgloss when output
// cannot show it
func Configure(output *os.File) {
	if ColorEnabled(output) {
		return
	}
	pterm.DisableColor()
	lipgloss.SetColorProfile(termenv.Ascii)
}
