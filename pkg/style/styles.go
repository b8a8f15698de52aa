package style

import (
	"github.com/arthur-debert/assetwatch/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

var (
	ErrorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#C4314B", Dark: "#FF6B81"})
	SuccessStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#7BD88F"})
	MutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B6B6B", Dark: "#9A9A9A"})
)

// StatusStyle returns the table style for an outcome status
func StatusStyle(status types.OutcomeStatus) *pterm.Style {
	switch status {
	case types.StatusWritten:
		return pterm.NewStyle(pterm.FgGreen)
	case types.StatusDeleted:
		return pterm.NewStyle(pterm.FgYellow)
	case types.StatusFailed:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}
