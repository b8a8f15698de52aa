// Package style renders command output for the terminal: the build
// summary table and error messages.
//
// Tables and status colours use pterm; standalone messages use lipgloss.
// Callers disable colour when stdout is not a terminal.
package style
