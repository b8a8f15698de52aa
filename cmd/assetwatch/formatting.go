package main

import (
	"os"
	"strings"
	"text/template"

	"github.com/arthur-debert/assetwatch/pkg/style"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// formatBold returns the string formatted as bold using pterm
func formatBold(s string) string {
	if !style.ColorEnabled(os.Stdout) {
		return s
	}
	return pterm.Bold.Sprint(s)
}

// initTemplateFormatting adds formatting functions to cobra templates
func initTemplateFormatting() {
	cobra.AddTemplateFuncs(template.FuncMap{
		"bold":  formatBold,
		"upper": strings.ToUpper,
	})
}
