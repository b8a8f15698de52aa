package style

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/arthur-debert/assetwatch/pkg/errors"
	"github.com/arthur-debert/assetwatch/pkg/orchestrator"
	"github.com/arthur-debert/assetwatch/pkg/types"
	"github.com/pterm/pterm"
)

// RenderSummary renders a build summary as a status table followed by one
// line per failed dispatch
func RenderSummary(s orchestrator.Summary) (string, error) {
	rows := [][]string{
		{"status", "count"},
		{StatusStyle(types.StatusWritten).Sprint("written"), fmt.Sprint(s.Written)},
		{StatusStyle(types.StatusDeleted).Sprint("deleted"), fmt.Sprint(s.Deleted)},
		{StatusStyle(types.StatusSkipped).Sprint("skipped"), fmt.Sprint(s.Skipped)},
		{StatusStyle(types.StatusFailed).Sprint("failed"), fmt.Sprint(s.Failed)},
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(table)
	b.WriteString("\n")
	fmt.Fprintf(&b, "%d files scanned, %d destinations cleared in %s\n",
		s.Scanned, s.Cleared, s.Duration.Round(time.Millisecond))
	if s.CleanFailures > 0 {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("%d destinations could not be cleared", s.CleanFailures)))
		b.WriteString("\n")
	}

	failures := append([]types.Outcome(nil), s.Failures...)
	sort.Slice(failures, func(i, j int) bool { return failures[i].Source < failures[j].Source })
	for _, f := range failures {
		b.WriteString(ErrorStyle.Render("✗ " + f.Source))
		b.WriteString(" ")
		b.WriteString(MutedStyle.Render(f.Reason))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n"), nil
}

// RenderError renders an error with its code and details
func RenderError(err error) string {
	var b strings.Builder
	b.WriteString(ErrorStyle.Render("Error: " + err.Error()))

	details := errors.GetErrorDetails(err)
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString("\n  ")
		b.WriteString(MutedStyle.Render(fmt.Sprintf("%s: %v", k, details[k])))
	}
	return b.String()
}
