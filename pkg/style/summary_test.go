package style

import (
	"testing"
	"time"

	"github.com/arthur-debert/assetwatch/pkg/errors"
	"github.com/arthur-debert/assetwatch/pkg/orchestrator"
	"github.com/arthur-debert/assetwatch/pkg/types"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSummary(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	s := orchestrator.Summary{
		Cleared:  1,
		Scanned:  5,
		Written:  3,
		Skipped:  1,
		Failed:   1,
		Duration: 1500 * time.Millisecond,
		Failures: []types.Outcome{
			types.Failed(types.KindStructuredData, "/src/bad.json", "/out/bad.json",
				errors.New(errors.ErrParseFailure, "invalid structured data")),
		},
	}

	out, err := RenderSummary(s)
	require.NoError(t, err)

	assert.Contains(t, out, "written")
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "5 files scanned, 1 destinations cleared in 1.5s")
	assert.Contains(t, out, "/src/bad.json")
	assert.Contains(t, out, "invalid structured data")
}

func TestRenderError(t *testing.T) {
	err := errors.New(errors.ErrConfigValid, "destinations mismatch").
		WithDetail("sources", 3).
		WithPath("/p/assetwatch.toml")

	out := RenderError(err)
	assert.Contains(t, out, "destinations mismatch")
	assert.Contains(t, out, "path: /p/assetwatch.toml")
	assert.Contains(t, out, "sources: 3")
}
