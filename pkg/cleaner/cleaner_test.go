package cleaner

import (
	"context"
	"testing"

	"github.com/arthur-debert/assetwatch/pkg/filesystem"
	"github.com/arthur-debert/assetwatch/pkg/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestClear(t *testing.T) {
	fs, afs := testutil.NewMemFS()
	testutil.SeedFiles(t, afs, map[string]string{
		"/out/a/app.js":      "x",
		"/out/a/css/s.css":   "x",
		"/public/index.html": "x",
		"/keep/file.txt":     "x",
	})

	report := Clear(context.Background(), fs, []string{"/out/a", "/public", "/never-built"})

	assert.Equal(t, Report{Cleared: 3}, report)
	assert.False(t, testutil.Exists(afs, "/out/a"))
	assert.False(t, testutil.Exists(afs, "/public"))
	assert.True(t, testutil.Exists(afs, "/keep/file.txt"))
}

func TestClear_FailuresCounted(t *testing.T) {
	base := afero.NewMemMapFs()
	testutil.SeedFiles(t, base, map[string]string{"/out/app.js": "x"})
	fs := filesystem.New(afero.NewReadOnlyFs(base))

	report := Clear(context.Background(), fs, []string{"/out", "/other"})

	assert.Equal(t, 2, report.Failures)
	assert.Equal(t, 0, report.Cleared)
	assert.True(t, testutil.Exists(base, "/out/app.js"))
}

func TestClear_NoRoots(t *testing.T) {
	fs, _ := testutil.NewMemFS()
	assert.Equal(t, Report{}, Clear(context.Background(), fs, nil))
}

func TestClear_CancelledContext(t *testing.T) {
	fs, afs := testutil.NewMemFS()
	testutil.SeedFiles(t, afs, map[string]string{
		"/out/app.js":   "x",
		"/public/a.css": "x",
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := Clear(ctx, fs, []string{"/out", "/public"})

	assert.Equal(t, Report{Failures: 2}, report)
	assert.True(t, testutil.Exists(afs, "/out/app.js"))
	assert.True(t, testutil.Exists(afs, "/public/a.css"))
}
