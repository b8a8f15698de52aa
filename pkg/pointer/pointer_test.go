package pointer

import (
	"testing"

	"github.com/arthur-debert/assetwatch/pkg/errors"
	"github.com/arthur-debert/assetwatch/pkg/filesystem"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResolver(t *testing.T, files map[string]string) *Resolver {
	t.Helper()
	mem := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(mem, path, []byte(content), 0644))
	}
	return NewResolver(filesystem.New(mem))
}

func TestResolve(t *testing.T) {
	r := newResolver(t, map[string]string{
		"/shared/widgets/slider.js": "slider()",
		"/src/pages/slider.pntr":    "  /shared/widgets/slider.js\n",
	})

	rec, err := r.Resolve("/src/pages/slider.pntr")
	require.NoError(t, err)
	assert.Equal(t, "/src/pages/slider.pntr", rec.PointerPath)
	assert.Equal(t, "/src/pages", rec.PointerDir)
	assert.Equal(t, "/shared/widgets/slider.js", rec.TargetPath)
	assert.Equal(t, "/src/pages/slider.js", Alias(rec))
}

func TestResolve_RelativeTarget(t *testing.T) {
	r := newResolver(t, map[string]string{
		"/src/lib/theme.scss": "a{}",
		"/src/site/main.pntr": "../lib/theme.scss",
	})

	rec, err := r.Resolve("/src/site/main.pntr")
	require.NoError(t, err)
	assert.Equal(t, "/src/lib/theme.scss", rec.TargetPath)
	assert.Equal(t, "/src/site/theme.scss", Alias(rec))
}

func TestResolve_Failures(t *testing.T) {
	r := newResolver(t, map[string]string{
		"/src/missing.pntr": "/nowhere/app.js",
		"/src/empty.pntr":   "   \n",
		"/src/chain.pntr":   "/src/missing.pntr",
		"/src/dir.pntr":     "/src/lib",
		"/src/lib/a.js":     "x",
	})

	t.Run("missing target", func(t *testing.T) {
		_, err := r.Resolve("/src/missing.pntr")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrResolutionFailure))
		details := errors.GetErrorDetails(err)
		assert.Equal(t, "/src/missing.pntr", details["path"])
		assert.Equal(t, "/nowhere/app.js", details["target"])
	})

	t.Run("empty pointer", func(t *testing.T) {
		_, err := r.Resolve("/src/empty.pntr")
		assert.True(t, errors.IsErrorCode(err, errors.ErrResolutionFailure))
	})

	t.Run("pointer to pointer", func(t *testing.T) {
		_, err := r.Resolve("/src/chain.pntr")
		assert.True(t, errors.IsErrorCode(err, errors.ErrResolutionFailure))
	})

	t.Run("directory target", func(t *testing.T) {
		_, err := r.Resolve("/src/dir.pntr")
		assert.True(t, errors.IsErrorCode(err, errors.ErrResolutionFailure))
	})

	t.Run("unreadable pointer", func(t *testing.T) {
		_, err := r.Resolve("/src/gone.pntr")
		assert.True(t, errors.IsErrorCode(err, errors.ErrIOFailure))
	})
}

func TestForget(t *testing.T) {
	r := newResolver(t, map[string]string{
		"/shared/styles/app.scss": "a{}",
		"/src/plugins/entry.pntr": "/shared/styles/app.scss",
	})

	_, err := r.Resolve("/src/plugins/entry.pntr")
	require.NoError(t, err)

	rec := r.Forget("/src/plugins/entry.pntr")
	assert.Equal(t, "/shared/styles/app.scss", rec.TargetPath, "keeps the full remembered target")
	assert.Equal(t, "/src/plugins/app.scss", Alias(rec))

	rec = r.Forget("/src/plugins/entry.pntr")
	assert.Equal(t, "/src/plugins/entry", rec.TargetPath, "the memory is dropped after a removal")

	rec = r.Forget("/src/other.js.pntr")
	assert.Equal(t, "/src/other.js", rec.TargetPath, "never-resolved pointers fall back to their own name")
	assert.Equal(t, "/src/other.js", Alias(rec))
}

func TestTarget_DoesNotRemember(t *testing.T) {
	r := newResolver(t, map[string]string{
		"/shared/app.js":  "x",
		"/src/entry.pntr": "../shared/app.js",
	})

	target, err := r.Target("/src/entry.pntr")
	require.NoError(t, err)
	assert.Equal(t, "/shared/app.js", target)

	assert.Equal(t, "/src/entry", r.Forget("/src/entry.pntr").TargetPath)
}
