// TEST TYPE: Integration Test
// DEPENDENCIES: in-memory afero filesystem, real processors, fake transforms
package dispatch

import (
	"context"
	"testing"

	"github.com/arthur-debert/assetwatch/pkg/errors"
	"github.com/arthur-debert/assetwatch/pkg/pathmap"
	"github.com/arthur-debert/assetwatch/pkg/pointer"
	"github.com/arthur-debert/assetwatch/pkg/processors"
	"github.com/arthur-debert/assetwatch/pkg/testutil"
	"github.com/arthur-debert/assetwatch/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "/* acme */"

type harness struct {
	afs      afero.Fs
	compiler *testutil.FakeCompiler
	recorder *testutil.OutcomeRecorder
	d        *Dispatcher
}

func newHarness(t *testing.T, sources []string, files map[string]string) *harness {
	t.Helper()
	fs, afs := testutil.NewMemFS()
	testutil.SeedFiles(t, afs, files)

	mapper, err := pathmap.RootPairs(sources, []string{"/out"})
	require.NoError(t, err)

	h := &harness{
		afs:      afs,
		compiler: &testutil.FakeCompiler{},
		recorder: &testutil.OutcomeRecorder{},
	}
	minifier := &testutil.FakeMinifier{}
	proc := processors.New(fs, processors.Options{
		Header:               header,
		MinifyScript:         true,
		MinifyStylesheet:     true,
		MinifyStructuredData: true,
		MinifyMarkup:         true,
	}, processors.Transforms{Script: minifier, Stylesheet: h.compiler, Markup: minifier})

	h.d = New(fs, proc, pointer.NewResolver(fs), Options{
		Sources:   sources,
		Mapper:    mapper,
		OnOutcome: h.recorder.Record,
	})
	return h
}

func (h *harness) dispatch(events ...types.FileEvent) {
	for _, ev := range events {
		h.d.Dispatch(context.Background(), ev)
	}
	h.d.Wait()
}

func TestDispatch_ScriptUpdateThenRemove(t *testing.T) {
	h := newHarness(t, []string{"/src"}, map[string]string{"/src/app.js": "let x = 1;"})

	h.dispatch(types.UpdateEvent("/src/app.js"))

	want := "\"use strict\";\n\n" + header + "\n\n" + testutil.MinifiedPrefix + "let x = 1;"
	assert.Equal(t, want, testutil.ReadFile(t, h.afs, "/out/app.js"))

	h.dispatch(types.RemoveEvent("/src/app.js"))

	assert.False(t, testutil.Exists(h.afs, "/out/app.js"))
	outcomes := h.recorder.Outcomes()
	require.Len(t, outcomes, 2)
	assert.Equal(t, types.StatusWritten, outcomes[0].Status)
	assert.Equal(t, types.StatusDeleted, outcomes[1].Status)
	assert.Equal(t, types.EventRemove, outcomes[1].Event.Kind)
}

func TestDispatch_ExcludedScriptCopiedVerbatim(t *testing.T) {
	source := "(function(){ var  vendored = true; })()\n"
	h := newHarness(t, []string{"/src"}, map[string]string{"/src/plugins/vendor.js": source})

	h.dispatch(types.UpdateEvent("/src/plugins/vendor.js"))

	assert.Equal(t, source, testutil.ReadFile(t, h.afs, "/out/plugins/vendor.js"))
	outcomes := h.recorder.Outcomes()
	require.Len(t, outcomes, 1)
	assert.Equal(t, types.KindOpaque, outcomes[0].Kind)
}

func TestDispatch_StylesheetWritesCSS(t *testing.T) {
	h := newHarness(t, []string{"/src"}, map[string]string{"/src/css/site.scss": "a{}"})

	h.dispatch(types.UpdateEvent("/src/css/site.scss"))

	assert.Equal(t, header+"\n\ncompressed:a{}", testutil.ReadFile(t, h.afs, "/out/css/site.css"))
	assert.False(t, testutil.Exists(h.afs, "/out/css/site.scss"))

	h.dispatch(types.RemoveEvent("/src/css/site.scss"))
	assert.False(t, testutil.Exists(h.afs, "/out/css/site.css"))
}

func TestDispatch_PartialFansOut(t *testing.T) {
	h := newHarness(t, []string{"/src", "/theme"}, map[string]string{
		"/src/css/_vars.scss":     "$c: red;",
		"/src/css/site.scss":      "@import 'vars';",
		"/src/css/_mixins.scss":   "",
		"/theme/print.scss":       "b{}",
		"/theme/plugins/ext.scss": "c{}",
		"/src/app.js":             "x",
	})

	h.dispatch(types.UpdateEvent("/src/css/_vars.scss"))

	assert.ElementsMatch(t,
		[]string{"/src/css/site.scss", "/theme/print.scss"},
		h.compiler.CompiledPaths())
	assert.True(t, testutil.Exists(h.afs, "/out/css/site.css"))
	assert.True(t, testutil.Exists(h.afs, "/out/print.css"))
	assert.True(t, testutil.Exists(h.afs, "/out/plugins/ext.scss"))
	assert.False(t, testutil.Exists(h.afs, "/out/css/_vars.css"))
	assert.False(t, testutil.Exists(h.afs, "/out/app.js"))

	partial := h.recorder.ForSource("/src/css/_vars.scss")
	require.Len(t, partial, 1)
	assert.Equal(t, types.StatusSkipped, partial[0].Status)
	assert.Equal(t, ReasonPartial, partial[0].Reason)
}

func TestDispatch_PartialRemoveAlsoFansOut(t *testing.T) {
	h := newHarness(t, []string{"/src"}, map[string]string{"/src/site.scss": "a{}"})

	h.dispatch(types.RemoveEvent("/src/_gone.scss"))

	assert.Equal(t, []string{"/src/site.scss"}, h.compiler.CompiledPaths())
}

func TestDispatch_StructuredDataInvalidLeavesDestination(t *testing.T) {
	h := newHarness(t, []string{"/src"}, map[string]string{
		"/src/data.json": `{"a": [1,}`,
		"/out/data.json": `{"a":[1]}`,
	})

	h.dispatch(types.UpdateEvent("/src/data.json"))

	assert.Equal(t, `{"a":[1]}`, testutil.ReadFile(t, h.afs, "/out/data.json"))
	failed := h.recorder.WithStatus(types.StatusFailed)
	require.Len(t, failed, 1)
	assert.True(t, errors.IsErrorCode(failed[0].Err, errors.ErrParseFailure))
}

func TestDispatch_RemoveMissingDestination(t *testing.T) {
	h := newHarness(t, []string{"/src"}, nil)

	h.dispatch(types.RemoveEvent("/src/never/built.png"))

	outcomes := h.recorder.Outcomes()
	require.Len(t, outcomes, 1)
	assert.Equal(t, types.StatusDeleted, outcomes[0].Status)
	assert.Equal(t, "/out/never/built.png", outcomes[0].Destination)
}

func TestDispatch_RemoveDirectory(t *testing.T) {
	h := newHarness(t, []string{"/src"}, map[string]string{
		"/out/img/a.png": "a",
		"/out/img/b.png": "b",
	})

	h.dispatch(types.RemoveEvent("/src/img"))

	assert.False(t, testutil.Exists(h.afs, "/out/img"))
}

func TestDispatch_PointerRedirects(t *testing.T) {
	h := newHarness(t, []string{"/src"}, map[string]string{
		"/src/lib/jquery.pntr":       "/vendor/dist/jquery-3.7.js",
		"/vendor/dist/jquery-3.7.js": "jq()",
	})

	h.dispatch(types.UpdateEvent("/src/lib/jquery.pntr"))

	want := "\"use strict\";\n\n" + header + "\n\n" + testutil.MinifiedPrefix + "jq()"
	assert.Equal(t, want, testutil.ReadFile(t, h.afs, "/out/lib/jquery-3.7.js"))
	assert.False(t, testutil.Exists(h.afs, "/out/lib/jquery.pntr"))

	outcomes := h.recorder.Outcomes()
	require.Len(t, outcomes, 1)
	assert.Equal(t, "/vendor/dist/jquery-3.7.js", outcomes[0].Source)
	assert.Equal(t, "/src/lib/jquery.pntr", outcomes[0].Event.Path)
}

func TestDispatch_PointerToStylesheetCompiles(t *testing.T) {
	h := newHarness(t, []string{"/src"}, map[string]string{
		"/src/theme.pntr":    "../shared/theme.scss",
		"/shared/theme.scss": "a{}",
	})

	h.dispatch(types.UpdateEvent("/src/theme.pntr"))

	assert.True(t, testutil.Exists(h.afs, "/out/theme.css"))
	assert.Equal(t, []string{"/shared/theme.scss"}, h.compiler.CompiledPaths())
}

func TestDispatch_PointerMissingTarget(t *testing.T) {
	h := newHarness(t, []string{"/src"}, map[string]string{"/src/lib/gone.pntr": "/nowhere/gone.js"})

	h.dispatch(types.UpdateEvent("/src/lib/gone.pntr"))

	outcomes := h.recorder.Outcomes()
	require.Len(t, outcomes, 1)
	assert.Equal(t, types.StatusFailed, outcomes[0].Status)
	assert.True(t, errors.IsErrorCode(outcomes[0].Err, errors.ErrResolutionFailure))
	assert.Equal(t, "/nowhere/gone.js", errors.GetErrorDetails(outcomes[0].Err)["target"])
	assert.Empty(t, testutil.ListFiles(t, h.afs, "/out"))
}

func TestDispatch_PointerRemove(t *testing.T) {
	t.Run("uses remembered target name", func(t *testing.T) {
		h := newHarness(t, []string{"/src"}, map[string]string{
			"/src/lib/jquery.pntr":  "/vendor/jquery-3.7.js",
			"/vendor/jquery-3.7.js": "jq()",
		})
		h.dispatch(types.UpdateEvent("/src/lib/jquery.pntr"))
		require.True(t, testutil.Exists(h.afs, "/out/lib/jquery-3.7.js"))

		// target disappears too; the nominal destination is still removed
		require.NoError(t, h.afs.Remove("/vendor/jquery-3.7.js"))
		require.NoError(t, h.afs.Remove("/src/lib/jquery.pntr"))
		h.dispatch(types.RemoveEvent("/src/lib/jquery.pntr"))

		assert.False(t, testutil.Exists(h.afs, "/out/lib/jquery-3.7.js"))
	})

	t.Run("falls back to pointer name", func(t *testing.T) {
		h := newHarness(t, []string{"/src"}, map[string]string{"/out/lib/jquery.js": "old"})

		h.dispatch(types.RemoveEvent("/src/lib/jquery.js.pntr"))

		assert.False(t, testutil.Exists(h.afs, "/out/lib/jquery.js"))
	})
}

func TestDispatch_PointerRemoveMatchesUpdate(t *testing.T) {
	tests := []struct {
		name    string
		pointer string
		target  string
		written string
	}{
		{
			name:    "excluded pointer to compiled stylesheet",
			pointer: "/src/plugins/site.pntr",
			target:  "/src/styles/site.scss",
			written: "/out/plugins/site.css",
		},
		{
			name:    "pointer to excluded stylesheet",
			pointer: "/src/css/ext.pntr",
			target:  "/src/plugins/ext.scss",
			written: "/out/css/ext.scss",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, []string{"/src"}, map[string]string{
				tt.pointer: tt.target,
				tt.target:  "a{}",
			})

			h.dispatch(types.UpdateEvent(tt.pointer))
			require.True(t, testutil.Exists(h.afs, tt.written))

			require.NoError(t, h.afs.Remove(tt.pointer))
			h.dispatch(types.RemoveEvent(tt.pointer))

			assert.False(t, testutil.Exists(h.afs, tt.written))
			outcomes := h.recorder.Outcomes()
			require.Len(t, outcomes, 2)
			assert.Equal(t, outcomes[0].Kind, outcomes[1].Kind)
			assert.Equal(t, tt.written, outcomes[1].Destination)
		})
	}
}

func TestDispatch_PointerToPartialFansOut(t *testing.T) {
	h := newHarness(t, []string{"/src"}, map[string]string{
		"/src/css/mix.pntr":      "/src/lib/_mixins.scss",
		"/src/lib/_mixins.scss":  "@mixin m {}",
		"/src/css/site.scss":     "a{}",
		"/src/css/shared.pntr":   "/shared/theme.scss",
		"/shared/theme.scss":     "b{}",
		"/src/css/partials.pntr": "/src/lib/_mixins.scss",
	})

	h.dispatch(types.UpdateEvent("/src/css/mix.pntr"))

	assert.ElementsMatch(t,
		[]string{"/src/css/site.scss", "/shared/theme.scss"},
		h.compiler.CompiledPaths())
	assert.False(t, testutil.Exists(h.afs, "/out/css/_mixins.css"))
	assert.True(t, testutil.Exists(h.afs, "/out/css/site.css"))
	assert.True(t, testutil.Exists(h.afs, "/out/css/theme.css"))

	skipped := h.recorder.WithStatus(types.StatusSkipped)
	require.Len(t, skipped, 1)
	assert.Equal(t, ReasonPartial, skipped[0].Reason)
	assert.Equal(t, "/src/css/mix.pntr", skipped[0].Event.Path)
}

func TestDispatch_PartialRebuildsStylesheetPointers(t *testing.T) {
	h := newHarness(t, []string{"/src"}, map[string]string{
		"/src/css/_vars.scss":  "$c: red;",
		"/src/css/theme.pntr":  "/shared/theme.scss",
		"/shared/theme.scss":   "@import 'vars';",
		"/src/js/app.pntr":     "/shared/app.js",
		"/shared/app.js":       "x",
		"/src/css/broken.pntr": "/nowhere.scss",
	})

	h.dispatch(types.UpdateEvent("/src/css/_vars.scss"))

	assert.Equal(t, []string{"/shared/theme.scss"}, h.compiler.CompiledPaths())
	assert.True(t, testutil.Exists(h.afs, "/out/css/theme.css"))
	assert.False(t, testutil.Exists(h.afs, "/out/js/app.js"))
	assert.Empty(t, h.recorder.WithStatus(types.StatusFailed))
}

func TestDispatch_OutsideSourceRoots(t *testing.T) {
	h := newHarness(t, []string{"/src"}, map[string]string{"/elsewhere/a.js": "x"})

	h.dispatch(types.UpdateEvent("/elsewhere/a.js"))

	failed := h.recorder.WithStatus(types.StatusFailed)
	require.Len(t, failed, 1)
	assert.True(t, errors.IsErrorCode(failed[0].Err, errors.ErrPathMapping))
}

func TestDispatch_MultipleRootsOneDestination(t *testing.T) {
	h := newHarness(t, []string{"/src", "/assets"}, map[string]string{
		"/src/app.js":        "a",
		"/assets/logo.png":   "png",
		"/assets/index.html": "<p>x</p>",
	})

	h.dispatch(
		types.UpdateEvent("/src/app.js"),
		types.UpdateEvent("/assets/logo.png"),
		types.UpdateEvent("/assets/index.html"),
	)

	assert.ElementsMatch(t,
		[]string{"/out/app.js", "/out/logo.png", "/out/index.html"},
		testutil.ListFiles(t, h.afs, "/out"))
	assert.Equal(t, testutil.MinifiedPrefix+"<p>x</p>", testutil.ReadFile(t, h.afs, "/out/index.html"))
}
