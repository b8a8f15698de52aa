package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/arthur-debert/assetwatch/pkg/transform"
)

// MinifiedPrefix marks output produced by the fake minifiers
const MinifiedPrefix = "min:"

// FakeMinifier implements transform.ScriptMinifier and
// transform.MarkupMinifier. It collapses whitespace and prefixes the result
// with MinifiedPrefix, or returns Err when set.
type FakeMinifier struct {
	Err error

	mu    sync.Mutex
	calls int
}

func (f *FakeMinifier) minify(source string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.Err != nil {
		return "", f.Err
	}
	return MinifiedPrefix + strings.Join(strings.Fields(source), " "), nil
}

// MinifyScript implements transform.ScriptMinifier
func (f *FakeMinifier) MinifyScript(source string) (string, error) {
	return f.minify(source)
}

// MinifyMarkup implements transform.MarkupMinifier
func (f *FakeMinifier) MinifyMarkup(source string) (string, error) {
	return f.minify(source)
}

// Calls returns how many times the minifier ran
func (f *FakeMinifier) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// FakeCompiler implements transform.StylesheetCompiler. Output is
// "compressed:" or "expanded:" followed by the source, so tests can check
// both the style flag and the content.
type FakeCompiler struct {
	// FailOn makes compilation of any path containing this substring fail
	FailOn string
	Err    error

	mu       sync.Mutex
	requests []transform.StylesheetRequest
}

// CompileStylesheet implements transform.StylesheetCompiler
func (f *FakeCompiler) CompileStylesheet(_ context.Context, req transform.StylesheetRequest) (string, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.Err != nil && (f.FailOn == "" || strings.Contains(req.Path, f.FailOn)) {
		return "", f.Err
	}
	style := "expanded:"
	if req.Compressed {
		style = "compressed:"
	}
	return style + req.Source, nil
}

// Requests returns a copy of every compilation request received
func (f *FakeCompiler) Requests() []transform.StylesheetRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]transform.StylesheetRequest(nil), f.requests...)
}

// CompiledPaths returns the source path of every compilation request
func (f *FakeCompiler) CompiledPaths() []string {
	var paths []string
	for _, r := range f.Requests() {
		paths = append(paths, r.Path)
	}
	return paths
}

var (
	_ transform.ScriptMinifier     = (*FakeMinifier)(nil)
	_ transform.MarkupMinifier     = (*FakeMinifier)(nil)
	_ transform.StylesheetCompiler = (*FakeCompiler)(nil)
)
