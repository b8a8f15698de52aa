package transform

import "context"

// ScriptMinifier minifies script source
type ScriptMinifier interface {
	MinifyScript(source string) (string, error)
}

// MarkupMinifier minifies markup, keeping attribute quoting as authored
type MarkupMinifier interface {
	MinifyMarkup(source string) (string, error)
}

// StylesheetRequest is a single stylesheet compilation
type StylesheetRequest struct {
	// Path of the stylesheet being compiled, used for diagnostics and
	// relative imports
	Path         string
	Source       string
	IncludePaths []string
	// Compressed selects compact output instead of expanded
	Compressed bool
}

// StylesheetCompiler compiles stylesheet source to CSS
type StylesheetCompiler interface {
	CompileStylesheet(ctx context.Context, req StylesheetRequest) (string, error)
}
