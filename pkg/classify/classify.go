package classify

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/assetwatch/pkg/types"
)

const (
	// ExcludedMarker marks vendored/plugin content anywhere in a path
	ExcludedMarker = "plugin"
	// PartialPrefix marks stylesheets that are only valid as includes
	PartialPrefix = "_"
	// PointerExt is the extension of pointer files
	PointerExt = ".pntr"
	// CompiledStylesheetExt is the extension written for compiled stylesheets
	CompiledStylesheetExt = ".css"
)

var kindsByExt = map[string]types.Kind{
	".js":      types.KindScript,
	".scss":    types.KindStylesheet,
	".json":    types.KindStructuredData,
	".html":    types.KindMarkup,
	PointerExt: types.KindPointer,
}

// Classify returns the classification of path
func Classify(path string) types.Classification {
	kind, ok := kindsByExt[strings.ToLower(filepath.Ext(path))]
	if !ok {
		kind = types.KindOpaque
	}
	return types.Classification{
		Kind:     kind,
		Excluded: IsExcluded(path),
	}
}

// IsExcluded reports whether path lives under vendored/plugin content
func IsExcluded(path string) bool {
	return strings.Contains(strings.ToLower(path), ExcludedMarker)
}

// IsStylesheet reports whether path has the stylesheet source extension
func IsStylesheet(path string) bool {
	return Classify(path).Kind == types.KindStylesheet
}

// IsPartial reports whether path is a partial stylesheet
func IsPartial(path string) bool {
	return IsStylesheet(path) && strings.HasPrefix(filepath.Base(path), PartialPrefix)
}

// CompiledStylesheetPath swaps the extension of a mapped stylesheet path
// for the compiled output extension
func CompiledStylesheetPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + CompiledStylesheetExt
}

// DestinationFor returns the path a file of the given effective kind is
// written to, given its mapped destination
func DestinationFor(kind types.Kind, mapped string) string {
	if kind == types.KindStylesheet {
		return CompiledStylesheetPath(mapped)
	}
	return mapped
}
