package types

// Kind is the closed set of file classifications the pipeline understands
type Kind int

const (
	// KindOpaque files are copied byte for byte
	KindOpaque Kind = iota
	// KindScript files get the strict-mode marker and header, optionally minified
	KindScript
	// KindStylesheet files are compiled to CSS
	KindStylesheet
	// KindStructuredData files are re-serialized JSON
	KindStructuredData
	// KindMarkup files are optionally minified HTML
	KindMarkup
	// KindPointer files redirect to another source file
	KindPointer
)

var kindNames = map[Kind]string{
	KindOpaque:         "opaque",
	KindScript:         "script",
	KindStylesheet:     "stylesheet",
	KindStructuredData: "structured-data",
	KindMarkup:         "markup",
	KindPointer:        "pointer",
}

// String returns the lowercase name of the kind
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Transformable reports whether files of this kind go through an external
// transform (and are therefore subject to the exclusion rule)
func (k Kind) Transformable() bool {
	switch k {
	case KindScript, KindStylesheet, KindStructuredData, KindMarkup:
		return true
	default:
		return false
	}
}

// Classification is the result of classifying a single path
type Classification struct {
	Kind Kind
	// Excluded is true for vendored/plugin content
	Excluded bool
}

// Effective returns the kind that actually drives processing. Excluded
// transformable files are copied verbatim; pointers always redirect.
func (c Classification) Effective() Kind {
	if c.Excluded && c.Kind.Transformable() {
		return KindOpaque
	}
	return c.Kind
}
