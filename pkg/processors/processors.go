package processors

import (
	"context"

	"github.com/arthur-debert/assetwatch/pkg/errors"
	"github.com/arthur-debert/assetwatch/pkg/filesystem"
	"github.com/arthur-debert/assetwatch/pkg/logging"
	"github.com/arthur-debert/assetwatch/pkg/transform"
	"github.com/arthur-debert/assetwatch/pkg/types"
	"github.com/rs/zerolog"
)

// Options is the subset of configuration the processors need
type Options struct {
	Header string

	MinifyScript         bool
	MinifyStylesheet     bool
	MinifyStructuredData bool
	MinifyMarkup         bool

	// IncludePaths are searched by stylesheet imports, after the
	// directory of the stylesheet being compiled
	IncludePaths []string
}

// Transforms are the external transforms the processors call
type Transforms struct {
	Script     transform.ScriptMinifier
	Stylesheet transform.StylesheetCompiler
	Markup     transform.MarkupMinifier
}

// Processors runs the per-kind processing of a single file
type Processors struct {
	fs     *filesystem.FS
	opts   Options
	tr     Transforms
	logger zerolog.Logger
}

// New creates the processor set
func New(fs *filesystem.FS, opts Options, tr Transforms) *Processors {
	return &Processors{
		fs:     fs,
		opts:   opts,
		tr:     tr,
		logger: logging.GetLogger("processors"),
	}
}

// Process produces dest from src according to kind. kind must already be
// the effective kind (exclusion applied, pointers resolved).
func (p *Processors) Process(ctx context.Context, kind types.Kind, src, dest string) types.Outcome {
	var err error
	switch kind {
	case types.KindScript:
		err = p.script(src, dest)
	case types.KindStylesheet:
		err = p.stylesheet(ctx, src, dest)
	case types.KindStructuredData:
		err = p.structuredData(src, dest)
	case types.KindMarkup:
		err = p.markup(src, dest)
	case types.KindOpaque:
		err = p.opaque(src, dest)
	default:
		err = errors.Newf(errors.ErrInternal, "no processor for kind %s", kind).WithPath(src)
	}

	if err != nil {
		p.logger.Error().Err(err).
			Str("kind", kind.String()).
			Str("source", src).
			Str("destination", dest).
			Msg("processing failed")
		return types.Failed(kind, src, dest, err)
	}
	return types.Written(kind, src, dest)
}

// apply runs fn over content when enabled
func apply(enabled bool, content string, fn func(string) (string, error)) (string, error) {
	if !enabled {
		return content, nil
	}
	return fn(content)
}
