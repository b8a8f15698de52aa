package transform

import (
	"context"
	"sync"
	"time"

	"github.com/arthur-debert/assetwatch/pkg/errors"
	"github.com/arthur-debert/assetwatch/pkg/logging"
	"github.com/bep/godartsass/v2"
	"github.com/rs/zerolog"
)

// noTimeout stands in for "no timeout"; godartsass replaces a zero timeout
// with its own default
const noTimeout = 365 * 24 * time.Hour

// DartSass implements StylesheetCompiler on top of the Dart Sass embedded
// protocol. The compiler process is started on first use.
type DartSass struct {
	options godartsass.Options
	logger  zerolog.Logger

	once       sync.Once
	transpiler *godartsass.Transpiler
	startErr   error
}

// NewDartSass creates a compiler that runs the given Dart Sass binary (empty
// means "sass" from PATH). A zero timeout means no timeout.
func NewDartSass(binary string, timeout time.Duration) *DartSass {
	logger := logging.GetLogger("transform.sass")
	if timeout <= 0 {
		timeout = noTimeout
	}
	return &DartSass{
		options: godartsass.Options{
			DartSassEmbeddedFilename: binary,
			Timeout:                  timeout,
			LogEventHandler: func(e godartsass.LogEvent) {
				logger.Warn().Str("sass", e.Message).Msg("stylesheet compiler warning")
			},
		},
		logger: logger,
	}
}

func (d *DartSass) start() (*godartsass.Transpiler, *errors.PipelineError) {
	d.once.Do(func() {
		d.logger.Debug().Str("binary", d.options.DartSassEmbeddedFilename).Msg("starting stylesheet compiler")
		d.transpiler, d.startErr = godartsass.Start(d.options)
	})
	if d.startErr != nil {
		return nil, errors.Wrap(d.startErr, errors.ErrTransformFailure, "cannot start stylesheet compiler")
	}
	return d.transpiler, nil
}

// CompileStylesheet implements StylesheetCompiler
func (d *DartSass) CompileStylesheet(ctx context.Context, req StylesheetRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Wrap(err, errors.ErrTransformFailure, "stylesheet compilation cancelled").WithPath(req.Path)
	}

	t, err := d.start()
	if err != nil {
		return "", err.WithPath(req.Path)
	}

	style := godartsass.OutputStyleExpanded
	if req.Compressed {
		style = godartsass.OutputStyleCompressed
	}

	result, execErr := t.Execute(godartsass.Args{
		Source:       req.Source,
		URL:          "file://" + req.Path,
		SourceSyntax: godartsass.SourceSyntaxSCSS,
		OutputStyle:  style,
		IncludePaths: req.IncludePaths,
	})
	if execErr != nil {
		return "", errors.Wrap(execErr, errors.ErrTransformFailure, "stylesheet compilation failed").WithPath(req.Path)
	}
	return result.CSS, nil
}

// Close stops the compiler process if it was started
func (d *DartSass) Close() error {
	if d.transpiler == nil {
		return nil
	}
	return d.transpiler.Close()
}
