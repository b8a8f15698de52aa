package core

import (
	"context"
	stderrors "errors"
	"io"

	"github.com/arthur-debert/assetwatch/pkg/config"
	"github.com/arthur-debert/assetwatch/pkg/dispatch"
	"github.com/arthur-debert/assetwatch/pkg/filesystem"
	"github.com/arthur-debert/assetwatch/pkg/logging"
	"github.com/arthur-debert/assetwatch/pkg/orchestrator"
	"github.com/arthur-debert/assetwatch/pkg/pathmap"
	"github.com/arthur-debert/assetwatch/pkg/pointer"
	"github.com/arthur-debert/assetwatch/pkg/processors"
	"github.com/arthur-debert/assetwatch/pkg/transform"
	"github.com/arthur-debert/assetwatch/pkg/types"
	"github.com/arthur-debert/assetwatch/pkg/watcher"
)

// Options replaces parts of the default wiring, mostly for tests
type Options struct {
	// FS defaults to the OS filesystem
	FS *filesystem.FS
	// Transforms defaults to tdewolff/minify and Dart Sass
	Transforms *processors.Transforms
	// Watch defaults to the fsnotify watcher
	Watch orchestrator.WatchFactory
	// OnOutcome, when set, also receives every dispatch outcome
	OnOutcome func(types.Outcome)
}

// Pipeline is a fully wired orchestrator plus the resources it owns
type Pipeline struct {
	orch    *orchestrator.Orchestrator
	closers []io.Closer
}

// NewPipeline wires every component from cfg
func NewPipeline(cfg *config.Config, opts Options) (*Pipeline, error) {
	logger := logging.GetLogger("core")

	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}

	mapper, err := pathmap.RootPairs(cfg.Sources, cfg.Destinations)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{}

	var tr processors.Transforms
	if opts.Transforms != nil {
		tr = *opts.Transforms
	} else {
		minifier := transform.NewMinifier()
		sass := transform.NewDartSass(cfg.Stylesheet.Compiler, cfg.Stylesheet.Timeout)
		p.closers = append(p.closers, sass)
		tr = processors.Transforms{Script: minifier, Stylesheet: sass, Markup: minifier}
	}

	proc := processors.New(fs, processors.Options{
		Header:               cfg.Header,
		MinifyScript:         cfg.Minify.Script,
		MinifyStylesheet:     cfg.Minify.Stylesheet,
		MinifyStructuredData: cfg.Minify.StructuredData,
		MinifyMarkup:         cfg.Minify.Markup,
		IncludePaths:         cfg.Stylesheet.IncludePaths,
	}, tr)

	recorder := orchestrator.NewRecorder()
	onOutcome := recorder.Record
	if opts.OnOutcome != nil {
		onOutcome = func(o types.Outcome) {
			recorder.Record(o)
			opts.OnOutcome(o)
		}
	}

	d := dispatch.New(fs, proc, pointer.NewResolver(fs), dispatch.Options{
		Sources:   cfg.Sources,
		Mapper:    mapper,
		OnOutcome: onOutcome,
	})

	watch := opts.Watch
	if watch == nil {
		watch = watchOS
	}

	p.orch = orchestrator.New(fs, d, orchestrator.Options{
		Sources:      cfg.Sources,
		Destinations: cfg.Destinations,
		Watch:        watch,
		Recorder:     recorder,
	})

	logger.Debug().
		Strs("sources", cfg.Sources).
		Strs("destinations", cfg.Destinations).
		Msg("pipeline wired")
	return p, nil
}

func watchOS(roots []string) (orchestrator.ChangeSource, error) {
	w, err := watcher.New(roots)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// Build runs a one-shot build
func (p *Pipeline) Build(ctx context.Context) (orchestrator.Summary, error) {
	return p.orch.Build(ctx)
}

// Watch builds and then follows changes until ctx is cancelled
func (p *Pipeline) Watch(ctx context.Context) error {
	return p.orch.Run(ctx)
}

// State reports the orchestrator state
func (p *Pipeline) State() orchestrator.State {
	return p.orch.State()
}

// Close releases external resources such as the stylesheet compiler
func (p *Pipeline) Close() error {
	var errs []error
	for _, c := range p.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}
