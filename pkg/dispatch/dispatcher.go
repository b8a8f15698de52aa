package dispatch

import (
	"context"
	"sync"

	"github.com/arthur-debert/assetwatch/pkg/classify"
	"github.com/arthur-debert/assetwatch/pkg/filesystem"
	"github.com/arthur-debert/assetwatch/pkg/logging"
	"github.com/arthur-debert/assetwatch/pkg/pathmap"
	"github.com/arthur-debert/assetwatch/pkg/pointer"
	"github.com/arthur-debert/assetwatch/pkg/scanner"
	"github.com/arthur-debert/assetwatch/pkg/types"
	"github.com/rs/zerolog"
)

// ReasonPartial is the skip reason recorded for partial stylesheets
const ReasonPartial = "partial"

// Processor writes one destination from one source
type Processor interface {
	Process(ctx context.Context, kind types.Kind, src, dest string) types.Outcome
}

// Options configures a Dispatcher
type Options struct {
	// Sources are rescanned when a partial stylesheet changes
	Sources []string
	Mapper  pathmap.Mapper
	// OnOutcome, when set, receives every outcome. It may be called from
	// several goroutines at once.
	OnOutcome func(types.Outcome)
}

// Dispatcher routes file events to processors
type Dispatcher struct {
	fs        *filesystem.FS
	processor Processor
	resolver  *pointer.Resolver
	sources   []string
	mapper    pathmap.Mapper
	onOutcome func(types.Outcome)

	wg     sync.WaitGroup
	queue  *keyedQueue
	logger zerolog.Logger
}

// New creates a Dispatcher
func New(fs *filesystem.FS, processor Processor, resolver *pointer.Resolver, opts Options) *Dispatcher {
	d := &Dispatcher{
		fs:        fs,
		processor: processor,
		resolver:  resolver,
		sources:   opts.Sources,
		mapper:    opts.Mapper,
		onOutcome: opts.OnOutcome,
		logger:    logging.GetLogger("dispatch"),
	}
	d.queue = newKeyedQueue(&d.wg)
	return d
}

// Wait blocks until every queued dispatch, including fan-out rescans, has
// finished. Callers must stop dispatching new events first.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Dispatch routes ev. Classification, pointer resolution and destination
// mapping happen before returning; processing happens asynchronously.
// Started dispatches are not cancelled when ctx is.
func (d *Dispatcher) Dispatch(ctx context.Context, ev types.FileEvent) {
	ctx = context.WithoutCancel(ctx)
	cls := classify.Classify(ev.Path)

	d.logger.Debug().
		Str("event", string(ev.Kind)).
		Str("path", ev.Path).
		Str("kind", cls.Kind.String()).
		Bool("excluded", cls.Excluded).
		Msg("dispatching")

	if cls.Kind == types.KindPointer {
		d.dispatchPointer(ctx, ev)
		return
	}

	kind := cls.Effective()
	if kind == types.KindStylesheet && classify.IsPartial(ev.Path) {
		d.report(ev, types.Skipped(kind, ev.Path, ReasonPartial))
		d.fanOut(ctx, ev.Path)
		return
	}

	d.route(ctx, ev, kind, ev.Path, ev.Path)
}

// dispatchPointer swaps the pointer for its target. The destination is
// mapped from the pointer's alias, the content read from the target, and
// the kind taken from the target for updates and removals alike.
func (d *Dispatcher) dispatchPointer(ctx context.Context, ev types.FileEvent) {
	var rec types.PointerRecord
	if ev.Kind == types.EventRemove {
		rec = d.resolver.Forget(ev.Path)
	} else {
		var err error
		if rec, err = d.resolver.Resolve(ev.Path); err != nil {
			d.report(ev, types.Failed(types.KindPointer, ev.Path, "", err))
			return
		}
	}

	kind := classify.Classify(rec.TargetPath).Effective()
	if kind == types.KindStylesheet && classify.IsPartial(rec.TargetPath) {
		d.report(ev, types.Skipped(kind, rec.TargetPath, ReasonPartial))
		d.fanOut(ctx, ev.Path)
		return
	}

	alias := pointer.Alias(rec)
	d.logger.Debug().
		Str("pointer", ev.Path).
		Str("target", rec.TargetPath).
		Str("alias", alias).
		Msg("pointer redirected")
	d.route(ctx, ev, kind, rec.TargetPath, alias)
}

// route maps logical to its destination and queues the write or delete.
// src is the file whose content is read, logical the path that is mapped.
func (d *Dispatcher) route(ctx context.Context, ev types.FileEvent, kind types.Kind, src, logical string) {
	mapped, err := d.mapper(logical)
	if err != nil {
		d.report(ev, types.Failed(kind, src, "", err))
		return
	}
	dest := classify.DestinationFor(kind, mapped)

	switch ev.Kind {
	case types.EventRemove:
		d.queue.enqueue(dest, func() {
			d.report(ev, d.remove(kind, ev.Path, dest))
		})
	default:
		d.queue.enqueue(dest, func() {
			d.report(ev, d.processor.Process(ctx, kind, src, dest))
		})
	}
}

func (d *Dispatcher) remove(kind types.Kind, src, dest string) types.Outcome {
	if err := d.fs.Remove(dest); err != nil {
		return types.Failed(kind, src, dest, err)
	}
	return types.Deleted(kind, src, dest)
}

// fanOut re-dispatches every non-partial stylesheet across all roots,
// along with the pointers that name one
func (d *Dispatcher) fanOut(ctx context.Context, partial string) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		n, err := scanner.Scan(ctx, d.fs, d.sources, d.compilesOnItsOwn, func(ev types.FileEvent) {
			d.Dispatch(ctx, ev)
		})
		if err != nil {
			d.logger.Error().Err(err).Str("partial", partial).Msg("stylesheet rescan failed")
			return
		}
		d.logger.Info().Str("partial", partial).Int("stylesheets", n).Msg("partial changed, stylesheets rebuilt")
	}()
}

// compilesOnItsOwn accepts standalone stylesheets and pointers whose target
// is one. Pointers to partials are left out, they would fan out again.
func (d *Dispatcher) compilesOnItsOwn(path string) bool {
	if scanner.StylesheetFilter(path) {
		return true
	}
	if classify.Classify(path).Kind != types.KindPointer {
		return false
	}
	target, err := d.resolver.Target(path)
	if err != nil {
		return false
	}
	return classify.Classify(target).Effective() == types.KindStylesheet && !classify.IsPartial(target)
}

func (d *Dispatcher) report(ev types.FileEvent, out types.Outcome) {
	out.Event = ev

	var e *zerolog.Event
	switch out.Status {
	case types.StatusFailed:
		e = d.logger.Error().Err(out.Err)
	case types.StatusSkipped:
		e = d.logger.Debug().Str("reason", out.Reason)
	default:
		e = d.logger.Info()
	}
	e.Str("event", string(ev.Kind)).
		Str("path", ev.Path).
		Str("kind", out.Kind.String()).
		Str("destination", out.Destination).
		Str("outcome", string(out.Status)).
		Msg("dispatch finished")

	if d.onOutcome != nil {
		d.onOutcome(out)
	}
}
