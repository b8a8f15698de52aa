// Package orchestrator drives a build: wipe the destinations, dispatch
// every existing source file, then either stop (one-shot build) or keep
// dispatching change events until cancelled (watch mode).
package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/arthur-debert/assetwatch/pkg/cleaner"
	"github.com/arthur-debert/assetwatch/pkg/errors"
	"github.com/arthur-debert/assetwatch/pkg/filesystem"
	"github.com/arthur-debert/assetwatch/pkg/logging"
	"github.com/arthur-debert/assetwatch/pkg/scanner"
	"github.com/arthur-debert/assetwatch/pkg/types"
	"github.com/rs/zerolog"
)

// Dispatcher is the single dispatch path events are routed through
type Dispatcher interface {
	Dispatch(ctx context.Context, ev types.FileEvent)
	Wait()
}

// ChangeSource is a live feed of file events
type ChangeSource interface {
	Events() <-chan types.FileEvent
	Close() error
}

// WatchFactory starts a ChangeSource over the given roots
type WatchFactory func(roots []string) (ChangeSource, error)

// Options configures an Orchestrator
type Options struct {
	Sources      []string
	Destinations []string
	// Watch is required by Run only
	Watch WatchFactory
	// Recorder, when set, must be receiving the dispatcher's outcomes; its
	// tallies are reported by Build. Run keeps only its counts.
	Recorder *Recorder
}

// Orchestrator runs the clean, scan, watch lifecycle
type Orchestrator struct {
	fs         *filesystem.FS
	dispatcher Dispatcher
	opts       Options
	logger     zerolog.Logger

	mu      sync.Mutex
	state   State
	started bool
}

// New creates an idle Orchestrator
func New(fs *filesystem.FS, dispatcher Dispatcher, opts Options) *Orchestrator {
	return &Orchestrator{
		fs:         fs,
		dispatcher: dispatcher,
		opts:       opts,
		logger:     logging.GetLogger("orchestrator"),
	}
}

// State returns the current lifecycle state
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) begin() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.started {
		return errors.New(errors.ErrInternal, "orchestrator already started")
	}
	o.started = true
	return nil
}

func (o *Orchestrator) transition(to State) {
	o.mu.Lock()
	from := o.state
	o.state = to
	o.mu.Unlock()

	o.logger.Info().Str("from", from.String()).Str("to", to.String()).Msg("state transition")
}

// prepare wipes the destinations and dispatches every existing file. The
// dispatches themselves are not awaited.
func (o *Orchestrator) prepare(ctx context.Context, s *Summary) error {
	o.transition(StateCleaning)
	report := cleaner.Clear(ctx, o.fs, o.opts.Destinations)
	s.Cleared, s.CleanFailures = report.Cleared, report.Failures

	o.transition(StateScanning)
	n, err := scanner.Scan(ctx, o.fs, o.opts.Sources, scanner.DefaultFilter, func(ev types.FileEvent) {
		o.dispatcher.Dispatch(ctx, ev)
	})
	s.Scanned = n
	if err != nil {
		return errors.Wrap(err, errors.ErrIOFailure, "full scan failed")
	}
	o.logger.Info().Int("files", n).Msg("full scan dispatched")
	return nil
}

// Build runs a one-shot build and waits for every dispatch to finish
func (o *Orchestrator) Build(ctx context.Context) (Summary, error) {
	if err := o.begin(); err != nil {
		return Summary{}, err
	}
	started := time.Now()

	var s Summary
	err := o.prepare(ctx, &s)
	o.dispatcher.Wait()

	if o.opts.Recorder != nil {
		o.opts.Recorder.fill(&s)
	}
	s.Duration = time.Since(started)
	return s, err
}

// Run builds, then dispatches change events until ctx is cancelled. On
// return the change source is closed and in-flight dispatches have
// finished.
func (o *Orchestrator) Run(ctx context.Context) error {
	if o.opts.Watch == nil {
		return errors.New(errors.ErrInvalidInput, "watch mode requires a change source")
	}
	if err := o.begin(); err != nil {
		return err
	}
	if o.opts.Recorder != nil {
		o.opts.Recorder.stopKeepingFailures()
	}

	// the feed starts before the scan so no change in between is lost
	source, err := o.opts.Watch(o.opts.Sources)
	if err != nil {
		return err
	}
	defer o.dispatcher.Wait()
	defer source.Close()

	var s Summary
	if err := o.prepare(ctx, &s); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	o.transition(StateWatching)
	for {
		select {
		case <-ctx.Done():
			o.logger.Info().Msg("stopping watch")
			return nil
		case ev, ok := <-source.Events():
			if !ok {
				return errors.New(errors.ErrInternal, "change feed closed unexpectedly")
			}
			o.dispatcher.Dispatch(ctx, ev)
		}
	}
}
