// Package watcher turns filesystem notifications under the source roots
// into pipeline file events.
//
// Watches are recursive: every directory below each root is watched, and
// directories created later are added as they appear. Files already inside
// a newly created directory are reported as updates, since their own create
// notifications may have fired before the directory was watched.
package watcher

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/arthur-debert/assetwatch/pkg/errors"
	"github.com/arthur-debert/assetwatch/pkg/logging"
	"github.com/arthur-debert/assetwatch/pkg/types"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const eventBuffer = 64

// Watcher is a recursive watcher over a set of roots
type Watcher struct {
	fw     *fsnotify.Watcher
	events chan types.FileEvent
	logger zerolog.Logger

	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

// New starts watching roots. Missing roots are logged and skipped.
func New(roots []string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrIOFailure, "cannot create filesystem watcher")
	}

	w := &Watcher{
		fw:      fw,
		events:  make(chan types.FileEvent, eventBuffer),
		logger:  logging.GetLogger("watcher"),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}

	for _, root := range roots {
		info, statErr := os.Stat(root)
		if statErr != nil || !info.IsDir() {
			w.logger.Warn().Str("root", root).Msg("source root missing, not watched")
			continue
		}
		if err := w.addTree(root, false); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	go w.run()
	return w, nil
}

// Events returns the event feed. It is closed after Close.
func (w *Watcher) Events() <-chan types.FileEvent {
	return w.events
}

// Close stops watching and waits for the event loop to exit
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fw.Close()
		<-w.stopped
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.stopped)
	defer close(w.events)

	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.logger.Error().Err(err).Msg("watcher error")
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	fe, ok := Translate(ev)
	if !ok {
		return
	}

	if fe.Kind == types.EventUpdate && ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.addTree(ev.Name, true); err != nil {
				w.logger.Error().Err(err).Str("path", ev.Name).Msg("cannot watch new directory")
			}
			return
		}
	}

	w.logger.Trace().Str("op", ev.Op.String()).Str("path", ev.Name).Msg("change detected")
	w.send(fe)
}

// addTree watches root and every directory below it. With emitFiles set it
// also reports every file found as an update.
func (w *Watcher) addTree(root string, emitFiles bool) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn().Err(err).Str("path", path).Msg("cannot walk directory")
			return nil
		}
		if !d.IsDir() {
			if emitFiles {
				w.send(types.UpdateEvent(path))
			}
			return nil
		}
		if err := w.fw.Add(path); err != nil {
			return errors.Wrap(err, errors.ErrIOFailure, "cannot watch directory").WithPath(path)
		}
		w.logger.Debug().Str("path", path).Msg("watching directory")
		return nil
	})
}

func (w *Watcher) send(ev types.FileEvent) {
	select {
	case w.events <- ev:
	case <-w.done:
	}
}

// Translate maps a notification to a pipeline event. Create and write
// become updates, remove and rename become removes, anything else is
// ignored.
func Translate(ev fsnotify.Event) (types.FileEvent, bool) {
	switch {
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		return types.RemoveEvent(ev.Name), true
	case ev.Has(fsnotify.Create), ev.Has(fsnotify.Write):
		return types.UpdateEvent(ev.Name), true
	default:
		return types.FileEvent{}, false
	}
}
