package orchestrator

import (
	"sync"
	"time"

	"github.com/arthur-debert/assetwatch/pkg/types"
)

// Summary is the result of a one-shot build
type Summary struct {
	Cleared       int
	CleanFailures int
	Scanned       int

	Written  int
	Deleted  int
	Skipped  int
	Failed   int
	Failures []types.Outcome

	Duration time.Duration
}

// OK reports whether every dispatch and every destination wipe succeeded
func (s Summary) OK() bool {
	return s.Failed == 0 && s.CleanFailures == 0
}

// Recorder tallies dispatch outcomes. Record is safe for concurrent use
// and is meant to be the dispatcher's outcome callback.
type Recorder struct {
	mu       sync.Mutex
	counts   map[types.OutcomeStatus]int
	failures []types.Outcome
	// a long-running watch only needs the counts
	countOnly bool
}

// NewRecorder creates an empty Recorder
func NewRecorder() *Recorder {
	return &Recorder{counts: make(map[types.OutcomeStatus]int)}
}

// Record tallies one outcome
func (r *Recorder) Record(o types.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[o.Status]++
	if o.IsFailure() && !r.countOnly {
		r.failures = append(r.failures, o)
	}
}

// fill copies the tallies into s
func (r *Recorder) fill(s *Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.Written = r.counts[types.StatusWritten]
	s.Deleted = r.counts[types.StatusDeleted]
	s.Skipped = r.counts[types.StatusSkipped]
	s.Failed = r.counts[types.StatusFailed]
	s.Failures = append([]types.Outcome(nil), r.failures...)
}

// stopKeepingFailures drops the failures kept so far and keeps only counts
// from now on
func (r *Recorder) stopKeepingFailures() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.countOnly = true
	r.failures = nil
}
