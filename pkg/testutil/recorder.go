package testutil

import (
	"sync"

	"github.com/arthur-debert/assetwatch/pkg/types"
)

// OutcomeRecorder collects outcomes from concurrent dispatches
type OutcomeRecorder struct {
	mu       sync.Mutex
	outcomes []types.Outcome
}

// Record appends an outcome; it matches the dispatcher's outcome callback
func (r *OutcomeRecorder) Record(o types.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, o)
}

// Outcomes returns a copy of every recorded outcome
func (r *OutcomeRecorder) Outcomes() []types.Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]types.Outcome(nil), r.outcomes...)
}

// WithStatus returns the recorded outcomes having status
func (r *OutcomeRecorder) WithStatus(status types.OutcomeStatus) []types.Outcome {
	var matched []types.Outcome
	for _, o := range r.Outcomes() {
		if o.Status == status {
			matched = append(matched, o)
		}
	}
	return matched
}

// ForSource returns the recorded outcomes whose source is path
func (r *OutcomeRecorder) ForSource(path string) []types.Outcome {
	var matched []types.Outcome
	for _, o := range r.Outcomes() {
		if o.Source == path {
			matched = append(matched, o)
		}
	}
	return matched
}
