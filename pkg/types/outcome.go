package types

// OutcomeStatus is the terminal status of a single dispatch
type OutcomeStatus string

const (
	StatusWritten OutcomeStatus = "written"
	StatusDeleted OutcomeStatus = "deleted"
	StatusSkipped OutcomeStatus = "skipped"
	StatusFailed  OutcomeStatus = "failed"
)

// Outcome is what a dispatch resolved to
type Outcome struct {
	Status      OutcomeStatus
	Event       FileEvent
	Kind        Kind
	Source      string
	Destination string
	Reason      string
	Err         error
}

// Written builds a successful write outcome
func Written(kind Kind, source, destination string) Outcome {
	return Outcome{Status: StatusWritten, Kind: kind, Source: source, Destination: destination}
}

// Deleted builds a successful delete outcome
func Deleted(kind Kind, source, destination string) Outcome {
	return Outcome{Status: StatusDeleted, Kind: kind, Source: source, Destination: destination}
}

// Skipped builds an outcome for a dispatch that intentionally did nothing
func Skipped(kind Kind, source, reason string) Outcome {
	return Outcome{Status: StatusSkipped, Kind: kind, Source: source, Reason: reason}
}

// Failed builds a failure outcome; the destination was not touched
func Failed(kind Kind, source, destination string, err error) Outcome {
	o := Outcome{Status: StatusFailed, Kind: kind, Source: source, Destination: destination, Err: err}
	if err != nil {
		o.Reason = err.Error()
	}
	return o
}

// IsFailure reports whether the outcome is a failure
func (o Outcome) IsFailure() bool {
	return o.Status == StatusFailed
}
