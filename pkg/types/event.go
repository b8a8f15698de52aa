package types

// EventKind distinguishes updates from removals
type EventKind string

const (
	// EventUpdate covers both creation and modification
	EventUpdate EventKind = "update"
	// EventRemove is sent when a source path disappears
	EventRemove EventKind = "remove"
)

// FileEvent is a single entry of the change feed
type FileEvent struct {
	Kind EventKind
	Path string
}

// UpdateEvent is shorthand for an update event on path
func UpdateEvent(path string) FileEvent {
	return FileEvent{Kind: EventUpdate, Path: path}
}

// RemoveEvent is shorthand for a remove event on path
func RemoveEvent(path string) FileEvent {
	return FileEvent{Kind: EventRemove, Path: path}
}

// PointerRecord is a resolved pointer file. It is never persisted.
type PointerRecord struct {
	PointerPath string
	PointerDir  string
	TargetPath  string
}
