package editor

// EventKind identifies a controller change.
type EventKind int

const (
	EventLoading EventKind = iota
	EventReady
	EventToggled
	EventEditOpened
	EventEditClosed
	EventSaved
	EventCancelled
)

// String returns the string representation of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventLoading:
		return "loading"
	case EventReady:
		return "ready"
	case EventToggled:
		return "toggled"
	case EventEditOpened:
		return "edit-opened"
	case EventEditClosed:
		return "edit-closed"
	case EventSaved:
		return "saved"
	case EventCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Event describes a change. Index is the affected token, or -1.
type Event struct {
	Kind  EventKind
	Index int
}
