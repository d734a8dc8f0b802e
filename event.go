package desim

// Event is a scheduled (dueAt, priority, id, action) tuple: the heap
// element the scheduler orders on. Once constructed an Event is never
// mutated; rescheduling always produces a new Event with a new id.
type Event[M any, T TimeValue[T]] struct {
	// ID is a unique, monotonically increasing creation-order identifier.
	// Two distinct events must never share an id; doing so is a
	// programming error (see CompareEvents).
	ID uint64
	// DueAt is the absolute simulation time at which Action runs.
	DueAt T
	// Priority orders events due at the same instant; smaller runs first.
	Priority int32
	// Action is the payload dispatched when this event is selected.
	Action Action[M, T]
}

// CompareEvents implements the engine's total order on events: dueAt
// ascending, then priority ascending, then id ascending. It returns <0, 0,
// or >0 the way a comparator is conventionally expected to. Two distinct
// events (different ids) never compare equal. Id uniqueness is what
// guarantees totality, so a caller that detects a zero result with
// differing ids has violated the id-uniqueness invariant.
func CompareEvents[M any, T TimeValue[T]](a, b Event[M, T]) int {
	if c := a.DueAt.Compare(b.DueAt); c != 0 {
		return c
	}
	if a.Priority != b.Priority {
		if a.Priority < b.Priority {
			return -1
		}
		return 1
	}
	switch {
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	default:
		return 0
	}
}

// lessEvents adapts CompareEvents to the heap package's LessFunc shape.
func lessEvents[M any, T TimeValue[T]](a, b Event[M, T]) bool {
	return CompareEvents(a, b) < 0
}
