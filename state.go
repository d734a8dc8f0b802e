package desim

import "github.com/comalice/desim/heap"

// SimulationState aggregates everything the engine needs to resume a
// simulation at a point in time: the host's model state, the id counter,
// the event being dispatched (if any), the pending-event queue, and the
// lifecycle phase. It is immutable: every method that "changes" a
// SimulationState returns a new value, sharing whatever substructure (in
// particular, heap.Heap's internal trees) did not change.
type SimulationState[M any, T TimeValue[T]] struct {
	modelState  M
	nextEventID uint64
	current     *Event[M, T]
	events      heap.Heap[Event[M, T]]
	runState    RunState
}

// newSimulationState builds the initial state a Run invocation starts from:
// an empty queue, no current event, and RunState Initializing.
func newSimulationState[M any, T TimeValue[T]](modelState M) SimulationState[M, T] {
	return SimulationState[M, T]{
		modelState: modelState,
		events:     heap.Empty[Event[M, T]](lessEvents[M, T]),
		runState:   Initializing,
	}
}

// ModelState returns the host's opaque model state.
func (s SimulationState[M, T]) ModelState() M { return s.modelState }

// RunState returns the current lifecycle phase.
func (s SimulationState[M, T]) RunState() RunState { return s.runState }

// NextEventID returns the id that will be assigned to the next scheduled
// event.
func (s SimulationState[M, T]) NextEventID() uint64 { return s.nextEventID }

// Current returns the event currently being dispatched, and false before
// the first dispatch of a run.
func (s SimulationState[M, T]) Current() (Event[M, T], bool) {
	if s.current == nil {
		var zero Event[M, T]
		return zero, false
	}
	return *s.current, true
}

// PendingEvents returns the number of events waiting in the queue.
func (s SimulationState[M, T]) PendingEvents() int { return s.events.Len() }

// SimTime returns the current simulation clock: the dueAt of the event
// being dispatched, or T's zero origin before the first dispatch.
func (s SimulationState[M, T]) SimTime() T {
	if s.current == nil {
		var zero T
		return zero.Zero()
	}
	return s.current.DueAt
}

// withModelState returns a copy of s with the model state replaced.
func (s SimulationState[M, T]) withModelState(m M) SimulationState[M, T] {
	s.modelState = m
	return s
}

// withRunState returns a copy of s with the run state replaced.
func (s SimulationState[M, T]) withRunState(rs RunState) SimulationState[M, T] {
	s.runState = rs
	return s
}

// enqueue inserts ev into the event queue and returns the updated state.
// The caller is responsible for having already incremented nextEventID.
func (s SimulationState[M, T]) enqueue(ev Event[M, T]) SimulationState[M, T] {
	s.events = heap.Insert(s.events, ev)
	return s
}

// popMinimum removes and returns the earliest-due event, or ok=false if the
// queue is empty.
func (s SimulationState[M, T]) popMinimum() (ev Event[M, T], rest SimulationState[M, T], ok bool) {
	ev, newHeap, ok := s.events.MinimumRemove()
	if !ok {
		return ev, s, false
	}
	s.events = newHeap
	return ev, s, true
}

// withCurrent returns a copy of s with ev set as the event under dispatch.
func (s SimulationState[M, T]) withCurrent(ev Event[M, T]) SimulationState[M, T] {
	e := ev
	s.current = &e
	return s
}

// allocateEventID returns the id to assign to a newly scheduled event
// together with the state advanced past it, or an ArithmeticOverflowError
// if the 64-bit id space is exhausted.
func (s SimulationState[M, T]) allocateEventID() (uint64, SimulationState[M, T], error) {
	if s.nextEventID == ^uint64(0) {
		return 0, s, &ArithmeticOverflowError{}
	}
	id := s.nextEventID
	s.nextEventID = id + 1
	return id, s, nil
}
