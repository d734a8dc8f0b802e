package desim

import (
	"time"

	"github.com/google/uuid"
)

// RunObserver is the engine's one pluggable extension point: a set of hooks
// the run loop invokes around, never inside, a dispatched transition.
// Implementations may log, record metrics, or emit trace spans, but must
// not be relied upon to run exactly once or in any particular wall-clock
// timing relative to other observers; they exist purely for the host to
// observe a run, not to participate in it.
//
// All methods must return quickly and must not panic; a panicking observer
// will abort the run loop, since observer calls happen on Run's own
// goroutine.
type RunObserver[M any, T TimeValue[T]] interface {
	// OnEventScheduled fires for ev once the step that scheduled it (the
	// initialization step or one event's dispatch) has finished. queueDepth
	// is the number of events pending at the end of that step, so every
	// event scheduled by the same step reports the same queueDepth.
	OnEventScheduled(runID uuid.UUID, ev Event[M, T], queueDepth int)
	// OnDispatch fires after an event's action has been dispatched, with
	// the wall-clock time the dispatch took, its result, and the number of
	// events still pending afterward. took is a diagnostic observation
	// only; it is never fed back into simulated time.
	OnDispatch(runID uuid.UUID, ev Event[M, T], took time.Duration, err error, queueDepth int)
	// OnRunStateChange fires whenever RunState transitions.
	OnRunStateChange(runID uuid.UUID, from, to RunState)
	// OnWarmUpCompleted fires when the warm-up period ends.
	OnWarmUpCompleted(runID uuid.UUID, at T)
	// OnSnapCompleted fires when a snap window ends, with the number of
	// snaps still remaining after this one.
	OnSnapCompleted(runID uuid.UUID, at T, remaining int)
}

// NullObserver implements RunObserver with no-ops. It is the default when
// Run is called without WithObserver.
type NullObserver[M any, T TimeValue[T]] struct{}

func (NullObserver[M, T]) OnEventScheduled(uuid.UUID, Event[M, T], int)                 {}
func (NullObserver[M, T]) OnDispatch(uuid.UUID, Event[M, T], time.Duration, error, int) {}
func (NullObserver[M, T]) OnRunStateChange(uuid.UUID, RunState, RunState)               {}
func (NullObserver[M, T]) OnWarmUpCompleted(uuid.UUID, T)                               {}
func (NullObserver[M, T]) OnSnapCompleted(uuid.UUID, T, int)                            {}

// MultiObserver fans every RunObserver call out to each observer in
// Observers, in order, composing several independent observers (e.g. a
// metrics adapter and a tracing adapter) without requiring the host to
// write its own fan-out wrapper.
type MultiObserver[M any, T TimeValue[T]] struct {
	Observers []RunObserver[M, T]
}

func (m MultiObserver[M, T]) OnEventScheduled(runID uuid.UUID, ev Event[M, T], queueDepth int) {
	for _, o := range m.Observers {
		o.OnEventScheduled(runID, ev, queueDepth)
	}
}

func (m MultiObserver[M, T]) OnDispatch(runID uuid.UUID, ev Event[M, T], took time.Duration, err error, queueDepth int) {
	for _, o := range m.Observers {
		o.OnDispatch(runID, ev, took, err, queueDepth)
	}
}

func (m MultiObserver[M, T]) OnRunStateChange(runID uuid.UUID, from, to RunState) {
	for _, o := range m.Observers {
		o.OnRunStateChange(runID, from, to)
	}
}

func (m MultiObserver[M, T]) OnWarmUpCompleted(runID uuid.UUID, at T) {
	for _, o := range m.Observers {
		o.OnWarmUpCompleted(runID, at)
	}
}

func (m MultiObserver[M, T]) OnSnapCompleted(runID uuid.UUID, at T, remaining int) {
	for _, o := range m.Observers {
		o.OnSnapCompleted(runID, at, remaining)
	}
}
