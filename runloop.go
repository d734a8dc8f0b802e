// Package desim implements a deterministic, immutable discrete-event
// simulation engine: a priority queue of (time, priority, id)-ordered
// events dispatched one at a time against host-supplied model state, with
// a fixed warm-up-then-snap lifecycle (Initializing -> Executing ->
// {Completed, Terminated}) built on top of the same scheduling primitive
// host actions use.
//
// Everything that changes state does so by returning a new value. Nothing
// is locked, channeled, or mutated in place. A SimulationState from any
// point in a run remains valid and inspectable after the run has moved
// past it, since the persistent heap in package heap never mutates nodes
// reachable from an older version.
package desim

import (
	"time"

	"github.com/comalice/desim/heap"
	"github.com/google/uuid"
)

// Option configures a Run invocation's optional, side-effecting
// instrumentation. When no Option is supplied, Run uses a NullObserver with
// scheduled-event tracking off, so the default path skips the
// scheduled-event bookkeeping entirely.
type Option[M any, T TimeValue[T]] func(*runConfig[M, T])

type runConfig[M any, T TimeValue[T]] struct {
	observer       RunObserver[M, T]
	trackScheduled bool
}

// WithObserver attaches o to the run. Attaching any observer enables the
// (modest) extra bookkeeping Run does to report every event an action
// schedules, diffed from the id range the scheduling step consumed.
func WithObserver[M any, T TimeValue[T]](o RunObserver[M, T]) Option[M, T] {
	return func(c *runConfig[M, T]) {
		c.observer = o
		c.trackScheduled = true
	}
}

func (c runConfig[M, T]) observeScheduled(runID uuid.UUID, before uint64, s SimulationState[M, T]) {
	if !c.trackScheduled {
		return
	}
	after := s.NextEventID()
	if after <= before {
		return
	}
	depth := s.PendingEvents()
	for _, ev := range heap.Slice(s.events) {
		if ev.ID >= before && ev.ID < after {
			c.observer.OnEventScheduled(runID, ev, depth)
		}
	}
}

func (c runConfig[M, T]) observeRunStateChange(runID uuid.UUID, from, to RunState) {
	if from != to {
		c.observer.OnRunStateChange(runID, from, to)
	}
}

// Run executes a full simulation: initialize (schedule the warm-up event,
// run the host's initialization action, transition to Executing), then
// dispatch events until the run state can no longer iterate or an action
// fails.
//
// numSnaps must be >= 1; violating that is a programming error and panics
// rather than returning an error.
//
// The returned error follows this shape:
//   - nil: the final snap completed, RunState is Completed.
//   - an error wrapping ErrOutOfEvents: the queue emptied before the last
//     snap fired. RunState is Terminated. See OutOfEventsError's doc
//     comment and DESIGN.md's Open Question note.
//   - an error wrapping ErrSchedule: some action tried to schedule while
//     not permitted.
//   - an error wrapping ErrOverflow: the event-id counter overflowed.
func Run[M any, T TimeValue[T]](
	initialModelState M,
	warmUpPeriod, snapLength T,
	numSnaps int,
	initialization Action[M, T],
	opts ...Option[M, T],
) (SimulationState[M, T], error) {
	if numSnaps < 1 {
		panic("desim: numSnaps must be >= 1")
	}

	cfg := runConfig[M, T]{observer: NullObserver[M, T]{}}
	for _, opt := range opts {
		opt(&cfg)
	}
	runID := uuid.New()

	s := newSimulationState[M, T](initialModelState)

	s, err := initializeRun(s, runID, cfg, warmUpPeriod, snapLength, numSnaps, initialization)
	if err != nil {
		return s, err
	}
	return remainingEvents(s, runID, cfg)
}

// initializeRun schedules the warm-up event, runs the host's
// initialization action, then transitions to Executing. The three steps run
// through TakeUntilFailure so the first failure short-circuits the rest.
func initializeRun[M any, T TimeValue[T]](
	s SimulationState[M, T],
	runID uuid.UUID,
	cfg runConfig[M, T],
	warmUpPeriod, snapLength T,
	numSnaps int,
	initialization Action[M, T],
) (SimulationState[M, T], error) {
	scheduleWarmUp := At[M, T](warmUpPeriod, MaxPriority)(newEndWarmUpAction[M, T](snapLength, numSnaps))

	steps := []StateTransition[SimulationState[M, T], error]{
		StateTransition[SimulationState[M, T], error](scheduleWarmUp),
		StateTransition[SimulationState[M, T], error](initialization.Dispatch()),
		func(st SimulationState[M, T]) (SimulationState[M, T], error) {
			return st.withRunState(Executing), nil
		},
	}

	before := s.NextEventID()
	oldRS := s.RunState()
	s2, err := TakeUntilFailure(s, steps)
	cfg.observeScheduled(runID, before, s2)
	cfg.observeRunStateChange(runID, oldRS, s2.RunState())
	return s2, err
}

// updateCurrent selects the next due event as current, or fails if
// iteration is not permitted or the queue is empty.
func updateCurrent[M any, T TimeValue[T]](s SimulationState[M, T]) (SimulationState[M, T], error) {
	if !s.runState.CanIterate() {
		return s, &EventIterationStateError{RunState: s.runState}
	}
	ev, s2, ok := s.popMinimum()
	if !ok {
		return s2.withRunState(Terminated), &OutOfEventsError{}
	}
	return s2.withCurrent(ev), nil
}

// dispatchCurrent runs the current event's action against the state.
func dispatchCurrent[M any, T TimeValue[T]](s SimulationState[M, T]) (SimulationState[M, T], error) {
	cur, ok := s.Current()
	if !ok {
		return s, &EventIterationStateError{RunState: s.runState}
	}
	return cur.Action.Dispatch()(s)
}

// iterate runs one update-current/dispatch-current cycle, firing observer
// hooks around (not inside) each pure step.
func iterate[M any, T TimeValue[T]](s SimulationState[M, T], runID uuid.UUID, cfg runConfig[M, T]) (SimulationState[M, T], error) {
	oldRS := s.RunState()

	s1, err := updateCurrent(s)
	if err != nil {
		cfg.observeRunStateChange(runID, oldRS, s1.RunState())
		return s1, err
	}

	cur, _ := s1.Current()
	before := s1.NextEventID()
	start := time.Now()
	s2, dispatchErr := dispatchCurrent(s1)
	took := time.Since(start)

	cfg.observer.OnDispatch(runID, cur, took, dispatchErr, s2.PendingEvents())
	cfg.observeScheduled(runID, before, s2)

	if dispatchErr == nil {
		switch a := cur.Action.(type) {
		case endWarmUpAction[M, T]:
			cfg.observer.OnWarmUpCompleted(runID, cur.DueAt)
		case endSnapAction[M, T]:
			cfg.observer.OnSnapCompleted(runID, cur.DueAt, a.snapsRemaining)
		}
	}

	cfg.observeRunStateChange(runID, oldRS, s2.RunState())
	return s2, dispatchErr
}

// remainingEvents repeats iterate until either a failure is produced or the
// run state can no longer iterate. Implemented as an explicit loop (not
// recursion) so processing a long-running simulation does not consume
// stack proportional to the number of events dispatched.
func remainingEvents[M any, T TimeValue[T]](s SimulationState[M, T], runID uuid.UUID, cfg runConfig[M, T]) (SimulationState[M, T], error) {
	for {
		s2, err := iterate(s, runID, cfg)
		s = s2
		if err != nil || !s.RunState().CanIterate() {
			return s, err
		}
	}
}
