package desim

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is. Every concrete error type below
// wraps exactly one of these, so callers can match on error class without
// caring about the RunState or event payload carried alongside it.
var (
	// ErrSchedule is wrapped by EventScheduleStateError: an action tried to
	// call At in a RunState that does not permit scheduling.
	ErrSchedule = errors.New("desim: scheduling not permitted in current run state")

	// ErrIteration is wrapped by EventIterationStateError: the run loop
	// attempted to dispatch an event while the RunState does not permit
	// iteration. Reaching this from Run is a defensive/unreachable case;
	// it exists for direct callers of the lower-level iterate step.
	ErrIteration = errors.New("desim: iteration not permitted in current run state")

	// ErrOutOfEvents is wrapped by OutOfEventsError: the event queue was
	// empty when iterate tried to select the next event. This is the
	// engine's normal "ran out of work" signal; see OutOfEventsError's
	// doc comment for why it is still reported as a failure.
	ErrOutOfEvents = errors.New("desim: event queue exhausted before run completed")

	// ErrOverflow is wrapped by ArithmeticOverflowError: the monotonic
	// event-id counter would wrap around. Exhausting a 64-bit id space
	// requires scheduling an event every nanosecond for roughly 584 years;
	// this is a fatal, unrecoverable condition when it happens.
	ErrOverflow = errors.New("desim: event id counter overflow")
)

// EventScheduleStateError reports that At was called while the run state's
// CanSchedule() is false. The accompanying state is unchanged: no event was
// partially inserted and no counter was partially incremented.
type EventScheduleStateError struct {
	RunState RunState
}

func (e *EventScheduleStateError) Error() string {
	return fmt.Sprintf("desim: cannot schedule an event while run state is %s", e.RunState)
}

func (e *EventScheduleStateError) Unwrap() error { return ErrSchedule }

// EventIterationStateError reports that iterate was invoked while the run
// state's CanIterate() is false.
type EventIterationStateError struct {
	RunState RunState
}

func (e *EventIterationStateError) Error() string {
	return fmt.Sprintf("desim: cannot iterate while run state is %s", e.RunState)
}

func (e *EventIterationStateError) Unwrap() error { return ErrIteration }

// OutOfEventsError reports that the event queue was empty when iterate
// tried to select the next event.
//
// This is the engine's normal "ran out of work before the last snap" signal,
// not necessarily a bug in the host model. iterate sets RunState to
// Terminated AND returns this error; the run loop does not swallow it.
// Callers that consider an early, legitimate stop acceptable should check
// for RunState() == Terminated on the returned state rather than treating a
// non-nil error as fatal.
type OutOfEventsError struct{}

func (e *OutOfEventsError) Error() string { return "desim: " + ErrOutOfEvents.Error() }

func (e *OutOfEventsError) Unwrap() error { return ErrOutOfEvents }

// ArithmeticOverflowError reports that incrementing the next-event-id
// counter would overflow. This is a fatal condition: the accompanying state
// should not be relied upon for further scheduling.
type ArithmeticOverflowError struct{}

func (e *ArithmeticOverflowError) Error() string { return "desim: " + ErrOverflow.Error() }

func (e *ArithmeticOverflowError) Unwrap() error { return ErrOverflow }
