package desim

import (
	"errors"
	"testing"
	"time"

	"github.com/comalice/desim/simtime"
	"github.com/google/uuid"
)

func noInitAction() Action[widgetModel, simtime.Ticks] {
	return AsAction[widgetModel, simtime.Ticks](SimulationAction[widgetModel, simtime.Ticks](
		Pure[SimulationState[widgetModel, simtime.Ticks], error](nil),
	))
}

func TestRunEmptyInitializationCompletesAfterOneSnap(t *testing.T) {
	// warmUpPeriod=1s, snapLength=2s, numSnaps=1, empty initialization.
	// EndWarmUp dispatches at t=1s, EndSnap at t=3s, final run-state
	// Completed.
	final, err := Run[widgetModel, simtime.Ticks](
		widgetModel{},
		simtime.FromDuration(time.Second),
		simtime.FromDuration(2*time.Second),
		1,
		noInitAction(),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if final.RunState() != Completed {
		t.Fatalf("got RunState %v, want Completed", final.RunState())
	}
	if final.PendingEvents() != 0 {
		t.Fatalf("expected an empty queue at completion, got %d pending", final.PendingEvents())
	}
	if final.SimTime() != simtime.FromDuration(3*time.Second) {
		t.Fatalf("got final SimTime %v, want 3s", final.SimTime())
	}
}

func TestRunMultipleSnapsAdvancesThroughEachWindow(t *testing.T) {
	final, err := Run[widgetModel, simtime.Ticks](
		widgetModel{},
		simtime.FromDuration(5*time.Millisecond),
		simtime.FromDuration(10*time.Millisecond),
		3,
		noInitAction(),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if final.RunState() != Completed {
		t.Fatalf("got RunState %v, want Completed", final.RunState())
	}
	want := simtime.FromDuration(5*time.Millisecond + 3*10*time.Millisecond)
	if final.SimTime() != want {
		t.Fatalf("got final SimTime %v, want %v", final.SimTime(), want)
	}
}

func TestRunWithNoUserEventsStillCompletesBothSnaps(t *testing.T) {
	// Even with zero host-scheduled events, the internal warm-up/snap
	// chain keeps the queue populated until the configured snap count is
	// reached. It never drains early, so the expected outcome is a clean
	// Completed, not OutOfEventsError.
	final, err := Run[widgetModel, simtime.Ticks](
		widgetModel{},
		simtime.FromDuration(10*time.Second),
		simtime.FromDuration(10*time.Second),
		2,
		noInitAction(),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if final.RunState() != Completed {
		t.Fatalf("got RunState %v, want Completed", final.RunState())
	}
}

// TestUpdateCurrentReportsOutOfEventsOnEmptyQueue exercises the lower-level
// update-current step directly, since Run's internal warm-up/snap chain
// never lets the top-level queue run dry (see
// TestRunWithNoUserEventsStillCompletesBothSnaps). OutOfEventsError is only
// reachable by calling updateCurrent against a hand-built, empty-queue,
// Executing state.
func TestUpdateCurrentReportsOutOfEventsOnEmptyQueue(t *testing.T) {
	s := newSimulationState[widgetModel, simtime.Ticks](widgetModel{})
	s = s.withRunState(Executing)

	s2, err := updateCurrent(s)
	var outOfEvents *OutOfEventsError
	if !errors.As(err, &outOfEvents) {
		t.Fatalf("expected *OutOfEventsError, got %T: %v", err, err)
	}
	if s2.RunState() != Terminated {
		t.Fatalf("got RunState %v, want Terminated", s2.RunState())
	}
}

func TestRunFailsToScheduleAfterCompletion(t *testing.T) {
	final, err := Run[widgetModel, simtime.Ticks](
		widgetModel{},
		simtime.FromDuration(0),
		simtime.FromDuration(time.Millisecond),
		1,
		noInitAction(),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	schedule := At[widgetModel, simtime.Ticks](simtime.FromDuration(time.Millisecond), 0)(noInitAction())
	_, scheduleErr := schedule(final)
	var stateErr *EventScheduleStateError
	if !errors.As(scheduleErr, &stateErr) {
		t.Fatalf("expected *EventScheduleStateError scheduling against a Completed state, got %T: %v", scheduleErr, scheduleErr)
	}
}

func TestRunDispatchesCoincidentEventsByPriorityThenCreationOrder(t *testing.T) {
	// Three no-op actions at the same delay, priorities [10, -1, 10] in
	// that creation order. Expected dispatch order: second (priority -1),
	// first (priority 10, lower id), third.
	var order []string
	record := func(name string) Action[widgetModel, simtime.Ticks] {
		return NamedAction[widgetModel, simtime.Ticks]{
			ActionName: name,
			Transition: func(s SimulationState[widgetModel, simtime.Ticks]) (SimulationState[widgetModel, simtime.Ticks], error) {
				order = append(order, name)
				return s, nil
			},
		}
	}

	init := AsAction[widgetModel, simtime.Ticks](SimulationAction[widgetModel, simtime.Ticks](
		func(s SimulationState[widgetModel, simtime.Ticks]) (SimulationState[widgetModel, simtime.Ticks], error) {
			var err error
			s, err = At[widgetModel, simtime.Ticks](simtime.FromDuration(5*time.Second), 10)(record("first"))(s)
			if err != nil {
				return s, err
			}
			s, err = At[widgetModel, simtime.Ticks](simtime.FromDuration(5*time.Second), -1)(record("second"))(s)
			if err != nil {
				return s, err
			}
			s, err = At[widgetModel, simtime.Ticks](simtime.FromDuration(5*time.Second), 10)(record("third"))(s)
			if err != nil {
				return s, err
			}
			return s, nil
		},
	))

	obs := &recordingObserver{}
	_, err := Run[widgetModel, simtime.Ticks](
		widgetModel{},
		simtime.FromDuration(time.Second),
		simtime.FromDuration(10*time.Second),
		1,
		init,
		WithObserver[widgetModel, simtime.Ticks](obs),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"second", "first", "third"}
	if len(order) != len(want) {
		t.Fatalf("got dispatch order %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got dispatch order %v, want %v", order, want)
		}
	}
	if len(obs.dispatched) == 0 {
		t.Fatalf("expected the observer to see at least one dispatch")
	}
}

func TestRunStackSafetyWithManyEvents(t *testing.T) {
	const chainLength = 200_000

	var chain func(remaining int) Action[widgetModel, simtime.Ticks]
	chain = func(remaining int) Action[widgetModel, simtime.Ticks] {
		return AsAction[widgetModel, simtime.Ticks](SimulationAction[widgetModel, simtime.Ticks](
			func(s SimulationState[widgetModel, simtime.Ticks]) (SimulationState[widgetModel, simtime.Ticks], error) {
				if remaining <= 0 {
					return s, nil
				}
				return At[widgetModel, simtime.Ticks](simtime.FromDuration(0), 0)(chain(remaining - 1))(s)
			},
		))
	}

	final, err := Run[widgetModel, simtime.Ticks](
		widgetModel{},
		simtime.FromDuration(time.Millisecond),
		simtime.FromDuration(time.Millisecond),
		1,
		chain(chainLength),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if final.RunState() != Completed {
		t.Fatalf("got RunState %v, want Completed", final.RunState())
	}
}

type recordingObserver struct {
	NullObserver[widgetModel, simtime.Ticks]
	dispatched []string
}

func (o *recordingObserver) OnDispatch(runID uuid.UUID, ev Event[widgetModel, simtime.Ticks], took time.Duration, err error, queueDepth int) {
	o.dispatched = append(o.dispatched, ev.Action.Name())
}
