package desim

// At returns a curried scheduling operation: At(delay, priority)(action)
// builds a SimulationAction that enqueues action to run at
// currentTime+delay with the given priority.
//
// If the state's RunState does not permit scheduling, the returned
// transition produces an EventScheduleStateError and leaves the state
// bitwise unchanged: no event is partially inserted, no counter is
// partially incremented. Otherwise nextEventID is incremented by exactly
// one (overflow is reported as ArithmeticOverflowError, a fatal condition)
// and the queue grows by exactly one element.
//
// delay == 0 is permitted: such an event is dispatched after every event
// already due at the current instant with a smaller priority value, and
// after those with an equal priority value since its id will be greater
// than theirs.
func At[M any, T TimeValue[T]](delay T, priority int32) func(Action[M, T]) SimulationAction[M, T] {
	return func(action Action[M, T]) SimulationAction[M, T] {
		return func(s SimulationState[M, T]) (SimulationState[M, T], error) {
			if !s.runState.CanSchedule() {
				return s, &EventScheduleStateError{RunState: s.runState}
			}
			id, s2, err := s.allocateEventID()
			if err != nil {
				return s, err
			}
			ev := Event[M, T]{
				ID:       id,
				DueAt:    s2.SimTime().Add(delay),
				Priority: priority,
				Action:   action,
			}
			return s2.enqueue(ev), nil
		}
	}
}

// Time reads the current simulation clock without changing state.
func Time[M any, T TimeValue[T]]() StateTransition[SimulationState[M, T], T] {
	return Inspect(func(s SimulationState[M, T]) T { return s.SimTime() })
}

// ModelState reads the host's model state without changing it.
func ModelState[M any, T TimeValue[T]]() StateTransition[SimulationState[M, T], M] {
	return Inspect(func(s SimulationState[M, T]) M { return s.ModelState() })
}

// UpdateModelState replaces the host's model state and always succeeds.
func UpdateModelState[M any, T TimeValue[T]](m M) SimulationAction[M, T] {
	return func(s SimulationState[M, T]) (SimulationState[M, T], error) {
		return s.withModelState(m), nil
	}
}
