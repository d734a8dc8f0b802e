package desim

// RunState enumerates the engine's lifecycle phases. Transitions form a DAG,
// Initializing -> Executing -> {Completed, Terminated}, with no return
// transitions; the engine never transitions a state "backwards".
type RunState int

const (
	// Initializing is the state a SimulationState starts in: the warm-up
	// event has not yet been scheduled and the user's initialization
	// action has not yet run. Scheduling is permitted (the initialization
	// action needs to be able to call At); iteration is not.
	Initializing RunState = iota
	// Executing is the state during normal event processing: both
	// scheduling and iteration are permitted.
	Executing
	// Terminated is a terminal state reached when the event queue empties
	// before the configured number of snaps complete. Neither scheduling
	// nor iteration is permitted.
	Terminated
	// Completed is a terminal state reached after the final snap-end event
	// fires. Neither scheduling nor iteration is permitted.
	Completed
)

// runStateFlags is a lookup table of the two per-variant predicates the
// scheduler and run loop consult; expressed as a table rather than a
// switch per variant so CanIterate/CanSchedule stay O(1) array lookups.
var runStateFlags = [...]struct{ canIterate, canSchedule bool }{
	Initializing: {canIterate: false, canSchedule: true},
	Executing:    {canIterate: true, canSchedule: true},
	Terminated:   {canIterate: false, canSchedule: false},
	Completed:    {canIterate: false, canSchedule: false},
}

// CanIterate reports whether the run loop may dispatch an event while in
// this RunState.
func (r RunState) CanIterate() bool { return runStateFlags[r].canIterate }

// CanSchedule reports whether At may enqueue an event while in this
// RunState.
func (r RunState) CanSchedule() bool { return runStateFlags[r].canSchedule }

// String implements fmt.Stringer for readable error messages and log lines.
func (r RunState) String() string {
	switch r {
	case Initializing:
		return "Initializing"
	case Executing:
		return "Executing"
	case Terminated:
		return "Terminated"
	case Completed:
		return "Completed"
	default:
		return "RunState(unknown)"
	}
}
