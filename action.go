package desim

import "math"

// Unit is the empty value produced by transitions whose only interesting
// effect is the state change itself.
type Unit struct{}

// SimulationAction is the transition every Action dispatches: a pure
// function from one SimulationState to the next, paired with a possible
// engine error. A nil error is success, represented as (SimulationState,
// error) rather than a separate sum type, following Go's own (value, error)
// convention.
type SimulationAction[M any, T TimeValue[T]] StateTransition[SimulationState[M, T], error]

// Action is a named, described unit of work that, when dispatched, produces
// a SimulationAction. There is no inheritance: concrete actions are the
// anonymous wrapper (AsAction) plus the two engine-internal actions below;
// any type satisfying this three-method capability set works as an Action.
type Action[M any, T TimeValue[T]] interface {
	Dispatch() SimulationAction[M, T]
	Name() string
	Description() string
}

// anonymousAction adapts a bare SimulationAction into an Action, for hosts
// that do not need a distinguishable name/description.
type anonymousAction[M any, T TimeValue[T]] struct {
	transition SimulationAction[M, T]
}

// AsAction wraps transition as an unnamed Action.
func AsAction[M any, T TimeValue[T]](transition SimulationAction[M, T]) Action[M, T] {
	return anonymousAction[M, T]{transition: transition}
}

func (a anonymousAction[M, T]) Dispatch() SimulationAction[M, T] { return a.transition }
func (a anonymousAction[M, T]) Name() string                     { return "anonymous" }
func (a anonymousAction[M, T]) Description() string              { return "" }

// NamedAction wraps transition as an Action carrying a name and
// description, for hosts that want readable diagnostics (trace span names,
// log lines) without writing a bespoke type per action.
type NamedAction[M any, T TimeValue[T]] struct {
	ActionName        string
	ActionDescription string
	Transition        SimulationAction[M, T]
}

func (a NamedAction[M, T]) Dispatch() SimulationAction[M, T] { return a.Transition }
func (a NamedAction[M, T]) Name() string                     { return a.ActionName }
func (a NamedAction[M, T]) Description() string              { return a.ActionDescription }

// MaxPriority is the priority warm-up and snap-end events schedule at, so
// they always sort after every ordinary event due at the same instant. If
// host code also schedules at MaxPriority, the tie falls through to event
// id (creation order), which is always decidable.
const MaxPriority int32 = math.MaxInt32

// endWarmUpAction is the engine-internal action fired once, at
// currentTime + warmUpPeriod: it schedules the first endSnapAction and then
// lets the run loop proceed into the first snap window.
type endWarmUpAction[M any, T TimeValue[T]] struct {
	snapLength T
	numSnaps   int
}

func newEndWarmUpAction[M any, T TimeValue[T]](snapLength T, numSnaps int) Action[M, T] {
	return endWarmUpAction[M, T]{snapLength: snapLength, numSnaps: numSnaps}
}

func (a endWarmUpAction[M, T]) Name() string { return "endWarmUp" }
func (a endWarmUpAction[M, T]) Description() string {
	return "marks the end of the warm-up period and schedules the first snap-end event"
}

func (a endWarmUpAction[M, T]) Dispatch() SimulationAction[M, T] {
	return At[M, T](a.snapLength, MaxPriority)(newEndSnapAction[M, T](a.snapLength, a.numSnaps-1))
}

// endSnapAction is the engine-internal action fired at the end of each snap
// window. With snapsRemaining == 0 it marks the run Completed; otherwise it
// schedules the next endSnapAction one snapLength later.
type endSnapAction[M any, T TimeValue[T]] struct {
	snapLength     T
	snapsRemaining int
}

func newEndSnapAction[M any, T TimeValue[T]](snapLength T, snapsRemaining int) Action[M, T] {
	return endSnapAction[M, T]{snapLength: snapLength, snapsRemaining: snapsRemaining}
}

func (a endSnapAction[M, T]) Name() string { return "endSnap" }
func (a endSnapAction[M, T]) Description() string {
	return "marks the end of a snap window, scheduling the next one or completing the run"
}

func (a endSnapAction[M, T]) Dispatch() SimulationAction[M, T] {
	if a.snapsRemaining <= 0 {
		return func(s SimulationState[M, T]) (SimulationState[M, T], error) {
			return s.withRunState(Completed), nil
		}
	}
	return SimulationAction[M, T](At[M, T](a.snapLength, MaxPriority)(
		newEndSnapAction[M, T](a.snapLength, a.snapsRemaining-1),
	))
}
