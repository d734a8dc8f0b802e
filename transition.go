package desim

// StateTransition is a pure function from a state to a pair of (updated
// state, produced value). It is the engine's sole unit of composition: the
// scheduler API, actions, and the run loop are all built by sequencing
// StateTransition values, never by mutating shared state in place.
//
// Composition is expressed as plain functions rather than a monad type with
// methods, matching Go's preference for first-class functions over
// operator-overloaded wrapper types.
type StateTransition[S, A any] func(S) (S, A)

// Pure returns a transition that leaves the state unchanged and produces a.
func Pure[S, A any](a A) StateTransition[S, A] {
	return func(s S) (S, A) { return s, a }
}

// Inspect returns a read-only transition: it leaves the state unchanged and
// produces f(s).
func Inspect[S, A any](f func(S) A) StateTransition[S, A] {
	return func(s S) (S, A) { return s, f(s) }
}

// Map transforms the result of t without altering how it updates state.
func Map[S, A, B any](t StateTransition[S, A], f func(A) B) StateTransition[S, B] {
	return func(s S) (S, B) {
		s2, a := t(s)
		return s2, f(a)
	}
}

// FlatMap sequences t and then k(result), feeding t's updated state into
// k's transition. This is the engine's only sequencing primitive; every
// other combinator in this file is defined in terms of it or of a
// stack-safe loop equivalent to it.
func FlatMap[S, A, B any](t StateTransition[S, A], k func(A) StateTransition[S, B]) StateTransition[S, B] {
	return func(s S) (S, B) {
		s2, a := t(s)
		return k(a)(s2)
	}
}

// TakeUntil runs ts in order against s, stopping at and returning the
// result of the first transition whose (updated state, result) pair
// satisfies predicate. If every transition in ts runs without satisfying
// predicate, TakeUntil runs termination against the final state and returns
// its result instead.
//
// Implemented as an explicit loop, not recursion, so that processing a long
// ts does not consume stack proportional to len(ts). The run loop's
// remainingEvents (runloop.go) uses the same explicit-loop shape.
func TakeUntil[S, A any](s S, ts []StateTransition[S, A], termination StateTransition[S, A], predicate func(S, A) bool) (S, A) {
	for _, t := range ts {
		s2, a := t(s)
		s = s2
		if predicate(s, a) {
			return s, a
		}
	}
	return termination(s)
}

// TakeUntilFailure specializes TakeUntil to transitions producing an error:
// it runs ts in order, stopping at (and returning) the first non-nil error.
// If every transition succeeds, it returns the final state with a nil
// error. Termination is Pure(nil), since "ran to the end without a
// failure" needs no separate action.
func TakeUntilFailure[S any](s S, ts []StateTransition[S, error]) (S, error) {
	return TakeUntil(s, ts, Pure[S, error](nil), func(_ S, err error) bool { return err != nil })
}
