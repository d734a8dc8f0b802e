package desim

// TimeValue is the capability set the engine requires of a simulation time
// type. The engine never constructs a concrete time value itself; delays,
// due-times, and durations all flow in from the host, so any type
// satisfying TimeValue can stand in for the typed physical-quantity system
// a full simulation host would normally provide.
//
// Zero must return the same origin value regardless of receiver (it exists
// so the engine can ask "what is the zero of this type" without a separate
// factory function); implementations typically return a constant.
type TimeValue[T any] interface {
	// Compare returns <0, 0, or >0 as the receiver is less than, equal to,
	// or greater than other.
	Compare(other T) int
	// Add returns the receiver advanced by delta.
	Add(delta T) T
	// Sub returns the elapsed amount between the receiver and other. The
	// engine never calls Sub in a way that should underflow into a negative
	// duration, since simulation time never runs backwards.
	Sub(other T) T
	// Zero returns the type's non-negative origin value.
	Zero() T
}
