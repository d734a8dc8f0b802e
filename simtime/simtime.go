// Package simtime provides Ticks, a minimal concrete TimeValue
// implementation wrapping time.Duration, for hosts and tests that don't
// need a typed physical-quantity system of their own.
package simtime

import "time"

// Ticks is a simulation-time value measured in nanoseconds, the same unit
// as time.Duration. It implements desim.TimeValue[Ticks].
type Ticks time.Duration

// Zero returns the origin instant, 0.
func (t Ticks) Zero() Ticks { return 0 }

// Compare returns <0, 0, or >0 as t is less than, equal to, or greater
// than other.
func (t Ticks) Compare(other Ticks) int {
	switch {
	case t < other:
		return -1
	case t > other:
		return 1
	default:
		return 0
	}
}

// Add returns t advanced by delta.
func (t Ticks) Add(delta Ticks) Ticks { return t + delta }

// Sub returns the elapsed Ticks between t and other. Negative results are
// a caller error: the engine never produces them (simulation time does not
// run backwards), but Sub does not itself guard against misuse by direct
// callers.
func (t Ticks) Sub(other Ticks) Ticks { return t - other }

// Duration converts t to a standard time.Duration.
func (t Ticks) Duration() time.Duration { return time.Duration(t) }

// FromDuration converts a time.Duration to Ticks.
func FromDuration(d time.Duration) Ticks { return Ticks(d) }

// String renders t using time.Duration's formatting.
func (t Ticks) String() string { return time.Duration(t).String() }
