// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"github.com/comalice/desim"
	"github.com/comalice/desim/simtime"
)

type counterModel struct{ n int }

// chainAction returns an initialization action that reschedules itself
// remaining times, one tick apart, incrementing the model's counter each
// time: a minimal host model that exercises scheduling, dispatch, and
// model-state replacement without any concurrency.
func chainAction(remaining int) desim.Action[counterModel, simtime.Ticks] {
	return desim.AsAction[counterModel, simtime.Ticks](desim.SimulationAction[counterModel, simtime.Ticks](
		func(s desim.SimulationState[counterModel, simtime.Ticks]) (desim.SimulationState[counterModel, simtime.Ticks], error) {
			model := s.ModelState()
			model.n++
			s, err := desim.UpdateModelState[counterModel, simtime.Ticks](model)(s)
			if err != nil || remaining <= 0 {
				return s, err
			}
			return desim.At[counterModel, simtime.Ticks](simtime.FromDuration(1), 0)(chainAction(remaining - 1))(s)
		},
	))
}

// GenChainRun runs a simulation whose initialization starts a chain of n
// self-rescheduling events, one simulated tick apart, then completes after a
// single snap window long enough to contain the whole chain.
func GenChainRun(n int) (desim.SimulationState[counterModel, simtime.Ticks], error) {
	return desim.Run[counterModel, simtime.Ticks](
		counterModel{},
		simtime.Ticks(0),
		simtime.Ticks(int64(n)+1),
		1,
		chainAction(n),
	)
}
