package production

import (
	"errors"
	"testing"
	"time"

	"github.com/comalice/desim"
	"github.com/comalice/desim/simtime"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

type counterModel struct{ n int }

func noopAction() desim.Action[counterModel, simtime.Ticks] {
	return desim.NamedAction[counterModel, simtime.Ticks]{
		ActionName: "noop",
		Transition: func(s desim.SimulationState[counterModel, simtime.Ticks]) (desim.SimulationState[counterModel, simtime.Ticks], error) {
			return s, nil
		},
	}
}

func TestPrometheusObserverRecordsScheduledAndDispatch(t *testing.T) {
	registry := prometheus.NewRegistry()
	obs := NewPrometheusObserver[counterModel, simtime.Ticks](registry)

	runID := uuid.New()
	ev := desim.Event[counterModel, simtime.Ticks]{
		ID:       1,
		DueAt:    simtime.FromDuration(time.Second),
		Priority: 0,
		Action:   noopAction(),
	}

	obs.OnEventScheduled(runID, ev, 1)
	obs.OnDispatch(runID, ev, 2*time.Millisecond, nil, 0)
	obs.OnDispatch(runID, ev, time.Millisecond, errors.New("boom"), 0)
	obs.OnRunStateChange(runID, desim.Initializing, desim.Executing)
	obs.OnWarmUpCompleted(runID, ev.DueAt)
	obs.OnSnapCompleted(runID, ev.DueAt, 3)

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	found := map[string]bool{}
	for _, mf := range families {
		found[mf.GetName()] = true
	}
	for _, name := range []string{
		"desim_queue_depth",
		"desim_events_dispatched_total",
		"desim_dispatch_duration_seconds",
		"desim_snaps_completed_total",
		"desim_run_state",
	} {
		if !found[name] {
			t.Errorf("expected metric family %q to be registered", name)
		}
	}
}

func TestPrometheusObserverLabelsByRunID(t *testing.T) {
	registry := prometheus.NewRegistry()
	obs := NewPrometheusObserver[counterModel, simtime.Ticks](registry)

	runA := uuid.New()
	runB := uuid.New()
	ev := desim.Event[counterModel, simtime.Ticks]{
		ID:     1,
		DueAt:  simtime.FromDuration(time.Second),
		Action: noopAction(),
	}
	obs.OnEventScheduled(runA, ev, 1)
	obs.OnEventScheduled(runB, ev, 2)

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	var metrics []*dto.Metric
	for _, mf := range families {
		if mf.GetName() == "desim_queue_depth" {
			metrics = mf.GetMetric()
		}
	}
	if len(metrics) != 2 {
		t.Fatalf("expected 2 distinct label sets, got %d", len(metrics))
	}
}

func TestPrometheusObserverRunStateSetsOneAndZero(t *testing.T) {
	registry := prometheus.NewRegistry()
	obs := NewPrometheusObserver[counterModel, simtime.Ticks](registry)

	runID := uuid.New()
	obs.OnRunStateChange(runID, desim.Initializing, desim.Executing)

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	var metrics []*dto.Metric
	for _, mf := range families {
		if mf.GetName() == "desim_run_state" {
			metrics = mf.GetMetric()
		}
	}
	if len(metrics) != 2 {
		t.Fatalf("expected 2 label sets (from, to), got %d", len(metrics))
	}

	values := map[string]float64{}
	for _, m := range metrics {
		var state string
		for _, l := range m.GetLabel() {
			if l.GetName() == "state" {
				state = l.GetValue()
			}
		}
		values[state] = m.GetGauge().GetValue()
	}
	if values["Initializing"] != 0 {
		t.Errorf("expected Initializing gauge to be 0, got %v", values["Initializing"])
	}
	if values["Executing"] != 1 {
		t.Errorf("expected Executing gauge to be 1, got %v", values["Executing"])
	}
}
