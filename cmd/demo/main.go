package main

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/comalice/desim"
	"github.com/comalice/desim/examples/queue"
	"github.com/comalice/desim/internal/production"
	"github.com/comalice/desim/simtime"
	"github.com/prometheus/client_golang/prometheus"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const scenarioYAML = `
warmUpTicks: 50
snapTicks: 200
numSnaps: 3
`

func main() {
	scenario, err := production.LoadScenarioConfig(strings.NewReader(scenarioYAML))
	if err != nil {
		panic(err)
	}

	registry := prometheus.NewRegistry()
	metrics := production.NewPrometheusObserver[queue.Model, simtime.Ticks](registry)

	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()
	tracing := production.NewOTelObserver[queue.Model, simtime.Ticks](tp.Tracer("desim-demo"))

	observer := desim.MultiObserver[queue.Model, simtime.Ticks]{
		Observers: []desim.RunObserver[queue.Model, simtime.Ticks]{metrics, tracing},
	}

	cfg := queue.Config{
		Interarrival:   simtime.Ticks(10),
		ServiceTime:    simtime.Ticks(8),
		Jitter:         simtime.Ticks(4),
		Rand:           rand.New(rand.NewSource(1)),
		ArrivalsToStop: 40,
	}

	final, err := desim.Run[queue.Model, simtime.Ticks](
		queue.Model{},
		scenario.WarmUp(),
		scenario.SnapLength(),
		scenario.NumSnaps,
		queue.Initialization(cfg),
		desim.WithObserver[queue.Model, simtime.Ticks](observer),
	)
	if err != nil {
		panic(err)
	}

	model := final.ModelState()
	fmt.Printf("run finished: state=%s simTime=%s served=%d stillWaiting=%d\n",
		final.RunState(), final.SimTime(), model.Served, model.WaitingLine)

	families, err := registry.Gather()
	if err != nil {
		panic(err)
	}
	for _, f := range families {
		fmt.Printf("metric %s: %d sample(s)\n", f.GetName(), len(f.GetMetric()))
	}
}
