// Package production provides concrete, third-party-backed implementations
// of the engine's extension points: a Prometheus-backed RunObserver, an
// OpenTelemetry-backed RunObserver, and a YAML scenario config loader. It
// imports the root desim package one-directionally, never the reverse.
package production

import (
	"time"

	"github.com/comalice/desim"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusObserver implements desim.RunObserver by recording Prometheus
// metrics for queue depth, dispatch throughput and latency, snap progress,
// and the run's lifecycle state. All metrics are namespaced "desim_" and
// labeled by run_id so multiple concurrent runs can share a registry.
type PrometheusObserver[M any, T desim.TimeValue[T]] struct {
	queueDepth       *prometheus.GaugeVec
	eventsDispatched *prometheus.CounterVec
	dispatchSeconds  *prometheus.HistogramVec
	snapsCompleted   *prometheus.CounterVec
	runState         *prometheus.GaugeVec
}

// NewPrometheusObserver registers and returns a PrometheusObserver on
// registry. Pass prometheus.DefaultRegisterer for the global registry, or a
// fresh prometheus.NewRegistry() to isolate a single run's metrics.
func NewPrometheusObserver[M any, T desim.TimeValue[T]](registry prometheus.Registerer) *PrometheusObserver[M, T] {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &PrometheusObserver[M, T]{
		queueDepth: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "desim",
			Name:      "queue_depth",
			Help:      "Number of events pending dispatch",
		}, []string{"run_id"}),
		eventsDispatched: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "desim",
			Name:      "events_dispatched_total",
			Help:      "Cumulative count of events dispatched",
		}, []string{"run_id"}),
		dispatchSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "desim",
			Name:      "dispatch_duration_seconds",
			Help:      "Wall-clock time spent dispatching a single event's action",
			Buckets:   prometheus.DefBuckets,
		}, []string{"run_id"}),
		snapsCompleted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "desim",
			Name:      "snaps_completed_total",
			Help:      "Cumulative count of snap windows completed",
		}, []string{"run_id"}),
		runState: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "desim",
			Name:      "run_state",
			Help:      "1 for a run's current RunState, 0 otherwise",
		}, []string{"run_id", "state"}),
	}
}

func (p *PrometheusObserver[M, T]) OnEventScheduled(runID uuid.UUID, _ desim.Event[M, T], queueDepth int) {
	p.queueDepth.WithLabelValues(runID.String()).Set(float64(queueDepth))
}

func (p *PrometheusObserver[M, T]) OnDispatch(runID uuid.UUID, ev desim.Event[M, T], took time.Duration, err error, queueDepth int) {
	p.eventsDispatched.WithLabelValues(runID.String()).Inc()
	p.dispatchSeconds.WithLabelValues(runID.String()).Observe(took.Seconds())
	p.queueDepth.WithLabelValues(runID.String()).Set(float64(queueDepth))
	_ = err
}

func (p *PrometheusObserver[M, T]) OnRunStateChange(runID uuid.UUID, from, to desim.RunState) {
	p.runState.WithLabelValues(runID.String(), from.String()).Set(0)
	p.runState.WithLabelValues(runID.String(), to.String()).Set(1)
}

func (p *PrometheusObserver[M, T]) OnWarmUpCompleted(uuid.UUID, T) {}

func (p *PrometheusObserver[M, T]) OnSnapCompleted(runID uuid.UUID, _ T, remaining int) {
	p.snapsCompleted.WithLabelValues(runID.String()).Inc()
	_ = remaining
}
