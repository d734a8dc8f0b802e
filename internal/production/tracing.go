package production

import (
	"context"
	"fmt"
	"time"

	"github.com/comalice/desim"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// OTelObserver implements desim.RunObserver by emitting one span per
// dispatched event. Spans are point-in-time (started and immediately ended
// with an explicit duration) rather than long-lived, since a dispatch is
// already complete by the time OnDispatch fires.
type OTelObserver[M any, T desim.TimeValue[T]] struct {
	tracer trace.Tracer
}

// NewOTelObserver returns an OTelObserver using tracer, typically obtained
// via otel.Tracer("desim").
func NewOTelObserver[M any, T desim.TimeValue[T]](tracer trace.Tracer) *OTelObserver[M, T] {
	return &OTelObserver[M, T]{tracer: tracer}
}

func (o *OTelObserver[M, T]) OnEventScheduled(uuid.UUID, desim.Event[M, T], int) {}

func (o *OTelObserver[M, T]) OnDispatch(runID uuid.UUID, ev desim.Event[M, T], took time.Duration, err error, _ int) {
	ctx := context.Background()
	now := time.Now()
	_, span := o.tracer.Start(ctx, ev.Action.Name(), trace.WithTimestamp(now.Add(-took)))
	defer span.End(trace.WithTimestamp(now))

	span.SetAttributes(
		attribute.String("desim.run_id", runID.String()),
		attribute.Int64("desim.event.id", int64(ev.ID)),
		attribute.String("desim.event.due_at", fmt.Sprint(ev.DueAt)),
		attribute.Int64("desim.event.priority", int64(ev.Priority)),
		attribute.String("desim.action", ev.Action.Name()),
	)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
	}
}

func (o *OTelObserver[M, T]) OnRunStateChange(runID uuid.UUID, from, to desim.RunState) {
	_, span := o.tracer.Start(context.Background(), "runStateChange")
	defer span.End()
	span.SetAttributes(
		attribute.String("desim.run_id", runID.String()),
		attribute.String("desim.from", from.String()),
		attribute.String("desim.to", to.String()),
	)
}

func (o *OTelObserver[M, T]) OnWarmUpCompleted(runID uuid.UUID, _ T) {
	_, span := o.tracer.Start(context.Background(), "warmUpCompleted")
	defer span.End()
	span.SetAttributes(attribute.String("desim.run_id", runID.String()))
}

func (o *OTelObserver[M, T]) OnSnapCompleted(runID uuid.UUID, _ T, remaining int) {
	_, span := o.tracer.Start(context.Background(), "snapCompleted")
	defer span.End()
	span.SetAttributes(
		attribute.String("desim.run_id", runID.String()),
		attribute.Int("desim.snaps_remaining", remaining),
	)
}
