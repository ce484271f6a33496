// Tracing instrumentation for the worker pool.
package worker

import (
	"context"

	"github.com/vinayprograms/agentkit/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// startFanOutSpan starts a span for a full fan-out call.
func (p *Pool) startFanOutSpan(ctx context.Context, workers int) (context.Context, trace.Span) {
	tracer := telemetry.GetTracer()
	ctx, span := tracer.StartSpan(ctx, "worker.fanout")
	span.SetAttributes(attribute.Int("fanout.workers", workers))
	return ctx, span
}

// startTaskSpan starts a span for one worker task.
func (p *Pool) startTaskSpan(ctx context.Context, workerID, taskID string) (context.Context, trace.Span) {
	tracer := telemetry.GetTracer()
	ctx, span := tracer.StartSpan(ctx, "worker."+workerID)
	span.SetAttributes(
		attribute.String("worker.id", workerID),
		attribute.String("worker.task_id", taskID),
	)
	return ctx, span
}

// endTaskSpan records the task outcome. The span itself is ended by the
// caller so panics still close it.
func (p *Pool) endTaskSpan(span trace.Span, res *Result, err error) {
	if err != nil {
		span.RecordError(err)
		return
	}
	if res != nil {
		span.SetAttributes(
			attribute.Int("worker.chunks", len(res.Chunks)),
			attribute.Float64("worker.confidence", res.Confidence),
		)
	}
}
