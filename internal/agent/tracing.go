// Tracing instrumentation for the autonomous loop.
package agent

import (
	"context"

	"github.com/vinayprograms/agentkit/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// startRunSpan starts a span for a full loop run.
func (a *Agent) startRunSpan(ctx context.Context, task string) (context.Context, trace.Span) {
	tracer := telemetry.GetTracer()
	ctx, span := tracer.StartSpan(ctx, "agent.run")
	span.SetAttributes(
		attribute.String("agent.task", truncateForLog(task, 200)),
		attribute.Int("agent.max_steps", maxSteps),
	)
	return ctx, span
}

// endRunSpan records the run outcome on the span.
func (a *Agent) endRunSpan(span trace.Span, historyLen int, err error) {
	span.SetAttributes(attribute.Int("agent.history_len", historyLen))
	if err != nil {
		span.RecordError(err)
	}
}

// startToolSpan starts a span for one tool execution.
func (a *Agent) startToolSpan(ctx context.Context, tool string) (context.Context, trace.Span) {
	tracer := telemetry.GetTracer()
	ctx, span := tracer.StartSpan(ctx, "tool."+tool)
	span.SetAttributes(attribute.String("tool.name", tool))
	return ctx, span
}

// endToolSpan ends the tool span with output info.
func (a *Agent) endToolSpan(span trace.Span, output string, err error) {
	tracer := telemetry.GetTracer()
	if tracer.Debug() && output != "" {
		span.SetAttributes(attribute.String("tool.output", truncateForLog(output, 2000)))
	}
	if err != nil {
		span.RecordError(err)
	}
	span.End()
}
