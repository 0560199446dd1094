package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const refreshTracerName = "github.com/shuttleops/demand-scheduler/internal/service/refresh"

func RefreshTracer() trace.Tracer {
	return otel.Tracer(refreshTracerName)
}

func StartRunSpan(ctx context.Context, runID, sourceID, destinationID string) (context.Context, trace.Span) {
	return RefreshTracer().Start(ctx, "refresh.run",
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("sheet.source", sourceID),
			attribute.String("sheet.destination", destinationID),
		),
	)
}

func StartPhaseSpan(ctx context.Context, phase string) (context.Context, trace.Span) {
	return RefreshTracer().Start(ctx, "refresh."+phase,
		trace.WithAttributes(
			attribute.String("phase", phase),
		),
	)
}

func StartGatewaySpan(ctx context.Context, operation, spreadsheetID string) (context.Context, trace.Span) {
	return RefreshTracer().Start(ctx, "refresh.gateway."+operation,
		trace.WithAttributes(
			attribute.String("sheet.id", spreadsheetID),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordRunResult(span trace.Span, recordsRead, increments, discards, highlighted int, err error) {
	span.SetAttributes(
		attribute.Int("run.records_read", recordsRead),
		attribute.Int("run.increments", increments),
		attribute.Int("run.discards", discards),
		attribute.Int("run.highlighted_cells", highlighted),
	)
	RecordResult(span, err)
}

// RecordResult sets the span status from err.
func RecordResult(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
