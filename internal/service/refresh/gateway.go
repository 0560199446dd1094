package refresh

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/shuttleops/demand-scheduler/internal/domain"
	"github.com/shuttleops/demand-scheduler/internal/observability/metrics"
	"github.com/shuttleops/demand-scheduler/internal/observability/tracing"
)

// instrumentedGateway wraps every spreadsheet call in a client span and counts it.
type instrumentedGateway struct {
	next    domain.SpreadsheetGateway
	metrics *metrics.RefreshMetrics
}

func newInstrumentedGateway(next domain.SpreadsheetGateway, refreshMetrics *metrics.RefreshMetrics) *instrumentedGateway {
	return &instrumentedGateway{next: next, metrics: refreshMetrics}
}

func (g *instrumentedGateway) GetTabs(ctx context.Context, spreadsheetID string) ([]domain.TabMeta, error) {
	ctx, span := tracing.StartGatewaySpan(ctx, "get_tabs", spreadsheetID)
	defer span.End()

	tabs, err := g.next.GetTabs(ctx, spreadsheetID)
	span.SetAttributes(attribute.Int("sheet.tabs", len(tabs)))
	g.finish(ctx, span, "get_tabs", err)

	return tabs, err
}

func (g *instrumentedGateway) ReadRange(ctx context.Context, spreadsheetID, a1Range string) ([][]string, error) {
	ctx, span := tracing.StartGatewaySpan(ctx, "read_range", spreadsheetID)
	defer span.End()

	rows, err := g.next.ReadRange(ctx, spreadsheetID, a1Range)
	span.SetAttributes(
		attribute.String("sheet.range", a1Range),
		attribute.Int("sheet.rows", len(rows)),
	)
	g.finish(ctx, span, "read_range", err)

	return rows, err
}

func (g *instrumentedGateway) BatchWriteValues(ctx context.Context, spreadsheetID string, ranges []domain.ValueRange) error {
	ctx, span := tracing.StartGatewaySpan(ctx, "batch_write_values", spreadsheetID)
	defer span.End()

	err := g.next.BatchWriteValues(ctx, spreadsheetID, ranges)
	span.SetAttributes(attribute.Int("sheet.ranges", len(ranges)))
	g.finish(ctx, span, "batch_write_values", err)

	return err
}

func (g *instrumentedGateway) BatchWriteFormat(ctx context.Context, spreadsheetID string, requests []domain.FormatRequest) error {
	ctx, span := tracing.StartGatewaySpan(ctx, "batch_write_format", spreadsheetID)
	defer span.End()

	err := g.next.BatchWriteFormat(ctx, spreadsheetID, requests)
	span.SetAttributes(attribute.Int("sheet.requests", len(requests)))
	g.finish(ctx, span, "batch_write_format", err)

	return err
}

func (g *instrumentedGateway) finish(ctx context.Context, span trace.Span, operation string, err error) {
	tracing.RecordResult(span, err)

	if g.metrics == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	g.metrics.RecordGatewayOperation(ctx, operation, outcome)
}
