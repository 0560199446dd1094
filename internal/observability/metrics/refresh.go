package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	refreshMeterName = "refresh.service"
)

type RefreshMetrics struct {
	runs              metric.Int64Counter
	runDuration       metric.Float64Histogram
	phaseDuration     metric.Float64Histogram
	recordsRead       metric.Int64Counter
	recordsDiscarded  metric.Int64Counter
	slotIncrements    metric.Int64Counter
	highlightedCells  metric.Int64Counter
	gatewayOperations metric.Int64Counter
}

func NewRefreshMetrics() (*RefreshMetrics, error) {
	meter := otel.Meter(refreshMeterName)

	runs, err := meter.Int64Counter(
		"refresh_runs_total",
		metric.WithDescription("Total number of refresh runs"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, err
	}

	runDuration, err := meter.Float64Histogram(
		"refresh_run_duration_seconds",
		metric.WithDescription("Refresh run duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.5, 1, 2.5, 5, 10, 30, 60, 120, 300,
		),
	)
	if err != nil {
		return nil, err
	}

	phaseDuration, err := meter.Float64Histogram(
		"refresh_phase_duration_seconds",
		metric.WithDescription("Duration of each refresh phase"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60,
		),
	)
	if err != nil {
		return nil, err
	}

	recordsRead, err := meter.Int64Counter(
		"refresh_records_read_total",
		metric.WithDescription("Tracker records read from the source spreadsheet"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, err
	}

	recordsDiscarded, err := meter.Int64Counter(
		"refresh_records_discarded_total",
		metric.WithDescription("Record legs that did not contribute to demand"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, err
	}

	slotIncrements, err := meter.Int64Counter(
		"refresh_slot_increments_total",
		metric.WithDescription("Demand matrix increments"),
		metric.WithUnit("{increment}"),
	)
	if err != nil {
		return nil, err
	}

	highlightedCells, err := meter.Int64Counter(
		"refresh_highlighted_cells_total",
		metric.WithDescription("Destination cells highlighted"),
		metric.WithUnit("{cell}"),
	)
	if err != nil {
		return nil, err
	}

	gatewayOperations, err := meter.Int64Counter(
		"refresh_gateway_operations_total",
		metric.WithDescription("Spreadsheet gateway calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	return &RefreshMetrics{
		runs:              runs,
		runDuration:       runDuration,
		phaseDuration:     phaseDuration,
		recordsRead:       recordsRead,
		recordsDiscarded:  recordsDiscarded,
		slotIncrements:    slotIncrements,
		highlightedCells:  highlightedCells,
		gatewayOperations: gatewayOperations,
	}, nil
}

func (m *RefreshMetrics) RecordRun(ctx context.Context, outcome string, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.runs.Add(ctx, 1, attrs)
	m.runDuration.Record(ctx, duration.Seconds(), attrs)
}

func (m *RefreshMetrics) RecordPhaseDuration(ctx context.Context, phase string, duration time.Duration) {
	m.phaseDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("phase", phase),
	))
}

func (m *RefreshMetrics) RecordRecordsRead(ctx context.Context, tab string, count int) {
	m.recordsRead.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("tab", tab),
	))
}

func (m *RefreshMetrics) RecordDiscarded(ctx context.Context, direction, reason string, count int) {
	m.recordsDiscarded.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("direction", direction),
		attribute.String("reason", reason),
	))
}

func (m *RefreshMetrics) RecordIncrements(ctx context.Context, direction string, count int) {
	m.slotIncrements.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("direction", direction),
	))
}

func (m *RefreshMetrics) RecordHighlighted(ctx context.Context, tab string, count int) {
	m.highlightedCells.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("tab", tab),
	))
}

func (m *RefreshMetrics) RecordGatewayOperation(ctx context.Context, operation, outcome string) {
	m.gatewayOperations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}
