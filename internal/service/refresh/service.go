package refresh

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shuttleops/demand-scheduler/internal/domain"
	"github.com/shuttleops/demand-scheduler/internal/observability/metrics"
	"github.com/shuttleops/demand-scheduler/internal/observability/tracing"
	"github.com/shuttleops/demand-scheduler/internal/service/aggregate"
	"github.com/shuttleops/demand-scheduler/internal/service/datekey"
	"github.com/shuttleops/demand-scheduler/internal/service/tabs"
	"github.com/shuttleops/demand-scheduler/internal/service/writer"
	"github.com/shuttleops/demand-scheduler/internal/sheetrange"
)

const (
	phaseMetadata  = "metadata"
	phaseClear     = "clear"
	phaseRead      = "read"
	phaseAggregate = "aggregate"
	phaseWrite     = "write"
	phaseFormat    = "format"
)

// Service runs the full refresh: read every tracker tab of the source spreadsheet and
// rebuild the slot counts of every destination tab from scratch.
type Service struct {
	gateway        domain.SpreadsheetGateway
	settings       Settings
	reportRepo     domain.RunReportRepository
	recorder       domain.RunDiagnosticsRecorder
	refreshMetrics *metrics.RefreshMetrics
	now            func() time.Time
}

// NewService builds a Service. reportRepo, recorder and refreshMetrics may be nil.
func NewService(
	gateway domain.SpreadsheetGateway,
	settings Settings,
	reportRepo domain.RunReportRepository,
	recorder domain.RunDiagnosticsRecorder,
	refreshMetrics *metrics.RefreshMetrics,
) *Service {
	return &Service{
		gateway:        newInstrumentedGateway(gateway, refreshMetrics),
		settings:       settings,
		reportRepo:     reportRepo,
		recorder:       recorder,
		refreshMetrics: refreshMetrics,
		now:            time.Now,
	}
}

// Run performs one refresh. The returned report is non-nil even when the run fails.
func (s *Service) Run(ctx context.Context) (*domain.RunReport, error) {
	report := &domain.RunReport{
		RunID:       uuid.NewString(),
		StartedAt:   s.now(),
		Diagnostics: domain.NewDiagnostics(),
	}

	ctx, span := tracing.StartRunSpan(ctx, report.RunID, s.settings.SourceSheetID, s.settings.DestSheetID)
	defer span.End()

	slog.InfoContext(ctx, "refresh started",
		slog.String("run_id", report.RunID),
		slog.String("source_sheet_id", s.settings.SourceSheetID),
		slog.String("dest_sheet_id", s.settings.DestSheetID),
	)

	err := s.run(ctx, report)

	report.FinishedAt = s.now()
	report.Status = domain.RunStatusSucceeded
	if err != nil {
		report.Status = domain.RunStatusFailed
		report.Error = err.Error()
	}

	tracing.RecordRunResult(span,
		report.Diagnostics.RecordsRead,
		report.Diagnostics.TotalIncrements(),
		report.Diagnostics.TotalDiscards(),
		report.HighlightedCells,
		err,
	)
	if s.refreshMetrics != nil {
		s.refreshMetrics.RecordRun(ctx, string(report.Status), report.Duration())
	}

	s.publish(context.WithoutCancel(ctx), report)

	if err != nil {
		slog.ErrorContext(ctx, "refresh failed",
			slog.String("run_id", report.RunID),
			slog.String("error", err.Error()),
		)
		return report, err
	}

	slog.InfoContext(ctx, "refresh completed",
		slog.String("run_id", report.RunID),
		slog.Int("records_read", report.Diagnostics.RecordsRead),
		slog.Int("increments", report.Diagnostics.TotalIncrements()),
		slog.Int("discards", report.Diagnostics.TotalDiscards()),
		slog.Int("tabs_written", report.TabsWritten),
		slog.Int("highlighted_cells", report.HighlightedCells),
		slog.Duration("duration", report.Duration()),
	)

	return report, nil
}

func (s *Service) run(ctx context.Context, report *domain.RunReport) error {
	if err := s.settings.Validate(); err != nil {
		return err
	}

	layout := s.settings.Layout
	w := writer.NewWriter(s.gateway, s.settings.DestSheetID, layout)

	var registry *tabs.Registry
	err := s.phase(ctx, phaseMetadata, func(ctx context.Context) error {
		metas, err := s.gateway.GetTabs(ctx, s.settings.DestSheetID)
		if err != nil {
			return fmt.Errorf("failed to read destination metadata: %w", err)
		}
		registry = tabs.NewRegistry(metas, layout)
		return nil
	})
	if err != nil {
		return err
	}

	destination := registry.All()
	for _, tab := range destination {
		report.DestinationTabs = append(report.DestinationTabs, tab.Title)
	}
	if len(destination) == 0 {
		slog.WarnContext(ctx, "no destination tabs match the layout prefixes",
			slog.String("arrival_prefix", layout.Arrivals.TabPrefix),
			slog.String("departure_prefix", layout.Departures.TabPrefix),
		)
	}

	if err := s.phase(ctx, phaseClear, func(ctx context.Context) error {
		return w.Clear(ctx, destination)
	}); err != nil {
		return err
	}

	var records []domain.TrackerRecord
	if err := s.phase(ctx, phaseRead, func(ctx context.Context) error {
		var err error
		records, err = s.readTrackers(ctx, report)
		return err
	}); err != nil {
		return err
	}

	var aggregator *aggregate.Aggregator
	if err := s.phase(ctx, phaseAggregate, func(ctx context.Context) error {
		aggregator = aggregate.NewAggregator(layout, registry, datekey.NewNormalizer(layout.ReferenceYear))
		for _, record := range records {
			aggregator.Add(ctx, record)
		}
		return nil
	}); err != nil {
		return err
	}
	report.Diagnostics = aggregator.Diagnostics()
	s.recordDiagnostics(ctx, report.Diagnostics)

	for _, m := range aggregator.Matrices() {
		if err := s.phase(ctx, phaseWrite, func(ctx context.Context) error {
			return w.Write(ctx, m)
		}); err != nil {
			return err
		}

		var highlighted int
		if err := s.phase(ctx, phaseFormat, func(ctx context.Context) error {
			var err error
			highlighted, err = w.Format(ctx, m)
			return err
		}); err != nil {
			return err
		}

		report.TabsWritten++
		report.HighlightedCells += highlighted
		if s.refreshMetrics != nil {
			s.refreshMetrics.RecordHighlighted(ctx, m.Tab.Title, highlighted)
		}

		slog.InfoContext(ctx, "destination tab updated",
			slog.String("tab", m.Tab.Title),
			slog.Int("total", m.Total()),
			slog.Int("highlighted_cells", highlighted),
		)
	}

	return nil
}

// readTrackers reads every tracker tab of the source spreadsheet, in tab order.
func (s *Service) readTrackers(ctx context.Context, report *domain.RunReport) ([]domain.TrackerRecord, error) {
	metas, err := s.gateway.GetTabs(ctx, s.settings.SourceSheetID)
	if err != nil {
		return nil, fmt.Errorf("failed to read source metadata: %w", err)
	}

	var records []domain.TrackerRecord
	for _, meta := range metas {
		if !s.settings.IsTrackerTab(meta.Title) {
			continue
		}
		report.TrackerTabs = append(report.TrackerTabs, meta.Title)

		a1 := sheetrange.QuoteSheet(meta.Title) + "!" + s.settings.Layout.TrackerRange
		rows, err := s.gateway.ReadRange(ctx, s.settings.SourceSheetID, a1)
		if err != nil {
			return nil, fmt.Errorf("failed to read tracker tab %s: %w", meta.Title, err)
		}

		if len(rows) < 2 {
			slog.DebugContext(ctx, "tracker tab has no data rows",
				slog.String("tab", meta.Title),
			)
			continue
		}

		tabRecords, missing := aggregate.RecordsFromRows(rows)
		if len(missing) > 0 {
			slog.WarnContext(ctx, "tracker tab is missing columns",
				slog.String("tab", meta.Title),
				slog.Any("columns", missing),
			)
		}

		if s.refreshMetrics != nil {
			s.refreshMetrics.RecordRecordsRead(ctx, meta.Title, len(tabRecords))
		}
		records = append(records, tabRecords...)
	}

	if len(report.TrackerTabs) == 0 {
		slog.WarnContext(ctx, "no tracker tabs found in source spreadsheet",
			slog.String("keyword", s.settings.Layout.TrackerKeyword),
		)
	}

	return records, nil
}

func (s *Service) phase(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := tracing.StartPhaseSpan(ctx, name)
	defer span.End()

	start := time.Now()
	err := fn(ctx)

	tracing.RecordResult(span, err)
	if s.refreshMetrics != nil {
		s.refreshMetrics.RecordPhaseDuration(ctx, name, time.Since(start))
	}

	return err
}

func (s *Service) recordDiagnostics(ctx context.Context, diagnostics domain.Diagnostics) {
	for _, direction := range domain.Directions() {
		for reason, count := range diagnostics.Discards[direction] {
			slog.DebugContext(ctx, "records discarded",
				slog.String("direction", direction.String()),
				slog.String("reason", reason.String()),
				slog.Int("count", count),
			)
			if s.refreshMetrics != nil {
				s.refreshMetrics.RecordDiscarded(ctx, direction.String(), reason.String(), count)
			}
		}
		if s.refreshMetrics != nil {
			s.refreshMetrics.RecordIncrements(ctx, direction.String(), diagnostics.Increments[direction])
		}
	}
}

// publish stores the report and ships its diagnostics. Failures here never fail the run.
func (s *Service) publish(ctx context.Context, report *domain.RunReport) {
	if s.reportRepo != nil {
		if err := s.reportRepo.SaveLatest(ctx, report); err != nil {
			slog.WarnContext(ctx, "failed to save run report",
				slog.String("run_id", report.RunID),
				slog.String("error", err.Error()),
			)
		}
	}

	if s.recorder != nil {
		if err := s.recorder.RecordRun(ctx, report); err != nil {
			slog.WarnContext(ctx, "failed to record run diagnostics",
				slog.String("run_id", report.RunID),
				slog.String("error", err.Error()),
			)
		}
	}
}

// LatestReport returns the report of the most recent run.
func (s *Service) LatestReport(ctx context.Context) (*domain.RunReport, error) {
	if s.reportRepo == nil {
		return nil, domain.ErrReportNotFound
	}
	return s.reportRepo.GetLatest(ctx)
}
