package refresh

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/shuttleops/demand-scheduler/internal/domain"
	"go.uber.org/mock/gomock"
)

const (
	sourceID = "source-sheet"
	destID   = "dest-sheet"
)

var trackerHeader = []string{"Name", "Arrival Date", "Arrival Time", "Arrival Airport", "Departure Date", "Departure Time", "Departure Airport"}

func testSettings() Settings {
	layout := domain.DefaultLayout()
	layout.ReferenceYear = 2025
	return Settings{SourceSheetID: sourceID, DestSheetID: destID, Layout: layout}
}

func destinationTabs() []domain.TabMeta {
	return []domain.TabMeta{
		{Title: "Arrivals ABC", SheetID: 11},
		{Title: "Departures ABC", SheetID: 12},
		{Title: "Summary", SheetID: 13},
	}
}

func sourceTabs() []domain.TabMeta {
	return []domain.TabMeta{
		{Title: "ABC Tracker", SheetID: 1},
		{Title: "Notes", SheetID: 2},
	}
}

func trackerRows() [][]string {
	return [][]string{
		trackerHeader,
		{"Ann", "July 29", "23:30:00", "ABC", "August 6", "2:00:00", "abc"},
		{"Bob", "July 29", "0:00:00", "ABC", "", "", ""},
		{"Cid", "July 29", "10:00:00", "XYZ", "August 6", "10:00:00", "ABC"},
	}
}

// writes captures what the service sent to the destination spreadsheet.
type writes struct {
	values  map[string][]int
	formats map[int64][]domain.FormatRequest
}

func newWrites() *writes {
	return &writes{
		values:  make(map[string][]int),
		formats: make(map[int64][]domain.FormatRequest),
	}
}

func (w *writes) captureValues(_ context.Context, _ string, ranges []domain.ValueRange) error {
	for _, r := range ranges {
		w.values[r.Range] = append([]int(nil), r.Values[0]...)
	}
	return nil
}

func (w *writes) captureFormat(_ context.Context, _ string, requests []domain.FormatRequest) error {
	if len(requests) > 0 {
		w.formats[requests[0].Range.SheetID] = requests
	}
	return nil
}

func TestService_Run_EndToEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := domain.NewMockSpreadsheetGateway(ctrl)
	reports := domain.NewMockRunReportRepository(ctrl)

	captured := newWrites()
	var clearRanges []domain.ValueRange

	gomock.InOrder(
		gateway.EXPECT().GetTabs(gomock.Any(), destID).Return(destinationTabs(), nil),
		gateway.EXPECT().BatchWriteValues(gomock.Any(), destID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, ranges []domain.ValueRange) error {
				clearRanges = ranges
				return nil
			}),
		gateway.EXPECT().GetTabs(gomock.Any(), sourceID).Return(sourceTabs(), nil),
		gateway.EXPECT().ReadRange(gomock.Any(), sourceID, "'ABC Tracker'!A1:S1000").Return(trackerRows(), nil),
		gateway.EXPECT().BatchWriteValues(gomock.Any(), destID, gomock.Len(11)).DoAndReturn(captured.captureValues),
		gateway.EXPECT().BatchWriteFormat(gomock.Any(), destID, gomock.Any()).DoAndReturn(captured.captureFormat),
		gateway.EXPECT().BatchWriteValues(gomock.Any(), destID, gomock.Len(8)).DoAndReturn(captured.captureValues),
		gateway.EXPECT().BatchWriteFormat(gomock.Any(), destID, gomock.Any()).DoAndReturn(captured.captureFormat),
	)

	var saved *domain.RunReport
	reports.EXPECT().SaveLatest(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r *domain.RunReport) error {
			saved = r
			return nil
		})

	svc := NewService(gateway, testSettings(), reports, nil, nil)

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(clearRanges) != 19 {
		t.Errorf("clear covered %d rows, want 19", len(clearRanges))
	}

	arrivals := captured.values["'Arrivals ABC'!B8:AW8"]
	if len(arrivals) != domain.SlotsPerDay {
		t.Fatalf("july 30 row not written")
	}
	if arrivals[1] != 1 {
		t.Errorf("Arrivals ABC july 30 slot 1 = %d, want 1", arrivals[1])
	}

	departures := captured.values["'Departures ABC'!B3:AW3"]
	if departures[46] != 1 {
		t.Errorf("Departures ABC august 5 slot 46 = %d, want 1", departures[46])
	}
	if departures[14] != 0 {
		t.Errorf("Departures ABC august 5 slot 14 = %d, want 0", departures[14])
	}
	if got := captured.values["'Departures ABC'!B8:AW8"][14]; got != 1 {
		t.Errorf("Departures ABC august 6 slot 14 = %d, want 1", got)
	}

	if got := len(captured.formats[11]); got != 11+1 {
		t.Errorf("arrival format requests = %d, want 12", got)
	}
	if got := len(captured.formats[12]); got != 8+2 {
		t.Errorf("departure format requests = %d, want 10", got)
	}

	if report.Status != domain.RunStatusSucceeded {
		t.Errorf("Status = %q, want %q", report.Status, domain.RunStatusSucceeded)
	}
	if report.TabsWritten != 2 {
		t.Errorf("TabsWritten = %d, want 2", report.TabsWritten)
	}
	if report.HighlightedCells != 3 {
		t.Errorf("HighlightedCells = %d, want 3", report.HighlightedCells)
	}
	if !reflect.DeepEqual(report.TrackerTabs, []string{"ABC Tracker"}) {
		t.Errorf("TrackerTabs = %v, want [ABC Tracker]", report.TrackerTabs)
	}
	if report.Diagnostics.RecordsRead != 3 {
		t.Errorf("RecordsRead = %d, want 3", report.Diagnostics.RecordsRead)
	}
	if got := report.Diagnostics.DiscardCount(domain.DirectionArrival, domain.DiscardNullTime); got != 1 {
		t.Errorf("null_time discards = %d, want 1", got)
	}
	if got := report.Diagnostics.DiscardCount(domain.DirectionArrival, domain.DiscardUnknownAirport); got != 1 {
		t.Errorf("unknown_airport discards = %d, want 1", got)
	}
	if saved != report {
		t.Error("saved report differs from returned report")
	}
	if report.RunID == "" {
		t.Error("RunID is empty")
	}
}

func TestService_Run_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := domain.NewMockSpreadsheetGateway(ctrl)

	first, second := newWrites(), newWrites()
	current := first

	gateway.EXPECT().GetTabs(gomock.Any(), destID).Return(destinationTabs(), nil).Times(2)
	gateway.EXPECT().GetTabs(gomock.Any(), sourceID).Return(sourceTabs(), nil).Times(2)
	gateway.EXPECT().ReadRange(gomock.Any(), sourceID, gomock.Any()).Return(trackerRows(), nil).Times(2)
	gateway.EXPECT().BatchWriteValues(gomock.Any(), destID, gomock.Any()).
		DoAndReturn(func(ctx context.Context, id string, ranges []domain.ValueRange) error {
			return current.captureValues(ctx, id, ranges)
		}).
		AnyTimes()
	gateway.EXPECT().BatchWriteFormat(gomock.Any(), destID, gomock.Any()).
		DoAndReturn(func(ctx context.Context, id string, requests []domain.FormatRequest) error {
			return current.captureFormat(ctx, id, requests)
		}).
		AnyTimes()

	svc := NewService(gateway, testSettings(), nil, nil, nil)

	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	current = second
	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("second Run() error = %v", err)
	}

	if !reflect.DeepEqual(first.values, second.values) {
		t.Error("second run wrote different values")
	}
	if !reflect.DeepEqual(first.formats, second.formats) {
		t.Error("second run wrote different formats")
	}
}

func TestService_Run_SourceFailureAbortsBeforeWrites(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := domain.NewMockSpreadsheetGateway(ctrl)
	reports := domain.NewMockRunReportRepository(ctrl)

	transportErr := errors.New("connection reset")

	gomock.InOrder(
		gateway.EXPECT().GetTabs(gomock.Any(), destID).Return(destinationTabs(), nil),
		gateway.EXPECT().BatchWriteValues(gomock.Any(), destID, gomock.Any()).Return(nil),
		gateway.EXPECT().GetTabs(gomock.Any(), sourceID).Return(sourceTabs(), nil),
		gateway.EXPECT().ReadRange(gomock.Any(), sourceID, gomock.Any()).Return(nil, transportErr),
	)
	reports.EXPECT().SaveLatest(gomock.Any(), gomock.Any()).Return(nil)

	svc := NewService(gateway, testSettings(), reports, nil, nil)

	report, err := svc.Run(context.Background())
	if !errors.Is(err, transportErr) {
		t.Fatalf("Run() error = %v, want wrapped %v", err, transportErr)
	}
	if report.Status != domain.RunStatusFailed {
		t.Errorf("Status = %q, want %q", report.Status, domain.RunStatusFailed)
	}
	if report.Error == "" {
		t.Error("report.Error is empty")
	}
	if report.TabsWritten != 0 {
		t.Errorf("TabsWritten = %d, want 0", report.TabsWritten)
	}
}

func TestService_Run_ClearFailureAbortsRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := domain.NewMockSpreadsheetGateway(ctrl)

	transportErr := errors.New("quota exceeded")

	gomock.InOrder(
		gateway.EXPECT().GetTabs(gomock.Any(), destID).Return(destinationTabs(), nil),
		gateway.EXPECT().BatchWriteValues(gomock.Any(), destID, gomock.Len(19)).Return(transportErr),
	)
	gateway.EXPECT().GetTabs(gomock.Any(), sourceID).Times(0)
	gateway.EXPECT().ReadRange(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	gateway.EXPECT().BatchWriteFormat(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	svc := NewService(gateway, testSettings(), nil, nil, nil)

	report, err := svc.Run(context.Background())
	if !errors.Is(err, transportErr) {
		t.Fatalf("Run() error = %v, want wrapped %v", err, transportErr)
	}
	if report.Status != domain.RunStatusFailed {
		t.Errorf("Status = %q, want %q", report.Status, domain.RunStatusFailed)
	}
	if report.TabsWritten != 0 {
		t.Errorf("TabsWritten = %d, want 0", report.TabsWritten)
	}
}

func TestService_Run_WriteFailureStopsRemainingTabs(t *testing.T) {
	transportErr := errors.New("backend unavailable")

	tests := []struct {
		name            string
		expect          func(g *domain.MockSpreadsheetGateway)
		wantTabsWritten int
	}{
		{
			name: "values of first tab",
			expect: func(g *domain.MockSpreadsheetGateway) {
				g.EXPECT().BatchWriteValues(gomock.Any(), destID, gomock.Len(11)).Return(transportErr)
				g.EXPECT().BatchWriteFormat(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantTabsWritten: 0,
		},
		{
			name: "format of first tab",
			expect: func(g *domain.MockSpreadsheetGateway) {
				gomock.InOrder(
					g.EXPECT().BatchWriteValues(gomock.Any(), destID, gomock.Len(11)).Return(nil),
					g.EXPECT().BatchWriteFormat(gomock.Any(), destID, gomock.Any()).Return(transportErr),
				)
				g.EXPECT().BatchWriteValues(gomock.Any(), destID, gomock.Len(8)).Times(0)
			},
			wantTabsWritten: 0,
		},
		{
			name: "values of second tab",
			expect: func(g *domain.MockSpreadsheetGateway) {
				gomock.InOrder(
					g.EXPECT().BatchWriteValues(gomock.Any(), destID, gomock.Len(11)).Return(nil),
					g.EXPECT().BatchWriteFormat(gomock.Any(), destID, gomock.Any()).Return(nil),
					g.EXPECT().BatchWriteValues(gomock.Any(), destID, gomock.Len(8)).Return(transportErr),
				)
			},
			wantTabsWritten: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			gateway := domain.NewMockSpreadsheetGateway(ctrl)

			gomock.InOrder(
				gateway.EXPECT().GetTabs(gomock.Any(), destID).Return(destinationTabs(), nil),
				gateway.EXPECT().BatchWriteValues(gomock.Any(), destID, gomock.Len(19)).Return(nil),
				gateway.EXPECT().GetTabs(gomock.Any(), sourceID).Return(sourceTabs(), nil),
				gateway.EXPECT().ReadRange(gomock.Any(), sourceID, gomock.Any()).Return(trackerRows(), nil),
			)
			tt.expect(gateway)

			svc := NewService(gateway, testSettings(), nil, nil, nil)

			report, err := svc.Run(context.Background())
			if !errors.Is(err, transportErr) {
				t.Fatalf("Run() error = %v, want wrapped %v", err, transportErr)
			}
			if report.Status != domain.RunStatusFailed {
				t.Errorf("Status = %q, want %q", report.Status, domain.RunStatusFailed)
			}
			if report.TabsWritten != tt.wantTabsWritten {
				t.Errorf("TabsWritten = %d, want %d", report.TabsWritten, tt.wantTabsWritten)
			}
		})
	}
}

func TestService_Run_DestinationMetadataFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := domain.NewMockSpreadsheetGateway(ctrl)

	transportErr := errors.New("permission denied")
	gateway.EXPECT().GetTabs(gomock.Any(), destID).Return(nil, transportErr)

	svc := NewService(gateway, testSettings(), nil, nil, nil)

	if _, err := svc.Run(context.Background()); !errors.Is(err, transportErr) {
		t.Errorf("Run() error = %v, want wrapped %v", err, transportErr)
	}
}

func TestService_Run_MissingSheetIDs(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		wantErr  error
	}{
		{name: "source", settings: Settings{DestSheetID: destID}, wantErr: domain.ErrSourceSheetMissing},
		{name: "destination", settings: Settings{SourceSheetID: sourceID}, wantErr: domain.ErrDestinationSheetMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			gateway := domain.NewMockSpreadsheetGateway(ctrl)

			svc := NewService(gateway, tt.settings, nil, nil, nil)

			if _, err := svc.Run(context.Background()); !errors.Is(err, tt.wantErr) {
				t.Errorf("Run() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestService_Run_SkipsEmptyTrackerTabs(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := domain.NewMockSpreadsheetGateway(ctrl)

	gateway.EXPECT().GetTabs(gomock.Any(), destID).Return(destinationTabs(), nil)
	gateway.EXPECT().GetTabs(gomock.Any(), sourceID).Return([]domain.TabMeta{{Title: "Empty tracker"}}, nil)
	gateway.EXPECT().ReadRange(gomock.Any(), sourceID, "'Empty tracker'!A1:S1000").Return([][]string{trackerHeader}, nil)
	gateway.EXPECT().BatchWriteValues(gomock.Any(), destID, gomock.Any()).Return(nil).Times(3)
	gateway.EXPECT().BatchWriteFormat(gomock.Any(), destID, gomock.Any()).Return(nil).Times(2)

	svc := NewService(gateway, testSettings(), nil, nil, nil)

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Diagnostics.RecordsRead != 0 {
		t.Errorf("RecordsRead = %d, want 0", report.Diagnostics.RecordsRead)
	}
	if report.HighlightedCells != 0 {
		t.Errorf("HighlightedCells = %d, want 0", report.HighlightedCells)
	}
}

func TestService_LatestReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := domain.NewMockSpreadsheetGateway(ctrl)

	svc := NewService(gateway, testSettings(), nil, nil, nil)
	if _, err := svc.LatestReport(context.Background()); !errors.Is(err, domain.ErrReportNotFound) {
		t.Errorf("LatestReport() error = %v, want %v", err, domain.ErrReportNotFound)
	}

	reports := domain.NewMockRunReportRepository(ctrl)
	want := &domain.RunReport{RunID: "run-1"}
	reports.EXPECT().GetLatest(gomock.Any()).Return(want, nil)

	svc = NewService(gateway, testSettings(), reports, nil, nil)
	got, err := svc.LatestReport(context.Background())
	if err != nil {
		t.Fatalf("LatestReport() error = %v", err)
	}
	if got != want {
		t.Errorf("LatestReport() = %v, want %v", got, want)
	}
}
