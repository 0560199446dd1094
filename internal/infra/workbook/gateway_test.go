package workbook

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/shuttleops/demand-scheduler/internal/domain"
	"github.com/shuttleops/demand-scheduler/internal/service/refresh"
)

// createWorkbook writes a workbook whose sheets hold the given rows, in sheet order.
func createWorkbook(t *testing.T, g *Gateway, id string, sheets []string, rows map[string][][]string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, name := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatalf("SetSheetName() error = %v", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			t.Fatalf("NewSheet() error = %v", err)
		}

		for r, row := range rows[name] {
			cell, _ := excelize.CoordinatesToCellName(1, r+1)
			values := row
			if err := f.SetSheetRow(name, cell, &values); err != nil {
				t.Fatalf("SetSheetRow() error = %v", err)
			}
		}
	}

	if err := f.SaveAs(g.Path(id)); err != nil {
		t.Fatalf("SaveAs() error = %v", err)
	}
}

func openWorkbook(t *testing.T, g *Gateway, id string) *excelize.File {
	t.Helper()

	f, err := excelize.OpenFile(g.Path(id))
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestGateway_GetTabs(t *testing.T) {
	g := NewGateway(t.TempDir())
	createWorkbook(t, g, "dest", []string{"Arrivals ABC", "Departures ABC"}, nil)

	got, err := g.GetTabs(context.Background(), "dest")
	if err != nil {
		t.Fatalf("GetTabs() error = %v", err)
	}

	want := []domain.TabMeta{{Title: "Arrivals ABC", SheetID: 0}, {Title: "Departures ABC", SheetID: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GetTabs() = %+v, want %+v", got, want)
	}
}

func TestGateway_MissingWorkbook(t *testing.T) {
	g := NewGateway(t.TempDir())

	if _, err := g.GetTabs(context.Background(), "nope"); !errors.Is(err, ErrWorkbookNotFound) {
		t.Errorf("GetTabs() error = %v, want %v", err, ErrWorkbookNotFound)
	}
}

func TestGateway_ReadRange(t *testing.T) {
	g := NewGateway(t.TempDir())
	createWorkbook(t, g, "src", []string{"ABC Tracker"}, map[string][][]string{
		"ABC Tracker": {
			{"Arrival Date", "Arrival Time", "Arrival Airport"},
			{"July 29", "23:30:00", "ABC"},
			{"July 30", "8:00:00"},
		},
	})

	tests := []struct {
		name string
		a1   string
		want [][]string
	}{
		{
			name: "whole tracker",
			a1:   "'ABC Tracker'!A1:S1000",
			want: [][]string{
				{"Arrival Date", "Arrival Time", "Arrival Airport"},
				{"July 29", "23:30:00", "ABC"},
				{"July 30", "8:00:00"},
			},
		},
		{
			name: "inner window",
			a1:   "'ABC Tracker'!B2:C3",
			want: [][]string{
				{"23:30:00", "ABC"},
				{"8:00:00"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.ReadRange(context.Background(), "src", tt.a1)
			if err != nil {
				t.Fatalf("ReadRange() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadRange() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGateway_BatchWriteValues(t *testing.T) {
	g := NewGateway(t.TempDir())
	createWorkbook(t, g, "dest", []string{"Arrivals ABC"}, nil)

	err := g.BatchWriteValues(context.Background(), "dest", []domain.ValueRange{
		{Range: "'Arrivals ABC'!B3:D3", Values: [][]int{{0, 4, 1}}},
	})
	if err != nil {
		t.Fatalf("BatchWriteValues() error = %v", err)
	}

	f := openWorkbook(t, g, "dest")
	for cell, want := range map[string]string{"B3": "0", "C3": "4", "D3": "1", "E3": ""} {
		got, err := f.GetCellValue("Arrivals ABC", cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s) error = %v", cell, err)
		}
		if got != want {
			t.Errorf("%s = %q, want %q", cell, got, want)
		}
	}
}

func TestGateway_BatchWriteValuesOverflow(t *testing.T) {
	g := NewGateway(t.TempDir())
	createWorkbook(t, g, "dest", []string{"Arrivals ABC"}, nil)

	err := g.BatchWriteValues(context.Background(), "dest", []domain.ValueRange{
		{Range: "'Arrivals ABC'!B3:C3", Values: [][]int{{1, 2, 3}}},
	})
	if !errors.Is(err, domain.ErrInvalidRange) {
		t.Errorf("BatchWriteValues() error = %v, want %v", err, domain.ErrInvalidRange)
	}
}

func TestGateway_BatchWriteFormat(t *testing.T) {
	g := NewGateway(t.TempDir())
	createWorkbook(t, g, "dest", []string{"Arrivals ABC"}, nil)

	highlight := domain.Color{Red: 0.8, Green: 1, Blue: 0.8}
	ctx := context.Background()

	paint := []domain.FormatRequest{
		{Range: domain.GridRange{StartRowIndex: 2, EndRowIndex: 3, StartColumnIndex: 2, EndColumnIndex: 3}, Background: &highlight},
	}
	if err := g.BatchWriteFormat(ctx, "dest", paint); err != nil {
		t.Fatalf("BatchWriteFormat() error = %v", err)
	}

	f := openWorkbook(t, g, "dest")
	styleID, err := f.GetCellStyle("Arrivals ABC", "C3")
	if err != nil {
		t.Fatalf("GetCellStyle() error = %v", err)
	}
	style, err := f.GetStyle(styleID)
	if err != nil {
		t.Fatalf("GetStyle() error = %v", err)
	}
	if len(style.Fill.Color) != 1 || !strings.HasSuffix(strings.ToUpper(style.Fill.Color[0]), "CCFFCC") {
		t.Errorf("C3 fill = %v, want [CCFFCC]", style.Fill.Color)
	}

	reset := []domain.FormatRequest{
		{Range: domain.GridRange{StartRowIndex: 2, EndRowIndex: 3, StartColumnIndex: 1, EndColumnIndex: 49}},
	}
	if err := g.BatchWriteFormat(ctx, "dest", reset); err != nil {
		t.Fatalf("BatchWriteFormat() error = %v", err)
	}

	f = openWorkbook(t, g, "dest")
	if styleID, _ := f.GetCellStyle("Arrivals ABC", "C3"); styleID != 0 {
		t.Errorf("C3 style after reset = %d, want 0", styleID)
	}
}

func TestHexColor(t *testing.T) {
	tests := []struct {
		in   domain.Color
		want string
	}{
		{in: domain.Color{Red: 0.8, Green: 1, Blue: 0.8}, want: "CCFFCC"},
		{in: domain.Color{}, want: "000000"},
		{in: domain.Color{Red: 2, Green: -1, Blue: 0.5}, want: "FF0080"},
	}

	for _, tt := range tests {
		if got := HexColor(tt.in); got != tt.want {
			t.Errorf("HexColor(%+v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// A full refresh against real workbooks: the counts land in the destination file and a
// second run leaves it unchanged.
func TestRefreshAgainstWorkbooks(t *testing.T) {
	g := NewGateway(t.TempDir())
	createWorkbook(t, g, "src", []string{"ABC Tracker", "Notes"}, map[string][][]string{
		"ABC Tracker": {
			{"Arrival Date", "Arrival Time", "Arrival Airport", "Departure Date", "Departure Time", "Departure Airport"},
			{"July 29", "23:30:00", "ABC", "August 6", "2:00:00", "ABC"},
			{"29 July", "23:45:00", "abc", "", "0:00:00", "ABC"},
		},
		"Notes": {{"ignored"}},
	})
	createWorkbook(t, g, "dest", []string{"Arrivals ABC", "Departures ABC"}, nil)

	layout := domain.DefaultLayout()
	layout.ReferenceYear = 2025
	svc := refresh.NewService(g, refresh.Settings{SourceSheetID: "src", DestSheetID: "dest", Layout: layout}, nil, nil, nil)

	for run := 1; run <= 2; run++ {
		report, err := svc.Run(context.Background())
		if err != nil {
			t.Fatalf("run %d: Run() error = %v", run, err)
		}
		if report.HighlightedCells != 2 {
			t.Errorf("run %d: HighlightedCells = %d, want 2", run, report.HighlightedCells)
		}

		f := openWorkbook(t, g, "dest")
		checks := []struct {
			sheet, cell, want string
		}{
			{"Arrivals ABC", "C8", "2"},
			{"Arrivals ABC", "B8", "0"},
			{"Arrivals ABC", "C3", "0"},
			{"Departures ABC", "AV3", "1"},
		}
		for _, c := range checks {
			got, _ := f.GetCellValue(c.sheet, c.cell)
			if got != c.want {
				t.Errorf("run %d: %s!%s = %q, want %q", run, c.sheet, c.cell, got, c.want)
			}
		}
	}
}
