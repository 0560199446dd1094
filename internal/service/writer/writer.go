package writer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shuttleops/demand-scheduler/internal/domain"
	"github.com/shuttleops/demand-scheduler/internal/sheetrange"
)

// Writer pushes demand matrices into the destination spreadsheet in three phases:
// Clear for every tab, then Write and Format tab by tab.
type Writer struct {
	gateway       domain.SpreadsheetGateway
	spreadsheetID string
	layout        domain.Layout
}

func NewWriter(gateway domain.SpreadsheetGateway, spreadsheetID string, layout domain.Layout) *Writer {
	return &Writer{
		gateway:       gateway,
		spreadsheetID: spreadsheetID,
		layout:        layout,
	}
}

func (w *Writer) rowRange(tab domain.TabRef, row int) string {
	return sheetrange.Row(tab.Title, row, w.layout.FirstSlotColumn, domain.SlotsPerDay).String()
}

// Clear zeroes every tracked cell of every tab in a single request.
func (w *Writer) Clear(ctx context.Context, tabs []domain.TabRef) error {
	zeros := make([]int, domain.SlotsPerDay)

	var ranges []domain.ValueRange
	for _, tab := range tabs {
		for _, date := range w.layout.For(tab.Direction).Dates {
			ranges = append(ranges, domain.ValueRange{
				Range:  w.rowRange(tab, date.Row),
				Values: [][]int{zeros},
			})
		}
	}

	if len(ranges) == 0 {
		return nil
	}

	if err := w.gateway.BatchWriteValues(ctx, w.spreadsheetID, ranges); err != nil {
		return fmt.Errorf("failed to clear destination counts: %w", err)
	}

	slog.InfoContext(ctx, "cleared destination counts",
		slog.Int("tabs", len(tabs)),
		slog.Int("ranges", len(ranges)),
	)

	return nil
}

// Write replaces the tracked rows of one tab with its matrix.
func (w *Writer) Write(ctx context.Context, m *domain.DemandMatrix) error {
	ranges := make([]domain.ValueRange, 0, len(m.Dates))
	for i, date := range m.Dates {
		ranges = append(ranges, domain.ValueRange{
			Range:  w.rowRange(m.Tab, date.Row),
			Values: [][]int{m.Counts[i]},
		})
	}

	if len(ranges) == 0 {
		return nil
	}

	if err := w.gateway.BatchWriteValues(ctx, w.spreadsheetID, ranges); err != nil {
		return fmt.Errorf("failed to write counts for %s: %w", m.Tab.Title, err)
	}

	return nil
}

// FormatRequests resets the background of every tracked row, then highlights each
// non-zero cell. Cells that dropped to zero since the previous run lose their highlight.
func (w *Writer) FormatRequests(m *domain.DemandMatrix) (requests []domain.FormatRequest, highlighted int) {
	firstCol := int64(w.layout.FirstSlotColumn - 1)

	for _, date := range m.Dates {
		requests = append(requests, domain.FormatRequest{
			Range: domain.GridRange{
				SheetID:          m.Tab.SheetID,
				StartRowIndex:    int64(date.Row - 1),
				EndRowIndex:      int64(date.Row),
				StartColumnIndex: firstCol,
				EndColumnIndex:   firstCol + domain.SlotsPerDay,
			},
		})
	}

	highlight := w.layout.Highlight
	for _, cell := range m.NonZeroCells() {
		row := int64(m.Dates[cell.RowIndex].Row)
		col := firstCol + int64(cell.SlotIndex)
		requests = append(requests, domain.FormatRequest{
			Range: domain.GridRange{
				SheetID:          m.Tab.SheetID,
				StartRowIndex:    row - 1,
				EndRowIndex:      row,
				StartColumnIndex: col,
				EndColumnIndex:   col + 1,
			},
			Background: &highlight,
		})
		highlighted++
	}

	return requests, highlighted
}

// Format applies FormatRequests for one tab in a single request and returns the number of
// highlighted cells.
func (w *Writer) Format(ctx context.Context, m *domain.DemandMatrix) (int, error) {
	requests, highlighted := w.FormatRequests(m)
	if len(requests) == 0 {
		return 0, nil
	}

	if err := w.gateway.BatchWriteFormat(ctx, w.spreadsheetID, requests); err != nil {
		return 0, fmt.Errorf("failed to format %s: %w", m.Tab.Title, err)
	}

	return highlighted, nil
}
