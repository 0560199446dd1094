// Package workbook implements the spreadsheet gateway on local .xlsx files, one file per
// spreadsheet id. It serves offline runs and tests.
package workbook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/shuttleops/demand-scheduler/internal/domain"
	"github.com/shuttleops/demand-scheduler/internal/sheetrange"
)

var ErrWorkbookNotFound = errors.New("workbook not found")

// Gateway maps spreadsheet id "abc" to "<dir>/abc.xlsx". Tab ids are sheet positions.
type Gateway struct {
	dir string
	mu  sync.Mutex
}

func NewGateway(dir string) *Gateway {
	slog.Info("spreadsheet gateway initialized",
		slog.String("type", "workbook"),
		slog.String("dir", dir),
	)
	return &Gateway{dir: dir}
}

func (g *Gateway) Path(spreadsheetID string) string {
	return filepath.Join(g.dir, spreadsheetID+".xlsx")
}

func (g *Gateway) open(spreadsheetID string) (*excelize.File, error) {
	path := g.Path(spreadsheetID)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrWorkbookNotFound, path)
		}
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return f, nil
}

func closeFile(ctx context.Context, f *excelize.File) {
	if err := f.Close(); err != nil {
		slog.WarnContext(ctx, "failed to close workbook", slog.String("error", err.Error()))
	}
}

func (g *Gateway) GetTabs(ctx context.Context, spreadsheetID string) ([]domain.TabMeta, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	f, err := g.open(spreadsheetID)
	if err != nil {
		return nil, err
	}
	defer closeFile(ctx, f)

	names := f.GetSheetList()
	tabs := make([]domain.TabMeta, 0, len(names))
	for i, name := range names {
		tabs = append(tabs, domain.TabMeta{Title: name, SheetID: int64(i)})
	}

	return tabs, nil
}

func (g *Gateway) ReadRange(ctx context.Context, spreadsheetID, a1Range string) ([][]string, error) {
	r, err := sheetrange.Parse(a1Range)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	f, err := g.open(spreadsheetID)
	if err != nil {
		return nil, err
	}
	defer closeFile(ctx, f)

	all, err := f.GetRows(r.Sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", a1Range, err)
	}

	var rows [][]string
	for i := r.StartRow - 1; i < r.EndRow && i < len(all); i++ {
		row := all[i]
		var cells []string
		if r.StartCol-1 < len(row) {
			cells = row[r.StartCol-1 : min(r.EndCol, len(row))]
		}
		rows = append(rows, append([]string(nil), cells...))
	}

	return trimTrailingEmpty(rows), nil
}

func trimTrailingEmpty(rows [][]string) [][]string {
	end := len(rows)
	for end > 0 && isEmptyRow(rows[end-1]) {
		end--
	}
	return rows[:end]
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}

func (g *Gateway) BatchWriteValues(ctx context.Context, spreadsheetID string, ranges []domain.ValueRange) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	f, err := g.open(spreadsheetID)
	if err != nil {
		return err
	}
	defer closeFile(ctx, f)

	for _, vr := range ranges {
		r, err := sheetrange.Parse(vr.Range)
		if err != nil {
			return err
		}

		for i, values := range vr.Values {
			row := r.StartRow + i
			if row > r.EndRow {
				return fmt.Errorf("%w: %d rows do not fit %s", domain.ErrInvalidRange, len(vr.Values), vr.Range)
			}
			if len(values) > r.EndCol-r.StartCol+1 {
				return fmt.Errorf("%w: %d values do not fit %s", domain.ErrInvalidRange, len(values), vr.Range)
			}

			cell, err := excelize.CoordinatesToCellName(r.StartCol, row)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(r.Sheet, cell, &values); err != nil {
				return fmt.Errorf("failed to write %s: %w", vr.Range, err)
			}
		}
	}

	if err := f.Save(); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

func (g *Gateway) BatchWriteFormat(ctx context.Context, spreadsheetID string, requests []domain.FormatRequest) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	f, err := g.open(spreadsheetID)
	if err != nil {
		return err
	}
	defer closeFile(ctx, f)

	names := f.GetSheetList()
	styles := make(map[domain.Color]int)

	for _, req := range requests {
		if req.Range.SheetID < 0 || req.Range.SheetID >= int64(len(names)) {
			return fmt.Errorf("%w: no sheet with id %d", domain.ErrInvalidRange, req.Range.SheetID)
		}
		sheet := names[req.Range.SheetID]

		topLeft, err := excelize.CoordinatesToCellName(int(req.Range.StartColumnIndex)+1, int(req.Range.StartRowIndex)+1)
		if err != nil {
			return err
		}
		bottomRight, err := excelize.CoordinatesToCellName(int(req.Range.EndColumnIndex), int(req.Range.EndRowIndex))
		if err != nil {
			return err
		}

		styleID := 0
		if req.Background != nil {
			id, ok := styles[*req.Background]
			if !ok {
				id, err = f.NewStyle(&excelize.Style{
					Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{HexColor(*req.Background)}},
				})
				if err != nil {
					return fmt.Errorf("failed to create style: %w", err)
				}
				styles[*req.Background] = id
			}
			styleID = id
		}

		if err := f.SetCellStyle(sheet, topLeft, bottomRight, styleID); err != nil {
			return fmt.Errorf("failed to format %s!%s:%s: %w", sheet, topLeft, bottomRight, err)
		}
	}

	if err := f.Save(); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

// HexColor renders c as "RRGGBB".
func HexColor(c domain.Color) string {
	channel := func(v float64) int {
		return int(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
	return fmt.Sprintf("%02X%02X%02X", channel(c.Red), channel(c.Green), channel(c.Blue))
}
