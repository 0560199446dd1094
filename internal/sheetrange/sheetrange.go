// Package sheetrange builds and parses A1 ranges such as 'Arrivals ABC'!B3:AW3.
package sheetrange

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/shuttleops/demand-scheduler/internal/domain"
)

// Range is a rectangle in A1 coordinates. Columns and rows are 1-based and inclusive.
type Range struct {
	Sheet    string
	StartCol int
	StartRow int
	EndCol   int
	EndRow   int
}

// Row returns the range covering columns [startCol, startCol+width) of a single row.
func Row(sheet string, row, startCol, width int) Range {
	return Range{
		Sheet:    sheet,
		StartCol: startCol,
		StartRow: row,
		EndCol:   startCol + width - 1,
		EndRow:   row,
	}
}

func (r Range) String() string {
	start, err := excelize.CoordinatesToCellName(r.StartCol, r.StartRow)
	if err != nil {
		return ""
	}
	end, err := excelize.CoordinatesToCellName(r.EndCol, r.EndRow)
	if err != nil {
		return ""
	}
	return QuoteSheet(r.Sheet) + "!" + start + ":" + end
}

// QuoteSheet wraps a sheet title in single quotes, doubling embedded quotes.
func QuoteSheet(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

// Parse reads "Sheet!A1:B2", "'My Sheet'!A1:B2" or "Sheet!A1".
func Parse(a1 string) (Range, error) {
	sep := strings.LastIndex(a1, "!")
	if sep <= 0 {
		return Range{}, fmt.Errorf("%w: %q has no sheet name", domain.ErrInvalidRange, a1)
	}

	sheet := a1[:sep]
	if strings.HasPrefix(sheet, "'") && strings.HasSuffix(sheet, "'") && len(sheet) >= 2 {
		sheet = strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
	}

	r, err := ParseCells(a1[sep+1:])
	if err != nil {
		return Range{}, err
	}
	r.Sheet = sheet

	return r, nil
}

// ParseCells reads the cell part of a range without a sheet, such as "A1:S1000".
func ParseCells(cells string) (Range, error) {
	parts := strings.SplitN(cells, ":", 2)
	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q: %w", domain.ErrInvalidRange, cells, err)
	}

	endCol, endRow := startCol, startRow
	if len(parts) == 2 {
		endCol, endRow, err = excelize.CellNameToCoordinates(parts[1])
		if err != nil {
			return Range{}, fmt.Errorf("%w: %q: %w", domain.ErrInvalidRange, cells, err)
		}
	}

	if endCol < startCol || endRow < startRow {
		return Range{}, fmt.Errorf("%w: %q is inverted", domain.ErrInvalidRange, cells)
	}

	return Range{
		StartCol: startCol,
		StartRow: startRow,
		EndCol:   endCol,
		EndRow:   endRow,
	}, nil
}
