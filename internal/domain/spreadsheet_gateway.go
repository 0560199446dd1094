package domain

import "context"

//go:generate mockgen -source=spreadsheet_gateway.go -destination=spreadsheet_gateway_mock.go -package=domain

// TabMeta is the title and numeric id of one worksheet.
type TabMeta struct {
	Title   string
	SheetID int64
}

// ValueRange is an A1 range and the rows written into it.
type ValueRange struct {
	Range  string
	Values [][]int
}

// GridRange is a zero-based, end-exclusive rectangle on one worksheet.
type GridRange struct {
	SheetID          int64
	StartRowIndex    int64
	EndRowIndex      int64
	StartColumnIndex int64
	EndColumnIndex   int64
}

// FormatRequest sets the background of every cell in Range. A nil Background resets it.
type FormatRequest struct {
	Range      GridRange
	Background *Color
}

type SpreadsheetGateway interface {
	GetTabs(ctx context.Context, spreadsheetID string) ([]TabMeta, error)
	ReadRange(ctx context.Context, spreadsheetID, a1Range string) ([][]string, error)
	BatchWriteValues(ctx context.Context, spreadsheetID string, ranges []ValueRange) error
	BatchWriteFormat(ctx context.Context, spreadsheetID string, requests []FormatRequest) error
}
