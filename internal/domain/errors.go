package domain

import "errors"

var (
	ErrSourceSheetMissing      = errors.New("source spreadsheet id is not configured")
	ErrDestinationSheetMissing = errors.New("destination spreadsheet id is not configured")
	ErrReportNotFound          = errors.New("run report not found")
	ErrInvalidRange            = errors.New("invalid range")
)
