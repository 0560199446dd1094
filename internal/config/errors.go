package config

import "errors"

var (
	ErrInvalidRedisDB       = errors.New("REDIS_DB must be a valid integer")
	ErrSourceSheetIDMissing = errors.New("SOURCE_SHEET_ID is required")
	ErrDestSheetIDMissing   = errors.New("DEST_SHEET_ID is required")
	ErrUnknownBackend       = errors.New("SHEETS_BACKEND must be google or workbook")
	ErrInvalidLayout        = errors.New("invalid demand layout")
)
