package repository

import "errors"

var (
	ErrInvalidReportData = errors.New("invalid run report data")
)
