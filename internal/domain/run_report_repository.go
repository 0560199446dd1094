package domain

import "context"

//go:generate mockgen -source=run_report_repository.go -destination=run_report_repository_mock.go -package=domain

// RunReportRepository keeps the report of the most recent run.
type RunReportRepository interface {
	SaveLatest(ctx context.Context, report *RunReport) error
	GetLatest(ctx context.Context) (*RunReport, error)
}
