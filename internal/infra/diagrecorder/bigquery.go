//go:build gcloud

package diagrecorder

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/shuttleops/demand-scheduler/internal/domain"
)

type bigQueryRecord struct {
	RecordedAt time.Time `bigquery:"recorded_at"`
	RunID      string    `bigquery:"run_id"`
	Status     string    `bigquery:"status"`
	Direction  string    `bigquery:"direction"`
	Outcome    string    `bigquery:"outcome"`
	Reason     string    `bigquery:"reason"`
	Count      int64     `bigquery:"count"`
}

type bigQueryRecorder struct {
	client   *bigquery.Client
	inserter *bigquery.Inserter
	dataset  string
	table    string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.RunDiagnosticsRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "run diagnostics recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, run diagnostics recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, run diagnostics recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	table := client.Dataset(cfg.BigQueryDataset).Table(cfg.BigQueryTable)
	inserter := table.Inserter()

	slog.InfoContext(ctx, "run diagnostics recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
	)

	return &bigQueryRecorder{
		client:   client,
		inserter: inserter,
		dataset:  cfg.BigQueryDataset,
		table:    cfg.BigQueryTable,
	}, nil
}

func (r *bigQueryRecorder) RecordRun(ctx context.Context, report *domain.RunReport) error {
	rows := diagnosticRows(report)
	if len(rows) == 0 {
		return nil
	}

	bqRecords := make([]*bigQueryRecord, 0, len(rows))
	for _, row := range rows {
		bqRecords = append(bqRecords, &bigQueryRecord{
			RecordedAt: report.FinishedAt,
			RunID:      report.RunID,
			Status:     string(report.Status),
			Direction:  row.Direction,
			Outcome:    row.Outcome,
			Reason:     row.Reason,
			Count:      int64(row.Count),
		})
	}

	if err := r.inserter.Put(ctx, bqRecords); err != nil {
		slog.WarnContext(ctx, "failed to insert run diagnostics to BigQuery",
			slog.String("error", err.Error()),
			slog.Int("record_count", len(bqRecords)),
		)
	}

	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
