//go:build !gcloud

package diagrecorder

import (
	"context"
	"log/slog"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/shuttleops/demand-scheduler/internal/domain"
)

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	bucket   string
	org      string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.RunDiagnosticsRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "run diagnostics recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, run diagnostics recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)
	writeAPI := client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket)

	slog.InfoContext(ctx, "run diagnostics recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: writeAPI,
		bucket:   cfg.InfluxDBBucket,
		org:      cfg.InfluxDBOrg,
	}, nil
}

// RecordRun writes one run_summary point and one run_diagnostic point per count, all
// stamped with the run's finish time.
func (r *influxDBRecorder) RecordRun(ctx context.Context, report *domain.RunReport) error {
	pointTime := report.FinishedAt

	summary := influxdb2.NewPoint(
		"run_summary",
		map[string]string{
			"run_id": report.RunID,
			"status": string(report.Status),
		},
		map[string]any{
			"records_read":      report.Diagnostics.RecordsRead,
			"increments":        report.Diagnostics.TotalIncrements(),
			"discards":          report.Diagnostics.TotalDiscards(),
			"tabs_written":      report.TabsWritten,
			"highlighted_cells": report.HighlightedCells,
			"duration_seconds":  report.Duration().Seconds(),
		},
		pointTime,
	)

	if err := r.writeAPI.WritePoint(ctx, summary); err != nil {
		slog.WarnContext(ctx, "failed to write run summary to InfluxDB",
			slog.String("error", err.Error()),
			slog.String("run_id", report.RunID),
		)
		return nil
	}

	for _, row := range diagnosticRows(report) {
		tags := map[string]string{
			"run_id":    report.RunID,
			"direction": row.Direction,
			"outcome":   row.Outcome,
		}
		if row.Reason != "" {
			tags["reason"] = row.Reason
		}

		point := influxdb2.NewPoint(
			"run_diagnostic",
			tags,
			map[string]any{
				"count": row.Count,
			},
			pointTime,
		)

		if err := r.writeAPI.WritePoint(ctx, point); err != nil {
			slog.WarnContext(ctx, "failed to write run diagnostic to InfluxDB",
				slog.String("error", err.Error()),
				slog.String("direction", row.Direction),
				slog.String("reason", row.Reason),
			)
		}
	}

	return nil
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}
