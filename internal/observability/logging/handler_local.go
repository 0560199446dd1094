//go:build !gcloud

package logging

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// gcpTraceAttrs adds nothing outside Cloud Logging; trace_id and span_id already cover local collectors.
func gcpTraceAttrs(trace.SpanContext, string) []slog.Attr {
	return nil
}
