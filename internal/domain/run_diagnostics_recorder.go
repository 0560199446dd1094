package domain

import "context"

// RunDiagnosticsRecorder ships per-run discard and increment counts to an analytics sink.
type RunDiagnosticsRecorder interface {
	RecordRun(ctx context.Context, report *RunReport) error
	Close() error
}
