package diagrecorder

import (
	"context"

	"github.com/shuttleops/demand-scheduler/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.RunDiagnosticsRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordRun(_ context.Context, _ *domain.RunReport) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
