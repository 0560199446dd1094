package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/shuttleops/demand-scheduler/internal/domain"
	"github.com/shuttleops/demand-scheduler/internal/testutil"
)

func newMiniredisClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}

func sampleReport(runID string) *domain.RunReport {
	diagnostics := domain.NewDiagnostics()
	diagnostics.RecordsRead = 3
	diagnostics.Increment(domain.DirectionArrival)
	diagnostics.Discard(domain.DirectionDeparture, domain.DiscardNullTime)

	started := time.Date(2025, 7, 29, 6, 0, 0, 0, time.UTC)
	return &domain.RunReport{
		RunID:            runID,
		Status:           domain.RunStatusSucceeded,
		StartedAt:        started,
		FinishedAt:       started.Add(4 * time.Second),
		TrackerTabs:      []string{"ABC Tracker"},
		DestinationTabs:  []string{"Arrivals ABC", "Departures ABC"},
		TabsWritten:      2,
		HighlightedCells: 1,
		Diagnostics:      diagnostics,
	}
}

func TestRunReportRepository_GetLatestEmpty(t *testing.T) {
	client, _ := newMiniredisClient(t)
	repo := NewRunReportRepository(client)

	if _, err := repo.GetLatest(context.Background()); !errors.Is(err, domain.ErrReportNotFound) {
		t.Errorf("GetLatest() error = %v, want %v", err, domain.ErrReportNotFound)
	}
}

func TestRunReportRepository_SaveReplacesLatest(t *testing.T) {
	client, mr := newMiniredisClient(t)
	repo := NewRunReportRepository(client)
	ctx := context.Background()

	for _, id := range []string{"run-1", "run-2"} {
		if err := repo.SaveLatest(ctx, sampleReport(id)); err != nil {
			t.Fatalf("SaveLatest(%s) error = %v", id, err)
		}
	}

	got, err := repo.GetLatest(ctx)
	if err != nil {
		t.Fatalf("GetLatest() error = %v", err)
	}

	if got.RunID != "run-2" {
		t.Errorf("RunID = %q, want %q", got.RunID, "run-2")
	}
	if got.Duration() != 4*time.Second {
		t.Errorf("Duration() = %v, want 4s", got.Duration())
	}
	if got.Diagnostics.DiscardCount(domain.DirectionDeparture, domain.DiscardNullTime) != 1 {
		t.Errorf("Diagnostics = %+v, want one departure null_time discard", got.Diagnostics)
	}
	if ttl := mr.TTL(latestReportKey); ttl != latestReportTTL {
		t.Errorf("TTL = %v, want %v", ttl, latestReportTTL)
	}
}

func TestRunReportRepository_CorruptData(t *testing.T) {
	client, mr := newMiniredisClient(t)
	repo := NewRunReportRepository(client)

	if err := mr.Set(latestReportKey, "{not json"); err != nil {
		t.Fatalf("failed to set up test data: %v", err)
	}

	if _, err := repo.GetLatest(context.Background()); !errors.Is(err, ErrInvalidReportData) {
		t.Errorf("GetLatest() error = %v, want %v", err, ErrInvalidReportData)
	}
}

func TestRunReportRepository_RedisContainer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client := testutil.RedisContainer(ctx, t)

	repo := NewRunReportRepository(client)

	want := sampleReport("run-container")
	if err := repo.SaveLatest(ctx, want); err != nil {
		t.Fatalf("SaveLatest() error = %v", err)
	}

	got, err := repo.GetLatest(ctx)
	if err != nil {
		t.Fatalf("GetLatest() error = %v", err)
	}
	if got.RunID != want.RunID || got.TabsWritten != want.TabsWritten {
		t.Errorf("GetLatest() = %+v, want %+v", got, want)
	}
	if !got.StartedAt.Equal(want.StartedAt) {
		t.Errorf("StartedAt = %v, want %v", got.StartedAt, want.StartedAt)
	}
}
